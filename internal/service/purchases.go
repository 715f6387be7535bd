package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Jamlick126/invoice-manager/internal/domain"
	"github.com/Jamlick126/invoice-manager/internal/ledger"
	"github.com/Jamlick126/invoice-manager/internal/xid"
)

// ListPurchases reports each purchase with its status derived from the balance.
func (s *Service) ListPurchases(_ context.Context) []domain.PurchaseView {
	purchases := s.state.Purchases()
	views := make([]domain.PurchaseView, 0, len(purchases))
	for _, purchase := range purchases {
		views = append(views, ledger.View(purchase))
	}
	return views
}

func (s *Service) AddPurchase(ctx context.Context, req domain.PurchaseCreateRequest) (domain.PurchaseView, error) {
	total, err := ledger.ParsePositiveWhole("totalAmount", req.TotalAmount.String())
	if err != nil {
		return domain.PurchaseView{}, err
	}

	purchase, err := ledger.NewPurchase(req.Supplier, total, req.Description, xid.New("pur"), s.now())
	if err != nil {
		return domain.PurchaseView{}, err
	}
	s.state.AddPurchase(ctx, purchase)
	return ledger.View(purchase), nil
}

// RecordPayment appends an installment. A payment larger than the balance is
// rejected and the history is left untouched.
func (s *Service) RecordPayment(ctx context.Context, purchaseID string, req domain.PaymentCreateRequest) (domain.PurchaseView, error) {
	amount, err := ledger.ParsePositiveWhole("amount", req.Amount.String())
	if err != nil {
		return domain.PurchaseView{}, err
	}

	updated, err := s.state.UpdatePurchase(ctx, purchaseID, func(purchase domain.Purchase) (domain.Purchase, error) {
		return ledger.RecordPayment(purchase, amount, xid.New("pay"), s.now())
	})
	if err != nil {
		return domain.PurchaseView{}, err
	}
	return ledger.View(updated), nil
}

func (s *Service) DeletePurchase(ctx context.Context, id string) {
	if !s.state.DeletePurchase(ctx, id) {
		s.logger.Debug("delete ignored, purchase not found", zap.String("id", id))
	}
}
