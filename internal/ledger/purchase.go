package ledger

import (
	"strings"
	"time"

	"github.com/Jamlick126/invoice-manager/internal/domain"
	"github.com/Jamlick126/invoice-manager/internal/money"
)

func NewPurchase(supplier string, totalAmount int64, description string, id string, now time.Time) (domain.Purchase, error) {
	supplier = strings.TrimSpace(supplier)
	if supplier == "" {
		return domain.Purchase{}, domain.NewValidationError("supplier", "supplier is required")
	}
	if totalAmount < 1 {
		return domain.Purchase{}, domain.NewValidationError("totalAmount", "totalAmount must be greater than zero")
	}

	return domain.Purchase{
		ID:          id,
		Supplier:    supplier,
		TotalAmount: totalAmount,
		Description: strings.TrimSpace(description),
		Status:      domain.PurchaseStatusUnpaid,
		Date:        now.Format(longDateLayout),
		Payments:    []domain.Payment{},
	}, nil
}

func TotalPaid(purchase domain.Purchase) int64 {
	var paid int64
	for _, payment := range purchase.Payments {
		paid += payment.Amount
	}
	return paid
}

func Balance(purchase domain.Purchase) int64 {
	return purchase.Owed() - TotalPaid(purchase)
}

// TotalPayable sums outstanding balances. Overpaid purchases count as zero.
func TotalPayable(purchases []domain.Purchase) int64 {
	var total int64
	for _, purchase := range purchases {
		if balance := Balance(purchase); balance > 0 {
			total += balance
		}
	}
	return total
}

// DerivedStatus is the purchase status implied by its balance, whatever was stored.
func DerivedStatus(purchase domain.Purchase) string {
	if Balance(purchase) <= 0 {
		return domain.PurchaseStatusPaid
	}
	return domain.PurchaseStatusUnpaid
}

func StatusLabel(purchase domain.Purchase) string {
	balance := Balance(purchase)
	if balance <= 0 {
		return "Fully Paid"
	}
	return "Ksh " + money.Whole(balance) + " Due"
}

func View(purchase domain.Purchase) domain.PurchaseView {
	purchase.Status = DerivedStatus(purchase)
	if purchase.TotalAmount == 0 {
		purchase.TotalAmount = purchase.Owed()
	}
	return domain.PurchaseView{
		Purchase: purchase,
		Paid:     TotalPaid(purchase),
		Balance:  Balance(purchase),
		Label:    StatusLabel(purchase),
	}
}

// RecordPayment returns a copy of the purchase with the payment appended.
// The stored status is left as it was.
func RecordPayment(purchase domain.Purchase, amount int64, id string, now time.Time) (domain.Purchase, error) {
	if amount < 1 {
		return purchase, domain.NewValidationError("amount", "payment amount must be greater than zero")
	}
	if amount > Balance(purchase) {
		return purchase, domain.NewValidationError("amount", "payment exceeds remaining balance")
	}

	payments := make([]domain.Payment, 0, len(purchase.Payments)+1)
	payments = append(payments, purchase.Payments...)
	payments = append(payments, domain.Payment{
		ID:     id,
		Amount: amount,
		Date:   now.UTC().Format(time.RFC3339),
	})
	purchase.Payments = payments
	return purchase, nil
}
