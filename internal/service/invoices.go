package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Jamlick126/invoice-manager/internal/domain"
	"github.com/Jamlick126/invoice-manager/internal/ledger"
	"github.com/Jamlick126/invoice-manager/internal/report"
	"github.com/Jamlick126/invoice-manager/internal/xid"
)

const (
	ReceiptFormatHTML = "html"
	ReceiptFormatPDF  = "pdf"
)

// MaxLineQuantity bounds a single requested cart line.
const MaxLineQuantity = 1_000_000

func (s *Service) ListInvoices(_ context.Context) []domain.Invoice {
	return s.state.Invoices()
}

func (s *Service) GetInvoice(_ context.Context, id string) (domain.Invoice, error) {
	invoice, ok := s.state.Invoice(id)
	if !ok {
		return domain.Invoice{}, domain.ErrNotFound
	}
	return invoice, nil
}

// PreviewCart returns the running total of a composition without saving it.
func (s *Service) PreviewCart(_ context.Context, items []domain.CartLineRequest) (domain.CartPreview, error) {
	cart, err := s.buildCart(items)
	if err != nil {
		return domain.CartPreview{}, err
	}
	return domain.CartPreview{Items: cart.Lines(), Total: cart.Total()}, nil
}

func (s *Service) CreateInvoice(ctx context.Context, req domain.InvoiceCreateRequest) (domain.Invoice, error) {
	cart, err := s.buildCart(req.Items)
	if err != nil {
		return domain.Invoice{}, err
	}

	invoice, err := ledger.FinalizeInvoice(cart, req.ClientName, xid.New("inv"), s.now())
	if err != nil {
		return domain.Invoice{}, err
	}
	s.state.AddInvoice(ctx, invoice)
	return invoice, nil
}

func (s *Service) DeleteInvoice(ctx context.Context, id string) {
	if !s.state.DeleteInvoice(ctx, id) {
		s.logger.Debug("delete ignored, invoice not found", zap.String("id", id))
	}
}

func (s *Service) SetInvoiceStatus(ctx context.Context, id string, req domain.InvoiceStatusRequest) (domain.Invoice, error) {
	if err := ledger.ValidateInvoiceStatus(req.Status); err != nil {
		return domain.Invoice{}, err
	}
	return s.state.SetInvoiceStatus(ctx, id, req.Status)
}

// Receipt renders the printable receipt of a saved invoice. It returns the
// document and its content type.
func (s *Service) Receipt(ctx context.Context, id string, format string) ([]byte, string, error) {
	if format == "" {
		format = ReceiptFormatHTML
	}
	if format != ReceiptFormatHTML && format != ReceiptFormatPDF {
		return nil, "", domain.NewValidationError("format", "format must be html or pdf")
	}
	if format == ReceiptFormatPDF && s.pdf == nil {
		return nil, "", domain.NewValidationError("format", "pdf receipts are not enabled")
	}

	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, "", err
	}
	html, err := report.RenderHTML(report.BuildReceipt(invoice, s.state.Profile()))
	if err != nil {
		return nil, "", err
	}
	if format == ReceiptFormatHTML {
		return html, "text/html; charset=utf-8", nil
	}

	pdf, err := s.pdf.RenderPDF(ctx, html)
	if err != nil {
		return nil, "", fmt.Errorf("receipt %s: %w", id, err)
	}
	return pdf, "application/pdf", nil
}

// buildCart replays the requested lines through the cart so repeated
// product ids merge into one line, in first-seen order.
func (s *Service) buildCart(items []domain.CartLineRequest) (*ledger.Cart, error) {
	cart := ledger.NewCart()
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, domain.NewValidationError("quantity", "quantity must be at least 1")
		}
		if item.Quantity > MaxLineQuantity {
			return nil, domain.NewValidationError("quantity", fmt.Sprintf("quantity must be at most %d", MaxLineQuantity))
		}
		product, ok := s.state.Product(item.ProductID)
		if !ok {
			return nil, domain.NewValidationError("productId", fmt.Sprintf("unknown product %q", item.ProductID))
		}
		cart.AddQuantity(product, item.Quantity)
	}
	return cart, nil
}
