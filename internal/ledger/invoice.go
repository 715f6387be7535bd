package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Jamlick126/invoice-manager/internal/domain"
	"github.com/Jamlick126/invoice-manager/internal/xid"
)

const longDateLayout = "Monday, 2 January 2006"

// Cart is an invoice under composition. It is discarded once the invoice is saved.
type Cart struct {
	lines []domain.LineItem
}

func NewCart() *Cart {
	return &Cart{lines: make([]domain.LineItem, 0, 8)}
}

// AddItem bumps the quantity of a product already in the cart or appends a
// new line for it with quantity 1.
func (c *Cart) AddItem(product domain.Product) {
	c.AddQuantity(product, 1)
}

// AddQuantity is AddItem repeated quantity times. Non-positive quantities are ignored.
func (c *Cart) AddQuantity(product domain.Product, quantity int) {
	if quantity < 1 {
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == product.ID {
			c.lines[i].Quantity += domain.Count(quantity)
			return
		}
	}

	c.lines = append(c.lines, domain.LineItem{
		LineID:    xid.New("line"),
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  domain.Count(quantity),
	})
}

// RemoveItem decrements the product's line, dropping it at zero. Unknown ids are ignored.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.lines {
		if c.lines[i].ProductID != productID {
			continue
		}
		if c.lines[i].Quantity > 1 {
			c.lines[i].Quantity--
			return
		}
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return
	}
}

func (c *Cart) Lines() []domain.LineItem {
	out := make([]domain.LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Total() decimal.Decimal {
	return InvoiceTotal(c.lines)
}

func InvoiceTotal(items []domain.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// FinalizeInvoice freezes the cart into a pending invoice. Line prices and the
// total are copied, so later product edits do not reach the invoice.
func FinalizeInvoice(cart *Cart, clientName string, id string, now time.Time) (domain.Invoice, error) {
	if cart == nil || cart.Empty() {
		return domain.Invoice{}, domain.NewValidationError("items", "cart is empty")
	}

	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		clientName = domain.WalkInCustomer
	}

	items := cart.Lines()
	return domain.Invoice{
		ID:         id,
		ClientName: clientName,
		Items:      items,
		Total:      InvoiceTotal(items),
		Date:       now.Format(longDateLayout),
		Status:     domain.InvoiceStatusPending,
	}, nil
}

func ValidateInvoiceStatus(status string) error {
	switch status {
	case domain.InvoiceStatusPending, domain.InvoiceStatusPaid:
		return nil
	default:
		return domain.NewValidationError("status", "status must be Pending or Paid")
	}
}

// Summarize aggregates invoice totals. Paid is summed over Paid invoices only,
// so an unknown status lands in neither bucket.
func Summarize(invoices []domain.Invoice) domain.SalesSummary {
	summary := domain.SalesSummary{
		TotalSales:    decimal.Zero,
		PaidAmount:    decimal.Zero,
		PendingAmount: decimal.Zero,
	}
	for _, invoice := range invoices {
		summary.TotalSales = summary.TotalSales.Add(invoice.Total)
		switch invoice.EffectiveStatus() {
		case domain.InvoiceStatusPending:
			summary.PendingAmount = summary.PendingAmount.Add(invoice.Total)
		case domain.InvoiceStatusPaid:
			summary.PaidAmount = summary.PaidAmount.Add(invoice.Total)
		}
	}
	return summary
}
