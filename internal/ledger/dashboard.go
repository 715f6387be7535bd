package ledger

import "github.com/Jamlick126/invoice-manager/internal/domain"

// Snapshot composes the three ledgers into the business overview.
func Snapshot(invoices []domain.Invoice, products []domain.Product, purchases []domain.Purchase) domain.Dashboard {
	sales := Summarize(invoices)
	return domain.Dashboard{
		TotalSales:      sales.TotalSales,
		PaidAmount:      sales.PaidAmount,
		PendingAmount:   sales.PendingAmount,
		AccountsPayable: TotalPayable(purchases),
		LowStockItems:   LowStockItems(products, invoices),
	}
}
