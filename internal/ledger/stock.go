package ledger

import "github.com/Jamlick126/invoice-manager/internal/domain"

// RemainingStock subtracts every sold quantity of the product across all
// invoices from its initial stock.
func RemainingStock(product domain.Product, invoices []domain.Invoice) domain.StockLevel {
	sold := 0
	for _, invoice := range invoices {
		for _, item := range invoice.Items {
			if !soldAs(item, product) || item.Quantity < 1 {
				continue
			}
			sold += int(item.Quantity)
		}
	}

	initial := int(product.InitialStock)
	remaining := initial - sold
	tracked := product.Tracked()
	return domain.StockLevel{
		ProductID: product.ID,
		Name:      product.Name,
		Initial:   initial,
		Remaining: remaining,
		Tracked:   tracked,
		LowStock:  tracked && remaining < domain.LowStockThreshold,
	}
}

// Lines written without a product id only carry the product name.
func soldAs(item domain.LineItem, product domain.Product) bool {
	if item.ProductID != "" {
		return item.ProductID == product.ID
	}
	return item.Name == product.Name
}

func Inventory(products []domain.Product, invoices []domain.Invoice) []domain.StockLevel {
	levels := make([]domain.StockLevel, 0, len(products))
	for _, product := range products {
		levels = append(levels, RemainingStock(product, invoices))
	}
	return levels
}

func LowStockItems(products []domain.Product, invoices []domain.Invoice) []domain.StockLevel {
	low := make([]domain.StockLevel, 0, 4)
	for _, product := range products {
		level := RemainingStock(product, invoices)
		if level.LowStock {
			low = append(low, level)
		}
	}
	return low
}

// Restock adds units to the product's initial stock.
func Restock(product domain.Product, units int64) (domain.Product, error) {
	if units < 1 {
		return product, domain.NewValidationError("units", "restock units must be a positive whole number")
	}
	product.InitialStock += domain.Count(units)
	return product, nil
}
