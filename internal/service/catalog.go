package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Jamlick126/invoice-manager/internal/domain"
	"github.com/Jamlick126/invoice-manager/internal/ledger"
	"github.com/Jamlick126/invoice-manager/internal/xid"
)

func (s *Service) ListClients(_ context.Context) []domain.Client {
	return s.state.Clients()
}

func (s *Service) AddClient(ctx context.Context, req domain.ClientCreateRequest) (domain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Client{}, domain.NewValidationError("name", "client name is required")
	}

	client := domain.Client{ID: xid.New("client"), Name: name}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		client.Phone = &phone
	}
	s.state.AddClient(ctx, client)
	return client, nil
}

// DeleteClient is idempotent: an unknown id is a no-op.
func (s *Service) DeleteClient(ctx context.Context, id string) {
	if !s.state.DeleteClient(ctx, id) {
		s.logger.Debug("delete ignored, client not found", zap.String("id", id))
	}
}

func (s *Service) ListProducts(_ context.Context) []domain.Product {
	return s.state.Products()
}

func (s *Service) AddProduct(ctx context.Context, req domain.ProductCreateRequest) (domain.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Product{}, domain.NewValidationError("name", "product name is required")
	}

	rawPrice := strings.TrimSpace(req.Price.String())
	if rawPrice == "" {
		return domain.Product{}, domain.NewValidationError("price", "price is required")
	}
	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		return domain.Product{}, domain.NewValidationError("price", "price must be a number")
	}
	if price.IsNegative() {
		return domain.Product{}, domain.NewValidationError("price", "price must not be negative")
	}

	stock := 0
	if rawStock := strings.TrimSpace(req.InitialStock.String()); rawStock != "" {
		stock, err = strconv.Atoi(rawStock)
		if err != nil || stock < 0 {
			return domain.Product{}, domain.NewValidationError("initialStock", "initialStock must be a whole number of zero or more")
		}
	}

	product := domain.Product{
		ID:           xid.New("prod"),
		Name:         name,
		Price:        price,
		InitialStock: domain.Count(stock),
	}
	s.state.AddProduct(ctx, product)
	return product, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) {
	if !s.state.DeleteProduct(ctx, id) {
		s.logger.Debug("delete ignored, product not found", zap.String("id", id))
	}
}

// RestockProduct is the only writer of a product's stock after creation.
func (s *Service) RestockProduct(ctx context.Context, id string, req domain.RestockRequest) (domain.Product, error) {
	units, err := ledger.ParsePositiveWhole("units", req.Units.String())
	if err != nil {
		return domain.Product{}, err
	}

	return s.state.UpdateProduct(ctx, id, func(product domain.Product) (domain.Product, error) {
		return ledger.Restock(product, units)
	})
}

func (s *Service) Inventory(_ context.Context) []domain.StockLevel {
	snap := s.state.Snapshot()
	return ledger.Inventory(snap.Products, snap.Invoices)
}
