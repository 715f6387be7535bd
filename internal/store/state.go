package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Jamlick126/invoice-manager/internal/domain"
)

type Options struct {
	// SeedProducts adds a sample product when no product collection was ever saved.
	SeedProducts bool
}

// SampleProduct is seeded on first run when Options.SeedProducts is set.
var SampleProduct = domain.Product{
	ID:           "1",
	Name:         "KEG Black",
	Price:        decimal.NewFromInt(5800),
	InitialStock: 100,
}

type bundle struct {
	Invoices []domain.Invoice `json:"invoices"`
	Clients  []domain.Client  `json:"clients"`
	Products []domain.Product `json:"products"`
	Profile  domain.Profile   `json:"profile"`
}

// Snapshot is a consistent deep copy of every collection.
type Snapshot struct {
	Clients   []domain.Client
	Products  []domain.Product
	Invoices  []domain.Invoice
	Purchases []domain.Purchase
	Profile   domain.Profile
}

// State owns the entity collections. Each mutation replaces the in-memory
// collection and then persists the affected keys while holding the lock.
// A failed write is logged and not rolled back.
type State struct {
	mu      sync.RWMutex
	backend Backend
	logger  *zap.Logger
	opts    Options

	clients   []domain.Client
	products  []domain.Product
	invoices  []domain.Invoice
	purchases []domain.Purchase
	profile   domain.Profile
}

// Open loads every collection once. Missing or malformed keys read as empty
// and malformed rows are skipped. A backend read failure is returned and is
// fatal at startup.
func Open(ctx context.Context, backend Backend, logger *zap.Logger, opts Options) (*State, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &State{backend: backend, logger: logger, opts: opts}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads all keys. On a backend failure the current state is kept.
func (s *State) Reload(ctx context.Context) error {
	loaded, err := s.load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.clients = loaded.Clients
	s.products = loaded.Products
	s.invoices = loaded.Invoices
	s.purchases = loaded.Purchases
	s.profile = loaded.Profile
	s.mu.Unlock()
	return nil
}

func (s *State) load(ctx context.Context) (Snapshot, error) {
	var out Snapshot

	b, err := s.loadBundle(ctx)
	if err != nil {
		return out, err
	}
	clients, clientsFound, err := loadList[domain.Client](ctx, s, KeyClients)
	if err != nil {
		return out, err
	}
	products, productsFound, err := loadList[domain.Product](ctx, s, KeyProducts)
	if err != nil {
		return out, err
	}
	purchases, _, err := loadList[domain.Purchase](ctx, s, KeyPurchases)
	if err != nil {
		return out, err
	}

	switch {
	case clientsFound:
		out.Clients = clients
	case b != nil && b.Clients != nil:
		out.Clients = b.Clients
	default:
		out.Clients = []domain.Client{}
	}

	switch {
	case productsFound:
		out.Products = products
	case b != nil && b.Products != nil:
		out.Products = b.Products
	case s.opts.SeedProducts:
		out.Products = []domain.Product{SampleProduct}
	default:
		out.Products = []domain.Product{}
	}

	out.Invoices = []domain.Invoice{}
	if b != nil {
		if b.Invoices != nil {
			out.Invoices = b.Invoices
		}
		out.Profile = b.Profile
	}

	out.Purchases = purchases
	if out.Purchases == nil {
		out.Purchases = []domain.Purchase{}
	}
	return out, nil
}

// loadList reports found=false for a missing, null or malformed key so the
// caller can fall back to the bundle copy.
func loadList[T any](ctx context.Context, s *State, key string) ([]T, bool, error) {
	raw, found, err := s.backend.Load(ctx, key)
	if err != nil {
		return nil, false, &domain.PersistenceError{Op: "load", Key: key, Err: err}
	}
	if !found {
		return nil, false, nil
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		s.logger.Warn("malformed collection ignored", zap.String("key", key), zap.Error(err))
		return nil, false, nil
	}
	if rows == nil {
		return nil, false, nil
	}

	// A bad row is dropped on its own so the rest of the collection survives
	// the next save.
	items := make([]T, 0, len(rows))
	for i, row := range rows {
		var item T
		if err := json.Unmarshal(row, &item); err != nil {
			s.logger.Warn("malformed row skipped", zap.String("key", key), zap.Int("index", i), zap.Error(err))
			continue
		}
		items = append(items, item)
	}
	return items, true, nil
}

func (s *State) loadBundle(ctx context.Context) (*bundle, error) {
	raw, found, err := s.backend.Load(ctx, KeyBundle)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "load", Key: KeyBundle, Err: err}
	}
	if !found {
		return nil, nil
	}

	var b bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		s.logger.Warn("malformed collection ignored", zap.String("key", KeyBundle), zap.Error(err))
		return nil, nil
	}
	return &b, nil
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Clients:   cloneClients(s.clients),
		Products:  cloneProducts(s.products),
		Invoices:  cloneInvoices(s.invoices),
		Purchases: clonePurchases(s.purchases),
		Profile:   s.profile,
	}
}

func (s *State) Clients() []domain.Client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneClients(s.clients)
}

func (s *State) AddClient(ctx context.Context, client domain.Client) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients = append(cloneClients(s.clients), cloneClient(client))
	s.persistLocked(ctx, KeyClients, KeyBundle)
}

// DeleteClient reports whether a client was removed. Unknown ids are a no-op.
func (s *State) DeleteClient(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.Client, 0, len(s.clients))
	for _, client := range s.clients {
		if client.ID != id {
			kept = append(kept, cloneClient(client))
		}
	}
	if len(kept) == len(s.clients) {
		return false
	}
	s.clients = kept
	s.persistLocked(ctx, KeyClients, KeyBundle)
	return true
}

func (s *State) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.products)
}

func (s *State) Product(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, product := range s.products {
		if product.ID == id {
			return product, true
		}
	}
	return domain.Product{}, false
}

func (s *State) AddProduct(ctx context.Context, product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = append(cloneProducts(s.products), product)
	s.persistLocked(ctx, KeyProducts, KeyBundle)
}

func (s *State) DeleteProduct(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.Product, 0, len(s.products))
	for _, product := range s.products {
		if product.ID != id {
			kept = append(kept, product)
		}
	}
	if len(kept) == len(s.products) {
		return false
	}
	s.products = kept
	s.persistLocked(ctx, KeyProducts, KeyBundle)
	return true
}

// UpdateProduct applies mutate to a copy of the product. If mutate fails the
// collection is left untouched.
func (s *State) UpdateProduct(ctx context.Context, id string, mutate func(domain.Product) (domain.Product, error)) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, product := range s.products {
		if product.ID != id {
			continue
		}
		updated, err := mutate(product)
		if err != nil {
			return product, err
		}
		updated.ID = id
		next := cloneProducts(s.products)
		next[i] = updated
		s.products = next
		s.persistLocked(ctx, KeyProducts, KeyBundle)
		return updated, nil
	}
	return domain.Product{}, domain.ErrNotFound
}

func (s *State) Invoices() []domain.Invoice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneInvoices(s.invoices)
}

func (s *State) Invoice(id string) (domain.Invoice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, invoice := range s.invoices {
		if invoice.ID == id {
			return cloneInvoice(invoice), true
		}
	}
	return domain.Invoice{}, false
}

func (s *State) AddInvoice(ctx context.Context, invoice domain.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoices = append(cloneInvoices(s.invoices), cloneInvoice(invoice))
	s.persistLocked(ctx, KeyBundle)
}

func (s *State) DeleteInvoice(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.Invoice, 0, len(s.invoices))
	for _, invoice := range s.invoices {
		if invoice.ID != id {
			kept = append(kept, cloneInvoice(invoice))
		}
	}
	if len(kept) == len(s.invoices) {
		return false
	}
	s.invoices = kept
	s.persistLocked(ctx, KeyBundle)
	return true
}

// SetInvoiceStatus is the only change an invoice accepts after it is saved.
func (s *State) SetInvoiceStatus(ctx context.Context, id string, status string) (domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, invoice := range s.invoices {
		if invoice.ID != id {
			continue
		}
		next := cloneInvoices(s.invoices)
		next[i].Status = status
		s.invoices = next
		s.persistLocked(ctx, KeyBundle)
		return cloneInvoice(next[i]), nil
	}
	return domain.Invoice{}, domain.ErrNotFound
}

func (s *State) Purchases() []domain.Purchase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clonePurchases(s.purchases)
}

// AddPurchase puts the newest purchase first.
func (s *State) AddPurchase(ctx context.Context, purchase domain.Purchase) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Purchase, 0, len(s.purchases)+1)
	next = append(next, clonePurchase(purchase))
	next = append(next, clonePurchases(s.purchases)...)
	s.purchases = next
	s.persistLocked(ctx, KeyPurchases)
}

func (s *State) DeletePurchase(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.Purchase, 0, len(s.purchases))
	for _, purchase := range s.purchases {
		if purchase.ID != id {
			kept = append(kept, clonePurchase(purchase))
		}
	}
	if len(kept) == len(s.purchases) {
		return false
	}
	s.purchases = kept
	s.persistLocked(ctx, KeyPurchases)
	return true
}

func (s *State) UpdatePurchase(ctx context.Context, id string, mutate func(domain.Purchase) (domain.Purchase, error)) (domain.Purchase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, purchase := range s.purchases {
		if purchase.ID != id {
			continue
		}
		updated, err := mutate(clonePurchase(purchase))
		if err != nil {
			return clonePurchase(purchase), err
		}
		updated.ID = id
		next := clonePurchases(s.purchases)
		next[i] = clonePurchase(updated)
		s.purchases = next
		s.persistLocked(ctx, KeyPurchases)
		return clonePurchase(updated), nil
	}
	return domain.Purchase{}, domain.ErrNotFound
}

func (s *State) Profile() domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *State) SetProfile(ctx context.Context, profile domain.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = profile
	s.persistLocked(ctx, KeyBundle)
}

func (s *State) persistLocked(ctx context.Context, keys ...string) {
	for _, key := range keys {
		var payload any
		switch key {
		case KeyClients:
			payload = s.clients
		case KeyProducts:
			payload = s.products
		case KeyPurchases:
			payload = s.purchases
		case KeyBundle:
			payload = bundle{
				Invoices: s.invoices,
				Clients:  s.clients,
				Products: s.products,
				Profile:  s.profile,
			}
		default:
			continue
		}

		raw, err := json.Marshal(payload)
		if err == nil {
			err = s.backend.Save(ctx, key, raw)
		}
		if err != nil {
			perr := &domain.PersistenceError{Op: "save", Key: key, Err: err}
			s.logger.Warn("persist failed, in-memory state kept",
				zap.String("op", perr.Op),
				zap.String("key", perr.Key),
				zap.Error(perr),
			)
		}
	}
}

func cloneClient(src domain.Client) domain.Client {
	dup := src
	if src.Phone != nil {
		phone := *src.Phone
		dup.Phone = &phone
	}
	return dup
}

func cloneClients(src []domain.Client) []domain.Client {
	out := make([]domain.Client, len(src))
	for i, client := range src {
		out[i] = cloneClient(client)
	}
	return out
}

func cloneProducts(src []domain.Product) []domain.Product {
	out := make([]domain.Product, len(src))
	copy(out, src)
	return out
}

func cloneInvoice(src domain.Invoice) domain.Invoice {
	dup := src
	items := make([]domain.LineItem, len(src.Items))
	copy(items, src.Items)
	dup.Items = items
	return dup
}

func cloneInvoices(src []domain.Invoice) []domain.Invoice {
	out := make([]domain.Invoice, len(src))
	for i, invoice := range src {
		out[i] = cloneInvoice(invoice)
	}
	return out
}

func clonePurchase(src domain.Purchase) domain.Purchase {
	dup := src
	payments := make([]domain.Payment, len(src.Payments))
	copy(payments, src.Payments)
	dup.Payments = payments
	return dup
}

func clonePurchases(src []domain.Purchase) []domain.Purchase {
	out := make([]domain.Purchase, len(src))
	for i, purchase := range src {
		out[i] = clonePurchase(purchase)
	}
	return out
}
