package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/Jamlick126/invoice-manager/internal/domain"
)

// SnapshotCache memoizes dashboard snapshots by a hash of their inputs.
// A miss or an error only means the snapshot is recomputed.
type SnapshotCache interface {
	Get(ctx context.Context, key string) (*domain.Dashboard, bool, error)
	Set(ctx context.Context, key string, value *domain.Dashboard, ttl time.Duration) error
}

type NoopSnapshotCache struct{}

func (NoopSnapshotCache) Get(_ context.Context, _ string) (*domain.Dashboard, bool, error) {
	return nil, false, nil
}

func (NoopSnapshotCache) Set(_ context.Context, _ string, _ *domain.Dashboard, _ time.Duration) error {
	return nil
}

// SnapshotKey hashes the JSON encoding of the ledger inputs. Equal inputs give
// equal keys, so a cached snapshot is always the one that would be computed.
func SnapshotKey(invoices []domain.Invoice, products []domain.Product, purchases []domain.Purchase) (string, error) {
	payload, err := json.Marshal(struct {
		Invoices  []domain.Invoice  `json:"i"`
		Products  []domain.Product  `json:"p"`
		Purchases []domain.Purchase `json:"u"`
	}{invoices, products, purchases})
	if err != nil {
		return "", err
	}
	sum := sha1.Sum(payload)
	return "dashboard:" + hex.EncodeToString(sum[:]), nil
}
