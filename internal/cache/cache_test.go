package cache

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Jamlick126/invoice-manager/internal/domain"
)

func TestSnapshotKeyTracksContent(t *testing.T) {
	invoices := []domain.Invoice{{ID: "i1", Total: decimal.NewFromInt(500), Status: domain.InvoiceStatusPending}}
	products := []domain.Product{{ID: "p1", Name: "Soda", InitialStock: 12}}

	first, err := SnapshotKey(invoices, products, nil)
	if err != nil {
		t.Fatalf("key: %v", err)
	}
	again, _ := SnapshotKey(invoices, products, nil)
	if first != again || !strings.HasPrefix(first, "dashboard:") {
		t.Fatalf("expected stable prefixed key, got %q and %q", first, again)
	}

	invoices[0].Status = domain.InvoiceStatusPaid
	changed, _ := SnapshotKey(invoices, products, nil)
	if changed == first {
		t.Fatalf("expected a status change to change the key")
	}
}

func TestNoopCacheAlwaysMisses(t *testing.T) {
	var c SnapshotCache = NoopSnapshotCache{}
	if err := c.Set(context.Background(), "k", &domain.Dashboard{}, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, found, err := c.Get(context.Background(), "k"); found || err != nil {
		t.Fatalf("expected miss, got found=%v err=%v", found, err)
	}
}

func TestRedisSnapshotCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("INVOICE_MANAGER_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set INVOICE_MANAGER_TEST_REDIS_ADDR to run redis cache integration test")
	}

	ctx := context.Background()
	c := NewRedisSnapshotCache(addr, os.Getenv("INVOICE_MANAGER_TEST_REDIS_PASSWORD"), 0)
	t.Cleanup(func() {
		_ = c.Close()
	})
	if err := c.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	key := "dashboard:it-" + time.Now().Format("150405.000000000")
	if _, found, err := c.Get(ctx, key); found || err != nil {
		t.Fatalf("expected miss, got found=%v err=%v", found, err)
	}

	snapshot := &domain.Dashboard{TotalSales: decimal.NewFromInt(800), AccountsPayable: 400, LowStockItems: []domain.StockLevel{}}
	if err := c.Set(ctx, key, snapshot, 5*time.Second); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, found, err := c.Get(ctx, key)
	if err != nil || !found {
		t.Fatalf("expected hit, got found=%v err=%v", found, err)
	}
	if !got.TotalSales.Equal(snapshot.TotalSales) || got.AccountsPayable != 400 {
		t.Fatalf("unexpected cached snapshot %+v", got)
	}
}
