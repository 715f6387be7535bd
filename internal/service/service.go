package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Jamlick126/invoice-manager/internal/cache"
	"github.com/Jamlick126/invoice-manager/internal/domain"
	"github.com/Jamlick126/invoice-manager/internal/ledger"
	"github.com/Jamlick126/invoice-manager/internal/report"
	"github.com/Jamlick126/invoice-manager/internal/store"
)

type Options struct {
	Snapshots   cache.SnapshotCache
	SnapshotTTL time.Duration
	// PDF may be nil, in which case only HTML receipts are available.
	PDF    report.PDFRenderer
	Logger *zap.Logger
	Now    func() time.Time
}

// Service is the set of entity operations the HTTP and CLI surfaces call.
// Stores are mutated only here; ledgers are recomputed on every read.
type Service struct {
	state       *store.State
	snapshots   cache.SnapshotCache
	snapshotTTL time.Duration
	pdf         report.PDFRenderer
	logger      *zap.Logger
	now         func() time.Time
}

func New(state *store.State, opts Options) *Service {
	if opts.Snapshots == nil {
		opts.Snapshots = cache.NoopSnapshotCache{}
	}
	if opts.SnapshotTTL <= 0 {
		opts.SnapshotTTL = time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Service{
		state:       state,
		snapshots:   opts.Snapshots,
		snapshotTTL: opts.SnapshotTTL,
		pdf:         opts.PDF,
		logger:      opts.Logger,
		now:         opts.Now,
	}
}

func (s *Service) Profile(_ context.Context) domain.Profile {
	return s.state.Profile()
}

// UpdateProfile changes only the fields present in the request.
func (s *Service) UpdateProfile(ctx context.Context, req domain.ProfileUpdateRequest) domain.Profile {
	profile := s.state.Profile()
	if req.BusinessName != nil {
		profile.BusinessName = strings.TrimSpace(*req.BusinessName)
	}
	if req.Phone != nil {
		profile.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.LogoURI != nil {
		profile.LogoURI = strings.TrimSpace(*req.LogoURI)
	}
	s.state.SetProfile(ctx, profile)
	return profile
}

// Dashboard composes the ledgers over one consistent snapshot. A cache
// failure only costs a recomputation.
func (s *Service) Dashboard(ctx context.Context) domain.Dashboard {
	snap := s.state.Snapshot()

	key, err := cache.SnapshotKey(snap.Invoices, snap.Products, snap.Purchases)
	if err != nil {
		s.logger.Warn("dashboard cache key failed", zap.Error(err))
		return ledger.Snapshot(snap.Invoices, snap.Products, snap.Purchases)
	}

	cached, found, err := s.snapshots.Get(ctx, key)
	if err != nil {
		s.logger.Warn("dashboard cache read failed", zap.String("key", key), zap.Error(err))
	}
	if found && cached != nil {
		return *cached
	}

	dashboard := ledger.Snapshot(snap.Invoices, snap.Products, snap.Purchases)
	if err := s.snapshots.Set(ctx, key, &dashboard, s.snapshotTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
	return dashboard
}

func (s *Service) LowStock(_ context.Context) []domain.StockLevel {
	snap := s.state.Snapshot()
	return ledger.LowStockItems(snap.Products, snap.Invoices)
}
