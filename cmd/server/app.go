package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Jamlick126/invoice-manager/internal/cache"
	"github.com/Jamlick126/invoice-manager/internal/config"
	"github.com/Jamlick126/invoice-manager/internal/logger"
	"github.com/Jamlick126/invoice-manager/internal/report"
	"github.com/Jamlick126/invoice-manager/internal/service"
	"github.com/Jamlick126/invoice-manager/internal/store"
	filestore "github.com/Jamlick126/invoice-manager/internal/store/file"
	"github.com/Jamlick126/invoice-manager/internal/store/memory"
	mongostore "github.com/Jamlick126/invoice-manager/internal/store/mongo"
	pgstore "github.com/Jamlick126/invoice-manager/internal/store/postgres"
	redisstore "github.com/Jamlick126/invoice-manager/internal/store/redis"
)

// app is everything a subcommand needs, built from one Config.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	service *service.Service
	closers []func() error
}

func newApp(ctx context.Context, envFile string) (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: log}

	backend, err := a.openBackend(ctx)
	if err != nil {
		a.close()
		return nil, err
	}

	state, err := store.Open(ctx, backend, logger.Named(log, "store"), store.Options{SeedProducts: cfg.SeedSampleProduct})
	if err != nil {
		a.close()
		return nil, err
	}

	opts := service.Options{
		Snapshots:   a.openSnapshotCache(ctx),
		SnapshotTTL: time.Duration(cfg.SnapshotCacheTTLSeconds) * time.Second,
		Logger:      logger.Named(log, "service"),
	}
	if cfg.PDFRendererURL != "" {
		opts.PDF = report.NewGotenbergRenderer(cfg.PDFRendererURL, 30*time.Second)
		log.Info("pdf renderer configured", zap.String("url", cfg.PDFRendererURL))
	}
	a.service = service.New(state, opts)
	return a, nil
}

func (a *app) openBackend(ctx context.Context) (store.Backend, error) {
	switch a.cfg.StorageBackend {
	case config.BackendMemory:
		a.logger.Info("storage backend: memory")
		return memory.New(), nil
	case config.BackendFile:
		fs, err := filestore.New(a.cfg.DataDir)
		if err != nil {
			return nil, err
		}
		a.logger.Info("storage backend: file", zap.String("dir", a.cfg.DataDir))
		return fs, nil
	case config.BackendPostgres:
		pg, err := pgstore.New(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("postgres unavailable: %w", err)
		}
		a.closers = append(a.closers, pg.Close)
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, fmt.Errorf("postgres schema: %w", err)
		}
		a.logger.Info("storage backend: postgres")
		return pg, nil
	case config.BackendRedis:
		rs := redisstore.New(a.cfg.RedisAddr, a.cfg.RedisPassword, a.cfg.RedisDB)
		a.closers = append(a.closers, rs.Close)
		if err := rs.Ping(ctx); err != nil {
			return nil, fmt.Errorf("redis unavailable: %w", err)
		}
		a.logger.Info("storage backend: redis", zap.String("addr", a.cfg.RedisAddr))
		return rs, nil
	case config.BackendMongo:
		ms, err := mongostore.New(ctx, a.cfg.MongoURI, a.cfg.MongoDBName)
		if err != nil {
			return nil, fmt.Errorf("mongo unavailable: %w", err)
		}
		a.closers = append(a.closers, func() error {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return ms.Close(closeCtx)
		})
		a.logger.Info("storage backend: mongo", zap.String("db", a.cfg.MongoDBName))
		return ms, nil
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", a.cfg.StorageBackend)
	}
}

// openSnapshotCache falls back to no caching when Redis is not configured or
// not reachable.
func (a *app) openSnapshotCache(ctx context.Context) cache.SnapshotCache {
	if a.cfg.RedisAddr == "" {
		a.logger.Info("snapshot cache: noop")
		return cache.NoopSnapshotCache{}
	}

	redisCache := cache.NewRedisSnapshotCache(a.cfg.RedisAddr, a.cfg.RedisPassword, a.cfg.RedisDB)
	if err := redisCache.Ping(ctx); err != nil {
		a.logger.Warn("redis unavailable, using noop snapshot cache", zap.Error(err))
		_ = redisCache.Close()
		return cache.NoopSnapshotCache{}
	}
	a.closers = append(a.closers, redisCache.Close)
	a.logger.Info("snapshot cache: redis")
	return redisCache
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close error", zap.Error(err))
		}
	}
	a.closers = nil
	_ = a.logger.Sync()
}

func validateSecurityConfig(cfg config.Config) error {
	if cfg.AuthSecret == "" && cfg.OwnerPassword == "" {
		return nil
	}
	if cfg.AuthSecret == "" || cfg.OwnerPassword == "" {
		return errors.New("AUTH_SECRET and OWNER_PASSWORD must be set together")
	}
	if len(cfg.AuthSecret) < 32 {
		return errors.New("AUTH_SECRET must be at least 32 characters")
	}
	if len(cfg.OwnerPassword) < 8 {
		return errors.New("OWNER_PASSWORD must be at least 8 characters")
	}
	return nil
}
