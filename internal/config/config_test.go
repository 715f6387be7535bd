package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDoesNotInjectWeakAuthDefaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", "")
	t.Setenv("OWNER_PASSWORD", "")
	t.Setenv("STORAGE_BACKEND", "memory")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.AuthSecret != "" || cfg.OwnerPassword != "" {
		t.Fatalf("expected empty auth settings when unset, got %q/%q", cfg.AuthSecret, cfg.OwnerPassword)
	}
	if cfg.AuthEnabled() {
		t.Fatalf("auth must be disabled without a secret and password")
	}
}

func TestLoadFallsBackOnInvalidNumbers(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("SNAPSHOT_CACHE_TTL_SECONDS", "soon")
	t.Setenv("ACCESS_TOKEN_TTL_MINUTES", "-5")
	t.Setenv("REDIS_DB", "x")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SnapshotCacheTTLSeconds != 60 || cfg.AccessTokenTTLMinutes != 480 || cfg.RedisDB != 0 {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadReadsEnvFile(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("LOW_STOCK_CRON", "")
	os.Unsetenv("STORAGE_BACKEND")
	os.Unsetenv("DATA_DIR")
	os.Unsetenv("LOW_STOCK_CRON")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("STORAGE_BACKEND=file\nDATA_DIR=/tmp/ledger\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.StorageBackend != BackendFile || cfg.DataDir != "/tmp/ledger" {
		t.Fatalf("expected env file values, got %+v", cfg)
	}
	if cfg.LowStockCron != "0 8 * * *" {
		t.Fatalf("expected default cron, got %q", cfg.LowStockCron)
	}
}

func TestValidateRequiresBackendSettings(t *testing.T) {
	cases := []Config{
		{StorageBackend: BackendPostgres},
		{StorageBackend: BackendRedis},
		{StorageBackend: BackendMongo},
		{StorageBackend: BackendFile},
		{StorageBackend: "sqlite"},
	}
	for _, cfg := range cases {
		if err := cfg.Validate(); err == nil {
			t.Fatalf("expected validation error for %+v", cfg)
		}
	}
	if err := (Config{StorageBackend: BackendMemory}).Validate(); err != nil {
		t.Fatalf("memory backend needs no settings: %v", err)
	}
}
