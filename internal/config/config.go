package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
)

type Config struct {
	Port                    string
	AllowedOrigin           string
	StorageBackend          string
	DataDir                 string
	DatabaseURL             string
	RedisAddr               string
	RedisPassword           string
	RedisDB                 int
	SnapshotCacheTTLSeconds int
	MongoURI                string
	MongoDBName             string
	SeedSampleProduct       bool
	AuthSecret              string
	OwnerPassword           string
	AccessTokenTTLMinutes   int
	PDFRendererURL          string
	LowStockCron            string
	LogLevel                string
}

// Load reads the environment, first applying envFile (or ./.env when empty)
// if it exists. Invalid numbers fall back to their defaults.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil || redisDB < 0 {
		redisDB = 0
	}
	cacheTTL, err := strconv.Atoi(getEnv("SNAPSHOT_CACHE_TTL_SECONDS", "60"))
	if err != nil || cacheTTL < 1 {
		cacheTTL = 60
	}
	tokenTTL, err := strconv.Atoi(getEnv("ACCESS_TOKEN_TTL_MINUTES", "480"))
	if err != nil || tokenTTL < 1 {
		tokenTTL = 480
	}
	seed, err := strconv.ParseBool(getEnv("SEED_SAMPLE_PRODUCT", "false"))
	if err != nil {
		seed = false
	}
	lowStockCron, ok := os.LookupEnv("LOW_STOCK_CRON")
	if !ok {
		lowStockCron = "0 8 * * *"
	}

	cfg := Config{
		Port:                    getEnv("PORT", "8080"),
		AllowedOrigin:           getEnv("ALLOWED_ORIGIN", "*"),
		StorageBackend:          strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile)),
		DataDir:                 getEnv("DATA_DIR", "./data"),
		DatabaseURL:             os.Getenv("DATABASE_URL"),
		RedisAddr:               os.Getenv("REDIS_ADDR"),
		RedisPassword:           os.Getenv("REDIS_PASSWORD"),
		RedisDB:                 redisDB,
		SnapshotCacheTTLSeconds: cacheTTL,
		MongoURI:                os.Getenv("MONGODB_URI"),
		MongoDBName:             getEnv("MONGODB_DB_NAME", "invoice_manager"),
		SeedSampleProduct:       seed,
		AuthSecret:              strings.TrimSpace(os.Getenv("AUTH_SECRET")),
		OwnerPassword:           strings.TrimSpace(os.Getenv("OWNER_PASSWORD")),
		AccessTokenTTLMinutes:   tokenTTL,
		PDFRendererURL:          strings.TrimRight(os.Getenv("PDF_RENDERER_URL"), "/"),
		LowStockCron:            strings.TrimSpace(lowStockCron),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the selected storage backend has what it needs.
func (c Config) Validate() error {
	switch c.StorageBackend {
	case BackendFile:
		if strings.TrimSpace(c.DataDir) == "" {
			return errors.New("DATA_DIR must be provided for the file backend")
		}
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL must be provided for the postgres backend")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return errors.New("REDIS_ADDR must be provided for the redis backend")
		}
	case BackendMongo:
		if c.MongoURI == "" {
			return errors.New("MONGODB_URI must be provided for the mongo backend")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.StorageBackend)
	}
	return nil
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

func (c Config) AuthEnabled() bool {
	return c.AuthSecret != "" && c.OwnerPassword != ""
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
