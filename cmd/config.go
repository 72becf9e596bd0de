package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage drivers for the persistent slot store.
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageFile     = "file"
	StorageRedis    = "redis"
)

type Config struct {
	HTTPPort string

	StorageDriver string
	SQLitePath    string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	StateDir      string
	RedisAddr     string

	ReorderURL         string
	LabelReaderURL     string
	CollaboratorAPIKey string

	AutoOptimize      bool
	OptimizeDebounce  time.Duration
	RetentionSchedule string

	AssetOrigin    string
	CacheVersion   string
	OfflineStorage string
}

// LoadConfig reads .env when present, then the environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("error loading .env file: %w", err)
	}

	autoOptimize, err := strconv.ParseBool(envOr("AUTO_OPTIMIZE", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("AUTO_OPTIMIZE: %w", err)
	}
	debounce, err := time.ParseDuration(envOr("OPTIMIZE_DEBOUNCE", "800ms"))
	if err != nil {
		return Config{}, fmt.Errorf("OPTIMIZE_DEBOUNCE: %w", err)
	}

	cfg := Config{
		HTTPPort:           envOr("HTTP_PORT", "8080"),
		StorageDriver:      strings.ToLower(envOr("STORAGE_DRIVER", StorageSQLite)),
		SQLitePath:         envOr("SQLITE_PATH", "routekeeper.db"),
		DBHost:             os.Getenv("DB_HOST"),
		DBPort:             envOr("DB_PORT", "5432"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		DBSslMode:          os.Getenv("DB_SSLMODE"),
		StateDir:           envOr("STATE_DIR", "state"),
		RedisAddr:          envOr("REDIS_ADDR", "localhost:6379"),
		ReorderURL:         os.Getenv("REORDER_URL"),
		LabelReaderURL:     os.Getenv("LABEL_READER_URL"),
		CollaboratorAPIKey: os.Getenv("COLLABORATOR_API_KEY"),
		AutoOptimize:       autoOptimize,
		OptimizeDebounce:   debounce,
		RetentionSchedule:  envOr("RETENTION_SWEEP_SCHEDULE", "@every 15m"),
		AssetOrigin:        os.Getenv("ASSET_ORIGIN"),
		CacheVersion:       envOr("CACHE_VERSION", "v1"),
		OfflineStorage:     strings.ToLower(envOr("OFFLINE_STORAGE", "memory")),
	}

	switch cfg.StorageDriver {
	case StorageSQLite, StoragePostgres, StorageFile, StorageRedis:
	default:
		return Config{}, fmt.Errorf("STORAGE_DRIVER: unknown driver %q", cfg.StorageDriver)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}
