package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/cards10e/laquiniela247/internal/dependencies/clock"
	"github.com/cards10e/laquiniela247/internal/services/account"
	"github.com/cards10e/laquiniela247/internal/services/auth"
	"github.com/cards10e/laquiniela247/internal/services/maintenance"
	"github.com/cards10e/laquiniela247/internal/services/pool"
	"github.com/cards10e/laquiniela247/internal/storage"
	"github.com/cards10e/laquiniela247/internal/storage/memory"
	"github.com/cards10e/laquiniela247/internal/storage/postgres"
	redisstorage "github.com/cards10e/laquiniela247/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	AuthService       *auth.Service
	PoolController    *pool.Controller
	MaintenanceEngine *maintenance.Engine
	AccountService    *account.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresDSN is the Postgres connection string (required if StorageType is "postgres")
	PostgresDSN string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypePostgres:
		if cfg.PostgresDSN == "" {
			return nil, errors.New("PostgresDSN required when StorageType is postgres")
		}
		pgStore, err := postgres.New(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		store = pgStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'postgres'")
	}

	// Create external dependencies
	clk := clock.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, authCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, authCfg auth.Config, logger *slog.Logger) *App {
	// Create services
	authService := auth.New(store, clk, authCfg)
	poolController := pool.NewController(store, clk)
	maintenanceEngine := maintenance.New(store, logger)
	accountService := account.New(store, account.Config{HashCost: account.HashCostFromEnv()}, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		AuthService:       authService,
		PoolController:    poolController,
		MaintenanceEngine: maintenanceEngine,
		AccountService:    accountService,
	}
}
