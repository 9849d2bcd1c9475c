package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/cards10e/laquiniela247/internal/factory"
	redisstorage "github.com/cards10e/laquiniela247/internal/storage/redis"
)

var cfg *Config

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "quiniela",
		Short: "Administrative tool for the quiniela platform",
		Long: `quiniela is an administrative tool that operates directly on the
platform's storage backend.

It covers operator maintenance: the user directory report, credential
resets, and the purge operations that remove weeks and games together
with their dependent bets.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.StorageType, "storage", cfg.StorageType, "Storage backend: memory, redis, postgres (env: QUINIELA_STORAGE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newUsersCmd())
	rootCmd.AddCommand(newResetPasswordCmd())
	rootCmd.AddCommand(newPurgeWeekCmd())
	rootCmd.AddCommand(newPurgeGamesCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// openApp wires the application against the configured storage backend.
// Callers must invoke the returned closer on every exit path so the
// storage connection is always released.
func openApp() (*factory.App, func(), error) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	if cfg.Verbose {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	factoryCfg := factory.Config{
		Logger:      logger,
		StorageType: cfg.StorageType,
		PostgresDSN: cfg.PostgresDSN,
	}
	if cfg.StorageType == factory.StorageTypeRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(factoryCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("opening storage: %w", err)
	}

	closer := func() {
		if err := app.Storage.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: closing storage: %s\n", err)
		}
	}
	return app, closer, nil
}
