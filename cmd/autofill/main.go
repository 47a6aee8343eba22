// Package main provides the autofill command line tool: platform detection,
// question extraction and classification, and cached answer generation for
// job application forms.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/autofill-core/internal/cache"
	"github.com/jonathan/autofill-core/internal/config"
	"github.com/jonathan/autofill-core/internal/logging"
	"github.com/jonathan/autofill-core/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath  string
	verbose     bool
	storageFlag string
	sqlitePath  string
	databaseURL string

	cfg    config.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "autofill",
	Short:         "Job application form recognition and answering",
	Long:          "autofill detects which applicant tracking system hosts a job application, extracts its questions into a platform-neutral form, classifies them, and answers them from a profile and a cached AI generator.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		l, err := logging.New(cfg.Verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "Path to JSON config file")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.StringVar(&storageFlag, "storage", "", "Storage backend: memory, sqlite or postgres")
	flags.StringVar(&sqlitePath, "sqlite-path", "", "SQLite database file")
	flags.StringVar(&databaseURL, "db-url", "", "PostgreSQL connection URL")
}

// loadConfig layers flags over the config file over the environment over
// built-in defaults.
func loadConfig(cmd *cobra.Command) error {
	var fileCfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		fileCfg = *loaded
	}

	if storageFlag != "" {
		fileCfg.StorageBackend = storageFlag
	}
	if sqlitePath != "" {
		fileCfg.SQLitePath = sqlitePath
	}
	if databaseURL != "" {
		fileCfg.DatabaseURL = databaseURL
	}
	if verbose {
		fileCfg.Verbose = true
	}

	fileCfg.FromEnv()
	cfg = fileCfg.MergeWithDefaults(config.Defaults())
	return cfg.Validate()
}

// openCache opens the configured store and wraps it in an answer cache.
// The caller closes the store.
func openCache(ctx context.Context) (storage.Store, *cache.Cache, error) {
	store, err := storage.Open(ctx, cfg.StorageConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return store, cache.New(store, cfg.CacheConfig(), logger), nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
