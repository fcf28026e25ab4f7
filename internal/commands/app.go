package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/myasset-dev/myasset/internal/categories"
	"github.com/myasset-dev/myasset/internal/config"
	"github.com/myasset-dev/myasset/internal/ledger"
	"github.com/myasset-dev/myasset/internal/logging"
	"github.com/myasset-dev/myasset/internal/storage/sqlite"
)

// app is everything a subcommand needs, opened from the data directory.
type app struct {
	dir    string
	cfg    *config.Config
	log    *slog.Logger
	store  *sqlite.Store
	ledger *ledger.Service
}

func openApp(cmd *cobra.Command, opts *rootOptions) (*app, error) {
	dir, err := filepath.Abs(opts.dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	logger := logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level)

	dbPath := cfg.DatabasePath(dir)
	store, err := sqlite.New(cmd.Context(), dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dbPath, err)
	}
	logger.Debug("opened database", "path", dbPath)

	return &app{
		dir:    dir,
		cfg:    cfg,
		log:    logger,
		store:  store,
		ledger: ledger.NewService(store, cfg.RulesPath(dir), categories.DefaultSet(), logger),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// withApp opens the app for the duration of fn.
func withApp(cmd *cobra.Command, opts *rootOptions, fn func(a *app) error) error {
	a, err := openApp(cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
