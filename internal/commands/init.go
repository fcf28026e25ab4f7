package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/myasset-dev/myasset/internal/config"
	"github.com/myasset-dev/myasset/internal/importer"
	"github.com/myasset-dev/myasset/internal/rules"
	"github.com/myasset-dev/myasset/internal/storage/sqlite"
)

func newInitCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := opts.dir
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(cmd, absDir)
		},
	}
}

// runInit creates the directory layout, config, empty rule file and
// database. Existing files are left alone.
func runInit(cmd *cobra.Command, dir string) error {
	dirs := []string{
		"logs",
		importer.ImportDir,
		filepath.Join(importer.ImportDir, "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if !exists(cfgPath) {
		if err := config.Save(cfgPath, config.Default()); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return err
	}

	rulesPath := cfg.RulesPath(dir)
	if !exists(rulesPath) {
		if err := rules.Save(rulesPath, rules.NewSet()); err != nil {
			return fmt.Errorf("writing rules: %w", err)
		}
	}

	store, err := sqlite.New(cmd.Context(), cfg.DatabasePath(dir))
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	if err := store.Close(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized myasset data directory at %s\n", dir)
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
