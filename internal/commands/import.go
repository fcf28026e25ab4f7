package commands

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/myasset-dev/myasset/internal/classify"
	"github.com/myasset-dev/myasset/internal/importer"
	"github.com/myasset-dev/myasset/internal/importlog"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var (
		format string
		dryRun bool
		scan   bool
	)

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Import expense exports (.csv, .xlsx)",
		Long: `Import expense exports. The layout of each file is detected from its
columns unless --format names a parser (daily, messy, structured).
A file is imported completely or not at all.

With --scan, every file in <dir>/import is imported and then moved to
<dir>/import/processed.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if !scan && len(args) == 0 {
				return errors.New("requires at least one file, or --scan")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				return runImport(cmd, a, args, format, dryRun, scan)
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "parser to use instead of detection (daily, messy, structured)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and show transactions without storing them")
	cmd.Flags().BoolVar(&scan, "scan", false, "import every file in the import directory")

	return cmd
}

type importSource struct {
	path    string
	scanned bool
}

func runImport(cmd *cobra.Command, a *app, args []string, format string, dryRun, scan bool) error {
	var sources []importSource
	for _, p := range args {
		sources = append(sources, importSource{path: p})
	}
	if scan {
		files, err := importer.Scan(a.dir)
		if err != nil {
			return err
		}
		for _, f := range files {
			sources = append(sources, importSource{path: f.Path, scanned: true})
		}
		if len(files) == 0 {
			a.log.Info("no files to import", "dir", filepath.Join(a.dir, importer.ImportDir))
		}
	}

	out := cmd.OutOrStdout()
	for _, src := range sources {
		if dryRun {
			if err := previewImport(cmd, a, src.path, format); err != nil {
				return err
			}
			continue
		}

		res, err := a.ledger.ImportFile(cmd.Context(), src.path, format)
		entry := importlog.Entry{
			Timestamp: time.Now().UTC().Truncate(time.Second),
			File:      filepath.Base(src.path),
			Format:    res.Format,
			Count:     len(res.IDs),
		}
		if err != nil {
			entry.Error = err.Error()
		}
		if logErr := importlog.Append(a.dir, []importlog.Entry{entry}); logErr != nil {
			a.log.Warn("failed to write import log", "err", logErr)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Imported %d transactions from %s (%s)\n", len(res.IDs), filepath.Base(src.path), res.Format)
		if src.scanned {
			if err := importer.MarkProcessed(a.dir, filepath.Base(src.path)); err != nil {
				return err
			}
		}
	}
	return nil
}

func previewImport(cmd *cobra.Command, a *app, path, format string) error {
	txns, used, err := a.ledger.ParseFile(path, format)
	if err != nil {
		return fmt.Errorf("importing %s: %w", path, err)
	}
	rs, err := a.ledger.Rules()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s), not stored:\n", filepath.Base(path), used)
	renderTransactions(out, classify.ClassifyAll(txns, rs))
	return nil
}
