package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/myasset-dev/myasset/internal/buildinfo"
)

// rootOptions holds flags shared by every subcommand.
type rootOptions struct {
	dir string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "myasset",
		Short:   "Personal expense import and classification",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.dir, "dir", ".", "data directory")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newImportCommand(opts),
		newAddCommand(opts),
		newListCommand(opts),
		newEditCommand(opts),
		newDeleteCommand(opts),
		newClearCommand(opts),
		newSplitCommand(opts),
		newSummaryCommand(opts),
		newRulesCommand(opts),
		newCategoriesCommand(),
		newExportCommand(opts),
		newHistoryCommand(opts),
	)
	return rootCmd
}
