package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/myasset-dev/myasset/internal/export"
)

func newExportCommand(opts *rootOptions) *cobra.Command {
	var (
		f      listFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export classified transactions as CSV or XLSX",
		Long: `Export classified transactions. The output format follows the file
extension of --output (.xlsx or CSV); without --output, CSV goes to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				list, err := a.ledger.List(cmd.Context(), f.filter())
				if err != nil {
					return err
				}
				if output == "" {
					return export.WriteCSV(cmd.OutOrStdout(), list)
				}

				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				if err := export.Write(file, output, list); err != nil {
					file.Close()
					return err
				}
				if err := file.Close(); err != nil {
					return fmt.Errorf("closing %s: %w", output, err)
				}
				a.log.Info("exported transactions", "file", output, "count", len(list))
				return nil
			})
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.csv or .xlsx)")
	return cmd
}
