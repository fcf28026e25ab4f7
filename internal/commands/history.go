package commands

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/myasset-dev/myasset/internal/importlog"
)

func newHistoryCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "Show past imports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(opts.dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			entries, err := importlog.Read(dir)
			if err != nil {
				return err
			}
			rows := make([][]string, len(entries))
			for i, e := range entries {
				status := "ok"
				if !e.OK() {
					status = e.Error
				}
				rows[i] = []string{
					e.Timestamp.Local().Format(time.DateTime),
					e.File,
					e.Format,
					strconv.Itoa(e.Count),
					status,
				}
			}
			renderTable(cmd.OutOrStdout(), []string{"TIME", "FILE", "FORMAT", "COUNT", "STATUS"}, rows, 3)
			return nil
		},
	}
}
