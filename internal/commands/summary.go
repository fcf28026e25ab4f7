package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSummaryCommand(opts *rootOptions) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show spending totals by category and month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				s, err := a.ledger.Summary(cmd.Context(), month)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				scope := s.Month
				if scope == "" {
					scope = "all months"
				}
				fmt.Fprintf(out, "%s: total %d across %d transactions, %d unclassified\n", scope, s.Total, s.Count, s.Unclassified)
				if s.Count == 0 {
					return nil
				}

				rows := make([][]string, len(s.ByCategory))
				for i, c := range s.ByCategory {
					rows[i] = []string{
						string(c.Category),
						strconv.FormatInt(c.Total, 10),
						strconv.Itoa(c.Count),
						fmt.Sprintf("%.1f%%", percent(c.Total, s.Total)),
					}
				}
				renderTable(out, []string{"CATEGORY", "TOTAL", "COUNT", "SHARE"}, rows, 1, 2, 3)

				if len(s.ByMonth) > 1 {
					rows = rows[:0]
					for _, m := range s.ByMonth {
						rows = append(rows, []string{m.Month, strconv.FormatInt(m.Total, 10)})
					}
					renderTable(out, []string{"MONTH", "TOTAL"}, rows, 1)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "only this month (YYYY-MM)")
	return cmd
}

func percent(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) * 100 / float64(whole)
}
