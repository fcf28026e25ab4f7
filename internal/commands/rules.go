package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/myasset-dev/myasset/internal/categories"
	"github.com/myasset-dev/myasset/internal/model"
)

func newRulesCommand(opts *rootOptions) *cobra.Command {
	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage keyword classification rules",
	}
	rulesCmd.AddCommand(
		newRulesListCommand(opts),
		newRulesSetCommand(opts),
		newRulesDeleteCommand(opts),
		newRulesSuggestCommand(opts),
	)
	return rulesCmd
}

func newRulesListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rules in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				rs, err := a.ledger.Rules()
				if err != nil {
					return err
				}
				var rows [][]string
				for i, r := range rs.Rules() {
					rows = append(rows, []string{strconv.Itoa(i + 1), r.Keyword, string(r.Category), r.Item})
				}
				renderTable(cmd.OutOrStdout(), []string{"#", "KEYWORD", "CATEGORY", "ITEM"}, rows, 0)
				return nil
			})
		},
	}
}

func newRulesSetCommand(opts *rootOptions) *cobra.Command {
	var item string

	cmd := &cobra.Command{
		Use:   "set <keyword> <category>",
		Short: "Add or replace the rule for a keyword",
		Long: `Add or replace the rule for a keyword. A transaction whose store or item
contains the keyword gets the category. With --item, a transaction with
no specific item shows that item instead.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				r := model.Rule{Keyword: args[0], Category: model.Category(args[1]), Item: item}
				if err := a.ledger.SetRule(r); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved rule %s -> %s\n", args[0], args[1])
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&item, "item", "", "item to show when none was recorded")
	return cmd
}

func newRulesDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <keyword>",
		Short: "Delete the rule for a keyword",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				ok, err := a.ledger.DeleteRule(args[0])
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no rule for keyword %q", args[0])
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted rule %s\n", args[0])
				return nil
			})
		},
	}
}

func newRulesSuggestCommand(opts *rootOptions) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest rule keywords for unclassified spending",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				suggestions, err := a.ledger.Suggestions(cmd.Context(), month)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(suggestions) == 0 {
					fmt.Fprintln(out, "Nothing unclassified")
					return nil
				}
				rows := make([][]string, len(suggestions))
				for i, s := range suggestions {
					rows[i] = []string{s.Keyword, string(s.Kind), strconv.FormatInt(s.Total, 10), strconv.Itoa(s.Count)}
				}
				renderTable(out, []string{"KEYWORD", "FROM", "TOTAL", "COUNT"}, rows, 2, 3)
				fmt.Fprintln(out, "Add one with: myasset rules set <keyword> <category>")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "only this month (YYYY-MM)")
	return cmd
}

func newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories rules and edits may use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range categories.DefaultSet().All() {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	}
}
