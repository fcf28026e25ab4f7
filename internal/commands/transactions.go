package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/myasset-dev/myasset/internal/ledger"
	"github.com/myasset-dev/myasset/internal/model"
)

func newAddCommand(opts *rootOptions) *cobra.Command {
	var (
		date     string
		store    string
		item     string
		amount   int64
		category string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense by hand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := time.Now()
			if date != "" {
				var err error
				if d, err = time.Parse(model.DateFormat, date); err != nil {
					return fmt.Errorf("parsing --date: %w", err)
				}
			}
			return withApp(cmd, opts, func(a *app) error {
				id, err := a.ledger.Add(cmd.Context(), ledger.AddParams{
					Date:     d,
					Store:    store,
					Item:     item,
					Amount:   amount,
					Category: model.Category(category),
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added transaction %d\n", id)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&store, "store", "", "store name")
	cmd.Flags().StringVar(&item, "item", "", "item (required)")
	cmd.Flags().Int64Var(&amount, "amount", 0, "amount in whole units (required)")
	cmd.Flags().StringVar(&category, "category", "", "pin a category")
	_ = cmd.MarkFlagRequired("item")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func newListCommand(opts *rootOptions) *cobra.Command {
	var f listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List classified transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts, func(a *app) error {
				list, err := a.ledger.List(cmd.Context(), f.filter())
				if err != nil {
					return err
				}
				renderTransactions(cmd.OutOrStdout(), list)
				return nil
			})
		},
	}
	f.register(cmd)
	return cmd
}

// listFlags are the filter flags shared by list and export.
type listFlags struct {
	month    string
	search   string
	category string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.month, "month", "", "only this month (YYYY-MM)")
	cmd.Flags().StringVar(&f.search, "search", "", "match store, item or amount")
	cmd.Flags().StringVar(&f.category, "category", "", "only this category")
}

func (f *listFlags) filter() ledger.Filter {
	return ledger.Filter{Month: f.month, Search: f.search, Category: model.Category(f.category)}
}

func newEditCommand(opts *rootOptions) *cobra.Command {
	var (
		item     string
		amount   int64
		category string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change item, amount or category of a transaction",
		Long: `Change item, amount or category of a transaction. Fields not given keep
their current value. The resulting category is pinned, so rules no
longer apply to the transaction.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, opts, func(a *app) error {
				cur, err := a.ledger.Get(cmd.Context(), id)
				if err != nil {
					return err
				}

				p := ledger.EditParams{Item: cur.DisplayItem, Amount: cur.Amount, Category: cur.Category}
				if cmd.Flags().Changed("item") {
					p.Item = item
				}
				if cmd.Flags().Changed("amount") {
					p.Amount = amount
				}
				if cmd.Flags().Changed("category") {
					p.Category = model.Category(category)
				}
				if err := a.ledger.Edit(cmd.Context(), id, p); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated transaction %d\n", id)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&item, "item", "", "new item")
	cmd.Flags().Int64Var(&amount, "amount", 0, "new amount")
	cmd.Flags().StringVar(&category, "category", "", "new category")
	return cmd
}

func newDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete transactions",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, len(args))
			for i, arg := range args {
				id, err := parseID(arg)
				if err != nil {
					return err
				}
				ids[i] = id
			}
			return withApp(cmd, opts, func(a *app) error {
				if err := a.ledger.Delete(cmd.Context(), ids...); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d transactions\n", len(ids))
				return nil
			})
		},
	}
}

func newClearCommand(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete every transaction without --yes")
			}
			return withApp(cmd, opts, func(a *app) error {
				n, err := a.ledger.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d transactions\n", n)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting everything")
	return cmd
}

func newSplitCommand(opts *rootOptions) *cobra.Command {
	var raw []string

	cmd := &cobra.Command{
		Use:   "split <id> --piece item:amount:category...",
		Short: "Split a transaction into categorized pieces",
		Long: `Replace a transaction with pieces that keep its date and store. The
piece amounts must add up to the original amount; pieces with amount 0
are ignored. Every piece is pinned to its category.`,
		Example: `  myasset split 42 --piece 衛生紙:600:日常用品 --piece 烤雞:400:飲食`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			pieces := make([]ledger.Piece, len(raw))
			for i, r := range raw {
				if pieces[i], err = parsePiece(r); err != nil {
					return err
				}
			}
			return withApp(cmd, opts, func(a *app) error {
				ids, err := a.ledger.Split(cmd.Context(), id, pieces)
				if err != nil {
					return err
				}
				strs := make([]string, len(ids))
				for i, id := range ids {
					strs[i] = strconv.FormatInt(id, 10)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Split transaction %d into %s\n", id, strings.Join(strs, ", "))
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&raw, "piece", nil, "a piece as item:amount:category (repeatable)")
	return cmd
}

// parsePiece reads "item:amount:category". The item may itself contain ':'.
func parsePiece(s string) (ledger.Piece, error) {
	last := strings.LastIndex(s, ":")
	if last < 0 {
		return ledger.Piece{}, fmt.Errorf("piece %q: want item:amount:category", s)
	}
	mid := strings.LastIndex(s[:last], ":")
	if mid < 0 {
		return ledger.Piece{}, fmt.Errorf("piece %q: want item:amount:category", s)
	}

	amount, err := strconv.ParseInt(strings.TrimSpace(s[mid+1:last]), 10, 64)
	if err != nil {
		return ledger.Piece{}, fmt.Errorf("piece %q: parsing amount: %w", s, err)
	}
	return ledger.Piece{
		Item:     s[:mid],
		Amount:   amount,
		Category: model.Category(strings.TrimSpace(s[last+1:])),
	}, nil
}
