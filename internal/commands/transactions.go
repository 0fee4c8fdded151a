package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/moneta-dev/moneta/internal/model"
	"github.com/moneta-dev/moneta/internal/store"
)

func newTransactionsCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "List and categorize transactions",
	}
	cmd.AddCommand(newTransactionsListCommand(opts), newCategorizeCommand(opts))
	return cmd
}

func newTransactionsListCommand(opts *rootOptions) *cobra.Command {
	var accountID, categoryID, from, to string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			filter := store.TransactionFilter{AccountID: accountID, CategoryID: categoryID}
			if filter.From, err = parseDateFlag(from); err != nil {
				return err
			}
			if filter.To, err = parseDateFlag(to); err != nil {
				return err
			}

			txns, err := e.store.ListTransactions(cmd.Context(), filter)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tDESCRIPTION\tAMOUNT\tCATEGORY")
			for _, t := range txns {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.Date.Format("2006-01-02"), t.Description,
					t.Amount.StringFixed(2), t.CategoryID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "filter by account id")
	cmd.Flags().StringVar(&categoryID, "category", "", "filter by category id")
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")

	return cmd
}

func newCategorizeCommand(opts *rootOptions) *cobra.Command {
	var categoryID string

	cmd := &cobra.Command{
		Use:   "categorize <transaction-id>",
		Short: "Assign a category to a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			err = e.store.SetTransactionCategory(cmd.Context(), args[0], categoryID, model.CategorySourceManual, 1.0)
			if err != nil {
				return err
			}
			fmt.Printf("Categorized %s as %s\n", args[0], categoryID)
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryID, "category", "", "category id (required)")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

// parseDateFlag parses a YYYY-MM-DD flag value; empty means unset.
func parseDateFlag(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}
