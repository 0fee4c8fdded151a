package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/moneta-dev/moneta/internal/model"
)

func newSnapshotCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Record and review account balance snapshots",
	}
	cmd.AddCommand(newSnapshotSetCommand(opts), newSnapshotListCommand(opts))
	return cmd
}

func newSnapshotSetCommand(opts *rootOptions) *cobra.Command {
	var accountID, date, balance string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Record an account balance for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			day := time.Now()
			if date != "" {
				if day, err = parseDateFlag(date); err != nil {
					return err
				}
			}
			bal, err := decimal.NewFromString(balance)
			if err != nil {
				return fmt.Errorf("invalid balance %q: %w", balance, err)
			}

			err = e.store.UpsertSnapshot(cmd.Context(), model.BalanceSnapshot{
				AccountID: accountID,
				Date:      day,
				Balance:   bal,
				Source:    model.SnapshotManual,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Recorded %s for account %s on %s\n",
				bal.StringFixed(2), accountID, day.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account id (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&date, "date", "", "snapshot date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&balance, "balance", "", "balance amount (required)")
	_ = cmd.MarkFlagRequired("balance")

	return cmd
}

func newSnapshotListCommand(opts *rootOptions) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List an account's balance snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			snaps, err := e.store.ListSnapshots(cmd.Context(), accountID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tBALANCE\tSOURCE")
			for _, s := range snaps {
				fmt.Fprintf(w, "%s\t%s\t%s\n",
					s.Date.Format("2006-01-02"), s.Balance.StringFixed(2), s.Source)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account id (required)")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}
