package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/moneta-dev/moneta/internal/model"
)

func newAccountCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage ledger accounts",
	}
	cmd.AddCommand(newAccountAddCommand(opts), newAccountListCommand(opts))
	return cmd
}

func newAccountAddCommand(opts *rootOptions) *cobra.Command {
	var name, institution, accountType string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			a := model.Account{
				ID:          uuid.NewString(),
				Name:        name,
				Institution: institution,
				Type:        model.AccountType(accountType),
			}
			if err := e.store.CreateAccount(cmd.Context(), a); err != nil {
				return err
			}
			fmt.Printf("Added account %s (%s)\n", a.Name, a.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "account name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&institution, "institution", "", "bank or broker name")
	cmd.Flags().StringVar(&accountType, "type", string(model.AccountTypeChecking), "checking, savings, credit, or brokerage")

	return cmd
}

func newAccountListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			accounts, err := e.store.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tINSTITUTION")
			for _, a := range accounts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Type, a.Institution)
			}
			return w.Flush()
		},
	}
}
