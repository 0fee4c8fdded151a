package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/moneta-dev/moneta/internal/budget"
	"github.com/moneta-dev/moneta/internal/model"
)

func newBudgetCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage budgets and review spending",
	}
	cmd.AddCommand(
		newBudgetCreateCommand(opts),
		newBudgetListCommand(opts),
		newBudgetAllocateCommand(opts),
		newBudgetStatusCommand(opts),
		newBudgetVsActualCommand(opts),
		newBudgetCloseCommand(opts),
	)
	return cmd
}

func newBudgetCreateCommand(opts *rootOptions) *cobra.Command {
	var name, periodType string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a budget anchored to today",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			b := model.Budget{
				ID:         uuid.NewString(),
				Name:       name,
				PeriodType: model.PeriodType(periodType),
				StartDate:  time.Now(),
				CreatedAt:  time.Now(),
			}
			if err := e.store.CreateBudget(cmd.Context(), b); err != nil {
				return err
			}
			fmt.Printf("Created %s budget %s (%s)\n", b.PeriodType, b.Name, b.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "budget name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&periodType, "period", string(model.PeriodMonthly), "monthly, weekly, or yearly")

	return cmd
}

func newBudgetListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List budgets",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			budgets, err := e.store.ListBudgets(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPERIOD\tANCHOR")
			for _, b := range budgets {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					b.ID, b.Name, b.PeriodType, b.StartDate.Format("2006-01-02"))
			}
			return w.Flush()
		},
	}
}

func newBudgetAllocateCommand(opts *rootOptions) *cobra.Command {
	var categoryID, amount string
	var rollover bool

	cmd := &cobra.Command{
		Use:   "allocate <budget-id>",
		Short: "Set a category's planned amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			err = e.store.UpsertAllocation(cmd.Context(), model.BudgetAllocation{
				BudgetID:   args[0],
				CategoryID: categoryID,
				Amount:     amt,
				Rollover:   rollover,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Allocated %s to category %s\n", amt.StringFixed(2), categoryID)
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryID, "category", "", "category id (required)")
	_ = cmd.MarkFlagRequired("category")
	cmd.Flags().StringVar(&amount, "amount", "", "planned amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().BoolVar(&rollover, "rollover", false, "carry unspent balance into the next period")

	return cmd
}

func newBudgetStatusCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status <budget-id>",
		Short: "Show the current period's plan versus actuals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			svc := budget.NewService(e.store, e.log)
			st, err := svc.Status(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("%s: %s to %s\n", st.BudgetName,
				st.PeriodStart.Format("2006-01-02"), st.PeriodEnd.Format("2006-01-02"))
			printActuals(st.Categories)
			fmt.Printf("\nTotal: %s spent of %s (%s remaining)\n",
				st.TotalSpent.StringFixed(2), st.TotalAllocated.StringFixed(2), st.TotalRemaining.StringFixed(2))
			if len(st.OverBudget) > 0 {
				fmt.Printf("Over budget: %v\n", st.OverBudget)
			}
			if len(st.Warnings) > 0 {
				fmt.Printf("Approaching limit: %v\n", st.Warnings)
			}
			fmt.Printf("%d days left, %s/day to stay on budget\n",
				st.DaysRemaining, st.DailyBudgetRemaining.StringFixed(2))
			return nil
		},
	}
}

func newBudgetVsActualCommand(opts *rootOptions) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "vs-actual <budget-id>",
		Short: "Compare plan to actuals over a date range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			from, err := parseDateFlag(start)
			if err != nil {
				return err
			}
			to, err := parseDateFlag(end)
			if err != nil {
				return err
			}

			svc := budget.NewService(e.store, e.log)
			actuals, err := svc.VsActual(cmd.Context(), args[0], from, to)
			if err != nil {
				return err
			}
			printActuals(actuals)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "period start (YYYY-MM-DD, required)")
	_ = cmd.MarkFlagRequired("start")
	cmd.Flags().StringVar(&end, "end", "", "period end (YYYY-MM-DD, required)")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newBudgetCloseCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "close <budget-id>",
		Short: "Close the budget's current period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			svc := budget.NewService(e.store, e.log)
			p, err := svc.GetOrCreatePeriod(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := e.store.ClosePeriod(cmd.Context(), p.ID); err != nil {
				return err
			}
			fmt.Printf("Closed period %s to %s\n",
				p.StartDate.Format("2006-01-02"), p.EndDate.Format("2006-01-02"))
			return nil
		},
	}
}

func printActuals(actuals []budget.CategoryActual) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tALLOCATED\tROLLOVER\tSPENT\tREMAINING\tUSED\tSTATUS")
	for _, c := range actuals {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s%%\t%s\n",
			c.CategoryName, c.Allocated.StringFixed(2), c.Rollover.StringFixed(2),
			c.Spent.StringFixed(2), c.Remaining.StringFixed(2),
			c.PercentUsed.StringFixed(2), c.Status)
	}
	w.Flush()
}
