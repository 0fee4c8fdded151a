package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/moneta-dev/moneta/internal/suggest"
)

func newSuggestCommand(opts *rootOptions) *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest allocations from historical spending",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			svc := suggest.NewService(e.store, e.log)
			if e.cfg.Suggest.FloorAmount > 0 {
				svc.Floor = decimal.NewFromFloat(e.cfg.Suggest.FloorAmount)
			}
			if e.cfg.Suggest.RoundTo > 0 {
				svc.RoundTo = decimal.NewFromFloat(e.cfg.Suggest.RoundTo)
			}
			if months == 0 {
				months = e.cfg.Suggest.LookbackMonths
			}

			suggestions, err := svc.Suggest(cmd.Context(), months)
			if err != nil {
				return err
			}
			if len(suggestions) == 0 {
				fmt.Println("Not enough spending history to suggest allocations")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CATEGORY\tSUGGESTED\tAVERAGE\tBASED ON")
			for _, s := range suggestions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					s.CategoryName, s.SuggestedAmount.StringFixed(2),
					s.HistoricalAvg.StringFixed(2), s.BasedOn)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&months, "months", 0, "lookback window in complete months")

	return cmd
}
