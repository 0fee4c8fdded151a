package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/moneta-dev/moneta/internal/model"
)

func newRulesCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Manage categorization rules",
	}
	cmd.AddCommand(newRulesAddCommand(opts), newRulesListCommand(opts))
	return cmd
}

func newRulesAddCommand(opts *rootOptions) *cobra.Command {
	var pattern, matchType, categoryID string
	var priority int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a categorization rule",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			r := model.CategorizationRule{
				ID:         uuid.NewString(),
				Pattern:    pattern,
				MatchType:  model.MatchType(matchType),
				CategoryID: categoryID,
				Priority:   priority,
				Active:     true,
			}
			if err := e.store.CreateRule(cmd.Context(), r); err != nil {
				return err
			}
			fmt.Printf("Added rule %q -> %s\n", r.Pattern, r.CategoryID)
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "description pattern (required)")
	_ = cmd.MarkFlagRequired("pattern")
	cmd.Flags().StringVar(&matchType, "match", string(model.MatchContains), "contains, regex, or exact")
	cmd.Flags().StringVar(&categoryID, "category", "", "category id (required)")
	_ = cmd.MarkFlagRequired("category")
	cmd.Flags().IntVar(&priority, "priority", 0, "higher priority rules match first")

	return cmd
}

func newRulesListCommand(opts *rootOptions) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categorization rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			rules, err := e.store.ListRules(cmd.Context(), !all)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PRIORITY\tPATTERN\tMATCH\tCATEGORY\tACTIVE")
			for _, r := range rules {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n",
					r.Priority, r.Pattern, r.MatchType, r.CategoryID, r.Active)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include inactive rules")

	return cmd
}
