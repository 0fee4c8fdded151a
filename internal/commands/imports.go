package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newImportsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "imports",
		Short: "Show the import audit log",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			recs, err := e.store.ListImports(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tFILE\tPROFILE\tROWS\tIMPORTED\tSKIPPED")
			for _, r := range recs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\n",
					r.CreatedAt.Format("2006-01-02 15:04"), r.Filename, r.ProfileID,
					r.TotalRows, r.Imported, r.Skipped)
			}
			return w.Flush()
		},
	}
}
