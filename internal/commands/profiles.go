package commands

import (
	"encoding/csv"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newProfilesCommand() *cobra.Command {
	var profilesPath string

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List known bank CSV profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := loadRegistry(profilesPath)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tDATE FORMAT")
			for _, p := range registry.All() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.ID, p.Name, p.DateFormat)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&profilesPath, "profiles", "", "custom bank profiles YAML (default built-in catalog)")

	return cmd
}

func newDetectCommand(opts *rootOptions) *cobra.Command {
	var profilesPath string

	cmd := &cobra.Command{
		Use:   "detect <file>",
		Short: "Detect which bank profile matches a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			r := csv.NewReader(f)
			r.FieldsPerRecord = -1
			r.TrimLeadingSpace = true
			headers, err := r.Read()
			if err != nil {
				return fmt.Errorf("reading header row: %w", err)
			}

			registry, err := loadRegistry(profilesPath)
			if err != nil {
				return err
			}
			match := registry.Detect(headers, e.cfg.Detect.MinConfidence)
			if match == nil {
				return fmt.Errorf("no profile matches %v", headers)
			}
			fmt.Printf("%s (%s), confidence %.2f\n", match.Profile.Name, match.Profile.ID, match.Confidence)
			return nil
		},
	}

	cmd.Flags().StringVar(&profilesPath, "profiles", "", "custom bank profiles YAML (default built-in catalog)")

	return cmd
}
