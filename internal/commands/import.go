package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/moneta-dev/moneta/internal/bankprofile"
	"github.com/moneta-dev/moneta/internal/importer"
	"github.com/moneta-dev/moneta/internal/ingest"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var profileID, accountID, profilesPath string
	var scan bool

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import bank CSV transactions",
		Long: `Import parses a bank CSV export, detects the bank profile from its
headers unless --profile is given, and writes new transactions to the
account. Rows already imported are skipped. With --scan, every CSV in
the configured import directory is imported and moved to processed/.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !scan && len(args) == 0 {
				return fmt.Errorf("a file argument or --scan is required")
			}

			e, err := openEnv(opts)
			if err != nil {
				return err
			}
			defer e.close()

			registry, err := loadRegistry(profilesPath)
			if err != nil {
				return err
			}
			pipeline := ingest.NewPipeline(registry, e.cfg.Detect.MinConfidence, e.cfg.Ingest.DropZeroAmounts)
			exec := importer.NewExecutor(e.store, e.log)

			if scan {
				return runScanImport(cmd.Context(), e, pipeline, exec, profileID, accountID)
			}
			return runFileImport(cmd.Context(), pipeline, exec, args[0], profileID, accountID)
		},
	}

	cmd.Flags().StringVar(&profileID, "profile", "", "bank profile id (skips detection)")
	cmd.Flags().StringVar(&accountID, "account", "", "target account id (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().BoolVar(&scan, "scan", false, "import every CSV in the import directory")
	cmd.Flags().StringVar(&profilesPath, "profiles", "", "custom bank profiles YAML (default built-in catalog)")

	return cmd
}

// loadRegistry loads the built-in profile catalog, or a user-supplied
// one when a path is given.
func loadRegistry(path string) (*bankprofile.Registry, error) {
	if path != "" {
		return bankprofile.LoadFromFile(path)
	}
	registry, err := bankprofile.LoadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("loading bank profiles: %w", err)
	}
	return registry, nil
}

func runFileImport(ctx context.Context, pipeline *ingest.Pipeline, exec *importer.Executor, path, profileID, accountID string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	result, err := pipeline.Parse(f, ingest.Options{ProfileID: profileID, AccountID: accountID})
	if err != nil {
		return err
	}
	printRowErrors(result.Errors)

	res, err := exec.Execute(ctx, path, result.Profile.ID, accountID, result.Transactions)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d imported, %d skipped (profile %s, %d rows)\n",
		path, res.Imported, res.Skipped, result.Profile.ID, result.TotalRows)
	return nil
}

func runScanImport(ctx context.Context, e *env, pipeline *ingest.Pipeline, exec *importer.Executor, profileID, accountID string) error {
	files, err := importer.Scan(e.cfg.Import.Dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("No CSV files in %s\n", e.cfg.Import.Dir)
		return nil
	}

	for _, file := range files {
		if err := runFileImport(ctx, pipeline, exec, file.Path, profileID, accountID); err != nil {
			return fmt.Errorf("%s: %w", file.Name, err)
		}
		if err := importer.MarkProcessed(e.cfg.Import.Dir, file.Name); err != nil {
			return err
		}
	}
	return nil
}

func printRowErrors(errs []string) {
	for _, msg := range errs {
		fmt.Fprintf(os.Stderr, "  skipped %s\n", msg)
	}
}
