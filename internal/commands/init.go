package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/moneta-dev/moneta/internal/config"
	"github.com/moneta-dev/moneta/internal/store"
)

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new moneta ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runInit(cmd.Context(), absDir)
		},
	}
}

func runInit(ctx context.Context, dir string) error {
	cfg := config.Default()

	if err := os.MkdirAll(filepath.Join(dir, cfg.Import.Dir, "processed"), 0o755); err != nil {
		return fmt.Errorf("creating import directory: %w", err)
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Create the database and seed the default category set.
	st, err := store.Open(filepath.Join(dir, cfg.Database.Path))
	if err != nil {
		return fmt.Errorf("creating ledger: %w", err)
	}
	defer st.Close()
	if err := st.SeedDefaultCategories(ctx); err != nil {
		return fmt.Errorf("seeding categories: %w", err)
	}

	fmt.Printf("Initialized moneta ledger at %s\n", dir)
	return nil
}
