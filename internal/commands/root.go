// Package commands wires the moneta CLI.
package commands

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/moneta-dev/moneta/internal/buildinfo"
	"github.com/moneta-dev/moneta/internal/config"
	"github.com/moneta-dev/moneta/internal/logging"
	"github.com/moneta-dev/moneta/internal/store"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var cfgPath string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:     "moneta",
		Short:   "Personal finance ledger and budgeting",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", config.FileName, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	opts := &rootOptions{cfgPath: &cfgPath, verbose: &verbose}
	rootCmd.AddCommand(
		newInitCommand(),
		newAccountCommand(opts),
		newImportCommand(opts),
		newImportsCommand(opts),
		newProfilesCommand(),
		newDetectCommand(opts),
		newTransactionsCommand(opts),
		newBudgetCommand(opts),
		newSuggestCommand(opts),
		newRulesCommand(opts),
		newSnapshotCommand(opts),
	)

	return rootCmd
}

// rootOptions carries persistent flag values into subcommands.
type rootOptions struct {
	cfgPath *string
	verbose *bool
}

// env is the opened application state a subcommand runs against.
type env struct {
	cfg   *config.Config
	store *store.Store
	log   zerolog.Logger
}

// openEnv loads config and opens the ledger. Commands call this at
// RunE time, after flags are parsed.
func openEnv(opts *rootOptions) (*env, error) {
	cfg, err := config.Load(*opts.cfgPath)
	if err != nil {
		return nil, fmt.Errorf("loading config (run `moneta init` first): %w", err)
	}
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	return &env{
		cfg:   cfg,
		store: st,
		log:   logging.New(*opts.verbose),
	}, nil
}

func (e *env) close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn().Err(err).Msg("closing ledger")
	}
}
