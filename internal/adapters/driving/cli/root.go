// Package cli implements the docket command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docket-cli/internal/adapters/driven/auth"
	configfile "github.com/custodia-labs/docket-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docket-cli/internal/adapters/driven/llm/gemini"
	"github.com/custodia-labs/docket-cli/internal/adapters/driven/storage/csvfile"
	"github.com/custodia-labs/docket-cli/internal/connectors/courtlistener"
	"github.com/custodia-labs/docket-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docket-cli/internal/core/services"
	"github.com/custodia-labs/docket-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services used by commands. Wired in initServices; tests inject fakes.
var (
	tracker driving.Tracker
	cfg     *configfile.Config
)

// Persistent flag values.
var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "docket",
	Short: "Track and classify Supreme Court opinions",
	Long: `Docket fetches recently filed Supreme Court opinions from CourtListener,
classifies each one with Gemini, and appends the results to a local CSV
dataset.

Runs are incremental: opinions already recorded in the dataset are never
analyzed twice, so the command is safe to schedule and to rerun after a
partial failure.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default ~/.docket/config.toml)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// effectiveConfigPath resolves the config file path, honouring --config.
func effectiveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return configfile.DefaultPath()
}

// initServices loads the configuration and wires the production service
// graph. Services already injected by tests are left alone.
func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	path, err := effectiveConfigPath()
	if err != nil {
		return err
	}
	loaded, err := configfile.Load(path)
	if err != nil {
		return err
	}
	cfg = loaded

	if runDataset != "" {
		cfg.Run.Dataset = runDataset
	}

	if tracker == nil {
		clAuth := auth.NewEnvTokenProvider(auth.CourtListenerTokenVar)
		geminiAuth := auth.NewEnvTokenProvider(auth.GoogleAPIKeyVar)
		// Presence only; credential values are never logged.
		logger.Debug("CourtListener token present: %v", clAuth.IsAuthenticated())
		logger.Debug("Gemini API key present: %v", geminiAuth.IsAuthenticated())

		source := courtlistener.NewClient(cfg.ClientConfig(), clAuth)
		classifier := gemini.NewClassifier(geminiAuth, cfg.ClassifierConfig())
		dataset := csvfile.NewStore(cfg.Run.Dataset)
		resolver := services.NewTextResolver(source, cfg.Run.MaxTextChars)
		tracker = services.NewTrackerService(source, classifier, dataset, resolver)
	}

	return nil
}
