package cmd

import (
	"context"
	"fmt"

	"github.com/samvad-hq/catapi-contract/internal/config"
	"github.com/samvad-hq/catapi-contract/internal/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	SilenceUsage:  true,
	SilenceErrors: true,
	Use:           "catcheck [command]",
	Short:         "Contract checks for The Cat API",
	Long: `Runs contract checks against The Cat API and publishes the results.

Configuration comes from the environment and an optional .env file
(CAT_ENV_FILE overrides its location).`,
	Example: `  catcheck run
  catcheck run --suite breeds --suite images-upload
  catcheck suites
  catcheck cleanup

  # .env
  CAT_URL=https://api.thecatapi.com/v1
  CAT_API_KEY=live_xxx`,
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

var logLevel string

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(suitesCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")
}

// setup loads configuration and initializes the process logger.
func setup() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	log, err := logger.Init(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	logger.InfoObj("catcheck starting", "config", cfg.Redacted())
	return cfg, log, nil
}
