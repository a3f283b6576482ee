package cmd

import (
	"fmt"

	"github.com/samvad-hq/catapi-contract/internal/app"
	"github.com/samvad-hq/catapi-contract/internal/logger"
	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Deletes images uploaded by previous runs",
	Long:  `Deletes every image recorded in the upload ledger. Requires CAT_API_KEY.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		defer logger.Close()

		janitor, err := app.NewJanitor(cfg, log)
		if err != nil {
			return err
		}
		defer janitor.Close()

		res, err := janitor.Run(cmd.Context())
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %d, already gone %d, failed %d\n", res.Deleted, res.Missing, res.Failed)
		return err
	},
}
