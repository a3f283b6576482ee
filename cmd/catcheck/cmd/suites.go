package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/samvad-hq/catapi-contract/internal/config"
	"github.com/samvad-hq/catapi-contract/pkg/suites"
	"github.com/spf13/cobra"
)

var suitesCmd = &cobra.Command{
	Use:   "suites",
	Short: "Lists the configured suites",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		reg, err := suites.LoadOrDefault(cfg.SuitesFile)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTYPE\tAPI KEY\tENABLED\tKNOWN ISSUE")
		for _, s := range reg.All() {
			fmt.Fprintf(w, "%s\t%s\t%t\t%t\t%t\n", s.ID, s.Type, s.APIKey, s.EnabledValue(), s.KnownIssue)
		}
		return w.Flush()
	},
}
