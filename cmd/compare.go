package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var compareCmd = &cobra.Command{
	Use:   "compare ID [ID...]",
	Short: "Compare vehicles side by side",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		compare(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

func compare(cmd *cobra.Command, ids []string) {
	logger, config := setup()

	comparison := loadCatalog(config, logger).Compare(ids)
	if len(comparison.Cars) < len(ids) {
		logger.Warn("some vehicles were not found",
			zap.Strings("requested", ids),
			zap.Int("found", len(comparison.Cars)),
		)
	}

	if err := printJSON(cmd.OutOrStdout(), comparison); err != nil {
		logger.Fatal("writing comparison", zap.Error(err))
	}
}
