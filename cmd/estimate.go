package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/carmatch/internal/ownership"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate ID",
	Short: "Estimate financing and yearly running costs of a vehicle",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		estimate(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(estimateCmd)

	estimateCmd.Flags().Float64("trade-in", 0, "trade-in value of the current vehicle")
	estimateCmd.Flags().Float64("down-payment", 0, "down payment")
	estimateCmd.Flags().Int("term", ownership.DefaultTermMonths, "loan term in months")
}

func estimate(cmd *cobra.Command, id string) {
	logger, config := setup()

	vehicle := loadCatalog(config, logger).FindByID(id)
	if vehicle == nil {
		logger.Fatal("vehicle not found", zap.String("id", id))
	}

	var financing ownership.Financing
	financing.TradeIn, _ = cmd.Flags().GetFloat64("trade-in")
	financing.DownPayment, _ = cmd.Flags().GetFloat64("down-payment")
	financing.TermMonths, _ = cmd.Flags().GetInt("term")

	result, err := ownership.Compute(vehicle, financing)
	if err != nil {
		logger.Fatal("estimating ownership costs", zap.Error(err))
	}

	if err := printJSON(cmd.OutOrStdout(), result); err != nil {
		logger.Fatal("writing estimate", zap.Error(err))
	}
}
