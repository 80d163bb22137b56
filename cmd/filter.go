package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/carmatch/internal/filtering"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "List catalog vehicles matching hard criteria, without scoring",
	Run: func(cmd *cobra.Command, _ []string) {
		filter(cmd)
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)

	filterCmd.Flags().String("body-type", "", "body type, e.g. SUV or Sedan")
	filterCmd.Flags().Float64("min-mpg", 0, "minimum combined mpg")
	filterCmd.Flags().Float64("max-price", 0, "maximum MSRP")
	filterCmd.Flags().Int("min-seating", 0, "minimum seating capacity")
	filterCmd.Flags().Bool("describe", false, "print the filter steps instead of the vehicles")
}

func filter(cmd *cobra.Command) {
	ctx := cmd.Context()
	logger, config := setup()

	criteria := filtering.Criteria{}
	criteria.BodyType, _ = cmd.Flags().GetString("body-type")
	criteria.MinMPG, _ = cmd.Flags().GetFloat64("min-mpg")
	criteria.MaxPrice, _ = cmd.Flags().GetFloat64("max-price")
	criteria.MinSeating, _ = cmd.Flags().GetInt("min-seating")

	if describe, _ := cmd.Flags().GetBool("describe"); describe {
		if err := printJSON(cmd.OutOrStdout(), filtering.Describe(criteria.Filters())); err != nil {
			logger.Fatal("writing filters", zap.Error(err))
		}
		return
	}

	matched, err := filtering.ByCriteria(ctx, loadCatalog(config, logger), criteria, logger)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	logger.Info("vehicles matched", zap.Int("count", matched.Len()))

	if err := printJSON(cmd.OutOrStdout(), matched); err != nil {
		logger.Fatal("writing vehicles", zap.Error(err))
	}
}
