package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/carmatch/internal/logger"
)

var showCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a single vehicle from the catalog",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		show(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	addProfileFlags(showCmd)
	showCmd.Flags().BoolP("summary", "s", false, "print a short personalized summary of the vehicle")
}

func show(cmd *cobra.Command, id string) {
	ctx := cmd.Context()
	log, config := setup()

	vehicle := loadCatalog(config, log).FindByID(id)
	if vehicle == nil {
		log.Fatal("vehicle not found", zap.String("id", id))
	}

	if err := printJSON(cmd.OutOrStdout(), vehicle); err != nil {
		log.Fatal("writing vehicle", zap.Error(err))
	}

	if summary, _ := cmd.Flags().GetBool("summary"); !summary {
		return
	}

	profileFile, _ := cmd.Flags().GetString("profile")
	answersFile, _ := cmd.Flags().GetString("answers")
	lifestyle, err := loadProfile(profileFile, answersFile, config)
	if err != nil {
		log.Fatal("loading lifestyle profile", zap.Error(err))
	}

	advisor, provider, model, err := newAdvisor(ctx, config.AI, log)
	if err != nil {
		log.Fatal("creating an advisor", zap.Error(err))
	}
	log = logger.WithCommonFields(log, "", provider, model)

	text, err := advisor.Summarize(ctx, lifestyle, vehicle)
	if err != nil {
		log.Fatal("summarizing vehicle", zap.Error(err))
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
}
