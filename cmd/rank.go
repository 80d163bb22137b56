package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/carmatch/internal/conversation"
	"github.com/spigell/carmatch/internal/ranking"
)

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank catalog vehicles for a profile, a budget and conversation messages",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	addProfileFlags(rankCmd)
	rankCmd.Flags().Float64P("budget", "b", 0, "maximum budget in dollars. Default is unset.")
	rankCmd.Flags().StringArrayP("message", "m", nil, "user message, can be repeated")
	rankCmd.Flags().String("history", "", "json file with conversation turns ({role, content})")
	rankCmd.Flags().IntP("top", "n", 0, "number of recommendations (default from config)")
}

func addProfileFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("profile", "p", "", "json file with lifestyle scores by dimension")
	cmd.Flags().StringP("answers", "a", "", "json file with quiz answers by question id")
}

func rank(cmd *cobra.Command) {
	ctx := cmd.Context()
	logger, config := setup()

	ranker, err := newRanker(loadCatalog(config, logger), config, logger)
	if err != nil {
		logger.Fatal("creating a ranker", zap.Error(err))
	}

	profileFile, _ := cmd.Flags().GetString("profile")
	answersFile, _ := cmd.Flags().GetString("answers")
	lifestyle, err := loadProfile(profileFile, answersFile, config)
	if err != nil {
		logger.Fatal("loading lifestyle profile", zap.Error(err))
	}

	history, err := historyFromFlags(cmd)
	if err != nil {
		logger.Fatal("loading conversation", zap.Error(err))
	}

	budget, _ := cmd.Flags().GetFloat64("budget")
	top, _ := cmd.Flags().GetInt("top")

	recommendations, err := ranker.Rank(ctx, ranking.Request{
		Profile: lifestyle,
		Budget:  budget,
		History: history,
		TopN:    top,
	})
	if err != nil {
		logger.Fatal("ranking vehicles", zap.Error(err))
	}

	logger.Info("ranking finished", zap.Int("count", len(recommendations)))

	if err := printJSON(cmd.OutOrStdout(), recommendations); err != nil {
		logger.Fatal("writing recommendations", zap.Error(err))
	}
}

// historyFromFlags reads turns from --history and appends every --message as a
// user turn.
func historyFromFlags(cmd *cobra.Command) (conversation.History, error) {
	var history conversation.History

	if file, _ := cmd.Flags().GetString("history"); file != "" {
		var raw []any
		if err := readJSON(file, &raw); err != nil {
			return nil, err
		}
		history = conversation.DecodeHistory(raw)
	}

	messages, _ := cmd.Flags().GetStringArray("message")
	for _, message := range messages {
		history = history.Append(conversation.RoleUser, message)
	}
	return history, nil
}
