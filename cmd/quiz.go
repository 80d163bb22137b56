package cmd

import (
	"fmt"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/carmatch/internal/profile"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take the personality quiz and print the resulting lifestyle profile",
	Run: func(cmd *cobra.Command, _ []string) {
		quiz(cmd)
	},
}

func init() {
	rootCmd.AddCommand(quizCmd)

	quizCmd.Flags().StringP("answers", "a", "", "json file with quiz answers; skips the interactive quiz")
}

func quiz(cmd *cobra.Command) {
	logger, config := setup()

	answersFile, _ := cmd.Flags().GetString("answers")

	var (
		lifestyle profile.Lifestyle
		err       error
	)
	if answersFile != "" {
		lifestyle, err = loadProfile("", answersFile, config)
	} else {
		lifestyle, err = runQuiz(config)
	}
	if err != nil {
		logger.Fatal("building lifestyle profile", zap.Error(err))
	}

	logger.Info("profile ready", zap.String("description", profile.Describe(lifestyle)))

	if err := printJSON(cmd.OutOrStdout(), lifestyle); err != nil {
		logger.Fatal("writing profile", zap.Error(err))
	}
}

// runQuiz asks every question with a select prompt. Each question takes a
// single answer here; multi-select answers are only possible through a file.
func runQuiz(config *Config) (profile.Lifestyle, error) {
	questions, err := profile.LoadQuestions(config.Questions)
	if err != nil {
		return nil, err
	}

	answers := make(map[string]profile.Answer, len(questions))
	for i, question := range questions {
		labels := make([]string, 0, len(question.Options))
		for _, option := range question.Options {
			labels = append(labels, option.Label)
		}

		selectPrompt := promptui.Select{
			Label: fmt.Sprintf("[%d/%d] %s", i+1, len(questions), question.Question),
			Items: labels,
		}

		idx, _, err := selectPrompt.Run()
		if err != nil {
			return nil, err
		}
		answers[question.ID] = profile.Single(question.Options[idx].Value)
	}

	return profile.NewAnalyzer(questions).Analyze(answers), nil
}
