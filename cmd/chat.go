package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/carmatch/internal/ai"
	"github.com/spigell/carmatch/internal/catalog"
	"github.com/spigell/carmatch/internal/conversation"
	"github.com/spigell/carmatch/internal/logger"
	"github.com/spigell/carmatch/internal/profile"
	"github.com/spigell/carmatch/internal/ranking"
)

const (
	PromptContinue = "Continue the conversation"
	PromptCompare  = "Compare recommendations"
	PromptDump     = "Dump recommendations to file"
	PromptExit     = "Exit"
)

var chatPrompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptContinue, PromptCompare, PromptDump, PromptExit},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk about what you need and get recommendations after every message",
	Run: func(cmd *cobra.Command, _ []string) {
		chat(cmd)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	addProfileFlags(chatCmd)
	chatCmd.Flags().Float64P("budget", "b", 0, "maximum budget in dollars. Default is unset.")
}

// session is one interactive conversation. It is owned by a single goroutine.
type session struct {
	id              string
	profile         profile.Lifestyle
	budget          float64
	history         conversation.History
	recommendations []ranking.ScoredVehicle

	ranker  *ranking.Ranker
	advisor ai.Advisor
	out     io.Writer
	logger  *zap.Logger
}

func chat(cmd *cobra.Command) {
	ctx := cmd.Context()
	log, config := setup()

	ranker, err := newRanker(loadCatalog(config, log), config, log)
	if err != nil {
		log.Fatal("creating a ranker", zap.Error(err))
	}

	profileFile, _ := cmd.Flags().GetString("profile")
	answersFile, _ := cmd.Flags().GetString("answers")

	var lifestyle profile.Lifestyle
	if profileFile == "" && answersFile == "" {
		lifestyle, err = runQuiz(config)
	} else {
		lifestyle, err = loadProfile(profileFile, answersFile, config)
	}
	if err != nil {
		log.Fatal("building lifestyle profile", zap.Error(err))
	}

	advisor, provider, model, err := newAdvisor(ctx, config.AI, log)
	if err != nil {
		log.Fatal("creating an advisor", zap.Error(err))
	}

	budget, _ := cmd.Flags().GetFloat64("budget")
	s := &session{
		id:      uuid.NewString(),
		profile: lifestyle,
		budget:  budget,
		ranker:  ranker,
		advisor: advisor,
		out:     cmd.OutOrStdout(),
	}
	s.logger = logger.WithCommonFields(log, s.id, provider, model)

	s.logger.Info("starting the chat", zap.String("version", version))

	action := PromptContinue
	for {
		if err := s.handleAction(ctx, action); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			s.logger.Fatal("exiting", zap.Error(err))
		}

		_, action, err = chatPrompt.Run()
		if err != nil {
			s.logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func (s *session) handleAction(ctx context.Context, action string) error {
	switch action {
	case PromptContinue:
		messagePrompt := promptui.Prompt{Label: "You"}
		message, err := messagePrompt.Run()
		if err != nil {
			return err
		}
		return s.send(ctx, message)
	case PromptCompare:
		ids := make([]string, 0, len(s.recommendations))
		for _, sv := range s.recommendations {
			ids = append(ids, sv.ID)
		}
		return printJSON(s.out, s.ranker.Catalog().Compare(ids))
	case PromptDump:
		filename, err := catalog.DumpToTmpFile("carmatch-recommendations-*.json", s.recommendations)
		if err != nil {
			return fmt.Errorf("dump recommendations to file: %w", err)
		}
		s.logger.Info("dumping recommendations to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		s.logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// send records the user message, reranks with the whole conversation and
// prints the advisor reply followed by the recommendations.
func (s *session) send(ctx context.Context, message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}

	s.history = s.history.Append(conversation.RoleUser, message)

	recommendations, err := s.ranker.Rank(ctx, ranking.Request{
		Profile: s.profile,
		Budget:  s.budget,
		History: s.history,
	})
	if err != nil {
		return fmt.Errorf("ranking vehicles: %w", err)
	}
	s.recommendations = recommendations

	consultation := ai.Consultation{
		Profile:         s.profile,
		Recommendations: recommendations,
		History:         s.history,
		Message:         message,
	}

	reply, err := s.advisor.Advise(ctx, consultation)
	if err != nil {
		s.logger.Warn("advisor failed, falling back to offline reply", zap.Error(err))
		reply, _ = ai.Offline{}.Advise(ctx, consultation)
	}
	s.history = s.history.Append(conversation.RoleAssistant, reply)

	fmt.Fprintf(s.out, "\n%s\n\n", reply)
	return writeTable(s.out, recommendations)
}

func writeTable(w io.Writer, recommendations []ranking.ScoredVehicle) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tID\tVEHICLE\tPRICE\tMPG\tSEATS\tSCORE")
	for i, sv := range recommendations {
		fmt.Fprintf(tw, "%d\t%s\t%s\t$%.0f\t%.0f\t%d\t%.2f\n",
			i+1,
			sv.ID,
			sv.Name(),
			sv.BasicInfo.MSRP,
			sv.Specifications.MPGCombined,
			sv.Specifications.SeatingCapacity,
			sv.Score,
		)
	}
	return tw.Flush()
}
