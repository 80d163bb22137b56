package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/carmatch/internal/ai"
	"github.com/spigell/carmatch/internal/catalog"
	"github.com/spigell/carmatch/internal/conversation"
	"github.com/spigell/carmatch/internal/profile"
	"github.com/spigell/carmatch/internal/utils"
)

type contentGenerator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

//go:embed prompts/first_turn.md
var firstTurnTemplate string

//go:embed prompts/follow_up.md
var followUpTemplate string

//go:embed prompts/summary.md
var summaryTemplate string

const (
	defaultMaxLogLength = 200
	recentTurns         = 3

	firstTurnTokens = 400
	followUpTokens  = 150
	summaryTokens   = 150

	replyTemperature   = 0.6
	summaryTemperature = 0.8
)

// Advisor produces chat replies with Gemini.
type Advisor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.Advisor = (*Advisor)(nil)

func NewAdvisor(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Advisor{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (a *Advisor) Advise(ctx context.Context, c ai.Consultation) (string, error) {
	message := strings.TrimSpace(c.Message)
	if message == "" {
		return "", fmt.Errorf("message is required")
	}

	profileJSON, err := json.MarshalIndent(c.Profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}
	carsJSON, err := json.MarshalIndent(ai.Summaries(c.Recommendations), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal recommendations: %w", err)
	}

	req := Request{Message: message, Temperature: replyTemperature}
	recent := c.History.Last(recentTurns)

	if c.IsFirstTurn() {
		req.System = buildPrompt(firstTurnTemplate, map[string]string{
			"PROFILE_JSON": string(profileJSON),
			"CARS_JSON":    string(carsJSON),
		})
		req.MaxOutputTokens = firstTurnTokens
	} else {
		conversationJSON, err := json.MarshalIndent(recent, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal conversation: %w", err)
		}
		req.System = buildPrompt(followUpTemplate, map[string]string{
			"PROFILE_JSON":      string(profileJSON),
			"CARS_JSON":         string(carsJSON),
			"CONVERSATION_JSON": string(conversationJSON),
		})
		req.MaxOutputTokens = followUpTokens
		req.History = toContents(priorTurns(recent, message))
	}

	return a.generate(ctx, "advise", req)
}

func (a *Advisor) Summarize(ctx context.Context, l profile.Lifestyle, v *catalog.Vehicle) (string, error) {
	if v == nil {
		return "", fmt.Errorf("vehicle is required")
	}

	profileJSON, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal profile: %w", err)
	}

	safety := v.Features.Safety
	if len(safety) > 3 {
		safety = safety[:3]
	}
	carJSON, err := json.MarshalIndent(map[string]any{
		"price":        v.BasicInfo.MSRP,
		"type":         v.BasicInfo.BodyType,
		"mpg":          v.Specifications.MPGCombined,
		"key_features": safety,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal vehicle: %w", err)
	}

	prompt := buildPrompt(summaryTemplate, map[string]string{
		"CAR_NAME":     v.Name(),
		"PROFILE_JSON": string(profileJSON),
		"CAR_JSON":     string(carJSON),
	})

	return a.generate(ctx, "summarize", Request{
		Message:         prompt,
		MaxOutputTokens: summaryTokens,
		Temperature:     summaryTemperature,
	})
}

func (a *Advisor) generate(ctx context.Context, action string, req Request) (string, error) {
	a.logger.Debug("gemini generate content request",
		zap.String("action", action),
		zap.Int("prompt_length", utf8.RuneCountInString(req.System)+utf8.RuneCountInString(req.Message)),
		zap.String("prompt_preview", utils.TruncateForLog(req.System+"\n"+req.Message, a.maxLogLen)),
		zap.Int("history_turns", len(req.History)),
	)

	raw, err := a.generator.Generate(ctx, req)
	if err != nil {
		return "", err
	}

	a.logger.Debug("gemini generate content response",
		zap.String("action", action),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, a.maxLogLen)),
	)

	reply := ai.Sanitize(raw)
	if reply == "" {
		return "", fmt.Errorf("gemini reply is empty after cleanup")
	}
	return reply, nil
}

func buildPrompt(template string, values map[string]string) string {
	prompt := template
	for key, value := range values {
		prompt = strings.ReplaceAll(prompt, "{{"+key+"}}", value)
	}
	return strings.TrimSpace(prompt)
}

// priorTurns drops the trailing user turn carrying the current message, since
// it is sent separately.
func priorTurns(h conversation.History, message string) conversation.History {
	if n := len(h); n > 0 && h[n-1].Role == conversation.RoleUser && strings.TrimSpace(h[n-1].Content) == message {
		return h[:n-1]
	}
	return h
}

func toContents(h conversation.History) []*genai.Content {
	contents := make([]*genai.Content, 0, len(h))
	for _, turn := range h {
		role := genai.Role(genai.RoleUser)
		if turn.Role == conversation.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Content, role))
	}
	return contents
}
