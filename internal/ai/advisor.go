package ai

import (
	"context"
	"regexp"
	"strings"

	"github.com/spigell/carmatch/internal/catalog"
	"github.com/spigell/carmatch/internal/conversation"
	"github.com/spigell/carmatch/internal/profile"
	"github.com/spigell/carmatch/internal/ranking"
	"github.com/spigell/carmatch/internal/scoring"
)

// Consultation is everything an advisor sees for one reply.
// History already contains the user's latest message as its last turn.
type Consultation struct {
	Profile         profile.Lifestyle
	Recommendations []ranking.ScoredVehicle
	History         conversation.History
	Message         string
}

// IsFirstTurn reports whether this is the opening message of the session.
func (c Consultation) IsFirstTurn() bool {
	return len(c.History) <= 1
}

// Advisor writes natural language replies about ranked vehicles.
type Advisor interface {
	Advise(ctx context.Context, c Consultation) (string, error)
	Summarize(ctx context.Context, l profile.Lifestyle, v *catalog.Vehicle) (string, error)
}

// CarSummary is the compact view of a recommendation handed to language models.
type CarSummary struct {
	Rank       int               `json:"rank"`
	Make       string            `json:"make"`
	Model      string            `json:"model"`
	Year       int               `json:"year"`
	BodyType   string            `json:"body_type"`
	Price      float64           `json:"price"`
	MPG        float64           `json:"mpg"`
	Horsepower float64           `json:"horsepower"`
	Seating    int               `json:"seating"`
	Engine     string            `json:"engine"`
	MatchScore float64           `json:"match_score"`
	Reasons    []string          `json:"match_reasons"`
	Breakdown  scoring.Breakdown `json:"score_breakdown"`
	Pros       []string          `json:"pros"`
	Cons       []string          `json:"cons"`
}

const (
	summaryPros = 3
	summaryCons = 2
)

// Summaries converts ranked vehicles into CarSummary values, rank starting at 1.
func Summaries(ranked []ranking.ScoredVehicle) []CarSummary {
	out := make([]CarSummary, 0, len(ranked))
	for i, sv := range ranked {
		if sv.Vehicle == nil {
			continue
		}
		out = append(out, CarSummary{
			Rank:       i + 1,
			Make:       sv.BasicInfo.Make,
			Model:      sv.BasicInfo.Model,
			Year:       sv.BasicInfo.Year,
			BodyType:   sv.BasicInfo.BodyType,
			Price:      sv.BasicInfo.MSRP,
			MPG:        sv.Specifications.MPGCombined,
			Horsepower: sv.Specifications.Horsepower,
			Seating:    sv.Specifications.SeatingCapacity,
			Engine:     sv.Specifications.Engine,
			MatchScore: sv.Score,
			Reasons:    nonNil(sv.Reasons),
			Breakdown:  sv.Breakdown,
			Pros:       head(sv.Pros, summaryPros),
			Cons:       head(sv.Cons, summaryCons),
		})
	}
	return out
}

func head(items []string, n int) []string {
	if len(items) > n {
		items = items[:n]
	}
	return nonNil(items)
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

var (
	reasoningPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<think>.*?</think>`),
		regexp.MustCompile(`(?is)<thinking>.*?</thinking>`),
		regexp.MustCompile(`(?is)\[REASONING\].*?\[/REASONING\]`),
		regexp.MustCompile(`(?is)\[THINK\].*?\[/THINK\]`),
	}
	matchScorePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\(#\d+,?\s*\d+\.?\d*%\s*match\)`),
		regexp.MustCompile(`#\d+,?\s*\d+\.?\d*%\s*match`),
		regexp.MustCompile(`\d+\.?\d*%\s*match`),
		regexp.MustCompile(`#\d+\s*match`),
	}
	whitespace = regexp.MustCompile(`\s+`)
)

// Sanitize removes model reasoning blocks and match percentages from a reply
// and collapses whitespace.
func Sanitize(reply string) string {
	for _, p := range reasoningPatterns {
		reply = p.ReplaceAllString(reply, "")
	}
	for _, p := range matchScorePatterns {
		reply = p.ReplaceAllString(reply, "")
	}
	return strings.TrimSpace(whitespace.ReplaceAllString(reply, " "))
}
