package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/carmatch/internal/catalog"
	"github.com/spigell/carmatch/internal/profile"
)

const offlinePicks = 3

// Offline is an Advisor that needs no language model. It builds short replies
// from the ranking data alone.
type Offline struct{}

func (Offline) Advise(_ context.Context, c Consultation) (string, error) {
	if len(c.Recommendations) == 0 {
		return "I couldn't find vehicles matching everything you asked for. Try relaxing a requirement such as the budget or body type.", nil
	}

	var b strings.Builder
	if c.IsFirstTurn() {
		b.WriteString(profile.Describe(c.Profile))
		b.WriteString(" ")
	}

	picks := make([]string, 0, offlinePicks)
	for i, sv := range c.Recommendations {
		if i == offlinePicks {
			break
		}
		picks = append(picks, fmt.Sprintf("the %s ($%.0fk, %.0f MPG, %d seats)",
			sv.Name(),
			sv.BasicInfo.MSRP/1000,
			sv.Specifications.MPGCombined,
			sv.Specifications.SeatingCapacity,
		))
	}
	fmt.Fprintf(&b, "Your top recommendations are %s.", joinList(picks))

	if reasons := c.Recommendations[0].Reasons; len(reasons) > 0 {
		fmt.Fprintf(&b, " The %s stands out for: %s.", c.Recommendations[0].Name(), strings.ToLower(strings.Join(reasons, ", ")))
	}

	return Sanitize(b.String()), nil
}

func (Offline) Summarize(_ context.Context, l profile.Lifestyle, v *catalog.Vehicle) (string, error) {
	if v == nil {
		return "", fmt.Errorf("vehicle is required")
	}
	traits := make([]string, 0, 2)
	for _, d := range l.Top(2) {
		traits = append(traits, fmt.Sprintf("%s (%.0f/10)", strings.ToLower(d.Title()), l[d]))
	}
	return fmt.Sprintf("The %s is a %s at $%.0f with %.0f MPG, a fit for your %s priorities.",
		v.Name(),
		strings.ToLower(v.BasicInfo.BodyType),
		v.BasicInfo.MSRP,
		v.Specifications.MPGCombined,
		joinList(traits),
	), nil
}

func joinList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}
