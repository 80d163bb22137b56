package preferences

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/carmatch/internal/conversation"
	"github.com/spigell/carmatch/internal/profile"
	"github.com/spigell/carmatch/internal/utils"
)

const previewLength = 100

// Extractor infers filters and lifestyle boosts from conversation turns using
// keyword and regex matching only.
type Extractor struct {
	rules  Rules
	logger *zap.Logger
}

func NewExtractor(rules Rules, logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{rules: rules, logger: logger}
}

// Extract is deterministic: the same history always yields the same result.
func (e *Extractor) Extract(history conversation.History) Preferences {
	prefs := empty()

	text := history.UserText()
	if strings.TrimSpace(text) == "" {
		return prefs
	}

	e.logger.Debug("analyzing conversation", zap.String("text", utils.TruncateForLog(text, previewLength)))

	for _, bodyType := range e.rules.BodyTypes {
		if containsAny(text, bodyType.Keywords) {
			prefs.Filters.BodyType = strings.ToUpper(bodyType.Name)
			e.logger.Debug("detected body type", zap.String("body_type", prefs.Filters.BodyType))
			break
		}
	}

	for _, rule := range e.rules.Rules {
		if !containsAny(text, rule.Keywords) {
			continue
		}
		for d, boost := range rule.Boosts {
			prefs.Boosts[d] = boost
		}
		prefs.Filters = prefs.Filters.Overlay(rule.Sets)
		e.logger.Debug("detected preference", zap.String("rule", rule.Name))
	}

	if price, ok := e.budget(text); ok {
		prefs.Filters.MaxPrice = price
		e.logger.Debug("detected budget constraint", zap.Float64("max_price", price))
	}

	return prefs
}

// budget returns the amount of the first pattern that yields a usable value.
func (e *Extractor) budget(text string) (float64, bool) {
	for _, pattern := range e.rules.Budget {
		loc := pattern.FindStringSubmatchIndex(text)
		if loc == nil {
			continue
		}

		var digits string
		groups := len(loc)/2 - 1
		for g := 1; g <= groups; g++ {
			if loc[2*g] < 0 {
				continue
			}
			digits += text[loc[2*g]:loc[2*g+1]]
		}

		amount, err := strconv.ParseFloat(digits, 64)
		if err != nil || amount <= 0 {
			e.logger.Debug("ambiguous budget phrase", zap.String("match", text[loc[0]:loc[1]]))
			continue
		}
		if groups == 1 && strings.Contains(text[loc[0]:loc[1]], "k") {
			amount *= 1000
		}
		return amount, true
	}
	return 0, false
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// Boosted applies the extracted boosts to l. See profile.Lifestyle.Adjust.
func (p Preferences) Boosted(l profile.Lifestyle) profile.Lifestyle {
	return l.Adjust(p.Boosts)
}
