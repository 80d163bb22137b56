package profile

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// AnswerKind tells whether a quiz answer selected one option or several.
type AnswerKind int

const (
	AnswerSingle AnswerKind = iota
	AnswerMultiple
)

// Answer is the selection made for one quiz question.
type Answer struct {
	Kind   AnswerKind
	Values []string
}

// Single builds a one-option answer.
func Single(value string) Answer {
	return Answer{Kind: AnswerSingle, Values: []string{value}}
}

// Multiple builds a multi-option answer.
func Multiple(values ...string) Answer {
	return Answer{Kind: AnswerMultiple, Values: values}
}

// Option is a selectable answer with its contribution to each dimension.
type Option struct {
	Value  string                `json:"value" mapstructure:"value"`
	Label  string                `json:"label" mapstructure:"label"`
	Scores map[Dimension]float64 `json:"scores" mapstructure:"scores"`
}

// Question is a single personality quiz question.
type Question struct {
	ID       string   `json:"id" mapstructure:"id"`
	Question string   `json:"question" mapstructure:"question"`
	Options  []Option `json:"options" mapstructure:"options"`
}

type questionsFile struct {
	Questions []Question `json:"questions"`
}

// LoadQuestions reads the quiz definition from a JSON file.
func LoadQuestions(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading questions file %q: %w", path, err)
	}

	var file questionsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing questions file %q: %w", path, err)
	}

	return file.Questions, nil
}

// DecodeAnswers converts loosely shaped answers (a string or a list of strings
// per question id) into tagged answers. Entries of any other shape are dropped.
func DecodeAnswers(raw map[string]any) map[string]Answer {
	answers := make(map[string]Answer, len(raw))
	for id, value := range raw {
		var answer Answer
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			DecodeHook: answerHook,
			Result:     &answer,
		})
		if err != nil {
			continue
		}
		if err := decoder.Decode(value); err != nil {
			continue
		}
		if len(answer.Values) == 0 {
			continue
		}
		answers[id] = answer
	}
	return answers
}

func answerHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(Answer{}) {
		return data, nil
	}

	switch v := data.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return Answer{}, nil
		}
		return Single(v), nil
	case []string:
		return Multiple(v...), nil
	case []any:
		values := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				values = append(values, s)
			}
		}
		return Multiple(values...), nil
	default:
		return nil, fmt.Errorf("unsupported answer type %T", data)
	}
}

// Analyzer turns quiz answers into a lifestyle profile.
type Analyzer struct {
	questions []Question
}

// NewAnalyzer creates an Analyzer over the given questions.
func NewAnalyzer(questions []Question) *Analyzer {
	return &Analyzer{questions: questions}
}

// Questions returns the quiz questions.
func (a *Analyzer) Questions() []Question {
	return a.questions
}

// Analyze averages the option scores of every selected answer per dimension.
// When several options are selected for one question each contributes with
// weight 1/len(selected). Dimensions without any contribution get the neutral
// score; the rest are rounded and clamped to [1,10].
func (a *Analyzer) Analyze(answers map[string]Answer) Lifestyle {
	totals := make(map[Dimension]float64, len(Dimensions))
	counts := make(map[Dimension]float64, len(Dimensions))

	for _, question := range a.questions {
		answer, ok := answers[question.ID]
		if !ok || len(answer.Values) == 0 {
			continue
		}

		weight := 1.0 / float64(len(answer.Values))
		for _, value := range answer.Values {
			option := findOption(question.Options, value)
			if option == nil {
				continue
			}
			for d, points := range option.Scores {
				if !isKnown(d) {
					continue
				}
				totals[d] += points * weight
				counts[d] += weight
			}
		}
	}

	result := make(Lifestyle, len(Dimensions))
	for _, d := range Dimensions {
		if counts[d] <= 0 {
			result[d] = NeutralScore
			continue
		}
		avg := math.RoundToEven(totals[d] / counts[d])
		result[d] = max(MinScore, min(MaxScore, avg))
	}
	return result
}

var descriptions = map[Dimension]string{
	FamilyFriendly:  "family-oriented with focus on safety and space",
	Adventure:       "adventurous and outdoor-focused",
	EcoConscious:    "environmentally conscious",
	Luxury:          "appreciative of premium features and comfort",
	Performance:     "performance-driven and dynamic",
	BudgetConscious: "value-focused and practical",
	CityDriving:     "urban lifestyle with compact needs",
	Commuter:        "commuter prioritizing efficiency",
	TechEnthusiast:  "technology-forward",
	SafetyFocused:   "safety-conscious",
}

// Describe summarizes the strongest traits of a profile in one sentence.
func Describe(l Lifestyle) string {
	var parts []string
	for _, d := range l.Top(3) {
		if l[d] < 7 {
			continue
		}
		text, ok := descriptions[d]
		if !ok {
			text = string(d)
		}
		parts = append(parts, text)
	}

	if len(parts) == 0 {
		return "You have balanced priorities across different vehicle aspects."
	}
	return fmt.Sprintf("You appear to be %s.", strings.Join(parts, ", "))
}

func findOption(options []Option, value string) *Option {
	for i := range options {
		if options[i].Value == value {
			return &options[i]
		}
	}
	return nil
}

func isKnown(d Dimension) bool {
	for _, known := range Dimensions {
		if d == known {
			return true
		}
	}
	return false
}
