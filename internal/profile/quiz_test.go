package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testQuestions() []Question {
	return []Question{
		{
			ID: "q1",
			Options: []Option{
				{Value: "kids", Scores: map[Dimension]float64{FamilyFriendly: 9, SafetyFocused: 8}},
				{Value: "solo", Scores: map[Dimension]float64{Performance: 8}},
			},
		},
		{
			ID: "q2",
			Options: []Option{
				{Value: "green", Scores: map[Dimension]float64{EcoConscious: 10}},
				{Value: "cheap", Scores: map[Dimension]float64{BudgetConscious: 7, EcoConscious: 5}},
			},
		},
	}
}

func TestAnalyzeSingleAnswers(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer(testQuestions())
	got := a.Analyze(map[string]Answer{
		"q1": Single("kids"),
		"q2": Single("green"),
	})

	if got[FamilyFriendly] != 9 || got[SafetyFocused] != 8 || got[EcoConscious] != 10 {
		t.Fatalf("unexpected profile: %v", got)
	}
	if got[Luxury] != NeutralScore {
		t.Fatalf("expected neutral luxury, got %v", got[Luxury])
	}
	if len(got) != len(Dimensions) {
		t.Fatalf("expected all %d dimensions, got %d", len(Dimensions), len(got))
	}
}

func TestAnalyzeMultipleAnswersAverages(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer(testQuestions())
	got := a.Analyze(map[string]Answer{
		"q2": Multiple("green", "cheap"),
	})

	// (10*0.5 + 5*0.5) / (0.5 + 0.5) = 7.5 -> 8 with half-to-even rounding.
	if got[EcoConscious] != 8 {
		t.Fatalf("expected eco 8, got %v", got[EcoConscious])
	}
	if got[BudgetConscious] != 7 {
		t.Fatalf("expected budget 7, got %v", got[BudgetConscious])
	}
}

func TestAnalyzeIgnoresUnknownOptions(t *testing.T) {
	t.Parallel()

	a := NewAnalyzer(testQuestions())
	got := a.Analyze(map[string]Answer{"q1": Single("missing"), "q9": Single("kids")})
	for _, d := range Dimensions {
		if got[d] != NeutralScore {
			t.Fatalf("expected neutral %s, got %v", d, got[d])
		}
	}
}

func TestDecodeAnswers(t *testing.T) {
	t.Parallel()

	got := DecodeAnswers(map[string]any{
		"q1": "kids",
		"q2": []any{"green", "cheap", 42},
		"q3": 17,
		"q4": "",
		"q5": nil,
	})

	if len(got) != 2 {
		t.Fatalf("expected 2 answers, got %d: %+v", len(got), got)
	}
	if got["q1"].Kind != AnswerSingle || got["q1"].Values[0] != "kids" {
		t.Fatalf("unexpected q1 answer: %+v", got["q1"])
	}
	if got["q2"].Kind != AnswerMultiple || len(got["q2"].Values) != 2 {
		t.Fatalf("unexpected q2 answer: %+v", got["q2"])
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	l := Neutral()
	l[FamilyFriendly] = 9
	l[EcoConscious] = 8
	got := Describe(l)
	if !strings.HasPrefix(got, "You appear to be family-oriented") || !strings.Contains(got, "environmentally conscious") {
		t.Fatalf("unexpected description: %q", got)
	}

	if got := Describe(Neutral()); !strings.Contains(got, "balanced") {
		t.Fatalf("expected balanced description, got %q", got)
	}
}

func TestLoadQuestions(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "questions.json")
	content := `{"questions":[{"id":"q1","question":"Who rides with you?","options":[{"value":"kids","label":"Kids","scores":{"family_friendly":9}}]}]}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	questions, err := LoadQuestions(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 || questions[0].Options[0].Scores[FamilyFriendly] != 9 {
		t.Fatalf("unexpected questions: %+v", questions)
	}

	if _, err := LoadQuestions(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
