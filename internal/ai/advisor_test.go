package ai

import (
	"context"
	"strings"
	"testing"

	"github.com/spigell/carmatch/internal/catalog"
	"github.com/spigell/carmatch/internal/conversation"
	"github.com/spigell/carmatch/internal/profile"
	"github.com/spigell/carmatch/internal/ranking"
	"github.com/spigell/carmatch/internal/scoring"
)

func TestSanitize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "think block",
			input:  "<think>the user wants an suv</think>The RAV4 is a great pick.",
			expect: "The RAV4 is a great pick.",
		},
		{
			name:   "multiline thinking block",
			input:  "<THINKING>\nstep 1\nstep 2\n</THINKING>\nHello!",
			expect: "Hello!",
		},
		{
			name:   "bracketed reasoning",
			input:  "[REASONING]hidden[/REASONING] Visible [THINK]also hidden[/THINK]text",
			expect: "Visible text",
		},
		{
			name:   "ranked match percentage",
			input:  "The Camry (#2, 87.5% match) is cheaper.",
			expect: "The Camry is cheaper.",
		},
		{
			name:   "bare match percentage",
			input:  "It is a 92% match for you and #1 match overall.",
			expect: "It is a for you and overall.",
		},
		{
			name:   "collapses whitespace",
			input:  "  one\n\n two\t three  ",
			expect: "one two three",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Sanitize(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func testRecommendations() []ranking.ScoredVehicle {
	rav4 := &catalog.Vehicle{
		ID:        "rav4",
		BasicInfo: catalog.BasicInfo{Make: "Toyota", Model: "RAV4 Hybrid", Year: 2024, BodyType: "SUV", MSRP: 33000},
		Specifications: catalog.Specifications{
			MPGCombined: 40, Horsepower: 219, SeatingCapacity: 5, Engine: "2.5L Hybrid",
		},
		Pros: []string{"Efficient", "AWD", "Resale", "Cargo"},
		Cons: []string{"Noisy", "Plain", "Slow"},
	}
	camry := &catalog.Vehicle{
		ID:             "camry",
		BasicInfo:      catalog.BasicInfo{Make: "Toyota", Model: "Camry", BodyType: "Sedan", MSRP: 27000},
		Specifications: catalog.Specifications{MPGCombined: 32, SeatingCapacity: 5},
	}

	return []ranking.ScoredVehicle{
		{
			Vehicle:   rav4,
			Score:     81.25,
			Breakdown: scoring.Breakdown{LifestyleMatch: 90},
			Reasons:   []string{"Strong Eco Conscious match", "Excellent fuel efficiency"},
		},
		{Vehicle: camry, Score: 70},
	}
}

func TestSummaries(t *testing.T) {
	t.Parallel()

	summaries := Summaries(testRecommendations())
	if len(summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(summaries))
	}

	first := summaries[0]
	if first.Rank != 1 || first.Make != "Toyota" || first.MatchScore != 81.25 || first.Price != 33000 {
		t.Fatalf("unexpected first summary: %+v", first)
	}
	if len(first.Pros) != 3 || len(first.Cons) != 2 {
		t.Fatalf("expected pros and cons to be trimmed, got %v / %v", first.Pros, first.Cons)
	}

	second := summaries[1]
	if second.Rank != 2 {
		t.Fatalf("expected rank 2, got %d", second.Rank)
	}
	if second.Pros == nil || second.Cons == nil || second.Reasons == nil {
		t.Fatalf("expected empty lists instead of nil: %+v", second)
	}
}

func TestConsultationIsFirstTurn(t *testing.T) {
	t.Parallel()

	var history conversation.History
	history = history.Append(conversation.RoleUser, "hi")
	if !(Consultation{History: history}).IsFirstTurn() {
		t.Fatalf("single user turn must be the first turn")
	}

	history = history.Append(conversation.RoleAssistant, "hello").Append(conversation.RoleUser, "more")
	if (Consultation{History: history}).IsFirstTurn() {
		t.Fatalf("three turns must not be the first turn")
	}
}

func TestOfflineAdvise(t *testing.T) {
	t.Parallel()

	lifestyle := profile.Lifestyle{profile.EcoConscious: 9, profile.FamilyFriendly: 8}
	history := conversation.History{}.Append(conversation.RoleUser, "I want a hybrid")

	reply, err := Offline{}.Advise(context.Background(), Consultation{
		Profile:         lifestyle,
		Recommendations: testRecommendations(),
		History:         history,
		Message:         "I want a hybrid",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"You appear to be",
		"the Toyota RAV4 Hybrid ($33k, 40 MPG, 5 seats) and the Toyota Camry",
		"excellent fuel efficiency",
	} {
		if !strings.Contains(reply, want) {
			t.Fatalf("expected reply to contain %q, got %q", want, reply)
		}
	}
	if strings.Contains(reply, "% match") {
		t.Fatalf("reply must not contain match percentages: %q", reply)
	}

	followUp := history.Append(conversation.RoleAssistant, reply).Append(conversation.RoleUser, "cheaper?")
	reply, err = Offline{}.Advise(context.Background(), Consultation{
		Profile:         lifestyle,
		Recommendations: testRecommendations(),
		History:         followUp,
		Message:         "cheaper?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(reply, "You appear to be") {
		t.Fatalf("follow-up replies must skip the profile description: %q", reply)
	}
}

func TestOfflineAdviseWithoutRecommendations(t *testing.T) {
	t.Parallel()

	reply, err := Offline{}.Advise(context.Background(), Consultation{Message: "anything"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(reply, "couldn't find") {
		t.Fatalf("unexpected reply %q", reply)
	}
}

func TestOfflineSummarize(t *testing.T) {
	t.Parallel()

	vehicle := testRecommendations()[0].Vehicle
	lifestyle := profile.Lifestyle{profile.EcoConscious: 9, profile.FamilyFriendly: 8, profile.Luxury: 3}

	text, err := Offline{}.Summarize(context.Background(), lifestyle, vehicle)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "The Toyota RAV4 Hybrid is a suv at $33000 with 40 MPG, a fit for your eco conscious (9/10) and family friendly (8/10) priorities."
	if text != want {
		t.Fatalf("expected %q, got %q", want, text)
	}

	if _, err := (Offline{}).Summarize(context.Background(), lifestyle, nil); err == nil {
		t.Fatal("expected error for nil vehicle")
	}
}
