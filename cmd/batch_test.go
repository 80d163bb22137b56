package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/carmatch/internal/catalog"
	"github.com/spigell/carmatch/internal/profile"
	"github.com/spigell/carmatch/internal/ranking"
)

const batchCatalog = `{"cars": [
  {"id": "suv", "basic_info": {"make": "Toyota", "model": "RAV4", "body_type": "SUV", "msrp": 33000},
   "specifications": {"mpg_combined": 40, "seating_capacity": 5, "engine": "2.5L Hybrid"},
   "lifestyle_scores": {"family_friendly": 9, "eco_conscious": 9}},
  {"id": "coupe", "basic_info": {"make": "Ford", "model": "Mustang", "body_type": "Coupe", "msrp": 42000},
   "specifications": {"mpg_combined": 18, "horsepower": 480, "seating_capacity": 4, "engine": "5.0L V8"},
   "lifestyle_scores": {"performance": 10}}
]}`

func newTestRanker(t *testing.T) *ranking.Ranker {
	t.Helper()
	c, err := catalog.Parse([]byte(batchCatalog))
	if err != nil {
		t.Fatalf("parse catalog: %v", err)
	}
	r, err := ranking.New(c, nil, ranking.Config{}, zap.NewNop())
	if err != nil {
		t.Fatalf("create ranker: %v", err)
	}
	return r
}

func TestRankBatchPreservesOrder(t *testing.T) {
	ranker := newTestRanker(t)

	requests := []batchRequest{
		{ID: "first", Profile: profile.Lifestyle{profile.Performance: 10}, TopN: 1},
		{
			Profile: profile.Lifestyle{profile.FamilyFriendly: 9},
			Conversation: []any{
				map[string]any{"role": "user", "content": "an suv for the family"},
				"not a turn",
			},
		},
		{ID: "third", Profile: profile.Lifestyle{profile.EcoConscious: 9}, Budget: 35000},
	}

	results, err := rankBatch(context.Background(), ranker, requests, 2, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].ID != "first" || results[2].ID != "third" {
		t.Fatalf("unexpected result order: %q, %q", results[0].ID, results[2].ID)
	}
	if results[1].ID == "" {
		t.Fatalf("expected generated id for request without one")
	}

	if len(results[0].Recommendations) != 1 || results[0].Recommendations[0].ID != "coupe" {
		t.Fatalf("unexpected first result: %+v", results[0].Recommendations)
	}

	second := results[1].Recommendations
	if len(second) != 1 || second[0].ID != "suv" {
		t.Fatalf("expected conversation filters to keep only the suv, got %+v", second)
	}
}

func TestRankBatchCanceled(t *testing.T) {
	ranker := newTestRanker(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rankBatch(ctx, ranker, []batchRequest{{ID: "x"}}, 1, zap.NewNop())
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}

func TestWriteTable(t *testing.T) {
	ranker := newTestRanker(t)
	recommendations, err := ranker.Rank(context.Background(), ranking.Request{
		Profile: profile.Lifestyle{profile.Performance: 10},
		TopN:    1,
	})
	if err != nil {
		t.Fatalf("rank: %v", err)
	}

	var buf bytes.Buffer
	if err := writeTable(&buf, recommendations); err != nil {
		t.Fatalf("write table: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %q", buf.String())
	}
	if !strings.Contains(lines[1], "Ford Mustang") || !strings.Contains(lines[1], "$42000") {
		t.Fatalf("unexpected row %q", lines[1])
	}
}
