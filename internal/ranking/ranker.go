package ranking

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/spigell/carmatch/internal/catalog"
	"github.com/spigell/carmatch/internal/conversation"
	"github.com/spigell/carmatch/internal/filtering"
	"github.com/spigell/carmatch/internal/preferences"
	"github.com/spigell/carmatch/internal/profile"
	"github.com/spigell/carmatch/internal/scoring"
)

const DefaultTopN = 4

// Config tunes the ranker. Zero values fall back to defaults.
type Config struct {
	TopN       int
	Weights    scoring.Weights
	Importance profile.Importance
}

// Request is one ranking call. A Budget that is not a positive number means
// no budget was given.
type Request struct {
	Profile profile.Lifestyle    `json:"lifestyle_profile"`
	Budget  float64              `json:"budget,omitempty"`
	History conversation.History `json:"conversation,omitempty"`
	TopN    int                  `json:"top_n,omitempty"`
}

// ScoredVehicle is a catalog vehicle with its ranking details. The vehicle
// fields are inlined when encoded to JSON.
type ScoredVehicle struct {
	*catalog.Vehicle
	Score     float64           `json:"match_score"`
	Breakdown scoring.Breakdown `json:"score_breakdown"`
	Reasons   []string          `json:"match_reasons"`
}

// Ranker scores every catalog vehicle that passes the conversation filters
// and returns the best ones.
type Ranker struct {
	catalog    *catalog.Catalog
	extractor  *preferences.Extractor
	similarity *scoring.Similarity
	weights    scoring.Weights
	topN       int
	logger     *zap.Logger
}

func New(c *catalog.Catalog, extractor *preferences.Extractor, cfg Config, logger *zap.Logger) (*Ranker, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if c == nil {
		c = &catalog.Catalog{}
	}
	if extractor == nil {
		extractor = preferences.NewExtractor(preferences.DefaultRules(), logger)
	}

	weights := cfg.Weights
	if weights.IsZero() {
		weights = scoring.DefaultWeights()
	}
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid ranking weights: %w", err)
	}

	topN := cfg.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	return &Ranker{
		catalog:    c,
		extractor:  extractor,
		similarity: scoring.NewSimilarity(cfg.Importance),
		weights:    weights,
		topN:       topN,
		logger:     logger,
	}, nil
}

// Catalog returns the catalog the ranker works on.
func (r *Ranker) Catalog() *catalog.Catalog {
	return r.catalog
}

// Rank is pure with respect to its inputs: identical requests produce
// identical results, and req.Profile is never modified.
func (r *Ranker) Rank(ctx context.Context, req Request) ([]ScoredVehicle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefs := r.extractor.Extract(req.History)
	adjusted := prefs.Boosted(req.Profile)

	r.logger.Debug("conversation adjustments",
		zap.Any("lifestyle_boosts", prefs.Boosts),
		zap.Any("filters", prefs.Filters.Map()),
	)

	candidates, err := filtering.New(filtering.FromPreferences(prefs.Filters), r.logger).RunFilters(ctx, r.catalog)
	if err != nil {
		return nil, fmt.Errorf("filtering candidates: %w", err)
	}

	matches := make([]ScoredVehicle, 0, candidates.Len())
	for _, vehicle := range candidates.Items {
		breakdown := scoring.Breakdown{
			LifestyleMatch: r.similarity.Score(vehicle.LifestyleScores, adjusted),
			BudgetFit:      scoring.BudgetAffinity(vehicle.BasicInfo.MSRP, req.Budget),
			FeatureQuality: scoring.FeatureQuality(vehicle, adjusted),
			ValueScore:     scoring.Value(vehicle),
		}

		matches = append(matches, ScoredVehicle{
			Vehicle:   vehicle,
			Score:     scoring.Round2(r.weights.Composite(breakdown)),
			Breakdown: breakdown.Rounded(),
			Reasons:   Reasons(vehicle, adjusted),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	topN := req.TopN
	if topN <= 0 {
		topN = r.topN
	}
	if len(matches) > topN {
		matches = matches[:topN]
	}

	r.logger.Debug("ranking completed",
		zap.Int("candidates", candidates.Len()),
		zap.Int("returned", len(matches)),
	)

	return matches, nil
}
