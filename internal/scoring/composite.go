package scoring

import (
	"fmt"
	"math"
)

// Breakdown holds the four sub-scores of a ranked vehicle.
type Breakdown struct {
	LifestyleMatch float64 `json:"lifestyle_match"`
	BudgetFit      float64 `json:"budget_fit"`
	FeatureQuality float64 `json:"feature_quality"`
	ValueScore     float64 `json:"value_score"`
}

// Rounded returns the breakdown with every value rounded to two decimals.
func (b Breakdown) Rounded() Breakdown {
	return Breakdown{
		LifestyleMatch: Round2(b.LifestyleMatch),
		BudgetFit:      Round2(b.BudgetFit),
		FeatureQuality: Round2(b.FeatureQuality),
		ValueScore:     Round2(b.ValueScore),
	}
}

// Weights blend the sub-scores into the composite score.
type Weights struct {
	Lifestyle float64 `mapstructure:"lifestyle" json:"lifestyle"`
	Budget    float64 `mapstructure:"budget" json:"budget"`
	Features  float64 `mapstructure:"features" json:"features"`
	Value     float64 `mapstructure:"value" json:"value"`
}

func DefaultWeights() Weights {
	return Weights{Lifestyle: 0.40, Budget: 0.30, Features: 0.20, Value: 0.10}
}

func (w Weights) Validate() error {
	for _, weight := range []struct {
		name  string
		value float64
	}{
		{"lifestyle", w.Lifestyle},
		{"budget", w.Budget},
		{"features", w.Features},
		{"value", w.Value},
	} {
		if weight.value < 0 || math.IsNaN(weight.value) {
			return fmt.Errorf("weight %s must be a non-negative number, got %v", weight.name, weight.value)
		}
	}
	if w == (Weights{}) {
		return fmt.Errorf("at least one weight must be positive")
	}
	return nil
}

// IsZero reports whether no weights were configured.
func (w Weights) IsZero() bool {
	return w == Weights{}
}

// Composite blends the unrounded sub-scores.
func (w Weights) Composite(b Breakdown) float64 {
	return b.LifestyleMatch*w.Lifestyle +
		b.BudgetFit*w.Budget +
		b.FeatureQuality*w.Features +
		b.ValueScore*w.Value
}

// Round2 rounds to two decimals, ties to even.
func Round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
