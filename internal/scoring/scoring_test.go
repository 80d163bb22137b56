package scoring

import (
	"math"
	"testing"

	"github.com/spigell/carmatch/internal/catalog"
	"github.com/spigell/carmatch/internal/profile"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestSimilarity(t *testing.T) {
	t.Parallel()

	s := NewSimilarity(profile.DefaultImportance())
	user := profile.Lifestyle{profile.FamilyFriendly: 9, profile.EcoConscious: 8, profile.Luxury: 3}

	tests := []struct {
		name    string
		vehicle profile.Lifestyle
		want    float64
	}{
		{name: "identical", vehicle: user.Clone(), want: 100},
		{name: "scaled", vehicle: profile.Lifestyle{profile.FamilyFriendly: 4.5, profile.EcoConscious: 4, profile.Luxury: 1.5}, want: 100},
		{name: "disjoint", vehicle: profile.Lifestyle{profile.Performance: 9}, want: 0},
		{name: "empty", vehicle: profile.Lifestyle{}, want: 0},
		{name: "zero magnitude", vehicle: profile.Lifestyle{profile.FamilyFriendly: 0, profile.EcoConscious: 0}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := s.Score(tt.vehicle, user); !almostEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestSimilarityUsesInjectedImportance(t *testing.T) {
	t.Parallel()

	user := profile.Lifestyle{profile.FamilyFriendly: 10, profile.Performance: 1}
	vehicle := profile.Lifestyle{profile.FamilyFriendly: 1, profile.Performance: 10}

	flat := NewSimilarity(profile.Importance{}).Score(vehicle, user)
	skewed := NewSimilarity(profile.Importance{profile.Performance: 5}).Score(vehicle, user)
	if skewed <= flat {
		t.Fatalf("expected importance to change the score: flat=%v skewed=%v", flat, skewed)
	}

	// Only profile dimensions present on the vehicle contribute.
	partial := NewSimilarity(nil).Score(profile.Lifestyle{profile.FamilyFriendly: 9}, profile.Lifestyle{profile.FamilyFriendly: 9, profile.Luxury: 2})
	if !almostEqual(partial, 100) {
		t.Fatalf("expected 100 for a single shared dimension, got %v", partial)
	}
}

func TestBudgetAffinityAnchors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		price, budget float64
		want          float64
	}{
		{price: 100, budget: 100, want: 100},
		{price: 50, budget: 100, want: 97.5},
		{price: 0, budget: 100, want: 95},
		{price: 110, budget: 100, want: 85},
		{price: 120, budget: 100, want: 60},
		{price: 130, budget: 100, want: 30},
		{price: 131, budget: 100, want: 29.5},
		{price: 200, budget: 100, want: 0},
		{price: 50000, budget: 0, want: NoBudgetScore},
		{price: 50000, budget: -1, want: NoBudgetScore},
		{price: 50000, budget: math.NaN(), want: NoBudgetScore},
	}

	for _, tt := range tests {
		if got := BudgetAffinity(tt.price, tt.budget); math.Abs(got-tt.want) > 1e-6 {
			t.Fatalf("BudgetAffinity(%v, %v): expected %v, got %v", tt.price, tt.budget, tt.want, got)
		}
	}
}

func TestBudgetAffinityNonIncreasingOverBudget(t *testing.T) {
	t.Parallel()

	prev := BudgetAffinity(100, 100)
	for price := 100.0; price <= 250; price += 0.25 {
		got := BudgetAffinity(price, 100)
		if got > prev+epsilon {
			t.Fatalf("curve increased at price %v: %v > %v", price, got, prev)
		}
		if got < 0 || got > 100 {
			t.Fatalf("score %v out of range at price %v", got, price)
		}
		prev = got
	}
}

func specVehicle(mpg, hp float64, seats int, cargo float64, safety, tech int) *catalog.Vehicle {
	return &catalog.Vehicle{
		Specifications: catalog.Specifications{
			MPGCombined:     mpg,
			Horsepower:      hp,
			SeatingCapacity: seats,
			CargoSpace:      cargo,
		},
		Features: catalog.Features{
			Safety:     make([]string, safety),
			Technology: make([]string, tech),
		},
	}
}

func TestFeatureQuality(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		vehicle *catalog.Vehicle
		profile profile.Lifestyle
		want    float64
	}{
		{name: "maxed out", vehicle: specVehicle(60, 500, 7, 40, 12, 9), profile: profile.Neutral(), want: 100},
		{name: "half everywhere", vehicle: specVehicle(25, 200, 5, 0, 5, 4), profile: profile.Neutral(), want: 50},
		{name: "missing dimensions are neutral", vehicle: specVehicle(25, 200, 5, 0, 5, 4), profile: profile.Lifestyle{}, want: 50},
		{name: "zero weights", vehicle: specVehicle(60, 500, 7, 40, 12, 9), profile: zeroProfile(), want: NoPreferenceScore},
		{
			name:    "only performance matters",
			vehicle: specVehicle(50, 100, 8, 40, 10, 8),
			profile: onlyPerformance(),
			want:    25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FeatureQuality(tt.vehicle, tt.profile); !almostEqual(got, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func zeroProfile() profile.Lifestyle {
	l := profile.Lifestyle{}
	for _, d := range profile.Dimensions {
		l[d] = 0
	}
	return l
}

func onlyPerformance() profile.Lifestyle {
	l := zeroProfile()
	l[profile.Performance] = 10
	return l
}

func valueVehicle(price, mpg, insurance, maintenance float64, features int) *catalog.Vehicle {
	return &catalog.Vehicle{
		BasicInfo:      catalog.BasicInfo{MSRP: price},
		Specifications: catalog.Specifications{MPGCombined: mpg},
		Features:       catalog.Features{Comfort: make([]string, features)},
		Costs:          catalog.Costs{InsuranceAnnual: insurance, MaintenanceAnnual: maintenance},
	}
}

func TestValue(t *testing.T) {
	t.Parallel()

	// feature 100, cost efficiency 100-(2050-2000)/50 = 99, mpg 100
	got := Value(valueVehicle(10000, 50, 500, 500, 10))
	if !almostEqual(got, 40+99*0.3+30) {
		t.Fatalf("unexpected value score %v", got)
	}
}

func TestValueHasNoCeiling(t *testing.T) {
	t.Parallel()

	// annual cost 1050 -> cost efficiency 119
	got := Value(valueVehicle(10000, 50, 0, 0, 10))
	if got <= 100 {
		t.Fatalf("expected value above 100, got %v", got)
	}
	if !almostEqual(got, 40+119*0.3+30) {
		t.Fatalf("unexpected value score %v", got)
	}
}

func TestValueGuardsDegenerateInputs(t *testing.T) {
	t.Parallel()

	for _, v := range []*catalog.Vehicle{
		valueVehicle(0, 30, 1500, 500, 0),
		valueVehicle(30000, 0, 1500, 500, 10),
		valueVehicle(-1, -1, 0, 0, 0),
	} {
		got := Value(v)
		if math.IsNaN(got) || math.IsInf(got, 0) || got < 0 {
			t.Fatalf("expected a finite non-negative score, got %v for %+v", got, v)
		}
	}
}

func TestCompositeAndRounding(t *testing.T) {
	t.Parallel()

	w := DefaultWeights()
	if err := w.Validate(); err != nil {
		t.Fatalf("default weights must be valid: %v", err)
	}
	b := Breakdown{LifestyleMatch: 100, BudgetFit: 100, FeatureQuality: 100, ValueScore: 100}
	if got := w.Composite(b); !almostEqual(got, 100) {
		t.Fatalf("expected 100, got %v", got)
	}

	b = Breakdown{LifestyleMatch: 90, BudgetFit: 85, FeatureQuality: 50, ValueScore: 0}
	if got := w.Composite(b); !almostEqual(got, 36+25.5+10) {
		t.Fatalf("unexpected composite %v", got)
	}

	r := Breakdown{LifestyleMatch: 12.3456, BudgetFit: 99.994, FeatureQuality: 0.001, ValueScore: 50}.Rounded()
	if r.LifestyleMatch != 12.35 || r.BudgetFit != 99.99 || r.FeatureQuality != 0 || r.ValueScore != 50 {
		t.Fatalf("unexpected rounding: %+v", r)
	}
}

func TestWeightsValidate(t *testing.T) {
	t.Parallel()

	if err := (Weights{Lifestyle: -0.1, Budget: 1}).Validate(); err == nil {
		t.Fatalf("expected error for negative weight")
	}
	if err := (Weights{}).Validate(); err == nil {
		t.Fatalf("expected error for all-zero weights")
	}
}

func TestAnnualRunningCost(t *testing.T) {
	t.Parallel()

	v := valueVehicle(30000, 30, 1200, 400, 0)
	if got := AnnualRunningCost(v); !almostEqual(got, 1200+400+1750) {
		t.Fatalf("unexpected running cost %v", got)
	}
	if got := AnnualFuelCost(valueVehicle(1, 0, 0, 0, 0)); got != 0 {
		t.Fatalf("expected no fuel cost without mpg, got %v", got)
	}
}
