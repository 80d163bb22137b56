package profile

import (
	"sort"
	"strings"
)

// Dimension is a single lifestyle preference axis.
type Dimension string

const (
	FamilyFriendly  Dimension = "family_friendly"
	Adventure       Dimension = "adventure"
	EcoConscious    Dimension = "eco_conscious"
	Luxury          Dimension = "luxury"
	Performance     Dimension = "performance"
	BudgetConscious Dimension = "budget_conscious"
	CityDriving     Dimension = "city_driving"
	Commuter        Dimension = "commuter"
	TechEnthusiast  Dimension = "tech_enthusiast"
	SafetyFocused   Dimension = "safety_focused"
)

const (
	MinScore     = 1
	MaxScore     = 10
	NeutralScore = 5
)

// Dimensions lists every known dimension in canonical order.
var Dimensions = []Dimension{
	FamilyFriendly,
	Adventure,
	EcoConscious,
	Luxury,
	Performance,
	BudgetConscious,
	CityDriving,
	Commuter,
	TechEnthusiast,
	SafetyFocused,
}

// Title renders the dimension the way it is shown to people, e.g. "Family Friendly".
func (d Dimension) Title() string {
	words := strings.Split(string(d), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Lifestyle maps dimensions to scores nominally in [1,10].
// A Lifestyle handed to the engine is never modified in place.
type Lifestyle map[Dimension]float64

// Neutral returns a profile with every dimension set to the neutral score.
func Neutral() Lifestyle {
	l := make(Lifestyle, len(Dimensions))
	for _, d := range Dimensions {
		l[d] = NeutralScore
	}
	return l
}

// Clone returns an independent copy.
func (l Lifestyle) Clone() Lifestyle {
	if l == nil {
		return nil
	}
	c := make(Lifestyle, len(l))
	for k, v := range l {
		c[k] = v
	}
	return c
}

// Get returns the score for d or fallback when the dimension is missing.
func (l Lifestyle) Get(d Dimension, fallback float64) float64 {
	if v, ok := l[d]; ok {
		return v
	}
	return fallback
}

// Keys returns the dimensions present in l: canonical ones first, in canonical
// order, then unknown ones sorted by name. Iteration in this order keeps
// floating-point accumulation reproducible across calls.
func (l Lifestyle) Keys() []Dimension {
	keys := make([]Dimension, 0, len(l))
	known := make(map[Dimension]struct{}, len(Dimensions))
	for _, d := range Dimensions {
		known[d] = struct{}{}
		if _, ok := l[d]; ok {
			keys = append(keys, d)
		}
	}

	var extra []Dimension
	for d := range l {
		if _, ok := known[d]; !ok {
			extra = append(extra, d)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })

	return append(keys, extra...)
}

// Adjust returns a new profile with boosts added to dimensions already present
// in l. Results are capped at MaxScore; no lower bound is applied.
func (l Lifestyle) Adjust(boosts map[Dimension]float64) Lifestyle {
	adjusted := l.Clone()
	if adjusted == nil {
		adjusted = Lifestyle{}
	}
	for d, boost := range boosts {
		current, ok := adjusted[d]
		if !ok {
			continue
		}
		adjusted[d] = min(MaxScore, current+boost)
	}
	return adjusted
}

// Top returns up to n dimensions with the highest scores. Ties keep the order
// of Keys.
func (l Lifestyle) Top(n int) []Dimension {
	keys := l.Keys()
	sort.SliceStable(keys, func(i, j int) bool { return l[keys[i]] > l[keys[j]] })
	if n >= 0 && len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// Importance weights dimensions for similarity scoring.
type Importance map[Dimension]float64

// DefaultImportance returns the stock weighting.
func DefaultImportance() Importance {
	return Importance{
		SafetyFocused:   1.2,
		BudgetConscious: 1.15,
		EcoConscious:    1.1,
		FamilyFriendly:  1.1,
		Commuter:        1.0,
		Performance:     0.95,
		TechEnthusiast:  0.9,
		Luxury:          0.85,
		CityDriving:     1.0,
		Adventure:       0.9,
	}
}

// Weight returns the importance of d, 1.0 when it is not configured.
func (i Importance) Weight(d Dimension) float64 {
	if w, ok := i[d]; ok {
		return w
	}
	return 1.0
}

// Merge returns a copy of i with overrides applied on top.
func (i Importance) Merge(overrides map[string]float64) Importance {
	merged := make(Importance, len(i)+len(overrides))
	for d, w := range i {
		merged[d] = w
	}
	for name, w := range overrides {
		name = strings.TrimSpace(strings.ToLower(name))
		if name == "" {
			continue
		}
		merged[Dimension(name)] = w
	}
	return merged
}
