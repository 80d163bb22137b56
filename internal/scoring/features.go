package scoring

import (
	"github.com/spigell/carmatch/internal/catalog"
	"github.com/spigell/carmatch/internal/profile"
)

// Normalization ceilings: a vehicle reaching these values scores 100 on the axis.
const (
	fullMPG            = 50
	fullHorsepower     = 400
	fullSafetyFeatures = 10
	fullTechFeatures   = 8

	// NoPreferenceScore is returned when every axis weight is zero.
	NoPreferenceScore = 50
)

// FeatureQuality rates the vehicle's specifications on five axes, each
// weighted by how much the profile cares about it. Missing dimensions count as
// neutral.
func FeatureQuality(v *catalog.Vehicle, l profile.Lifestyle) float64 {
	weight := func(d profile.Dimension) float64 {
		return l.Get(d, profile.NeutralScore) / 10
	}

	specs := v.Specifications
	var score, weightSum float64

	mpgWeight := (weight(profile.EcoConscious) + weight(profile.BudgetConscious) + weight(profile.Commuter)) / 3
	score += min(100, specs.MPGCombined/fullMPG*100) * mpgWeight
	weightSum += mpgWeight

	perfWeight := weight(profile.Performance)
	score += min(100, specs.Horsepower/fullHorsepower*100) * perfWeight
	weightSum += perfWeight

	familyWeight := weight(profile.FamilyFriendly)
	space := float64(specs.SeatingCapacity)*10 + specs.CargoSpace*2
	score += min(100, space) * familyWeight
	weightSum += familyWeight

	safetyWeight := weight(profile.SafetyFocused)
	score += min(100, float64(len(v.Features.Safety))/fullSafetyFeatures*100) * safetyWeight
	weightSum += safetyWeight

	techWeight := weight(profile.TechEnthusiast)
	score += min(100, float64(len(v.Features.Technology))/fullTechFeatures*100) * techWeight
	weightSum += techWeight

	if weightSum <= 0 {
		return NoPreferenceScore
	}
	return score / weightSum
}
