package scoring

import (
	"math"

	"github.com/spigell/carmatch/internal/catalog"
)

// Assumptions behind the annual running cost estimate.
const (
	AnnualMiles     = 15000
	FuelPricePerGal = 3.50
)

// Value rates value for money from feature density, running cost and fuel
// economy relative to price.
//
// The cost-efficiency part has a floor of 0 but no ceiling, so very cheap to
// run vehicles can push the total above 100.
func Value(v *catalog.Vehicle) float64 {
	price := v.BasicInfo.MSRP
	mpg := v.Specifications.MPGCombined

	var featureScore, mpgScore float64
	if price > 0 {
		tens := price / 10000
		featureScore = min(100, float64(v.Features.Total())/tens*15)
		if mpg > 0 {
			mpgScore = min(100, mpg/tens*20)
		}
	}

	costEfficiency := 0.0
	if mpg > 0 {
		annual := AnnualRunningCost(v)
		costEfficiency = math.Max(0, 100-(annual-2000)/50)
	}

	return featureScore*0.4 + costEfficiency*0.3 + mpgScore*0.3
}

// AnnualFuelCost estimates yearly fuel spending. It is 0 when mpg is unknown.
func AnnualFuelCost(v *catalog.Vehicle) float64 {
	mpg := v.Specifications.MPGCombined
	if mpg <= 0 {
		return 0
	}
	return AnnualMiles / mpg * FuelPricePerGal
}

// AnnualRunningCost is insurance, maintenance and fuel for one year.
func AnnualRunningCost(v *catalog.Vehicle) float64 {
	return v.Costs.InsuranceAnnual + v.Costs.MaintenanceAnnual + AnnualFuelCost(v)
}
