package scoring

import "math"

// NoBudgetScore is the affinity used when no budget is known.
const NoBudgetScore = 85

// BudgetAffinity scores how well price fits budget on a piecewise-linear,
// non-increasing curve through (1.0, 100), (1.10, 85), (1.20, 60), (1.30, 30)
// where the x axis is price/budget. Vehicles under budget lose up to 5 points
// for being far cheaper than requested. A budget that is not a positive
// number yields NoBudgetScore.
func BudgetAffinity(price, budget float64) float64 {
	if math.IsNaN(budget) || budget <= 0 {
		return NoBudgetScore
	}

	ratio := price / budget
	switch {
	case ratio <= 1.0:
		return 100 - (1.0-ratio)*5
	case ratio <= 1.10:
		return 100 - (ratio-1.0)*150
	case ratio <= 1.20:
		return 100 - (15 + (ratio-1.10)*250)
	case ratio <= 1.30:
		return 100 - (40 + (ratio-1.20)*300)
	default:
		return math.Max(0, 30-(ratio-1.30)*50)
	}
}
