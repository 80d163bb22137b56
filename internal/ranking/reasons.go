package ranking

import (
	"fmt"

	"github.com/spigell/carmatch/internal/catalog"
	"github.com/spigell/carmatch/internal/profile"
)

const (
	maxReasons     = 4
	topPriorities  = 3
	highPriority   = 7
	valuePrice     = 30000
	premiumPrice   = 50000
	efficientMPG   = 35
	powerfulHP     = 300
	safetyFeatures = 5
)

// Reasons explains a match in short phrases, at most four of them.
func Reasons(v *catalog.Vehicle, l profile.Lifestyle) []string {
	reasons := make([]string, 0, maxReasons+3)

	for _, d := range l.Top(topPriorities) {
		if l[d] < highPriority {
			continue
		}
		if v.LifestyleScores.Get(d, profile.NeutralScore) >= highPriority {
			reasons = append(reasons, fmt.Sprintf("Strong %s match", d.Title()))
		}
	}

	switch price := v.BasicInfo.MSRP; {
	case price < valuePrice:
		reasons = append(reasons, "Great value")
	case price > premiumPrice:
		reasons = append(reasons, "Premium features")
	}

	if v.Specifications.MPGCombined > efficientMPG {
		reasons = append(reasons, "Excellent fuel economy")
	}
	if v.Specifications.Horsepower > powerfulHP {
		reasons = append(reasons, "High performance")
	}
	if len(v.Features.Safety) > safetyFeatures {
		reasons = append(reasons, "Advanced safety tech")
	}

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return reasons
}
