package scoring

import (
	"math"

	"github.com/spigell/carmatch/internal/profile"
)

// Similarity computes an importance-weighted cosine similarity between a
// vehicle's lifestyle scores and a user profile.
type Similarity struct {
	importance profile.Importance
}

func NewSimilarity(importance profile.Importance) *Similarity {
	if importance == nil {
		importance = profile.DefaultImportance()
	}
	return &Similarity{importance: importance}
}

// Score returns the similarity scaled to [0,100] for positive inputs. Only
// dimensions present on both sides contribute. When either side has zero
// magnitude the score is 0.
func (s *Similarity) Score(vehicle, user profile.Lifestyle) float64 {
	var dot, vehicleMag, userMag float64

	for _, d := range user.Keys() {
		v, ok := vehicle[d]
		if !ok {
			continue
		}
		w := s.importance.Weight(d)
		vv := v * w
		uv := user[d] * w

		dot += vv * uv
		vehicleMag += vv * vv
		userMag += uv * uv
	}

	if vehicleMag <= 0 || userMag <= 0 {
		return 0
	}
	return dot / (math.Sqrt(vehicleMag) * math.Sqrt(userMag)) * 100
}
