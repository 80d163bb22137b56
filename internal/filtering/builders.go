package filtering

import (
	"context"

	"go.uber.org/zap"

	"github.com/spigell/carmatch/internal/catalog"
	"github.com/spigell/carmatch/internal/preferences"
)

// FromPreferences returns the conversation filters in evaluation order.
// Inactive filters are present but disabled.
func FromPreferences(f preferences.Filters) []Filter {
	return []Filter{
		NewBodyType(f.BodyType),
		NewMinMPG(f.MinMPG),
		NewMinHorsepower(f.MinHorsepower),
		NewMinSeating(f.MinSeating),
		NewFuelPreference(f.FuelPreference),
		NewDrivetrain(f.Drivetrain),
		NewMaxPrice(f.MaxPrice),
	}
}

// Criteria is an explicit catalog query. Zero values are unset.
type Criteria struct {
	BodyType   string  `json:"body_type" mapstructure:"body-type"`
	MinMPG     float64 `json:"min_mpg" mapstructure:"min-mpg"`
	MaxPrice   float64 `json:"max_price" mapstructure:"max-price"`
	MinSeating int     `json:"min_seating" mapstructure:"min-seating"`
}

func (c Criteria) Filters() []Filter {
	return []Filter{
		NewBodyType(c.BodyType),
		NewMinMPG(c.MinMPG),
		NewMaxPrice(c.MaxPrice),
		NewMinSeating(c.MinSeating),
	}
}

// ByCriteria returns the vehicles matching every set criterion, in catalog order.
func ByCriteria(ctx context.Context, c *catalog.Catalog, criteria Criteria, logger *zap.Logger) (*catalog.Catalog, error) {
	return New(criteria.Filters(), logger).RunFilters(ctx, c)
}
