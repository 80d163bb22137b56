package preferences

import (
	"github.com/spigell/carmatch/internal/profile"
)

// Wire names of the conversation-derived filters.
const (
	KeyBodyType       = "body_type"
	KeyMinMPG         = "min_mpg"
	KeyMinHorsepower  = "min_horsepower"
	KeyMinSeating     = "min_seating"
	KeyFuelPreference = "fuel_preference"
	KeyDrivetrain     = "drivetrain"
	KeyMaxPrice       = "max_price"
)

const (
	FuelHybrid   = "hybrid"
	FuelElectric = "electric"
)

// Filters are hard constraints derived from the conversation.
// Zero values mean the filter is inactive.
type Filters struct {
	BodyType       string  `json:"body_type,omitempty" mapstructure:"body_type"`
	MinMPG         float64 `json:"min_mpg,omitempty" mapstructure:"min_mpg"`
	MinHorsepower  float64 `json:"min_horsepower,omitempty" mapstructure:"min_horsepower"`
	MinSeating     int     `json:"min_seating,omitempty" mapstructure:"min_seating"`
	FuelPreference string  `json:"fuel_preference,omitempty" mapstructure:"fuel_preference"`
	Drivetrain     string  `json:"drivetrain,omitempty" mapstructure:"drivetrain"`
	MaxPrice       float64 `json:"max_price,omitempty" mapstructure:"max_price"`
}

// IsZero reports whether no filter is active.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Overlay returns f with every non-zero field of other written over it.
func (f Filters) Overlay(other Filters) Filters {
	if other.BodyType != "" {
		f.BodyType = other.BodyType
	}
	if other.MinMPG != 0 {
		f.MinMPG = other.MinMPG
	}
	if other.MinHorsepower != 0 {
		f.MinHorsepower = other.MinHorsepower
	}
	if other.MinSeating != 0 {
		f.MinSeating = other.MinSeating
	}
	if other.FuelPreference != "" {
		f.FuelPreference = other.FuelPreference
	}
	if other.Drivetrain != "" {
		f.Drivetrain = other.Drivetrain
	}
	if other.MaxPrice != 0 {
		f.MaxPrice = other.MaxPrice
	}
	return f
}

// Map renders the active filters under their wire names.
func (f Filters) Map() map[string]any {
	m := map[string]any{}
	if f.BodyType != "" {
		m[KeyBodyType] = f.BodyType
	}
	if f.MinMPG != 0 {
		m[KeyMinMPG] = f.MinMPG
	}
	if f.MinHorsepower != 0 {
		m[KeyMinHorsepower] = f.MinHorsepower
	}
	if f.MinSeating != 0 {
		m[KeyMinSeating] = f.MinSeating
	}
	if f.FuelPreference != "" {
		m[KeyFuelPreference] = f.FuelPreference
	}
	if f.Drivetrain != "" {
		m[KeyDrivetrain] = f.Drivetrain
	}
	if f.MaxPrice != 0 {
		m[KeyMaxPrice] = f.MaxPrice
	}
	return m
}

// Preferences is what the extractor infers from a conversation.
type Preferences struct {
	Filters Filters                       `json:"filters"`
	Boosts  map[profile.Dimension]float64 `json:"lifestyle_boosts"`
}

func empty() Preferences {
	return Preferences{Boosts: map[profile.Dimension]float64{}}
}
