package filtering

import (
	"context"
	"fmt"
	"strings"

	"github.com/spigell/carmatch/internal/catalog"
	"github.com/spigell/carmatch/internal/preferences"
)

type fuelFilter struct {
	toggle
	preference string
}

// NewFuelPreference keeps hybrids or electric vehicles based on the engine
// description. An empty preference disables the filter.
func NewFuelPreference(preference string) Filter {
	f := &fuelFilter{preference: strings.ToLower(strings.TrimSpace(preference))}
	if f.preference == "" {
		f.Disable(reasonNotRequested)
	}
	return f
}

func (f *fuelFilter) Name() string { return "fuel_preference" }

func (f *fuelFilter) Validate() error {
	switch f.preference {
	case preferences.FuelHybrid, preferences.FuelElectric:
		return nil
	default:
		return fmt.Errorf("unsupported fuel preference %q", f.preference)
	}
}

func (f *fuelFilter) Apply(_ context.Context, c *catalog.Catalog) (*catalog.Catalog, Step, error) {
	kept, step := keep(c, func(v *catalog.Vehicle) bool {
		engine := strings.ToLower(v.Specifications.Engine)
		switch f.preference {
		case preferences.FuelHybrid:
			return strings.Contains(engine, "hybrid")
		case preferences.FuelElectric:
			return strings.Contains(engine, "electric") || strings.Contains(engine, "ev")
		}
		return true
	})
	return kept, step, nil
}

func (f *fuelFilter) Status() Status {
	details := map[string]string{}
	if f.preference != "" {
		details["fuel_preference"] = f.preference
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type drivetrainFilter struct {
	toggle
	drivetrain string
}

// NewDrivetrain keeps vehicles whose drivetrain contains the requested one,
// ignoring case. An empty drivetrain disables the filter.
func NewDrivetrain(drivetrain string) Filter {
	f := &drivetrainFilter{drivetrain: strings.ToUpper(strings.TrimSpace(drivetrain))}
	if f.drivetrain == "" {
		f.Disable(reasonNotRequested)
	}
	return f
}

func (f *drivetrainFilter) Name() string { return "drivetrain" }

func (f *drivetrainFilter) Validate() error { return nil }

func (f *drivetrainFilter) Apply(_ context.Context, c *catalog.Catalog) (*catalog.Catalog, Step, error) {
	kept, step := keep(c, func(v *catalog.Vehicle) bool {
		return strings.Contains(strings.ToUpper(v.Specifications.Drivetrain), f.drivetrain)
	})
	return kept, step, nil
}

func (f *drivetrainFilter) Status() Status {
	details := map[string]string{}
	if f.drivetrain != "" {
		details["drivetrain"] = f.drivetrain
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
