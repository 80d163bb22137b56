package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spigell/carmatch/internal/profile"
)

// Catalog is an ordered, read-only collection of vehicles.
// Selections made from a Catalog share the *Vehicle pointers, so vehicles must
// never be modified after loading.
type Catalog struct {
	Items []*Vehicle `json:"cars"`
}

type Vehicle struct {
	ID              string            `json:"id" mapstructure:"id"`
	BasicInfo       BasicInfo         `json:"basic_info" mapstructure:"basic_info"`
	Specifications  Specifications    `json:"specifications" mapstructure:"specifications"`
	Features        Features          `json:"features" mapstructure:"features"`
	LifestyleScores profile.Lifestyle `json:"lifestyle_scores" mapstructure:"lifestyle_scores"`
	Costs           Costs             `json:"costs" mapstructure:"costs"`
	Pros            []string          `json:"pros" mapstructure:"pros"`
	Cons            []string          `json:"cons" mapstructure:"cons"`
}

type BasicInfo struct {
	Make     string  `json:"make" mapstructure:"make"`
	Model    string  `json:"model" mapstructure:"model"`
	Year     int     `json:"year" mapstructure:"year"`
	BodyType string  `json:"body_type" mapstructure:"body_type"`
	MSRP     float64 `json:"msrp" mapstructure:"msrp"`
	ImageURL string  `json:"image_url" mapstructure:"image_url"`
}

type Specifications struct {
	MPGCombined     float64 `json:"mpg_combined" mapstructure:"mpg_combined"`
	Horsepower      float64 `json:"horsepower" mapstructure:"horsepower"`
	SeatingCapacity int     `json:"seating_capacity" mapstructure:"seating_capacity"`
	CargoSpace      float64 `json:"cargo_space" mapstructure:"cargo_space"`
	Engine          string  `json:"engine" mapstructure:"engine"`
	Drivetrain      string  `json:"drivetrain" mapstructure:"drivetrain"`
}

type Features struct {
	Safety        []string `json:"safety" mapstructure:"safety"`
	Technology    []string `json:"technology" mapstructure:"technology"`
	Comfort       []string `json:"comfort" mapstructure:"comfort"`
	Entertainment []string `json:"entertainment" mapstructure:"entertainment"`
}

// Total returns the number of features across all groups.
func (f Features) Total() int {
	return len(f.Safety) + len(f.Technology) + len(f.Comfort) + len(f.Entertainment)
}

type Costs struct {
	InsuranceAnnual   float64 `json:"insurance_annual_estimate" mapstructure:"insurance_annual_estimate"`
	MaintenanceAnnual float64 `json:"maintenance_annual_estimate" mapstructure:"maintenance_annual_estimate"`
}

// Name returns "Make Model".
func (v *Vehicle) Name() string {
	return fmt.Sprintf("%s %s", v.BasicInfo.Make, v.BasicInfo.Model)
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}

// FindByID returns the vehicle with the given id or nil.
func (c *Catalog) FindByID(id string) *Vehicle {
	if c == nil {
		return nil
	}
	for _, vehicle := range c.Items {
		if vehicle.ID == id {
			return vehicle
		}
	}
	return nil
}

// IDs returns vehicle ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, c.Len())
	if c == nil {
		return ids
	}
	for _, vehicle := range c.Items {
		ids = append(ids, vehicle.ID)
	}
	return ids
}

// Keep returns a new catalog holding the vehicles accepted by keep, in their
// original order, together with the ids of the rejected ones. The receiver is
// left untouched.
func (c *Catalog) Keep(keep func(*Vehicle) bool) (*Catalog, []string) {
	kept := &Catalog{Items: make([]*Vehicle, 0, c.Len())}
	var excluded []string
	if c == nil {
		return kept, excluded
	}
	for _, vehicle := range c.Items {
		if keep(vehicle) {
			kept.Items = append(kept.Items, vehicle)
			continue
		}
		excluded = append(excluded, vehicle.ID)
	}
	return kept, excluded
}

// DumpToTmpFile writes v as indented JSON to a new temporary file and returns
// its name.
func DumpToTmpFile(pattern string, v any) (string, error) {
	file, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return file.Name(), nil
}
