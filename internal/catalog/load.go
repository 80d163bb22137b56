package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// Defaults applied to optional numeric fields missing from catalog records.
const (
	DefaultMPGCombined       = 25
	DefaultHorsepower        = 150
	DefaultSeatingCapacity   = 5
	DefaultCargoSpace        = 15
	DefaultInsuranceAnnual   = 1500
	DefaultMaintenanceAnnual = 500
)

type catalogFile struct {
	Cars []map[string]any `json:"cars"`
}

func newVehicle() *Vehicle {
	return &Vehicle{
		Specifications: Specifications{
			MPGCombined:     DefaultMPGCombined,
			Horsepower:      DefaultHorsepower,
			SeatingCapacity: DefaultSeatingCapacity,
			CargoSpace:      DefaultCargoSpace,
		},
		Costs: Costs{
			InsuranceAnnual:   DefaultInsuranceAnnual,
			MaintenanceAnnual: DefaultMaintenanceAnnual,
		},
	}
}

// Load reads a catalog file of the form {"cars": [...]}.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %q: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes catalog JSON. Records start from a vehicle filled with the
// defaults so that fields absent from the document keep their default value.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	c := &Catalog{Items: make([]*Vehicle, 0, len(file.Cars))}
	for i, raw := range file.Cars {
		vehicle := newVehicle()
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:  vehicle,
			TagName: "mapstructure",
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(raw); err != nil {
			return nil, fmt.Errorf("decoding car #%d: %w", i, err)
		}
		c.Items = append(c.Items, vehicle)
	}

	return c, nil
}

// LoadOrEmpty loads the catalog and falls back to an empty one when it cannot
// be read, so callers keep running with no candidates.
func LoadOrEmpty(path string, logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}

	c, err := Load(path)
	if err != nil {
		logger.Warn("catalog is unavailable, continuing with an empty one",
			zap.String("path", path),
			zap.Error(err),
		)
		return &Catalog{}
	}

	logger.Info("catalog loaded", zap.String("path", path), zap.Int("count", c.Len()))
	return c
}
