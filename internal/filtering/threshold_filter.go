package filtering

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spigell/carmatch/internal/catalog"
)

const reasonNotRequested = "not requested"

type bound int

const (
	lowerBound bound = iota
	upperBound
)

// thresholdFilter keeps vehicles whose metric is within a numeric bound.
type thresholdFilter struct {
	toggle
	name   string
	limit  float64
	bound  bound
	metric func(*catalog.Vehicle) float64
}

func newThreshold(name string, limit float64, b bound, metric func(*catalog.Vehicle) float64) Filter {
	f := &thresholdFilter{name: name, limit: limit, bound: b, metric: metric}
	if limit == 0 {
		f.Disable(reasonNotRequested)
	}
	return f
}

// NewMinMPG keeps vehicles with a combined mpg of at least limit.
func NewMinMPG(limit float64) Filter {
	return newThreshold("min_mpg", limit, lowerBound, func(v *catalog.Vehicle) float64 {
		return v.Specifications.MPGCombined
	})
}

// NewMinHorsepower keeps vehicles with at least limit horsepower.
func NewMinHorsepower(limit float64) Filter {
	return newThreshold("min_horsepower", limit, lowerBound, func(v *catalog.Vehicle) float64 {
		return v.Specifications.Horsepower
	})
}

// NewMinSeating keeps vehicles seating at least limit people.
func NewMinSeating(limit int) Filter {
	return newThreshold("min_seating", float64(limit), lowerBound, func(v *catalog.Vehicle) float64 {
		return float64(v.Specifications.SeatingCapacity)
	})
}

// NewMaxPrice keeps vehicles whose MSRP does not exceed limit.
func NewMaxPrice(limit float64) Filter {
	return newThreshold("max_price", limit, upperBound, func(v *catalog.Vehicle) float64 {
		return v.BasicInfo.MSRP
	})
}

func (f *thresholdFilter) Name() string { return f.name }

func (f *thresholdFilter) Validate() error {
	if f.limit < 0 {
		return fmt.Errorf("limit must not be negative, got %v", f.limit)
	}
	return nil
}

func (f *thresholdFilter) Apply(_ context.Context, c *catalog.Catalog) (*catalog.Catalog, Step, error) {
	kept, step := keep(c, func(v *catalog.Vehicle) bool {
		if f.bound == upperBound {
			return f.metric(v) <= f.limit
		}
		return f.metric(v) >= f.limit
	})
	return kept, step, nil
}

func (f *thresholdFilter) Status() Status {
	details := map[string]string{}
	if f.limit != 0 {
		details["limit"] = strconv.FormatFloat(f.limit, 'f', -1, 64)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
