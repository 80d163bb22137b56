package filtering

import (
	"context"
	"strings"

	"github.com/spigell/carmatch/internal/catalog"
)

type bodyTypeFilter struct {
	toggle
	bodyType string
}

// NewBodyType creates a filter that keeps vehicles of the given body type.
// Comparison is case-insensitive. An empty body type disables the filter.
func NewBodyType(bodyType string) Filter {
	f := &bodyTypeFilter{bodyType: strings.TrimSpace(bodyType)}
	if f.bodyType == "" {
		f.Disable(reasonNotRequested)
	}
	return f
}

func (f *bodyTypeFilter) Name() string { return "body_type" }

func (f *bodyTypeFilter) Validate() error { return nil }

func (f *bodyTypeFilter) Apply(_ context.Context, c *catalog.Catalog) (*catalog.Catalog, Step, error) {
	kept, step := keep(c, func(v *catalog.Vehicle) bool {
		return strings.EqualFold(v.BasicInfo.BodyType, f.bodyType)
	})
	return kept, step, nil
}

func (f *bodyTypeFilter) Status() Status {
	details := map[string]string{}
	if f.bodyType != "" {
		details["body_type"] = strings.ToUpper(f.bodyType)
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
