package filtering

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/carmatch/internal/catalog"
)

// Filter represents a single hard constraint applied to the catalog.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate() error
	Apply(ctx context.Context, c *catalog.Catalog) (*catalog.Catalog, Step, error)
}

// Step describes the result of executing a filtering step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string            `json:"name"`
	Enabled bool              `json:"enabled"`
	Reason  string            `json:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// statusProvider is implemented by filters that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// Filtering runs filters sequentially. Every step receives the output of the
// previous one, so the result is the conjunction of all enabled filters.
type Filtering struct {
	steps  []Filter
	logger *zap.Logger
}

func New(steps []Filter, logger *zap.Logger) *Filtering {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Filtering{steps: steps, logger: logger}
}

// RunFilters validates every enabled filter and then applies them in order.
// The input catalog is never modified.
func (f *Filtering) RunFilters(ctx context.Context, c *catalog.Catalog) (*catalog.Catalog, error) {
	for _, step := range f.steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	if c == nil {
		c = &catalog.Catalog{}
	}

	for _, step := range f.steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !step.IsEnabled() {
			f.logger.Debug("filter disabled", zap.String("name", step.Name()))
			continue
		}

		next, info, err := step.Apply(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		f.logger.Debug("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)
		if ce := f.logger.Check(zap.DebugLevel, "excluding vehicles"); ce != nil && info.Dropped > 0 {
			ce.Write(
				zap.String("name", step.Name()),
				zap.Strings("excluded_vehicles", excludedIDs(c, next)),
			)
		}

		c = next
	}

	return c, nil
}

// Describe returns status entries for the configured filters.
func (f *Filtering) Describe() []Status {
	return Describe(f.steps)
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}

// toggle carries the enabled state shared by all filters.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

// keep applies a predicate and reports the step counters.
func keep(c *catalog.Catalog, pred func(*catalog.Vehicle) bool) (*catalog.Catalog, Step) {
	initial := c.Len()
	kept, excluded := c.Keep(pred)
	return kept, Step{Initial: initial, Dropped: len(excluded), Left: kept.Len()}
}

func excludedIDs(before, after *catalog.Catalog) []string {
	left := make(map[string]struct{}, after.Len())
	for _, id := range after.IDs() {
		left[id] = struct{}{}
	}
	var excluded []string
	for _, id := range before.IDs() {
		if _, ok := left[id]; !ok {
			excluded = append(excluded, id)
		}
	}
	return excluded
}
