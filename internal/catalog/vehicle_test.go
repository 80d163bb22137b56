package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/carmatch/internal/profile"
)

const fixture = `{
  "cars": [
    {
      "id": "rav4-hybrid",
      "basic_info": {"make": "Toyota", "model": "RAV4 Hybrid", "year": 2024, "body_type": "SUV", "msrp": 33000, "image_url": "rav4.png"},
      "specifications": {"mpg_combined": 40, "horsepower": 219, "seating_capacity": 5, "cargo_space": 37.6, "engine": "2.5L Hybrid", "drivetrain": "AWD"},
      "features": {"safety": ["TSS 2.5+"], "technology": ["CarPlay"], "comfort": [], "entertainment": []},
      "lifestyle_scores": {"family_friendly": 9, "eco_conscious": 8},
      "costs": {"insurance_annual_estimate": 1400, "maintenance_annual_estimate": 400},
      "pros": ["Efficient"],
      "cons": ["Noisy engine"]
    },
    {
      "id": "bare",
      "basic_info": {"make": "Acme", "model": "Basic", "body_type": "Sedan", "msrp": 20000},
      "specifications": {"engine": "1.5L"}
    }
  ]
}`

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cars.json")
	if err := os.WriteFile(path, []byte(fixture), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Parallel()

	c, err := Load(writeFixture(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 vehicles, got %d", c.Len())
	}

	rav4 := c.Items[0]
	if rav4.Specifications.MPGCombined != 40 || rav4.Specifications.SeatingCapacity != 5 {
		t.Fatalf("unexpected specs: %+v", rav4.Specifications)
	}
	if rav4.LifestyleScores[profile.FamilyFriendly] != 9 {
		t.Fatalf("unexpected lifestyle scores: %v", rav4.LifestyleScores)
	}
	if rav4.BasicInfo.Year != 2024 {
		t.Fatalf("unexpected year: %d", rav4.BasicInfo.Year)
	}

	bare := c.Items[1]
	specs := bare.Specifications
	if specs.MPGCombined != DefaultMPGCombined || specs.Horsepower != DefaultHorsepower ||
		specs.SeatingCapacity != DefaultSeatingCapacity || specs.CargoSpace != DefaultCargoSpace {
		t.Fatalf("expected default specs, got %+v", specs)
	}
	if bare.Costs.InsuranceAnnual != DefaultInsuranceAnnual || bare.Costs.MaintenanceAnnual != DefaultMaintenanceAnnual {
		t.Fatalf("expected default costs, got %+v", bare.Costs)
	}
	if specs.Engine != "1.5L" {
		t.Fatalf("expected engine from document, got %q", specs.Engine)
	}
}

func TestLoadOrEmpty(t *testing.T) {
	t.Parallel()

	core, observed := observer.New(zapcore.WarnLevel)
	c := LoadOrEmpty(filepath.Join(t.TempDir(), "missing.json"), zap.New(core))
	if c == nil || c.Len() != 0 {
		t.Fatalf("expected empty catalog, got %+v", c)
	}
	if observed.Len() != 1 {
		t.Fatalf("expected one warning, got %d", observed.Len())
	}

	if got := LoadOrEmpty(writeFixture(t), nil); got.Len() != 2 {
		t.Fatalf("expected loaded catalog, got %d items", got.Len())
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	t.Parallel()

	if _, err := Parse([]byte("{")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestFindByID(t *testing.T) {
	t.Parallel()

	c, err := Parse([]byte(fixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v := c.FindByID("bare"); v == nil || v.Name() != "Acme Basic" {
		t.Fatalf("unexpected lookup result: %+v", v)
	}
	if v := c.FindByID("nope"); v != nil {
		t.Fatalf("expected nil for unknown id")
	}

	var empty *Catalog
	if empty.FindByID("bare") != nil || empty.Len() != 0 {
		t.Fatalf("nil catalog must behave as empty")
	}
}

func TestKeepPreservesOrderAndSource(t *testing.T) {
	t.Parallel()

	c := &Catalog{Items: []*Vehicle{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}}
	kept, excluded := c.Keep(func(v *Vehicle) bool { return v.ID != "b" })

	if got := kept.IDs(); len(got) != 3 || got[0] != "a" || got[1] != "c" || got[2] != "d" {
		t.Fatalf("unexpected kept ids: %v", got)
	}
	if len(excluded) != 1 || excluded[0] != "b" {
		t.Fatalf("unexpected excluded ids: %v", excluded)
	}
	if c.Len() != 4 {
		t.Fatalf("source catalog was modified")
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	c, err := Parse([]byte(fixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	comparison := c.Compare([]string{"bare", "ghost", "rav4-hybrid"})
	if len(comparison.Cars) != 2 {
		t.Fatalf("expected 2 compared cars, got %d", len(comparison.Cars))
	}
	if comparison.Cars[0].ID != "bare" || comparison.Cars[1].ID != "rav4-hybrid" {
		t.Fatalf("expected request order, got %+v", comparison.Cars)
	}
	if got := comparison.Categories.FuelEfficiency[1].Value; got != 40 {
		t.Fatalf("expected mpg 40, got %v", got)
	}
	if got := comparison.Categories.Price[0]; got.Car != "Acme Basic" || got.Value != 20000 {
		t.Fatalf("unexpected price entry: %+v", got)
	}
	if len(comparison.Categories.Performance) != 2 || len(comparison.Categories.Safety) != 2 {
		t.Fatalf("expected category entries per compared car")
	}

	if empty := c.Compare([]string{"x", "y"}); len(empty.Cars) != 0 {
		t.Fatalf("unknown ids must be omitted")
	}
}

func TestDumpToTmpFile(t *testing.T) {
	t.Parallel()

	name, err := DumpToTmpFile("catalog_*.json", &Catalog{Items: []*Vehicle{{ID: "a"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer os.Remove(name)

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected dump content")
	}
}
