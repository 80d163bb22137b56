package preferences

import (
	"regexp"

	"github.com/spigell/carmatch/internal/profile"
)

// BodyType maps a catalog body type to the phrases that select it.
type BodyType struct {
	Name     string
	Keywords []string
}

// Rule fires when any keyword occurs in the conversation text. A firing rule
// writes its boosts and the non-zero fields of Sets, replacing values set by
// earlier rules.
type Rule struct {
	Name     string
	Keywords []string
	Boosts   map[profile.Dimension]float64
	Sets     Filters
}

// Rules is the keyword configuration of the extractor. Values returned by
// DefaultRules are shared and must be treated as read-only.
type Rules struct {
	BodyTypes []BodyType
	Rules     []Rule
	// Budget patterns are tried in order. A pattern with two groups has them
	// concatenated, e.g. "$40,000" -> "40"+"000".
	Budget []*regexp.Regexp
}

var defaultRules = Rules{
	BodyTypes: []BodyType{
		{Name: "SUV", Keywords: []string{"suv", "crossover", "suvs"}},
		{Name: "SEDAN", Keywords: []string{"sedan", "sedans"}},
		{Name: "TRUCK", Keywords: []string{"truck", "pickup", "trucks"}},
		{Name: "HATCHBACK", Keywords: []string{"hatchback", "hatch"}},
		{Name: "WAGON", Keywords: []string{"wagon", "estate"}},
		{Name: "MINIVAN", Keywords: []string{"minivan", "van"}},
		{Name: "COUPE", Keywords: []string{"coupe", "sports car", "sports-car", "sportscar", "2-door", "two door"}},
		{Name: "CONVERTIBLE", Keywords: []string{"convertible", "roadster", "cabriolet"}},
	},
	Rules: []Rule{
		{
			Name:     "hybrid",
			Keywords: []string{"hybrid", "plug-in", "phev"},
			Boosts:   map[profile.Dimension]float64{profile.EcoConscious: 3},
			Sets:     Filters{FuelPreference: FuelHybrid},
		},
		{
			Name:     "electric",
			Keywords: []string{"electric", "ev", "battery"},
			Boosts:   map[profile.Dimension]float64{profile.EcoConscious: 4, profile.TechEnthusiast: 2},
			Sets:     Filters{FuelPreference: FuelElectric},
		},
		{
			Name:     "fuel_efficiency",
			Keywords: []string{"fuel efficient", "gas mileage", "mpg", "economical"},
			Boosts:   map[profile.Dimension]float64{profile.EcoConscious: 2, profile.BudgetConscious: 1},
			Sets:     Filters{MinMPG: 30},
		},
		{
			Name:     "family",
			Keywords: []string{"family", "kids", "children", "baby"},
			Boosts:   map[profile.Dimension]float64{profile.FamilyFriendly: 3, profile.SafetyFocused: 2},
			Sets:     Filters{MinSeating: 5},
		},
		{
			Name:     "space",
			Keywords: []string{"cargo", "space", "room", "spacious"},
			Boosts:   map[profile.Dimension]float64{profile.FamilyFriendly: 2},
		},
		{
			Name:     "performance",
			Keywords: []string{"fast", "sporty", "performance", "quick", "speed", "hp", "horsepower", "sports car", "sport car"},
			Boosts:   map[profile.Dimension]float64{profile.Performance: 4},
			Sets:     Filters{MinHorsepower: 200},
		},
		{
			Name:     "luxury",
			Keywords: []string{"luxury", "premium", "high-end", "upscale"},
			Boosts:   map[profile.Dimension]float64{profile.Luxury: 3, profile.TechEnthusiast: 1},
		},
		{
			Name:     "adventure",
			Keywords: []string{"off-road", "offroad", "adventure", "trail", "4x4", "awd", "all-wheel"},
			Boosts:   map[profile.Dimension]float64{profile.Adventure: 3},
			Sets:     Filters{Drivetrain: "AWD"},
		},
		{
			Name:     "safety",
			Keywords: []string{"safe", "safety", "secure", "protection"},
			Boosts:   map[profile.Dimension]float64{profile.SafetyFocused: 2},
		},
		{
			Name:     "technology",
			Keywords: []string{"tech", "technology", "infotainment", "screen", "connectivity"},
			Boosts:   map[profile.Dimension]float64{profile.TechEnthusiast: 2},
		},
		{
			Name:     "commuter",
			Keywords: []string{"commute", "commuting", "city", "urban", "parking"},
			Boosts:   map[profile.Dimension]float64{profile.Commuter: 2, profile.CityDriving: 2},
		},
	},
	Budget: []*regexp.Regexp{
		regexp.MustCompile(`under\s*\$?(\d+)k?`),
		regexp.MustCompile(`below\s*\$?(\d+)k?`),
		regexp.MustCompile(`less than\s*\$?(\d+)k?`),
		regexp.MustCompile(`\$(\d+)k?\s*or less`),
		regexp.MustCompile(`\$(\d+)k?\s*max`),
		regexp.MustCompile(`budget\s*\$?(\d+)k?`),
		regexp.MustCompile(`\$(\d+),?(\d{3})`),
	},
}

// DefaultRules returns the stock keyword configuration.
func DefaultRules() Rules {
	return defaultRules
}
