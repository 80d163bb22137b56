package catalog

// Comparison is a side-by-side view of several vehicles without any scoring.
type Comparison struct {
	Cars       []ComparedVehicle `json:"cars"`
	Categories Categories        `json:"categories"`
}

type ComparedVehicle struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Price    float64        `json:"price"`
	Image    string         `json:"image"`
	Specs    Specifications `json:"specs"`
	Pros     []string       `json:"pros"`
	Cons     []string       `json:"cons"`
	Features Features       `json:"features"`
}

// Categories hold per-category values in the order the vehicles were requested.
type Categories struct {
	Price          []CategoryValue `json:"price"`
	FuelEfficiency []CategoryValue `json:"fuel_efficiency"`
	Performance    []CategoryValue `json:"performance"`
	Safety         []CategoryValue `json:"safety"`
	Space          []CategoryValue `json:"space"`
}

type CategoryValue struct {
	Car   string  `json:"car"`
	Value float64 `json:"value"`
}

// Compare builds a comparison for the requested ids. Unknown ids are skipped.
func (c *Catalog) Compare(ids []string) *Comparison {
	comparison := &Comparison{
		Cars: make([]ComparedVehicle, 0, len(ids)),
		Categories: Categories{
			Price:          []CategoryValue{},
			FuelEfficiency: []CategoryValue{},
			Performance:    []CategoryValue{},
			Safety:         []CategoryValue{},
			Space:          []CategoryValue{},
		},
	}

	for _, id := range ids {
		vehicle := c.FindByID(id)
		if vehicle == nil {
			continue
		}

		name := vehicle.Name()
		comparison.Cars = append(comparison.Cars, ComparedVehicle{
			ID:       id,
			Name:     name,
			Price:    vehicle.BasicInfo.MSRP,
			Image:    vehicle.BasicInfo.ImageURL,
			Specs:    vehicle.Specifications,
			Pros:     vehicle.Pros,
			Cons:     vehicle.Cons,
			Features: vehicle.Features,
		})

		cat := &comparison.Categories
		cat.Price = append(cat.Price, CategoryValue{Car: name, Value: vehicle.BasicInfo.MSRP})
		cat.FuelEfficiency = append(cat.FuelEfficiency, CategoryValue{Car: name, Value: vehicle.Specifications.MPGCombined})
		cat.Performance = append(cat.Performance, CategoryValue{Car: name, Value: vehicle.Specifications.Horsepower})
		cat.Safety = append(cat.Safety, CategoryValue{Car: name, Value: float64(len(vehicle.Features.Safety))})
		cat.Space = append(cat.Space, CategoryValue{Car: name, Value: vehicle.Specifications.CargoSpace})
	}

	return comparison
}
