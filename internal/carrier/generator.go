package carrier

import (
	"hash/fnv"
	"math"
	"math/rand/v2"

	"github.com/logisticsnet/logisticsnet/internal/refdata"
)

// Promoted carrier adjustments.
const (
	promotedPriceFactor = 0.85
	promotedTimeFactor  = 0.95
	promotedSafety      = 5.0
)

// GeneratorConfig holds configuration for synthetic profile generation.
type GeneratorConfig struct {
	// SampleSize is the number of carriers sampled per route (default: 30).
	// Routes get every carrier when the catalog has fewer.
	SampleSize int

	// Seed makes the per-route carrier sample reproducible (default: 42).
	Seed uint64
}

// Generator builds synthetic carrier profiles from reference data.
type Generator struct {
	sampleSize int
	seed       uint64
}

// NewGenerator creates a profile generator.
func NewGenerator(cfg GeneratorConfig) *Generator {
	sampleSize := cfg.SampleSize
	if sampleSize == 0 {
		sampleSize = 30
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = 42
	}
	return &Generator{sampleSize: sampleSize, seed: seed}
}

// Generate returns profiles for every catalog route, ordered by route and then
// by sample order. Per-carrier metrics derive from a stable hash of the carrier
// name, so a carrier keeps its relative standing across routes.
func (g *Generator) Generate(catalog *refdata.Catalog) []Profile {
	carriers := catalog.Carriers()
	rng := rand.New(rand.NewPCG(g.seed, uint64(len(carriers))))

	var profiles []Profile
	for _, route := range catalog.Routes() {
		n := min(g.sampleSize, len(carriers))
		for _, idx := range rng.Perm(len(carriers))[:n] {
			c := carriers[idx]
			p := profileFor(route, c)
			p.WarehouseSqft = catalog.WarehouseSqft(route.Destination, c.Name)
			p.LocationReview = catalog.Review(route.Origin, route.Destination, c.Name)
			profiles = append(profiles, p)
		}
	}
	return profiles
}

func profileFor(route refdata.Route, c refdata.Carrier) Profile {
	h := nameHash(c.Name)

	priceMultiplier := 1 + float64(h%100)/200.0 - 0.25
	timeMultiplier := 1 + float64(h%50)/100.0 - 0.15
	safetyBase := 3.5 + float64(h%15)/10.0

	p := Profile{
		Origin:            route.Origin,
		Destination:       route.Destination,
		Carrier:           c.Name,
		Price:             math.Round(route.BasePrice*priceMultiplier/10) * 10,
		DeliveryTimeHours: roundTo(route.BaseHours*timeMultiplier, 1),
		SafetyRating:      roundTo(min(5.0, safetyBase), 1),
	}
	if c.Promoted {
		p.Price *= promotedPriceFactor
		p.DeliveryTimeHours *= promotedTimeFactor
		p.SafetyRating = promotedSafety
	}
	return p
}

func nameHash(name string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return h.Sum32()
}

func roundTo(x float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(x*scale) / scale
}
