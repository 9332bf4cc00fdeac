package carrier

import (
	"errors"
	"fmt"
	"sort"

	"github.com/logisticsnet/logisticsnet/internal/refdata"
)

// column is a min-max scaler over one criterion of a profile set.
type column struct {
	min, max float64
}

func newColumn(profiles []Profile, value func(Profile) float64) column {
	c := column{min: value(profiles[0]), max: value(profiles[0])}
	for _, p := range profiles[1:] {
		v := value(p)
		c.min = min(c.min, v)
		c.max = max(c.max, v)
	}
	return c
}

// higher scales x so the column maximum scores 1. A degenerate column scores 0.
func (c column) higher(x float64) float64 {
	if c.max == c.min {
		return 0
	}
	return (x - c.min) / (c.max - c.min)
}

// lower scales x so the column minimum scores 1. A degenerate column scores 0.
func (c column) lower(x float64) float64 {
	if c.max == c.min {
		return 0
	}
	return 1 - (x-c.min)/(c.max-c.min)
}

// Normalize scores every profile against the min and max of the given set.
// Callers pass a single route's profiles; scores are never comparable across routes.
func Normalize(profiles []Profile) []Scores {
	if len(profiles) == 0 {
		return nil
	}

	price := newColumn(profiles, func(p Profile) float64 { return p.Price })
	speed := newColumn(profiles, func(p Profile) float64 { return p.DeliveryTimeHours })
	safety := newColumn(profiles, func(p Profile) float64 { return p.SafetyRating })
	warehouse := newColumn(profiles, func(p Profile) float64 { return p.WarehouseSqft })
	review := newColumn(profiles, func(p Profile) float64 { return p.LocationReview })

	out := make([]Scores, len(profiles))
	for i, p := range profiles {
		out[i] = Scores{
			Price:     price.lower(p.Price),
			Speed:     speed.lower(p.DeliveryTimeHours),
			Safety:    safety.higher(p.SafetyRating),
			Warehouse: warehouse.higher(p.WarehouseSqft),
			Review:    review.higher(p.LocationReview),
		}
	}
	return out
}

// Rank scores the profiles and orders them by combined score, highest first.
// Equal scores keep their input order.
func Rank(profiles []Profile, w Weights) []Scored {
	scores := Normalize(profiles)
	ranked := make([]Scored, len(profiles))
	for i, p := range profiles {
		ranked[i] = Scored{
			Profile:  p,
			Scores:   scores[i],
			Combined: w.Combine(scores[i]),
			Position: i,
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Combined > ranked[j].Combined
	})
	return ranked
}

// FilterRoute returns the profiles of one route, preserving their order.
func FilterRoute(profiles []Profile, origin, destination string) []Profile {
	var out []Profile
	for _, p := range profiles {
		if p.Origin == origin && p.Destination == destination {
			out = append(out, p)
		}
	}
	return out
}

// Engine ranks carriers and decorates the results with reference metadata.
type Engine struct {
	catalog *refdata.Catalog
}

// NewEngine creates a ranking engine over the given catalog.
func NewEngine(catalog *refdata.Catalog) *Engine {
	return &Engine{catalog: catalog}
}

// Recommend ranks the profiles of the query route and returns the top choice,
// the runner-up and the cheapest carrier. Profiles of other routes are ignored.
func (e *Engine) Recommend(profiles []Profile, q Query) (*Recommendation, error) {
	route := FilterRoute(profiles, q.Origin, q.Destination)
	if len(route) == 0 {
		return nil, fmt.Errorf("%s: %w", q.Route(), ErrNoRouteData)
	}

	ranked := Rank(route, ResolveWeights(q.Priorities, q.Fragility))

	rec := &Recommendation{
		TopChoice: e.pick(ranked[0].Profile.Carrier),
		ValuePick: e.pick(valuePick(ranked).Profile.Carrier),
		Ranking:   ranked,
	}
	if len(ranked) > 1 {
		balanced := e.pick(ranked[1].Profile.Carrier)
		rec.BalancedOption = &balanced
	}
	return rec, nil
}

// valuePick returns the first ranked entry holding the highest price score.
func valuePick(ranked []Scored) Scored {
	best := ranked[0]
	for _, s := range ranked[1:] {
		if s.Scores.Price > best.Scores.Price {
			best = s
		}
	}
	return best
}

func (e *Engine) pick(name string) Pick {
	c, err := e.catalog.Carrier(name)
	if errors.Is(err, refdata.ErrMissingReferenceData) {
		return Pick{Name: name}
	}
	return Pick{
		Name:          name,
		Domain:        c.Domain,
		Hub:           c.Hub,
		BhopalAddress: c.BhopalAddress,
		CareNumber:    c.CareNumber,
	}
}
