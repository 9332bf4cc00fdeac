package carrier

// Fragility adjustment applied to the safety weight for High fragility cargo.
const (
	highFragilitySafetyBoost   = 0.3
	highFragilitySafetyCeiling = 1.0
)

// Weights is the per-criterion weight set applied to normalized scores.
// The zero value weighs every criterion at 0. Totals are never renormalized.
type Weights struct {
	price     float64
	speed     float64
	safety    float64
	warehouse float64
	review    float64
}

// NewWeights returns a weight set with the given values.
func NewWeights(price, speed, safety, warehouse, review float64) Weights {
	return Weights{price: price, speed: speed, safety: safety, warehouse: warehouse, review: review}
}

func (w Weights) Price() float64     { return w.price }
func (w Weights) Speed() float64     { return w.speed }
func (w Weights) Safety() float64    { return w.safety }
func (w Weights) Warehouse() float64 { return w.warehouse }
func (w Weights) Review() float64    { return w.review }

// Total returns the sum of all weights.
func (w Weights) Total() float64 {
	return w.price + w.speed + w.safety + w.warehouse + w.review
}

// Add returns the field-wise sum of w and o.
func (w Weights) Add(o Weights) Weights {
	return Weights{
		price:     w.price + o.price,
		speed:     w.speed + o.speed,
		safety:    w.safety + o.safety,
		warehouse: w.warehouse + o.warehouse,
		review:    w.review + o.review,
	}
}

// BoostSafety raises the safety weight by delta, capped at ceiling.
// The cap applies to the safety weight alone, not to the total.
func (w Weights) BoostSafety(delta, ceiling float64) Weights {
	w.safety = min(ceiling, w.safety+delta)
	return w
}

// Combine returns the weighted sum of the scores.
func (w Weights) Combine(s Scores) float64 {
	return s.Price*w.price +
		s.Speed*w.speed +
		s.Safety*w.safety +
		s.Warehouse*w.warehouse +
		s.Review*w.review
}

var templates = map[Priority]Weights{
	PriorityCost:      {price: 0.7, speed: 0.1, safety: 0.1, review: 0.1},
	PrioritySpeed:     {price: 0.1, speed: 0.7, safety: 0.1, review: 0.1},
	PrioritySafety:    {price: 0.1, speed: 0.1, safety: 0.5, review: 0.3},
	PriorityWarehouse: {warehouse: 0.8, review: 0.2},
}

// Template returns the base weight template for a priority.
func Template(p Priority) (Weights, bool) {
	w, ok := templates[p]
	return w, ok
}

// ResolveWeights sums the templates of the given priorities, in order, and
// applies the fragility adjustment. Unknown priorities contribute nothing;
// ParsePriorities rejects them before a query reaches this point.
func ResolveWeights(priorities []Priority, fragility Fragility) Weights {
	var w Weights
	for _, p := range priorities {
		w = w.Add(templates[p])
	}
	if fragility == FragilityHigh {
		w = w.BoostSafety(highFragilitySafetyBoost, highFragilitySafetyCeiling)
	}
	return w
}
