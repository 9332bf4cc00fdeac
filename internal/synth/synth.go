// Package synth builds labeled training datasets from the decision engines.
package synth

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"runtime"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/logisticsnet/logisticsnet/internal/planner"
)

// DefaultIterations is the number of samples drawn when Options leaves it unset.
const DefaultIterations = 20000

// NoStop pads waypoint columns beyond the sampled stop count.
const NoStop = "None"

// Header is the column layout of an intra-city dataset.
var Header = []string{
	"stop_1", "stop_2", "stop_3", "stop_4", "stop_5",
	"is_fragile", "needs_cold_storage", "product_type", "best_first_stop",
}

// Row is one labeled intra-city sample.
type Row struct {
	Stops            [planner.MaxWaypoints]string
	Fragile          bool
	NeedsColdStorage bool
	ProductType      planner.ProductType
	BestFirstStop    string
}

// Features returns the input columns of the row, without the label.
func (r Row) Features() []string {
	out := make([]string, 0, len(Header)-1)
	out = append(out, r.Stops[:]...)
	return append(out, formatBool(r.Fragile), formatBool(r.NeedsColdStorage), string(r.ProductType))
}

// Record returns the row as CSV fields in Header order.
func (r Row) Record() []string {
	return append(r.Features(), r.BestFirstStop)
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// Dataset is the result of a synthesis run.
type Dataset struct {
	Rows      []Row
	Requested int
	Dropped   int
	Duration  time.Duration
}

// Produced returns the number of rows in the dataset.
func (d *Dataset) Produced() int {
	return len(d.Rows)
}

// ErrInvalidOptions is returned by Generate for a negative sample or worker count.
var ErrInvalidOptions = errors.New("invalid synthesis options")

// Options controls a synthesis run.
type Options struct {
	// Iterations is the number of samples to draw (zero: DefaultIterations).
	// Infeasible samples are dropped, so the dataset may be smaller.
	Iterations int
	// Seed makes the run reproducible. Sample i always uses the same random
	// stream for a given seed.
	Seed uint64
	// Workers bounds the number of concurrent planners (zero: GOMAXPROCS).
	Workers int
}

// Config holds configuration for the synthesizer.
type Config struct {
	Planner *planner.Planner
	// Locations are the candidate waypoints. At least MaxWaypoints are required.
	Locations []string
	Logger    zerolog.Logger
}

// Synthesizer draws random waypoint sets and labels them with the planner's
// best first stop.
type Synthesizer struct {
	planner   *planner.Planner
	locations []string
	logger    zerolog.Logger
}

// New creates a synthesizer. Location order does not matter.
func New(cfg Config) (*Synthesizer, error) {
	if cfg.Planner == nil {
		return nil, errors.New("planner is required")
	}
	if len(cfg.Locations) < planner.MaxWaypoints {
		return nil, fmt.Errorf("need at least %d locations, got %d", planner.MaxWaypoints, len(cfg.Locations))
	}

	locations := slices.Clone(cfg.Locations)
	slices.Sort(locations)

	return &Synthesizer{
		planner:   cfg.Planner,
		locations: locations,
		logger:    cfg.Logger,
	}, nil
}

// Generate draws opts.Iterations samples in parallel and returns the feasible
// ones ordered by sample index. The result does not depend on opts.Workers.
func (s *Synthesizer) Generate(ctx context.Context, opts Options) (*Dataset, error) {
	if opts.Iterations < 0 {
		return nil, fmt.Errorf("%w: iterations %d", ErrInvalidOptions, opts.Iterations)
	}
	if opts.Workers < 0 {
		return nil, fmt.Errorf("%w: workers %d", ErrInvalidOptions, opts.Workers)
	}

	iterations := opts.Iterations
	if iterations == 0 {
		iterations = DefaultIterations
	}
	workers := opts.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, iterations)

	start := time.Now()
	results := make([]*Row, iterations)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	chunk := (iterations + workers - 1) / workers
	for lo := 0; lo < iterations; lo += chunk {
		hi := min(lo+chunk, iterations)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				row, err := s.sample(opts.Seed, i)
				if err != nil {
					return fmt.Errorf("sample %d: %w", i, err)
				}
				results[i] = row
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	ds := &Dataset{Requested: iterations}
	for _, row := range results {
		if row == nil {
			ds.Dropped++
			continue
		}
		ds.Rows = append(ds.Rows, *row)
	}
	ds.Duration = time.Since(start)

	s.logger.Info().
		Int("requested", ds.Requested).
		Int("produced", ds.Produced()).
		Int("dropped", ds.Dropped).
		Int("workers", workers).
		Dur("duration", ds.Duration).
		Msg("intra-city dataset synthesized")

	return ds, nil
}

// sample draws and plans sample i. It returns a nil row when the sample is
// infeasible.
func (s *Synthesizer) sample(seed uint64, i int) (*Row, error) {
	rng := rand.New(rand.NewPCG(seed, uint64(i)))

	count := planner.MinWaypoints + rng.IntN(planner.MaxWaypoints-planner.MinWaypoints+1)
	stops := make([]string, count)
	for j, idx := range rng.Perm(len(s.locations))[:count] {
		stops[j] = s.locations[idx]
	}
	slices.Sort(stops)

	product := planner.ProductTypes[rng.IntN(len(planner.ProductTypes))]
	cargo := planner.Cargo{
		Fragile:     rng.IntN(2) == 1,
		ProductType: product,
	}
	cargo.NeedsColdStorage = product == planner.ProductFood && rng.Float64() > 0.5

	plan, err := s.planner.PlanRoute(stops, cargo)
	if errors.Is(err, planner.ErrInfeasible) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	row := &Row{
		Fragile:          cargo.Fragile,
		NeedsColdStorage: cargo.NeedsColdStorage,
		ProductType:      product,
		BestFirstStop:    plan.FirstStop(),
	}
	for j := range row.Stops {
		row.Stops[j] = NoStop
		if j < len(stops) {
			row.Stops[j] = stops[j]
		}
	}
	return row, nil
}
