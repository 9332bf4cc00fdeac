package carrier_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logisticsnet/logisticsnet/internal/carrier"
	"github.com/logisticsnet/logisticsnet/internal/refdata"
)

func TestGenerator_Deterministic(t *testing.T) {
	catalog := refdata.Default()

	a := carrier.NewGenerator(carrier.GeneratorConfig{}).Generate(catalog)
	b := carrier.NewGenerator(carrier.GeneratorConfig{}).Generate(catalog)

	require.Len(t, a, 5*30)
	assert.Equal(t, a, b)
}

func TestGenerator_SeedChangesSample(t *testing.T) {
	catalog := refdata.Default()

	a := carrier.NewGenerator(carrier.GeneratorConfig{Seed: 1}).Generate(catalog)
	b := carrier.NewGenerator(carrier.GeneratorConfig{Seed: 2}).Generate(catalog)

	names := func(ps []carrier.Profile) []string {
		out := make([]string, len(ps))
		for i, p := range ps {
			out[i] = p.Carrier
		}
		return out
	}
	assert.NotEqual(t, names(a), names(b))
}

func TestGenerator_ProfileValues(t *testing.T) {
	catalog := refdata.Default()
	profiles := carrier.NewGenerator(carrier.GeneratorConfig{SampleSize: 100}).Generate(catalog)

	// Sample size is capped at the carrier count.
	require.Len(t, profiles, 5*len(catalog.Carriers()))

	find := func(origin, destination, name string) carrier.Profile {
		t.Helper()
		for _, p := range profiles {
			if p.Origin == origin && p.Destination == destination && p.Carrier == name {
				return p
			}
		}
		t.Fatalf("no profile for %s on %s -> %s", name, origin, destination)
		return carrier.Profile{}
	}

	safexpress := find("Bhopal", "Indore", "Safexpress")
	assert.Equal(t, 150000.0, safexpress.WarehouseSqft)
	assert.Equal(t, refdata.DefaultReview, safexpress.LocationReview)
	assert.Zero(t, math.Mod(safexpress.Price, 10))
	assert.LessOrEqual(t, safexpress.SafetyRating, 5.0)
	assert.GreaterOrEqual(t, safexpress.SafetyRating, 3.5)

	dtdc := find("Bhopal", "Indore", "DTDC")
	assert.Equal(t, 4.8, dtdc.LocationReview)
	assert.Zero(t, dtdc.WarehouseSqft)

	startup := find("Bhopal", "Pune", "LogisticStartup")
	assert.Equal(t, 5.0, startup.SafetyRating)
	assert.Equal(t, 250000.0, startup.WarehouseSqft)
	assert.Equal(t, 5.0, startup.LocationReview)

	// A carrier's multipliers do not depend on the route.
	fedexIndore := find("Bhopal", "Indore", "FedEx")
	fedexDelhi := find("Bhopal", "Delhi", "FedEx")
	assert.Equal(t, fedexIndore.SafetyRating, fedexDelhi.SafetyRating)
}

func TestGenerator_WarehousePriorityFavoursLargestWarehouse(t *testing.T) {
	catalog := refdata.Default()
	profiles := carrier.NewGenerator(carrier.GeneratorConfig{SampleSize: 100}).Generate(catalog)

	rec, err := carrier.NewEngine(catalog).Recommend(profiles, carrier.Query{
		Origin:      "Bhopal",
		Destination: "Pune",
		Priorities:  []carrier.Priority{carrier.PriorityWarehouse},
		Fragility:   carrier.FragilityLow,
	})
	require.NoError(t, err)
	assert.Equal(t, "LogisticStartup", rec.TopChoice.Name)
	assert.Equal(t, "Mahindra Logistics", rec.BalancedOption.Name)
}
