package routing_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logisticsnet/logisticsnet/internal/refdata"
	"github.com/logisticsnet/logisticsnet/internal/routing"
)

func TestConditionOf_ExplicitEntry(t *testing.T) {
	m := routing.NewConditionModel(refdata.Default())

	got := m.ConditionOf("MP Nagar", "Arera Colony")
	assert.Equal(t, routing.Condition{Distance: 5, RoadQuality: 1.0, TrafficFactor: 1.8}, got)
}

func TestConditionOf_Symmetric(t *testing.T) {
	m := routing.NewConditionModel(refdata.Default())

	pairs := [][2]string{
		{"MP Nagar", "New Market"},
		{"ISBT", "Mandideep"},
		{"Lalghati", "Kolar Road"},
		{"Bairagarh", "Piplani"},
	}
	for _, p := range pairs {
		assert.Equal(t, m.ConditionOf(p[0], p[1]), m.ConditionOf(p[1], p[0]), "pair %v", p)
	}
}

func TestConditionOf_UnsortedTableKey(t *testing.T) {
	// The table lists (Shahpura, Kolar Road), which is not in sorted order.
	m := routing.NewConditionModel(refdata.Default())

	require.True(t, m.HasExplicit("Kolar Road", "Shahpura"))
	got := m.ConditionOf("Kolar Road", "Shahpura")
	assert.Equal(t, routing.Condition{Distance: 3, RoadQuality: 1.0, TrafficFactor: 1.4}, got)
}

func TestConditionOf_GeometricFallback(t *testing.T) {
	m := routing.NewConditionModel(refdata.Default())

	// MP Nagar (0,0) to Habib Ganj (3,0) has no explicit entry.
	got := m.ConditionOf("MP Nagar", "Habib Ganj")
	assert.InDelta(t, 3.0, got.Distance, 1e-9)
	assert.Equal(t, routing.DefaultRoadQuality, got.RoadQuality)
	assert.Equal(t, routing.DefaultTrafficFactor, got.TrafficFactor)

	// Arera Colony (2,3) to Shahpura (1,6).
	got = m.ConditionOf("Arera Colony", "Shahpura")
	assert.InDelta(t, 3.1622776601683795, got.Distance, 1e-9)
}

func TestConditionOf_Deterministic(t *testing.T) {
	m := routing.NewConditionModel(refdata.Default())

	first := m.ConditionOf("Lalghati", "Ayodhya Bypass")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, m.ConditionOf("Lalghati", "Ayodhya Bypass"))
	}
}

func TestCondition_Cost(t *testing.T) {
	c := routing.Condition{Distance: 4, RoadQuality: 0.9, TrafficFactor: 1.5}
	assert.InDelta(t, 6.0, c.Cost(), 1e-9)
}

func TestValidate(t *testing.T) {
	m := routing.NewConditionModel(refdata.Default())

	require.NoError(t, m.Validate("MP Nagar", "ISBT"))

	err := m.Validate("MP Nagar", "Atlantis")
	require.Error(t, err)
	assert.True(t, errors.Is(err, routing.ErrUnknownLocation))

	var rerr *routing.Error
	require.True(t, errors.As(err, &rerr))
	assert.Equal(t, "Atlantis", rerr.Location)
}

func TestLocation(t *testing.T) {
	catalog := refdata.Default()
	m := routing.NewConditionModel(catalog)

	loc, ok := catalog.Location("ISBT")
	require.True(t, ok)
	p, err := m.Location("ISBT")
	require.NoError(t, err)
	assert.Equal(t, loc.Point, p)

	_, err = m.Location("Atlantis")
	assert.ErrorIs(t, err, routing.ErrUnknownLocation)
}

func TestNewPair(t *testing.T) {
	assert.Equal(t, routing.Pair{A: "A", B: "B"}, routing.NewPair("B", "A"))
	assert.Equal(t, routing.NewPair("x", "y"), routing.NewPair("y", "x"))
	assert.Equal(t, "(A, B)", routing.NewPair("B", "A").String())
}
