package analyzer

import (
	"testing"

	"github.com/safetruck/fleetsight/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestConsistencyFactor(t *testing.T) {
	// single trip counts as perfectly consistent
	assert.Equal(t, 1.0, consistencyFactor(5, 0, 1))

	// zero spread across several trips doubles the factor
	assert.InDelta(t, 2.0, consistencyFactor(5, 0, 3), 1e-9)

	// spread equal to the mean: 1/(1+0.5)
	assert.InDelta(t, 1.0/1.5, consistencyFactor(5, 5, 3), 1e-9)

	// tiny means are floored at 0.1 before dividing
	assert.InDelta(t, 1.0/(2.0/0.1+0.5), consistencyFactor(0.01, 2, 2), 1e-9)
}

func TestExperienceWeight(t *testing.T) {
	assert.InDelta(t, 0.36, experienceWeight(1), 1e-9)
	assert.InDelta(t, 0.52, experienceWeight(2), 1e-9)
	assert.InDelta(t, 1.0, experienceWeight(5), 1e-9)
	assert.InDelta(t, 1.0, experienceWeight(40), 1e-9) // capped
}

func TestVehicleStats(t *testing.T) {
	a := validTrip()
	b := validTrip()
	b.FuelEfficiencyKmpl = 3 // mean 4, population std 1
	b.DurationHr = 4
	b.DistanceKm = 200
	b.FuelUsedLitre = 200.0 / 3

	stats := vehicleStats("TRK-1001", []models.Trip{a, b})

	assert.Equal(t, 2, stats.TripCount)
	assert.InDelta(t, 4.0, stats.AvgFuelEfficiency, 1e-9)
	assert.InDelta(t, 3.0, stats.AvgDurationHr, 1e-9)
	assert.InDelta(t, 1.0, stats.StdFuelEfficiency, 1e-9)
	assert.InDelta(t, consistencyFactor(4, 1, 2), stats.ConsistencyFactor, 1e-9)
	assert.InDelta(t, 0.52, stats.ExperienceWeight, 1e-9)
}

func TestGroupByVehicle_PreservesAppearanceOrder(t *testing.T) {
	mk := func(id string) models.Trip {
		tr := validTrip()
		tr.VehicleID = id
		return tr
	}
	trips := []models.Trip{mk("C"), mk("A"), mk("C"), mk("B"), mk("A")}

	byVehicle, order := groupByVehicle(trips)

	assert.Equal(t, []string{"C", "A", "B"}, order)
	assert.Len(t, byVehicle["C"], 2)
	assert.Len(t, byVehicle["A"], 2)
	assert.Len(t, byVehicle["B"], 1)
}
