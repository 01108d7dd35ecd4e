package analyzer

import (
	"testing"

	"github.com/safetruck/fleetsight/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFuelScore_Bands(t *testing.T) {
	tests := []struct {
		name    string
		meanEff float64
		want    float64
	}{
		{"exceptional ceiling", 7.0, 100},
		{"good lower bound", 6.0, 100},
		{"good band midpoint", 5.5, 85},
		{"average lower bound", 5.0, 70},
		{"average band midpoint", 4.5, 60},
		{"below average lower bound", 4.0, 50},
		{"below average midpoint", 3.5, 40},
		{"poor lower bound", 3.0, 30},
		{"poor midpoint", 2.5, 20},
		{"bottom band lower bound", 2.0, 10},
		{"bottom band", 1.0, 5},
		{"zero efficiency", 0.0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, fuelScore(tt.meanEff), 1e-9)
		})
	}
}

func TestFuelScore_CorruptedMeanForcedLow(t *testing.T) {
	// means past the plausibility ceiling never score well
	assert.Equal(t, 5.0, fuelScore(8.5))
	assert.Equal(t, 5.0, fuelScore(50))
}

func TestTimeScore_Bands(t *testing.T) {
	tests := []struct {
		name    string
		meanDur float64
		want    float64
	}{
		{"two hours", 2.0, 93.3},
		{"three hour boundary", 3.0, 90},
		{"four hours", 4.0, 80},
		{"five hour boundary", 5.0, 70},
		{"six hours", 6.0, 60},
		{"eight hour boundary", 8.0, 40},
		{"ten hours", 10.0, 30},
		{"extreme duration floors at zero", 20.0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, timeScore(tt.meanDur), 1e-9)
		})
	}
}

func TestSpeedPenalty(t *testing.T) {
	assert.Equal(t, 1.0, speedPenalty(50))
	assert.Equal(t, 1.0, speedPenalty(15))
	assert.InDelta(t, 0.5, speedPenalty(7.5), 1e-9)
	assert.Equal(t, 0.0, speedPenalty(0))
}

func TestScoreVehicle_SingleTrip(t *testing.T) {
	// One clean trip at 5 km/L over 2 h:
	//   fuel 70, time 93.3, consistency 1, experience 0.36
	//   weighted = 28 + 27.99 + 20 + 3.6 = 79.59 -> rounds to 8.0
	trips := []models.Trip{validTrip()}

	assert.Equal(t, 8.0, ScoreVehicle("TRK-1001", trips))
}

func TestScoreVehicle_IgnoresOtherVehiclesAndInvalidTrips(t *testing.T) {
	clean := validTrip()

	other := validTrip()
	other.VehicleID = "TRK-2002"
	other.FuelEfficiencyKmpl = 1.5

	junk := validTrip()
	junk.DistanceKm = 0 // rejected by the validator

	trips := []models.Trip{clean, other, junk}

	assert.Equal(t, 8.0, ScoreVehicle("TRK-1001", trips))
}

func TestScoreVehicle_NoValidTrips(t *testing.T) {
	junk := validTrip()
	junk.FuelUsedLitre = -1

	assert.Equal(t, 0.0, ScoreVehicle("TRK-1001", []models.Trip{junk}))
	assert.Equal(t, 0.0, ScoreVehicle("TRK-9999", nil))
}

func TestScoreVehicle_BetterEfficiencyScoresHigher(t *testing.T) {
	low := validTrip()
	low.FuelUsedLitre = 100.0 / 3
	low.FuelEfficiencyKmpl = 3

	high := validTrip()
	high.FuelUsedLitre = 20
	high.FuelEfficiencyKmpl = 5

	assert.Less(t,
		ScoreVehicle("TRK-1001", []models.Trip{low}),
		ScoreVehicle("TRK-1001", []models.Trip{high}))
}

func TestScoreAll_SetsScoresWithoutMutatingInput(t *testing.T) {
	a := validTrip()
	bad := validTrip()
	bad.VehicleID = "TRK-2002"
	bad.DistanceKm = 0

	input := []models.Trip{a, bad}

	scored := ScoreAll(input)

	assert.Len(t, scored, 2)
	assert.Equal(t, 8.0, scored[0].ReliabilityScore)
	assert.Equal(t, 0.0, scored[1].ReliabilityScore)

	// the originals stay untouched
	assert.Equal(t, 0.0, input[0].ReliabilityScore)
	assert.Equal(t, 0.0, input[1].ReliabilityScore)
}
