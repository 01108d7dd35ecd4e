package analyzer

import (
	"math"

	"github.com/safetruck/fleetsight/internal/models"
)

// scoreBand is one segment of a piecewise curve: it applies from
// lowerBound (inclusive) upward. Bands are listed highest bound first
// and evaluated top-down, so each boundary can be tested in isolation.
type scoreBand struct {
	lowerBound float64
	eval       func(x float64) float64
}

func evalBands(bands []scoreBand, x float64) float64 {
	for _, b := range bands {
		if x >= b.lowerBound {
			return b.eval(x)
		}
	}
	// bands cover [0, inf); x below the last bound means the final
	// catch-all segment
	return bands[len(bands)-1].eval(x)
}

// fuelScoreBands maps mean fuel efficiency (km/L) to a 0-100 score. The
// curve is deliberately hard to score high on: most trucks land in the
// 40-70 range and only exceptional performance reaches 80+.
//
//	>= 6 km/L -> 100    (exceptional)
//	5-6 km/L  -> 70-100 (good)
//	4-5 km/L  -> 50-70  (average)
//	3-4 km/L  -> 30-50  (below average)
//	2-3 km/L  -> 10-30  (poor)
//	< 2 km/L  -> 0-10
var fuelScoreBands = []scoreBand{
	{6, func(x float64) float64 { return 100 }},
	{5, func(x float64) float64 { return 70 + 30*(x-5) }},
	{4, func(x float64) float64 { return 50 + 20*(x-4) }},
	{3, func(x float64) float64 { return 30 + 20*(x-3) }},
	{2, func(x float64) float64 { return 10 + 20*(x-2) }},
	{0, func(x float64) float64 { return math.Max(0, 5*x) }},
}

// timeScoreBands maps mean trip duration (hours) to a 0-100 score,
// penalizing long durations heavily.
//
//	< 3 h  -> 90-100
//	3-5 h  -> 70-90
//	5-8 h  -> 40-70
//	>= 8 h -> 0-40
var timeScoreBands = []scoreBand{
	{8, func(x float64) float64 { return math.Max(0, 40-5*(x-8)) }},
	{5, func(x float64) float64 { return 40 + 10*(8-x) }},
	{3, func(x float64) float64 { return 70 + 10*(5-x) }},
	{0, func(x float64) float64 { return 90 + 3.3*(3-x) }},
}

// fuelScore rates mean fuel efficiency on the banded curve. Means above
// the plausibility ceiling are treated as corrupted input and forced to
// a near-zero score even though the validator should have excluded them;
// the scorer does not trust that invariant blindly.
func fuelScore(meanEff float64) float64 {
	if meanEff > models.MaxFuelEffKmpl {
		return 5
	}
	return evalBands(fuelScoreBands, meanEff)
}

// timeScore rates mean trip duration: under 3 hours scores 90+, and the
// score decays through the bands toward 0 past 8 hours.
func timeScore(meanDur float64) float64 {
	return evalBands(timeScoreBands, meanDur)
}

// speedPenalty scales the composite down when the vehicle's mean speed
// suggests systemic crawling; at 15 km/h and above there is no penalty.
func speedPenalty(meanSpeed float64) float64 {
	if meanSpeed >= 15 {
		return 1
	}
	return meanSpeed / 15
}

// ScoreVehicle computes the 0-10 reliability score for one vehicle from
// the full trip collection. Invalid trips and other vehicles' trips are
// ignored; a vehicle with no valid trips scores 0. The result is rounded
// to one decimal.
func ScoreVehicle(vehicleID string, allTrips []models.Trip) float64 {
	var trips []models.Trip
	for _, t := range allTrips {
		if t.VehicleID == vehicleID && IsValid(t) {
			trips = append(trips, t)
		}
	}
	if len(trips) == 0 {
		return 0
	}
	return scoreFromStats(vehicleStats(vehicleID, trips))
}

// scoreFromStats turns a per-vehicle aggregate into the final score:
// a weighted blend of fuel, time, consistency and experience components,
// scaled by the low-speed penalty, clamped to [0,100] and reduced to one
// decimal on the 0-10 scale.
func scoreFromStats(stats models.VehicleStats) float64 {
	weighted := (fuelScore(stats.AvgFuelEfficiency)*models.WeightFuelScore +
		timeScore(stats.AvgDurationHr)*models.WeightTimeScore +
		stats.ConsistencyFactor*100*models.WeightConsistency +
		stats.ExperienceWeight*100*models.WeightExperience) *
		speedPenalty(stats.AvgSpeedKmh)

	normalized := math.Max(0, math.Min(100, weighted))
	return math.Round(normalized) / 10
}

// ScoreAll scores every vehicle once and returns a copy of the trip
// slice with each trip's ReliabilityScore set to its vehicle's score.
// The input slice is never modified.
func ScoreAll(trips []models.Trip) []models.Trip {
	byVehicle, order := groupByVehicle(trips)

	scores := make(map[string]float64, len(byVehicle))
	for _, id := range order {
		valid := Valid(byVehicle[id])
		if len(valid) == 0 {
			scores[id] = 0
			continue
		}
		scores[id] = scoreFromStats(vehicleStats(id, valid))
	}

	scored := make([]models.Trip, len(trips))
	for i, t := range trips {
		t.ReliabilityScore = scores[t.VehicleID]
		scored[i] = t
	}
	return scored
}
