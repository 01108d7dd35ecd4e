package analyzer

import (
	"math"

	"github.com/safetruck/fleetsight/internal/models"
)

// groupByVehicle partitions trips into per-vehicle lists, keeping both
// the trips' order within a partition and the order vehicles first
// appear in the input. The appearance order is what makes downstream
// stable sorts deterministic.
func groupByVehicle(trips []models.Trip) (map[string][]models.Trip, []string) {
	byVehicle := make(map[string][]models.Trip)
	var order []string
	for _, t := range trips {
		if _, seen := byVehicle[t.VehicleID]; !seen {
			order = append(order, t.VehicleID)
		}
		byVehicle[t.VehicleID] = append(byVehicle[t.VehicleID], t)
	}
	return byVehicle, order
}

// mean returns the average of f over trips, 0 for an empty slice.
func mean(trips []models.Trip, f func(models.Trip) float64) float64 {
	if len(trips) == 0 {
		return 0
	}
	var sum float64
	for _, t := range trips {
		sum += f(t)
	}
	return sum / float64(len(trips))
}

// stdDev returns the population standard deviation of f over trips.
func stdDev(trips []models.Trip, f func(models.Trip) float64, avg float64) float64 {
	if len(trips) == 0 {
		return 0
	}
	var variance float64
	for _, t := range trips {
		d := f(t) - avg
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(trips)))
}

// consistencyFactor measures how stable a vehicle's fuel efficiency is
// across trips. A single trip counts as perfectly consistent; otherwise
// the factor shrinks as the relative spread grows. Shared by the
// reliability scorer and the suggestion ranker so the two formulas
// cannot drift apart.
func consistencyFactor(meanEff, stdEff float64, tripCount int) float64 {
	if tripCount == 1 {
		return 1
	}
	return 1 / (stdEff/math.Max(meanEff, 0.1) + 0.5)
}

// experienceWeight grows confidence with trip count: one trip earns
// 0.36, five or more earn the full weight.
func experienceWeight(tripCount int) float64 {
	return math.Min(1, 0.2+0.16*float64(tripCount))
}

// vehicleStats reduces one vehicle's valid trips to the aggregate both
// scorers consume. Caller guarantees trips is non-empty and already
// validity-filtered.
func vehicleStats(vehicleID string, trips []models.Trip) models.VehicleStats {
	avgEff := mean(trips, func(t models.Trip) float64 { return t.FuelEfficiencyKmpl })
	avgDur := mean(trips, func(t models.Trip) float64 { return t.DurationHr })
	avgSpeed := mean(trips, func(t models.Trip) float64 { return t.AvgSpeedKmh })
	stdEff := stdDev(trips, func(t models.Trip) float64 { return t.FuelEfficiencyKmpl }, avgEff)

	return models.VehicleStats{
		VehicleID:         vehicleID,
		TripCount:         len(trips),
		AvgFuelEfficiency: avgEff,
		AvgDurationHr:     avgDur,
		AvgSpeedKmh:       avgSpeed,
		StdFuelEfficiency: stdEff,
		ConsistencyFactor: consistencyFactor(avgEff, stdEff, len(trips)),
		ExperienceWeight:  experienceWeight(len(trips)),
	}
}
