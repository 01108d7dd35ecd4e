package analyzer

import (
	"math"
	"sort"

	"github.com/safetruck/fleetsight/internal/models"
)

const maxSuggestions = 3

// RankVehicles filters to valid trips, groups them by vehicle and
// returns every qualifying vehicle's aggregate with its sustainability
// score, ordered best first. The sustainability score is a separate
// ranking metric from the 0-10 reliability score: efficiency per hour,
// discounted by inconsistency and inexperience, so a vehicle with five
// ordinary trips can outrank one lucky trip.
//
// Ties keep the order vehicles first appear in the input (stable sort);
// that insertion order is the documented tie-break policy.
func RankVehicles(trips []models.Trip) []models.VehicleStats {
	byVehicle, order := groupByVehicle(Valid(trips))
	if len(order) == 0 {
		return nil
	}

	ranked := make([]models.VehicleStats, 0, len(order))
	for _, id := range order {
		stats := vehicleStats(id, byVehicle[id])
		effPerTime := stats.AvgFuelEfficiency / math.Max(stats.AvgDurationHr, 0.1)
		stats.SustainabilityScore = effPerTime * stats.ConsistencyFactor * stats.ExperienceWeight
		ranked = append(ranked, stats)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SustainabilityScore > ranked[j].SustainabilityScore
	})
	return ranked
}

// TopVehicles returns up to three vehicle identifiers for the given trip
// set, best sustainability score first. Empty input yields an empty
// result, never an error.
func TopVehicles(trips []models.Trip) []string {
	ranked := RankVehicles(trips)
	if len(ranked) > maxSuggestions {
		ranked = ranked[:maxSuggestions]
	}

	ids := make([]string, 0, len(ranked))
	for _, stats := range ranked {
		ids = append(ids, stats.VehicleID)
	}
	return ids
}
