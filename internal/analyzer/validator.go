package analyzer

import (
	"math"

	"github.com/safetruck/fleetsight/internal/models"
)

// Rule is one plausibility predicate over a single trip. Reject returns
// true when the trip should be excluded. Rules are independent of each
// other except for the self-consistency check, which relies on the
// minimum-speed rule having already rejected non-positive speeds; it
// guards its division anyway so reordering cannot reintroduce the hazard.
type Rule struct {
	Name   string
	Reject func(models.Trip) bool
}

// Rules is the ordered chain applied by IsValid. A trip is valid iff no
// rule rejects it. Cheap arithmetic checks run first.
var Rules = []Rule{
	{"zero_distance", func(t models.Trip) bool {
		return t.DistanceKm == 0
	}},
	{"short_distance", func(t models.Trip) bool {
		return t.DistanceKm < models.MinTripDistanceKm
	}},
	{"zero_duration", func(t models.Trip) bool {
		return t.DurationHr == 0
	}},
	{"invalid_coordinates", func(t models.Trip) bool {
		if (t.StartLat == 0 && t.StartLon == 0) || (t.EndLat == 0 && t.EndLon == 0) {
			return true
		}
		return t.StartLat < models.RegionMinLat || t.StartLat > models.RegionMaxLat ||
			t.EndLat < models.RegionMinLat || t.EndLat > models.RegionMaxLat ||
			t.StartLon < models.RegionMinLon || t.StartLon > models.RegionMaxLon ||
			t.EndLon < models.RegionMinLon || t.EndLon > models.RegionMaxLon
	}},
	{"negative_fuel", func(t models.Trip) bool {
		return t.FuelUsedLitre < 0
	}},
	{"disguised_parking", func(t models.Trip) bool {
		return t.DurationHr > models.ParkedDurationHr && t.AvgSpeedKmh < models.ParkedSpeedKmh
	}},
	{"distance_ceiling", func(t models.Trip) bool {
		return t.DistanceKm > models.MaxTripDistanceKm
	}},
	{"stationary_trip", func(t models.Trip) bool {
		latDiff := math.Abs(t.StartLat - t.EndLat)
		lonDiff := math.Abs(t.StartLon - t.EndLon)
		return latDiff < models.StationaryDegrees && lonDiff < models.StationaryDegrees &&
			t.DurationHr > models.StationaryDurationHr
	}},
	{"minimum_speed", func(t models.Trip) bool {
		return t.AvgSpeedKmh < models.MinAvgSpeedKmh
	}},
	{"implausible_efficiency", func(t models.Trip) bool {
		return t.FuelEfficiencyKmpl < models.MinFuelEffKmpl ||
			t.FuelEfficiencyKmpl > models.MaxFuelEffKmpl
	}},
	{"duration_ceiling", func(t models.Trip) bool {
		return t.DurationHr > models.MaxTripDurationHr
	}},
	{"speed_ceiling", func(t models.Trip) bool {
		return t.AvgSpeedKmh > models.MaxAvgSpeedKmh
	}},
	{"speed_mismatch", func(t models.Trip) bool {
		// minimum_speed already rejected speeds under 5 km/h, but the
		// guard stays so this rule is safe evaluated in isolation.
		if t.AvgSpeedKmh <= 0 {
			return true
		}
		calculated := t.DistanceKm / t.DurationHr
		return math.Abs(calculated-t.AvgSpeedKmh)/t.AvgSpeedKmh > models.SpeedMismatchRatio
	}},
}

// IsValid reports whether a trip passes every plausibility rule. Trips
// that fail are dropped from scoring, ranking and display entirely, not
// penalized.
func IsValid(trip models.Trip) bool {
	for _, rule := range Rules {
		if rule.Reject(trip) {
			return false
		}
	}
	return true
}

// FailedRule returns the name of the first rule rejecting the trip, or
// "" when the trip is valid. The clean command uses it for its
// per-rule rejection report.
func FailedRule(trip models.Trip) string {
	for _, rule := range Rules {
		if rule.Reject(trip) {
			return rule.Name
		}
	}
	return ""
}

// Valid returns the subset of trips passing IsValid, preserving order.
func Valid(trips []models.Trip) []models.Trip {
	var valid []models.Trip
	for _, t := range trips {
		if IsValid(t) {
			valid = append(valid, t)
		}
	}
	return valid
}
