package models

import "time"

// Period is the coarse time-of-day bucket a trip belongs to.
type Period string

const (
	PeriodDay   Period = "Day"
	PeriodNight Period = "Night"
)

// Trip is one row of the trip summary feed. Records are read-only once
// loaded; derived values (period tag, reliability score) are attached to
// copies, never written back into the source slice.
type Trip struct {
	VehicleID          string  `json:"vehicle_id" mapstructure:"vehicle_id" parquet:"name=vehicle_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	StartTime          string  `json:"start_time" mapstructure:"start_time" parquet:"name=start_time,type=BYTE_ARRAY,convertedtype=UTF8"`
	EndTime            string  `json:"end_time" mapstructure:"end_time" parquet:"name=end_time,type=BYTE_ARRAY,convertedtype=UTF8"`
	StartLat           float64 `json:"start_lat" mapstructure:"start_lat" parquet:"name=start_lat,type=DOUBLE"`
	StartLon           float64 `json:"start_lon" mapstructure:"start_lon" parquet:"name=start_lon,type=DOUBLE"`
	EndLat             float64 `json:"end_lat" mapstructure:"end_lat" parquet:"name=end_lat,type=DOUBLE"`
	EndLon             float64 `json:"end_lon" mapstructure:"end_lon" parquet:"name=end_lon,type=DOUBLE"`
	DistanceKm         float64 `json:"distance_km" mapstructure:"distance_km" parquet:"name=distance_km,type=DOUBLE"`
	FuelUsedLitre      float64 `json:"fuel_used_litre" mapstructure:"fuel_used_litre" parquet:"name=fuel_used_litre,type=DOUBLE"`
	DurationHr         float64 `json:"duration_hr" mapstructure:"duration_hr" parquet:"name=duration_hr,type=DOUBLE"`
	AvgSpeedKmh        float64 `json:"avg_speed_kmh" mapstructure:"avg_speed_kmh" parquet:"name=avg_speed_kmh,type=DOUBLE"`
	FuelEfficiencyKmpl float64 `json:"fuel_efficiency_kmpl" mapstructure:"fuel_efficiency_kmpl" parquet:"name=fuel_efficiency_kmpl,type=DOUBLE"`
	StartKey           string  `json:"start_key" mapstructure:"start_key" parquet:"name=start_key,type=BYTE_ARRAY,convertedtype=UTF8"`
	EndKey             string  `json:"end_key" mapstructure:"end_key" parquet:"name=end_key,type=BYTE_ARRAY,convertedtype=UTF8"`
	RouteID            string  `json:"route_id,omitempty" mapstructure:"route_id" parquet:"name=route_id,type=BYTE_ARRAY,convertedtype=UTF8"`

	// Derived fields, populated by the loader and scorer.
	TimeTakenMinutes float64 `json:"time_taken_minutes" parquet:"name=time_taken_minutes,type=DOUBLE"`
	Period           Period  `json:"period" parquet:"name=period,type=BYTE_ARRAY,convertedtype=UTF8"`
	ReliabilityScore float64 `json:"reliability_score" parquet:"name=reliability_score,type=DOUBLE"`
}

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Start returns the trip's starting point.
func (t Trip) Start() Coordinates {
	return Coordinates{Lat: t.StartLat, Lon: t.StartLon}
}

// End returns the trip's ending point.
func (t Trip) End() Coordinates {
	return Coordinates{Lat: t.EndLat, Lon: t.EndLon}
}

// StartedAt parses the trip's start timestamp as local wall-clock time.
// The feed carries "2006-01-02 15:04:05" strings; RFC3339 is accepted as
// a fallback. The zero time and false are returned when neither parses.
func (t Trip) StartedAt() (time.Time, bool) {
	return ParseTimestamp(t.StartTime)
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses a feed timestamp against the known layouts.
func ParseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// VehicleStats is the per-vehicle aggregate computed over valid trips.
// It is derived on demand and never stored.
type VehicleStats struct {
	VehicleID          string  `json:"vehicle_id"`
	TripCount          int     `json:"trip_count"`
	AvgFuelEfficiency  float64 `json:"avg_fuel_efficiency"`
	AvgDurationHr      float64 `json:"avg_duration_hr"`
	AvgSpeedKmh        float64 `json:"avg_speed_kmh"`
	StdFuelEfficiency  float64 `json:"std_fuel_efficiency"`
	ConsistencyFactor  float64 `json:"consistency_factor"`
	ExperienceWeight   float64 `json:"experience_weight"`
	SustainabilityScore float64 `json:"sustainability_score"`
}

// SuggestedVehicle is a display row for the suggestion panels.
type SuggestedVehicle struct {
	VehicleID          string  `json:"vehicle_id"`
	FuelEfficiencyKmpl float64 `json:"fuel_efficiency_kmpl"`
	AvgSpeedKmh        float64 `json:"avg_speed_kmh"`
	DurationHr         float64 `json:"duration_hr"`
}
