package models

// Operating region bounding box. The fleet runs Malaysian routes; a
// coordinate outside this box (or the (0,0) GPS error sentinel) marks a
// corrupted fix. These are domain facts, not tunables, so they live here
// rather than in Config.
const (
	RegionMinLat = 0.5
	RegionMaxLat = 7.5
	RegionMinLon = 99.0
	RegionMaxLon = 120.0
)

// Trip plausibility thresholds for heavy trucks. Chosen to bias against
// "too good to be true" telemetry rather than to be statistically optimal.
const (
	MinTripDistanceKm = 1.0   // anything shorter is not a meaningful trip
	MaxTripDistanceKm = 500.0 // single hauls in the region rarely exceed this
	MaxTripDurationHr = 12.0  // longer spans include overnight parking
	MinAvgSpeedKmh    = 5.0   // below this is traffic crawl or parking
	MaxAvgSpeedKmh    = 100.0 // trucks are speed-limited well under this
	MinFuelEffKmpl    = 1.0   // heavy trucks: 1.5-5 km/L typical
	MaxFuelEffKmpl    = 8.0   // above this is sensor or unit corruption

	ParkedDurationHr     = 5.0 // with ParkedSpeedKmh, flags disguised parking
	ParkedSpeedKmh       = 10.0
	StationaryDegrees    = 0.01 // ~1 km of latitude
	StationaryDurationHr = 0.5
	SpeedMismatchRatio   = 0.3 // tolerance between distance/duration and reported speed
)

// Reliability score composition weights.
const (
	WeightFuelScore   = 0.4
	WeightTimeScore   = 0.3
	WeightConsistency = 0.2
	WeightExperience  = 0.1
)

// Day starts at 06:00 and ends just before 18:00, local wall clock.
const (
	DayStartHour = 6
	DayEndHour   = 18
)
