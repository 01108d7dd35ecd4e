package factories

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
	"github.com/safetruck/fleetsight/internal/models"
)

// Known depot locations the synthetic fleet shuttles between. All sit
// inside the operating-region bounding box.
var depots = []struct {
	key string
	lat float64
	lon float64
}{
	{"port klang", 3.0044, 101.3925},
	{"kuala lumpur", 3.139, 101.6869},
	{"penang port", 5.4241, 100.3478},
	{"johor bahru", 1.4927, 103.7414},
	{"ipoh", 4.5975, 101.0901},
	{"melaka", 2.1896, 102.2501},
	{"kuantan", 3.8077, 103.326},
	{"seremban", 2.7258, 101.9424},
}

// TripFactory generates synthetic trip summaries: mostly plausible
// hauls, with a configurable share of deliberately corrupted records so
// the cleaning pipeline has something to reject.
type TripFactory struct {
	rng        *rand.Rand
	fake       faker.Faker
	fleet      []string
	noiseRatio float64
}

// NewTripFactory builds a factory replaying the same records for the
// same seed.
func NewTripFactory(seed int, fleetSize int, noiseRatio float64) *TripFactory {
	rng := rand.New(rand.NewSource(int64(seed)))

	fleet := make([]string, fleetSize)
	for i := range fleet {
		fleet[i] = fmt.Sprintf("TRK-%04d", 1000+rng.Intn(9000))
	}

	return &TripFactory{
		rng:        rng,
		fake:       faker.NewWithSeed(rand.NewSource(int64(seed))),
		fleet:      fleet,
		noiseRatio: noiseRatio,
	}
}

// CreateTrip produces one synthetic record. Roughly noiseRatio of them
// carry sensor-style corruption.
func (tf *TripFactory) CreateTrip(start time.Time) models.Trip {
	trip := tf.plausibleTrip(start)
	if tf.rng.Float64() < tf.noiseRatio {
		tf.corrupt(&trip)
	}
	return trip
}

// CreateTrips produces count records spread over the days after start.
func (tf *TripFactory) CreateTrips(start time.Time, count int) []models.Trip {
	trips := make([]models.Trip, count)
	for i := range trips {
		offset := time.Duration(tf.rng.Intn(30*24)) * time.Hour
		trips[i] = tf.CreateTrip(start.Add(offset))
	}
	return trips
}

func (tf *TripFactory) plausibleTrip(start time.Time) models.Trip {
	from := depots[tf.rng.Intn(len(depots))]
	to := depots[tf.rng.Intn(len(depots))]
	for to.key == from.key {
		to = depots[tf.rng.Intn(len(depots))]
	}

	// realistic haul: 40-90 km/h average, efficiency 1.5-6 km/L
	speed := 40 + tf.rng.Float64()*50
	duration := 0.8 + tf.rng.Float64()*6
	distance := speed * duration
	if distance > 480 {
		duration = 480 / speed
		distance = speed * duration
	}
	efficiency := 1.5 + tf.rng.Float64()*4.5
	fuel := distance / efficiency

	jitter := func(v float64) float64 { return v + (tf.rng.Float64()-0.5)*0.02 }
	end := start.Add(time.Duration(duration * float64(time.Hour)))

	return models.Trip{
		VehicleID:          tf.fleet[tf.rng.Intn(len(tf.fleet))],
		StartTime:          start.Format("2006-01-02 15:04:05"),
		EndTime:            end.Format("2006-01-02 15:04:05"),
		StartLat:           jitter(from.lat),
		StartLon:           jitter(from.lon),
		EndLat:             jitter(to.lat),
		EndLon:             jitter(to.lon),
		DistanceKm:         distance,
		FuelUsedLitre:      fuel,
		DurationHr:         duration,
		AvgSpeedKmh:        speed,
		FuelEfficiencyKmpl: efficiency,
		StartKey:           from.key + " " + tf.fake.Address().StreetName(),
		EndKey:             to.key + " " + tf.fake.Address().StreetName(),
		RouteID:            cuid.New(),
	}
}

// corrupt mutates a plausible trip into one of the failure shapes seen
// in real feeds: dead GPS, parked engines logging as trips, impossible
// fuel or speed readings.
func (tf *TripFactory) corrupt(trip *models.Trip) {
	switch tf.rng.Intn(6) {
	case 0: // GPS dropout
		trip.StartLat, trip.StartLon = 0, 0
	case 1: // parked vehicle logging a "trip"
		trip.DistanceKm = 0
		trip.AvgSpeedKmh = 0
		trip.EndLat, trip.EndLon = trip.StartLat, trip.StartLon
	case 2: // overnight parking inside the trip window
		trip.DurationHr = 14 + tf.rng.Float64()*10
		trip.AvgSpeedKmh = trip.DistanceKm / trip.DurationHr
	case 3: // fuel sensor unit error
		trip.FuelUsedLitre = trip.DistanceKm / 60
		trip.FuelEfficiencyKmpl = 60
	case 4: // negative flow reading
		trip.FuelUsedLitre = -trip.FuelUsedLitre
	case 5: // odometer glitch
		trip.DistanceKm = 600 + tf.rng.Float64()*400
	}
}
