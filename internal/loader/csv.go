// Package loader reads the trip summary feed into memory. The feed is
// expected to be imperfect: missing numeric fields default to zero,
// missing strings to "", and nothing here returns an error for a bad
// value inside a row. Deciding which rows are trustworthy is the
// analyzer's job, not the loader's.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/safetruck/fleetsight/internal/analyzer"
	"github.com/safetruck/fleetsight/internal/models"
	"github.com/schollz/progressbar/v3"
)

// LoadFile reads a trip summary CSV from disk.
func LoadFile(path string, showProgress bool) ([]models.Trip, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening trip file: %w", err)
	}
	defer file.Close()

	var bar *progressbar.ProgressBar
	if showProgress {
		info, err := file.Stat()
		if err == nil {
			bar = progressbar.DefaultBytes(info.Size(), "loading trips")
		}
	}

	var reader io.Reader = file
	if bar != nil {
		reader = io.TeeReader(file, bar)
	}

	return Load(reader)
}

// Load parses trip records from CSV. The first row must be a header;
// column order is free. Unknown columns are ignored and absent columns
// default per field type.
func Load(r io.Reader) ([]models.Trip, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}

	var trips []models.Trip
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record: %w", err)
		}
		trips = append(trips, tripFromRecord(fields, index))
	}

	return trips, nil
}

func tripFromRecord(fields []string, index map[string]int) models.Trip {
	str := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(fields) {
			return ""
		}
		return strings.TrimSpace(fields[i])
	}
	num := func(col string) float64 {
		v, err := strconv.ParseFloat(str(col), 64)
		if err != nil {
			return 0
		}
		return v
	}

	trip := models.Trip{
		VehicleID:          str("vehicle_id"),
		StartTime:          str("start_time"),
		EndTime:            str("end_time"),
		StartLat:           num("start_lat"),
		StartLon:           num("start_lon"),
		EndLat:             num("end_lat"),
		EndLon:             num("end_lon"),
		DistanceKm:         num("distance_km"),
		FuelUsedLitre:      num("fuel_used_litre"),
		DurationHr:         num("duration_hr"),
		AvgSpeedKmh:        num("avg_speed_kmh"),
		FuelEfficiencyKmpl: num("fuel_efficiency_kmpl"),
		StartKey:           str("start_key"),
		EndKey:             str("end_key"),
		RouteID:            str("route_id"),
	}

	return Derive(trip)
}

// Derive fills the computed fields on a trip: fuel efficiency when the
// feed omitted it, duration in minutes and the Day/Night period tag.
func Derive(trip models.Trip) models.Trip {
	if trip.FuelEfficiencyKmpl == 0 && trip.DistanceKm > 0 && trip.FuelUsedLitre > 0 {
		trip.FuelEfficiencyKmpl = trip.DistanceKm / trip.FuelUsedLitre
	}
	trip.TimeTakenMinutes = trip.DurationHr * 60
	trip.Period = analyzer.ClassifyPeriod(trip.StartTime)
	return trip
}

// CleanReport summarizes one cleaning pass: how many rows survived and
// which plausibility rule rejected the rest.
type CleanReport struct {
	Total    int
	Kept     int
	Rejected map[string]int
}

// Clean splits trips into the valid subset and a per-rule rejection
// breakdown, mirroring the offline cleaning script the feed used to go
// through.
func Clean(trips []models.Trip) ([]models.Trip, CleanReport) {
	report := CleanReport{
		Total:    len(trips),
		Rejected: make(map[string]int),
	}

	var valid []models.Trip
	for _, t := range trips {
		if rule := analyzer.FailedRule(t); rule != "" {
			report.Rejected[rule]++
			continue
		}
		valid = append(valid, t)
	}
	report.Kept = len(valid)

	return valid, report
}
