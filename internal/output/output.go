// Package output writes cleaned trip rows to the configured sink.
// Scores on the rows are derived values recomputed on every run; the
// sinks exist for the cleaned feed and for human-readable reports, not
// as a score store.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"text/tabwriter"

	"github.com/safetruck/fleetsight/internal/models"
)

// Destination is where cleaned trips end up.
type Destination interface {
	WriteTrips(trips []models.Trip) error
	Close() error
}

// New builds the Destination the config asks for.
func New(cfg *models.Config) (Destination, error) {
	switch cfg.OutputType {
	case "", "console":
		return &ConsoleOutput{}, nil
	case "csv":
		return NewCSVOutput(cfg.OutputPath, cfg.OutputFolder), nil
	case "json":
		return NewJSONOutput(cfg.OutputPath, cfg.OutputFolder), nil
	case "parquet":
		return NewParquetOutput(cfg)
	case "kafka":
		return NewKafkaOutput(cfg)
	case "postgres":
		return NewPostgresOutput(cfg)
	default:
		return nil, fmt.Errorf("unsupported output type: %s", cfg.OutputType)
	}
}

var csvHeader = []string{
	"vehicle_id", "start_time", "end_time",
	"start_lat", "start_lon", "end_lat", "end_lon",
	"distance_km", "fuel_used_litre", "duration_hr", "avg_speed_kmh",
	"fuel_efficiency_kmpl", "start_key", "end_key",
	"period", "reliability_score",
}

func csvRow(t models.Trip) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return []string{
		t.VehicleID, t.StartTime, t.EndTime,
		f(t.StartLat), f(t.StartLon), f(t.EndLat), f(t.EndLon),
		f(t.DistanceKm), f(t.FuelUsedLitre), f(t.DurationHr), f(t.AvgSpeedKmh),
		f(t.FuelEfficiencyKmpl), t.StartKey, t.EndKey,
		string(t.Period), strconv.FormatFloat(t.ReliabilityScore, 'f', 1, 64),
	}
}

// CSVOutput writes one trips.csv under basePath/folder.
type CSVOutput struct {
	basePath string
	folder   string
}

func NewCSVOutput(basePath, folder string) *CSVOutput {
	return &CSVOutput{basePath: basePath, folder: folder}
}

func (c *CSVOutput) WriteTrips(trips []models.Trip) error {
	dir := filepath.Join(c.basePath, c.folder)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}

	file, err := os.Create(filepath.Join(dir, "trips.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range trips {
		if err := w.Write(csvRow(t)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (c *CSVOutput) Close() error { return nil }

// JSONOutput writes newline-delimited JSON to trips.jsonl.
type JSONOutput struct {
	basePath string
	folder   string
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{basePath: basePath, folder: folder}
}

func (j *JSONOutput) WriteTrips(trips []models.Trip) error {
	dir := filepath.Join(j.basePath, j.folder)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}

	file, err := os.Create(filepath.Join(dir, "trips.jsonl"))
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	for _, t := range trips {
		if err := enc.Encode(t); err != nil {
			return err
		}
	}
	return nil
}

func (j *JSONOutput) Close() error { return nil }

// ConsoleOutput prints a readable table to stdout.
type ConsoleOutput struct{}

func (c *ConsoleOutput) WriteTrips(trips []models.Trip) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VEHICLE\tSTART\tPERIOD\tDIST KM\tDUR HR\tKM/L\tSCORE")
	for _, t := range trips {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%.2f\t%.2f\t%.1f\n",
			t.VehicleID, t.StartTime, t.Period,
			t.DistanceKm, t.DurationHr, t.FuelEfficiencyKmpl, t.ReliabilityScore)
	}
	return w.Flush()
}

func (c *ConsoleOutput) Close() error { return nil }
