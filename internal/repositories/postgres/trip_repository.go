package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/safetruck/fleetsight/internal/models"
)

type TripRepository struct {
	pool *pgxpool.Pool
}

func NewTripRepository(pool *pgxpool.Pool) *TripRepository {
	return &TripRepository{pool: pool}
}

const tripColumns = `
    vehicle_id, start_time, end_time,
    start_lat, start_lon, end_lat, end_lon,
    distance_km, fuel_used_litre, duration_hr, avg_speed_kmh,
    fuel_efficiency_kmpl, start_key, end_key, route_id`

const insertTrip = `
    INSERT INTO trips (` + tripColumns + `
    ) VALUES (
        $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
    )`

func tripArgs(t models.Trip) []interface{} {
	return []interface{}{
		t.VehicleID, t.StartTime, t.EndTime,
		t.StartLat, t.StartLon, t.EndLat, t.EndLon,
		t.DistanceKm, t.FuelUsedLitre, t.DurationHr, t.AvgSpeedKmh,
		t.FuelEfficiencyKmpl, t.StartKey, t.EndKey, t.RouteID,
	}
}

func (r *TripRepository) BulkCreate(ctx context.Context, trips []models.Trip) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, trip := range trips {
		if _, err := tx.Exec(ctx, insertTrip, tripArgs(trip)...); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *TripRepository) Create(ctx context.Context, trip models.Trip) error {
	_, err := r.pool.Exec(ctx, insertTrip, tripArgs(trip)...)
	return err
}

func (r *TripRepository) GetAll(ctx context.Context) ([]models.Trip, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+tripColumns+` FROM trips`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTrips(rows)
}

func (r *TripRepository) GetByVehicle(ctx context.Context, vehicleID string) ([]models.Trip, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+tripColumns+` FROM trips WHERE vehicle_id = $1`, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTrips(rows)
}

func scanTrips(rows pgx.Rows) ([]models.Trip, error) {
	var trips []models.Trip
	for rows.Next() {
		var t models.Trip
		err := rows.Scan(
			&t.VehicleID, &t.StartTime, &t.EndTime,
			&t.StartLat, &t.StartLon, &t.EndLat, &t.EndLon,
			&t.DistanceKm, &t.FuelUsedLitre, &t.DurationHr, &t.AvgSpeedKmh,
			&t.FuelEfficiencyKmpl, &t.StartKey, &t.EndKey, &t.RouteID,
		)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}

func (r *TripRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM trips").Scan(&count)
	return count, err
}

func (r *TripRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM trips")
	return err
}
