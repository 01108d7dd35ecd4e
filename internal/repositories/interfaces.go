package repositories

import (
	"context"

	"github.com/safetruck/fleetsight/internal/models"
)

// TripRepository stores and loads raw trip records. Only trips are
// persisted; reliability scores are derived values recomputed on read.
type TripRepository interface {
	BulkCreate(ctx context.Context, trips []models.Trip) error
	Create(ctx context.Context, trip models.Trip) error
	GetAll(ctx context.Context) ([]models.Trip, error)
	GetByVehicle(ctx context.Context, vehicleID string) ([]models.Trip, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
