package output

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/safetruck/fleetsight/internal/models"
	"github.com/safetruck/fleetsight/internal/repositories"
	"github.com/safetruck/fleetsight/internal/repositories/postgres"
)

// PostgresOutput persists cleaned trips through the trip repository.
type PostgresOutput struct {
	pool *pgxpool.Pool
	repo repositories.TripRepository
}

func NewPostgresOutput(cfg *models.Config) (*PostgresOutput, error) {
	pool, err := pgxpool.New(context.Background(), cfg.Database.ConnString())
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	return &PostgresOutput{
		pool: pool,
		repo: postgres.NewTripRepository(pool),
	}, nil
}

func (p *PostgresOutput) WriteTrips(trips []models.Trip) error {
	return p.repo.BulkCreate(context.Background(), trips)
}

func (p *PostgresOutput) Close() error {
	p.pool.Close()
	return nil
}
