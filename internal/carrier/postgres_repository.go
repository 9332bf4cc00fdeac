package carrier

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/logisticsnet/logisticsnet/internal/refdata"
)

// PostgresRepository is a PostgreSQL implementation of Repository.
// Row order is kept in the seq column so ranking tie-breaks are stable.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL carrier profile repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var profileColumns = []string{
	"seq", "origin", "destination", "carrier",
	"price", "safety_rating", "delivery_time_hours",
	"warehouse_sqft", "location_review",
}

// ListByRoute returns the profiles of one route in insertion order.
func (r *PostgresRepository) ListByRoute(ctx context.Context, origin, destination string) ([]Profile, error) {
	query := `
		SELECT
			origin, destination, carrier,
			price, safety_rating, delivery_time_hours,
			warehouse_sqft, location_review
		FROM carrier_profiles
		WHERE origin = $1 AND destination = $2
		ORDER BY seq
	`

	rows, err := r.pool.Query(ctx, query, origin, destination)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		err := rows.Scan(
			&p.Origin,
			&p.Destination,
			&p.Carrier,
			&p.Price,
			&p.SafetyRating,
			&p.DeliveryTimeHours,
			&p.WarehouseSqft,
			&p.LocationReview,
		)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return profiles, nil
}

// Routes returns the distinct routes that have profiles, in first-insertion order.
func (r *PostgresRepository) Routes(ctx context.Context) ([]refdata.RouteKey, error) {
	query := `
		SELECT origin, destination
		FROM carrier_profiles
		GROUP BY origin, destination
		ORDER BY MIN(seq)
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []refdata.RouteKey
	for rows.Next() {
		var key refdata.RouteKey
		if err := rows.Scan(&key.Origin, &key.Destination); err != nil {
			return nil, err
		}
		routes = append(routes, key)
	}

	return routes, rows.Err()
}

// ReplaceAll replaces every stored profile in a single transaction.
func (r *PostgresRepository) ReplaceAll(ctx context.Context, profiles []Profile) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(ctx, `DELETE FROM carrier_profiles`); err != nil {
		return fmt.Errorf("clear profiles: %w", err)
	}

	source := pgx.CopyFromSlice(len(profiles), func(i int) ([]any, error) {
		p := profiles[i]
		return []any{
			i, p.Origin, p.Destination, p.Carrier,
			p.Price, p.SafetyRating, p.DeliveryTimeHours,
			p.WarehouseSqft, p.LocationReview,
		}, nil
	})
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"carrier_profiles"}, profileColumns, source); err != nil {
		return fmt.Errorf("copy profiles: %w", err)
	}

	return tx.Commit(ctx)
}

// Ensure PostgresRepository implements Repository interface.
var _ Repository = (*PostgresRepository)(nil)
