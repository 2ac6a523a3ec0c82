// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/errors"
	"dining-concierge/internal/models"
)

// PostgresClient wraps the SQL database connection
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres creates a new PostgreSQL client
func NewPostgres(cfg config.PostgresConfig) (*PostgresClient, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &PostgresClient{DB: db}, nil
}

// Ping tests the database connection
func (c *PostgresClient) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Close closes the database connection
func (c *PostgresClient) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

const getRestaurantQuery = `
	SELECT business_id, name, address, COALESCE(cuisine, ''), COALESCE(rating, 0),
	       COALESCE(review_count, 0), COALESCE(zip_code, '')
	FROM restaurants
	WHERE business_id = $1`

// GetRestaurant reads one row of the restaurants table.
func (c *PostgresClient) GetRestaurant(ctx context.Context, businessID string) (*models.Restaurant, error) {
	var r models.Restaurant
	err := c.DB.QueryRowContext(ctx, getRestaurantQuery, businessID).Scan(
		&r.BusinessID, &r.Name, &r.Address, &r.Cuisine, &r.Rating, &r.ReviewCount, &r.ZipCode,
	)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewRestaurantNotFoundError(businessID)
	}
	if err != nil {
		return nil, errors.NewStoreLookupError(businessID, err)
	}
	return &r, nil
}
