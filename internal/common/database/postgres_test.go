package database

import (
	"context"
	"database/sql"
	stderrors "errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dining-concierge/internal/common/config"
	"dining-concierge/internal/common/errors"
)

func setupMockDB(t *testing.T) (*PostgresClient, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &PostgresClient{DB: db}, mock
}

var restaurantColumns = []string{"business_id", "name", "address", "cuisine", "rating", "review_count", "zip_code"}

func TestGetRestaurant(t *testing.T) {
	pg, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM restaurants")).
		WithArgs("b1").
		WillReturnRows(sqlmock.NewRows(restaurantColumns).
			AddRow("b1", "Sushi Place", "1 Main St", "japanese", 4.5, 120, "10001"))

	r, err := pg.GetRestaurant(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, "Sushi Place", r.Name)
	assert.Equal(t, "1 Main St", r.Address)
	assert.Equal(t, 4.5, r.Rating)
	assert.Equal(t, 120, r.ReviewCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRestaurant_NotFound(t *testing.T) {
	pg, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM restaurants")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := pg.GetRestaurant(context.Background(), "missing")
	assert.ErrorIs(t, err, errors.ErrRestaurantNotFound)
}

func TestGetRestaurant_QueryError(t *testing.T) {
	pg, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM restaurants")).
		WithArgs("b1").
		WillReturnError(stderrors.New("connection refused"))

	_, err := pg.GetRestaurant(context.Background(), "b1")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeStoreLookupFailed, errors.CodeOf(err))
	assert.True(t, errors.IsRetryable(err))
}

func TestPostgresConfigDSN(t *testing.T) {
	dsn := config.PostgresConfig{
		Host: "db", Port: 5432, User: "u", Password: "p", Database: "restaurants", SSLMode: "disable",
	}.GetDSN()
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=restaurants sslmode=disable", dsn)
}
