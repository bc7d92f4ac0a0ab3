package orders

import (
	"context"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yemyy27/perfume-store-platform/internal/order/domain"
)

// setupPostgres connects to the database named by ORDERS_TEST_DB_* and
// runs migrations. Tests are skipped when ORDERS_TEST_DB_HOST is unset.
func setupPostgres(t *testing.T) *PostgresRepository {
	host := os.Getenv("ORDERS_TEST_DB_HOST")
	if host == "" {
		t.Skip("ORDERS_TEST_DB_HOST not set; skipping postgres integration test")
	}

	port := 5432
	if p := os.Getenv("ORDERS_TEST_DB_PORT"); p != "" {
		parsed, err := strconv.Atoi(p)
		require.NoError(t, err)
		port = parsed
	}

	repo, err := NewPostgresRepository(&Credentials{
		Host:     host,
		Port:     port,
		User:     envOr("ORDERS_TEST_DB_USER", "postgres"),
		Password: envOr("ORDERS_TEST_DB_PASSWORD", "postgres"),
		DBName:   envOr("ORDERS_TEST_DB_NAME", "orders_test"),
	})
	require.NoError(t, err)

	require.NoError(t, repo.RunMigrations("./migrations"))

	t.Cleanup(func() {
		_, _ = repo.db.Exec("TRUNCATE orders RESTART IDENTITY")
		repo.Close()
	})
	return repo
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestPostgresRoundTrip(t *testing.T) {
	repo := setupPostgres(t)

	order := sampleOrder("alice@example.com")
	require.NoError(t, repo.Create(context.Background(), order))
	require.NotZero(t, order.ID)

	got, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.UserEmail)
	assert.Equal(t, 25.0, got.Total)
	assert.Equal(t, domain.OrderStatusPending, got.Status)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Midnight Rose", got.Items[0].ProductName)
}

func TestPostgresListByUser(t *testing.T) {
	repo := setupPostgres(t)

	first := sampleOrder("alice@example.com")
	require.NoError(t, repo.Create(context.Background(), first))
	second := sampleOrder("alice@example.com")
	require.NoError(t, repo.Create(context.Background(), second))
	other := sampleOrder("bob@example.com")
	require.NoError(t, repo.Create(context.Background(), other))

	got, err := repo.ListByUser(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Less(t, got[0].ID, got[1].ID)
}

func TestPostgresSetStatus(t *testing.T) {
	repo := setupPostgres(t)

	order := sampleOrder("alice@example.com")
	require.NoError(t, repo.Create(context.Background(), order))

	updated, err := repo.SetStatus(context.Background(), order.ID, domain.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, updated.Status)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	_, err = repo.SetStatus(context.Background(), order.ID+1000, domain.OrderStatusShipped)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
