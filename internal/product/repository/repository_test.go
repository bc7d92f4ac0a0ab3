package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	db "github.com/yemyy27/perfume-store-platform/internal/product/repository"
)

func setupTestDB(t *testing.T) *db.Repository {
	t.Helper()

	repo, err := db.NewRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	require.NoError(t, repo.RunMigrations("./migrations"))
	return repo
}

func TestGetAllProducts_SeededCatalog(t *testing.T) {
	repo := setupTestDB(t)

	products, err := repo.GetAllProducts(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, products, 3)

	assert.Equal(t, "Midnight Rose", products[0].Name)
	assert.Equal(t, 89.99, products[0].Price)
	assert.True(t, products[0].InStock)

	assert.Equal(t, "Vanilla Dreams", products[2].Name)
	assert.False(t, products[2].InStock)
}

func TestGetAllProducts_CategoryFilter(t *testing.T) {
	repo := setupTestDB(t)

	colognes, err := repo.GetAllProducts(context.Background(), "cologne")
	require.NoError(t, err)
	require.Len(t, colognes, 1)
	assert.Equal(t, "Ocean Breeze", colognes[0].Name)

	none, err := repo.GetAllProducts(context.Background(), "candle")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetProduct_ById(t *testing.T) {
	repo := setupTestDB(t)

	product, err := repo.GetProduct(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Ocean Breeze", product.Name)
	assert.Equal(t, 75.50, product.Price)
	assert.Equal(t, "cologne", product.Category)
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetProduct(context.Background(), 999)
	assert.ErrorIs(t, err, db.ErrProductNotFound)
}
