package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yemyy27/perfume-store-platform/internal/product/domain"
	"github.com/yemyy27/perfume-store-platform/internal/product/repository"
)

type repoMock struct {
	products []*domain.Product
	err      error
}

func (m repoMock) GetAllProducts(_ context.Context, category string) ([]*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	if category == "" {
		return m.products, nil
	}
	filtered := []*domain.Product{}
	for _, p := range m.products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (m repoMock) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func (m repoMock) Close() error               { return nil }
func (m repoMock) RunMigrations(string) error { return nil }

func testCatalog() []*domain.Product {
	return []*domain.Product{
		{ID: 1, Name: "Midnight Rose", Price: 89.99, Category: "perfume", InStock: true},
		{ID: 2, Name: "Ocean Breeze", Price: 75.50, Category: "cologne", InStock: true},
	}
}

func TestListProducts(t *testing.T) {
	h := NewProductHandler(repoMock{products: testCatalog()}, zap.NewNop())

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/products", nil)
	h.ListProducts(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response []domain.Product
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Len(t, response, 2)
}

func TestListProducts_CategoryFilter(t *testing.T) {
	h := NewProductHandler(repoMock{products: testCatalog()}, zap.NewNop())

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/products?category=cologne", nil)
	h.ListProducts(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response []domain.Product
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	require.Len(t, response, 1)
	assert.Equal(t, "Ocean Breeze", response[0].Name)
}

func getProduct(h *ProductHandler, id string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/api/products/"+id, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	request = request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, rctx))

	h.GetProduct(recorder, request)
	return recorder
}

func TestGetProduct_Found(t *testing.T) {
	h := NewProductHandler(repoMock{products: testCatalog()}, zap.NewNop())

	recorder := getProduct(h, "1")
	require.Equal(t, http.StatusOK, recorder.Code)

	var response domain.Product
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	assert.Equal(t, "Midnight Rose", response.Name)
}

func TestGetProduct_NotFound(t *testing.T) {
	h := NewProductHandler(repoMock{products: testCatalog()}, zap.NewNop())
	assert.Equal(t, http.StatusNotFound, getProduct(h, "42").Code)
}

func TestGetProduct_BadID(t *testing.T) {
	h := NewProductHandler(repoMock{products: testCatalog()}, zap.NewNop())
	assert.Equal(t, http.StatusBadRequest, getProduct(h, "abc").Code)
}
