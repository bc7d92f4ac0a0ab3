package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yemyy27/perfume-store-platform/internal/platform/httpx"
	"github.com/yemyy27/perfume-store-platform/internal/product/repository"
)

type ProductHandler struct {
	repo   repository.RepoInterface
	logger *zap.Logger
}

func NewProductHandler(repo repository.RepoInterface, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		repo:   repo,
		logger: logger,
	}
}

// ListProducts returns all products, optionally filtered by ?category=.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	products, err := h.repo.GetAllProducts(r.Context(), category)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to list products")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		httpx.RespondError(w, http.StatusBadRequest, "invalid_product_id", "product id must be a positive integer")
		return
	}

	product, err := h.repo.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "not_found", "Product not found")
			return
		}
		h.logger.Error("failed to get product", zap.Int64("product_id", id), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to get product")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, product)
}
