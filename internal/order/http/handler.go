package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yemyy27/perfume-store-platform/internal/order/cart"
	"github.com/yemyy27/perfume-store-platform/internal/order/catalog"
	"github.com/yemyy27/perfume-store-platform/internal/order/checkout"
	"github.com/yemyy27/perfume-store-platform/internal/order/domain"
	"github.com/yemyy27/perfume-store-platform/internal/order/orders"
	"github.com/yemyy27/perfume-store-platform/internal/platform/httpx"
)

type CartService interface {
	Add(ctx context.Context, userEmail string, productID int64, quantity int) (*domain.CartView, error)
	View(ctx context.Context, userEmail string) (*domain.CartView, error)
	Clear(ctx context.Context, userEmail string) error
}

type CheckoutService interface {
	Checkout(ctx context.Context, userEmail string) (*domain.Order, error)
}

type OrderHandler struct {
	carts    CartService
	checkout CheckoutService
	orders   orders.Repository
	logger   *zap.Logger
}

func NewOrderHandler(carts CartService, co CheckoutService, repo orders.Repository, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		carts:    carts,
		checkout: co,
		orders:   repo,
		logger:   logger,
	}
}

type AddToCartRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type CartResponseDTO struct {
	Message string           `json:"message"`
	Cart    *domain.CartView `json:"cart"`
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

func (h *OrderHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	var req AddToCartRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	view, err := h.carts.Add(r.Context(), principal, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrInvalidQuantity):
			httpx.RespondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at least 1")
		case errors.Is(err, cart.ErrOutOfStock):
			httpx.RespondError(w, http.StatusBadRequest, "out_of_stock", "product is out of stock")
		case errors.Is(err, catalog.ErrProductNotFound):
			httpx.RespondError(w, http.StatusNotFound, "product_not_found", "product not found")
		case errors.Is(err, catalog.ErrUnavailable):
			httpx.RespondError(w, http.StatusBadGateway, "catalog_unavailable", "product catalog is unavailable")
		default:
			h.logger.Error("add to cart failed", zap.String("user_email", principal), zap.Error(err))
			httpx.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to add item to cart")
		}
		return
	}

	httpx.RespondJSON(w, http.StatusOK, CartResponseDTO{
		Message: "Item added to cart",
		Cart:    view,
	})
}

func (h *OrderHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	view, err := h.carts.View(r.Context(), principal)
	if err != nil {
		h.logger.Error("get cart failed", zap.String("user_email", principal), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to load cart")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, view)
}

func (h *OrderHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	if err := h.carts.Clear(r.Context(), principal); err != nil {
		h.logger.Error("clear cart failed", zap.String("user_email", principal), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to clear cart")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, map[string]string{"message": "Cart cleared"})
}

// CreateOrder runs checkout for the authenticated principal.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	order, err := h.checkout.Checkout(r.Context(), principal)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			httpx.RespondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
		case errors.Is(err, cart.ErrOutOfStock):
			httpx.RespondError(w, http.StatusBadRequest, "out_of_stock", err.Error())
		case errors.Is(err, catalog.ErrProductNotFound):
			httpx.RespondError(w, http.StatusBadRequest, "product_not_found", err.Error())
		case errors.Is(err, checkout.ErrCheckoutInProgress):
			httpx.RespondError(w, http.StatusConflict, "checkout_in_progress", "a checkout is already in progress")
		case errors.Is(err, catalog.ErrUnavailable):
			httpx.RespondError(w, http.StatusBadGateway, "catalog_unavailable", "product catalog is unavailable")
		default:
			h.logger.Error("checkout failed", zap.String("user_email", principal), zap.Error(err))
			httpx.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to create order")
		}
		return
	}

	httpx.RespondJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	listed, err := h.orders.ListByUser(r.Context(), principal)
	if err != nil {
		h.logger.Error("list orders failed", zap.String("user_email", principal), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to list orders")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, listed)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}

	id, err := orderID(r)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be an integer")
		return
	}

	order, err := h.orders.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "order_not_found", "order not found")
			return
		}
		h.logger.Error("get order failed", zap.Int64("order_id", id), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to load order")
		return
	}

	if order.UserEmail != principal {
		httpx.RespondError(w, http.StatusForbidden, "forbidden", "order belongs to another user")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, order)
}

// UpdateStatus is unauthenticated and unguarded: any known status may
// replace any other.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := orderID(r)
	if err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be an integer")
		return
	}

	var req UpdateStatusRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	status := domain.OrderStatus(req.Status)
	if !status.Valid() {
		httpx.RespondError(w, http.StatusBadRequest, "invalid_status", "unknown order status: "+req.Status)
		return
	}

	order, err := h.orders.SetStatus(r.Context(), id, status)
	if err != nil {
		if errors.Is(err, orders.ErrOrderNotFound) {
			httpx.RespondError(w, http.StatusNotFound, "order_not_found", "order not found")
			return
		}
		h.logger.Error("update status failed", zap.Int64("order_id", id), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to update order status")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) principal(w http.ResponseWriter, r *http.Request) (string, bool) {
	principal := httpx.PrincipalFromContext(r.Context())
	if principal == "" {
		httpx.RespondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return "", false
	}
	return principal, true
}

func orderID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
