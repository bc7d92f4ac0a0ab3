package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/yemyy27/perfume-store-platform/internal/platform/httpx"
	"github.com/yemyy27/perfume-store-platform/internal/user/service"
	"github.com/yemyy27/perfume-store-platform/internal/user/store"
)

type UserHandler struct {
	users  *service.UserService
	logger *zap.Logger
}

func NewUserHandler(users *service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

type RegisterRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponseDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if !validEmail(req.Email) {
		httpx.RespondError(w, http.StatusBadRequest, "invalid_email", "a valid email is required")
		return
	}
	if req.Password == "" {
		httpx.RespondError(w, http.StatusBadRequest, "invalid_password", "password is required")
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			httpx.RespondError(w, http.StatusBadRequest, "email_taken", "Email already registered")
			return
		}
		h.logger.Error("registration failed", zap.String("email", req.Email), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to register user")
		return
	}

	httpx.RespondJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.RespondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	token, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.RespondError(w, http.StatusUnauthorized, "invalid_credentials", "Incorrect email or password")
			return
		}
		h.logger.Error("login failed", zap.String("email", req.Email), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to log in")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, TokenResponseDTO{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal := httpx.PrincipalFromContext(r.Context())
	if principal == "" {
		httpx.RespondError(w, http.StatusUnauthorized, "unauthorized", "missing user authentication")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), principal)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			httpx.RespondError(w, http.StatusUnauthorized, "unauthorized", "user not found")
			return
		}
		httpx.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to load user")
		return
	}

	httpx.RespondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		httpx.RespondError(w, http.StatusInternalServerError, "internal_error", "failed to list users")
		return
	}
	httpx.RespondJSON(w, http.StatusOK, users)
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && strings.Contains(email[at+1:], ".")
}
