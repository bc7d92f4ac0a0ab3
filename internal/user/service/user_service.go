package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/yemyy27/perfume-store-platform/internal/auth"
	"github.com/yemyy27/perfume-store-platform/internal/user/domain"
	"github.com/yemyy27/perfume-store-platform/internal/user/store"
)

var ErrInvalidCredentials = errors.New("incorrect email or password")

// TokenIssuer signs a bearer token for the given principal.
type TokenIssuer interface {
	Issue(email string) (string, error)
}

type UserService struct {
	store  store.UserStore
	tokens TokenIssuer
	logger *zap.Logger
}

func NewUserService(s store.UserStore, tokens TokenIssuer, logger *zap.Logger) *UserService {
	return &UserService{
		store:  s,
		tokens: tokens,
		logger: logger,
	}
}

func (s *UserService) Register(ctx context.Context, email, password, fullName string) (*domain.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.store.Create(ctx, &domain.User{
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.Int64("user_id", user.ID),
		zap.String("email", user.Email))

	return user, nil
}

// Login verifies the credentials and returns a signed bearer token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email)
	if err != nil {
		s.logger.Error("failed to issue token",
			zap.String("email", email),
			zap.Error(err))
		return "", err
	}
	return token, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.store.GetByEmail(ctx, email)
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.store.List(ctx)
}
