package services

import (
	"context"
	"time"

	"github.com/billkhata/billkhata/internal/core/domain"
	"github.com/billkhata/billkhata/internal/dto"
)

// UserSvcFacade is the full user service surface.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	// VerifyCredentials returns the user on a correct email/password pair,
	// apperrors.ErrUnauthorized otherwise.
	VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error)
	// UpdateRefreshToken updates the refresh token details for a user.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error
	// ClearRefreshToken clears the refresh token for a user.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// TokenSvcFacade issues and validates the tokens backing the auth endpoints.
type TokenSvcFacade interface {
	// GenerateAccessToken creates a signed JWT for the user and returns it
	// with its expiry time.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// GenerateRefreshToken creates a new refresh token for the user, persists
	// its hash, and returns the raw token with its expiry time.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ValidateRefreshToken checks a raw refresh token against the user's
	// stored hash and returns the user when it is current and matches.
	ValidateRefreshToken(ctx context.Context, userID string, refreshToken string) (*domain.User, error)
}
