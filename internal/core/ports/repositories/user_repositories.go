package repositories

import (
	"context"
	"time"

	"github.com/billkhata/billkhata/internal/core/domain"
)

// UserReader defines read operations for users.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	SaveUser(ctx context.Context, user domain.User) error
	// UpdateRefreshToken stores the hash and expiry of a newly issued
	// refresh token, replacing any previous one.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime time.Time) error
	// ClearRefreshToken invalidates the user's stored refresh token.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserRepository combines read and write operations for users.
type UserRepository interface {
	UserReader
	UserWriter
}
