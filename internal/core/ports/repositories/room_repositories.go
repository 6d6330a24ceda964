package repositories

import (
	"context"

	"github.com/billkhata/billkhata/internal/core/domain"
)

// RoomReader defines read operations for rooms and memberships.
type RoomReader interface {
	FindRoomByID(ctx context.Context, roomID string) (*domain.Room, error)
	ListRoomsByUserID(ctx context.Context, userID string) ([]domain.Room, error)
	ListRoomMembers(ctx context.Context, roomID string) ([]domain.UserRoom, error)
	// FindMembership returns apperrors.ErrNotFound when the user does not
	// belong to the room (or has been removed).
	FindMembership(ctx context.Context, userID, roomID string) (*domain.UserRoom, error)
}

// RoomWriter defines write operations for rooms and memberships.
type RoomWriter interface {
	SaveRoom(ctx context.Context, room domain.Room) error
	AddUserToRoom(ctx context.Context, membership domain.UserRoom) error
}

// RoomRepository combines read and write operations for rooms.
type RoomRepository interface {
	RoomReader
	RoomWriter
}
