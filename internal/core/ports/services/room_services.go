package services

import (
	"context"

	"github.com/billkhata/billkhata/internal/core/domain"
)

// RoomAuthorizerSvc checks whether a user may act in a room. Services that
// need room-scoped authorization depend on this narrow interface rather than
// the full room service.
type RoomAuthorizerSvc interface {
	// AuthorizeRoomAction returns nil when userID holds at least
	// requiredRole in the room, apperrors.ErrForbidden when the role is
	// insufficient, and apperrors.ErrNotFound when there is no membership.
	AuthorizeRoomAction(ctx context.Context, userID, roomID string, requiredRole domain.UserRoomRole) error
}

// RoomReaderSvc exposes room reads needed by other services.
type RoomReaderSvc interface {
	GetRoomMembers(ctx context.Context, roomID string) ([]domain.UserRoom, error)
	FindRoomManager(ctx context.Context, roomID string) (*domain.UserRoom, error)
}

// RoomSvcFacade is the full room service surface.
type RoomSvcFacade interface {
	RoomAuthorizerSvc
	RoomReaderSvc
	CreateRoom(ctx context.Context, name, description, creatorUserID string) (*domain.Room, error)
	ListUserRooms(ctx context.Context, userID string) ([]domain.Room, error)
	AddUserToRoom(ctx context.Context, addingUserID, targetUserID, roomID string, role domain.UserRoomRole) error
	ListRoomMembers(ctx context.Context, requesterID, roomID string) ([]domain.UserRoom, error)
}
