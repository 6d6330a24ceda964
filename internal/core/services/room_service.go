package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/billkhata/billkhata/internal/apperrors"
	"github.com/billkhata/billkhata/internal/core/domain"
	portsrepo "github.com/billkhata/billkhata/internal/core/ports/repositories"
	portssvc "github.com/billkhata/billkhata/internal/core/ports/services"
)

// RoomService handles rooms, memberships, and room-scoped authorization.
type RoomService struct {
	BaseService
	roomRepo portsrepo.RoomRepository
	userRepo portsrepo.UserRepository
}

// NewRoomService creates a new RoomService.
func NewRoomService(rr portsrepo.RoomRepository, ur portsrepo.UserRepository) portssvc.RoomSvcFacade {
	return &RoomService{roomRepo: rr, userRepo: ur}
}

var _ portssvc.RoomSvcFacade = (*RoomService)(nil)

// AuthorizeRoomAction checks that userID holds at least requiredRole in the
// room. A MANAGER satisfies a MEMBER requirement; a REMOVED membership never
// authorizes anything.
func (s *RoomService) AuthorizeRoomAction(ctx context.Context, userID, roomID string, requiredRole domain.UserRoomRole) error {
	membership, err := s.roomRepo.FindMembership(ctx, userID, roomID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: user is not a member of this room", apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to check room membership",
			slog.String("user_id", userID), slog.String("room_id", roomID))
		return fmt.Errorf("failed to check membership: %w", err)
	}

	switch membership.Role {
	case domain.RoleRemoved:
		return fmt.Errorf("%w: user has been removed from this room", apperrors.ErrForbidden)
	case domain.RoleManager:
		return nil
	case domain.RoleMember:
		if requiredRole == domain.RoleManager {
			return fmt.Errorf("%w: manager role required", apperrors.ErrForbidden)
		}
		return nil
	}
	return fmt.Errorf("%w: unknown role %s", apperrors.ErrForbidden, membership.Role)
}

// CreateRoom creates a room and makes the creator its MANAGER.
func (s *RoomService) CreateRoom(ctx context.Context, name, description, creatorUserID string) (*domain.Room, error) {
	logger := s.GetLogger(ctx)

	now := time.Now()
	newRoomID := uuid.NewString()

	room := domain.Room{
		RoomID:      newRoomID,
		Name:        name,
		Description: description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.roomRepo.SaveRoom(ctx, room); err != nil {
		s.LogError(ctx, err, "Failed to save room", slog.String("room_name", name))
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	membership := domain.UserRoom{
		UserID:   creatorUserID,
		RoomID:   newRoomID,
		Role:     domain.RoleManager,
		JoinedAt: now,
	}
	if err := s.roomRepo.AddUserToRoom(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add creator as manager",
			slog.String("room_id", newRoomID), slog.String("user_id", creatorUserID))
		return nil, fmt.Errorf("failed to create room membership: %w", err)
	}

	logger.Info("Room created", slog.String("room_id", newRoomID), slog.String("creator_user_id", creatorUserID))
	return &room, nil
}

// ListUserRooms lists the rooms the user belongs to.
func (s *RoomService) ListUserRooms(ctx context.Context, userID string) ([]domain.Room, error) {
	rooms, err := s.roomRepo.ListRoomsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list rooms for user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// AddUserToRoom adds targetUserID to the room. Only managers may add members.
func (s *RoomService) AddUserToRoom(ctx context.Context, addingUserID, targetUserID, roomID string, role domain.UserRoomRole) error {
	if err := s.AuthorizeRoomAction(ctx, addingUserID, roomID, domain.RoleManager); err != nil {
		return err
	}

	if role != domain.RoleManager && role != domain.RoleMember {
		return fmt.Errorf("%w: invalid role %s", apperrors.ErrValidation, role)
	}

	if _, err := s.userRepo.FindUserByID(ctx, targetUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: user %s not found", apperrors.ErrValidation, targetUserID)
		}
		return fmt.Errorf("failed to validate target user: %w", err)
	}

	membership := domain.UserRoom{
		UserID:   targetUserID,
		RoomID:   roomID,
		Role:     role,
		JoinedAt: time.Now(),
	}
	if err := s.roomRepo.AddUserToRoom(ctx, membership); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: user is already a member of this room", apperrors.ErrDuplicate)
		}
		s.LogError(ctx, err, "Failed to add user to room",
			slog.String("target_user_id", targetUserID), slog.String("room_id", roomID))
		return fmt.Errorf("failed to add user to room: %w", err)
	}

	s.LogInfo(ctx, "User added to room",
		slog.String("target_user_id", targetUserID),
		slog.String("room_id", roomID),
		slog.String("role", string(role)))
	return nil
}

// ListRoomMembers lists memberships of a room for a requesting member.
func (s *RoomService) ListRoomMembers(ctx context.Context, requesterID, roomID string) ([]domain.UserRoom, error) {
	if err := s.AuthorizeRoomAction(ctx, requesterID, roomID, domain.RoleMember); err != nil {
		return nil, err
	}
	return s.GetRoomMembers(ctx, roomID)
}

// GetRoomMembers lists current (non-removed) memberships without an
// authorization check. Other services use this internally.
func (s *RoomService) GetRoomMembers(ctx context.Context, roomID string) ([]domain.UserRoom, error) {
	members, err := s.roomRepo.ListRoomMembers(ctx, roomID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list room members", slog.String("room_id", roomID))
		return nil, fmt.Errorf("failed to list room members: %w", err)
	}
	return members, nil
}

// FindRoomManager returns the first manager membership of the room.
func (s *RoomService) FindRoomManager(ctx context.Context, roomID string) (*domain.UserRoom, error) {
	members, err := s.GetRoomMembers(ctx, roomID)
	if err != nil {
		return nil, err
	}
	for i := range members {
		if members[i].Role == domain.RoleManager {
			return &members[i], nil
		}
	}
	return nil, fmt.Errorf("%w: room has no manager", apperrors.ErrNotFound)
}
