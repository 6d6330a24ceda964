package dto

import (
	"time"

	"github.com/billkhata/billkhata/internal/core/domain"
)

// CreateRoomRequest is the payload for creating a room. The creator becomes
// the room's manager.
type CreateRoomRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// AddRoomMemberRequest adds (or re-roles) a user in a room.
type AddRoomMemberRequest struct {
	UserID string `json:"userID" binding:"required"`
	Role   string `json:"role" binding:"omitempty,oneof=MANAGER MEMBER"`
}

// RoomResponse is the caller-facing representation of a room.
type RoomResponse struct {
	RoomID      string    `json:"roomID"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RoomMemberResponse is one member row in a room listing.
type RoomMemberResponse struct {
	UserID   string    `json:"userID"`
	UserName string    `json:"userName"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// ListRoomsResponse wraps the rooms a user belongs to.
type ListRoomsResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// ToRoomResponse converts a domain room to its response DTO.
func ToRoomResponse(r *domain.Room) RoomResponse {
	return RoomResponse{
		RoomID:      r.RoomID,
		Name:        r.Name,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}
}

// ToListRoomsResponse converts domain rooms to a list response.
func ToListRoomsResponse(rooms []domain.Room) ListRoomsResponse {
	resp := ListRoomsResponse{Rooms: make([]RoomResponse, len(rooms))}
	for i := range rooms {
		resp.Rooms[i] = ToRoomResponse(&rooms[i])
	}
	return resp
}

// ToRoomMemberResponses converts membership rows to response DTOs.
func ToRoomMemberResponses(members []domain.UserRoom) []RoomMemberResponse {
	out := make([]RoomMemberResponse, len(members))
	for i, m := range members {
		out[i] = RoomMemberResponse{
			UserID:   m.UserID,
			UserName: m.UserName,
			Role:     string(m.Role),
			JoinedAt: m.JoinedAt,
		}
	}
	return out
}
