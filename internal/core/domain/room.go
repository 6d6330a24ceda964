package domain

import "time"

// Room is the tenant boundary ("khata") grouping members, meals, deposits,
// expenses, and bills. All ledger rows carry a RoomID.
type Room struct {
	RoomID      string `json:"roomID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AuditFields
}

// UserRoomRole defines the possible roles a user can have within a room.
type UserRoomRole string

const (
	RoleManager UserRoomRole = "MANAGER"
	RoleMember  UserRoomRole = "MEMBER"
	RoleRemoved UserRoomRole = "REMOVED" // For users who have left or been removed
)

// UserRoom represents the membership of a User in a Room.
type UserRoom struct {
	UserID   string       `json:"userID"`
	UserName string       `json:"userName"`
	RoomID   string       `json:"roomID"`
	Role     UserRoomRole `json:"role"`
	JoinedAt time.Time    `json:"joinedAt"`
}
