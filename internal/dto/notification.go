package dto

import (
	"time"

	"github.com/billkhata/billkhata/internal/core/domain"
)

// NotificationResponse is one in-app notification row.
type NotificationResponse struct {
	NotificationID string     `json:"notificationID"`
	RoomID         string     `json:"roomID"`
	Kind           string     `json:"kind"`
	Message        string     `json:"message"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// ToNotificationResponses converts domain notifications to response DTOs.
func ToNotificationResponses(notifications []domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, len(notifications))
	for i, n := range notifications {
		out[i] = NotificationResponse{
			NotificationID: n.NotificationID,
			RoomID:         n.RoomID,
			Kind:           string(n.Kind),
			Message:        n.Message,
			ReadAt:         n.ReadAt,
			CreatedAt:      n.CreatedAt,
		}
	}
	return out
}
