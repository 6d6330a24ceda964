package repositories

import (
	"context"

	"github.com/billkhata/billkhata/internal/core/domain"
)

// NotificationRepository persists in-app notification records.
type NotificationRepository interface {
	SaveNotification(ctx context.Context, notification domain.Notification) error
	ListNotificationsByUser(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID, userID string) error
}
