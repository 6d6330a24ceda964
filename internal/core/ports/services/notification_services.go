package services

import (
	"context"

	"github.com/billkhata/billkhata/internal/core/domain"
)

// NotificationDispatcher is the best-effort notification sink other services
// call. Dispatch never returns an error: failures are logged and must not
// fail the triggering request.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, roomID, userID string, kind domain.NotificationKind, message string)
}

// NotificationSvcFacade is the full notification service surface.
type NotificationSvcFacade interface {
	NotificationDispatcher
	ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, notificationID, userID string) error
}
