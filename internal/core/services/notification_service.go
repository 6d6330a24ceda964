package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/billkhata/billkhata/internal/core/domain"
	portsrepo "github.com/billkhata/billkhata/internal/core/ports/repositories"
	portssvc "github.com/billkhata/billkhata/internal/core/ports/services"
)

// NotificationService persists in-app notifications. Dispatch is fire and
// forget: a failed insert is logged and never propagates to the caller, so
// notification outages cannot fail ledger writes.
type NotificationService struct {
	BaseService
	notificationRepo portsrepo.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(nr portsrepo.NotificationRepository) portssvc.NotificationSvcFacade {
	return &NotificationService{notificationRepo: nr}
}

var _ portssvc.NotificationSvcFacade = (*NotificationService)(nil)

// Dispatch records a notification for userID.
func (s *NotificationService) Dispatch(ctx context.Context, roomID, userID string, kind domain.NotificationKind, message string) {
	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		RoomID:         roomID,
		UserID:         userID,
		Kind:           kind,
		Message:        message,
		CreatedAt:      time.Now(),
	}
	if err := s.notificationRepo.SaveNotification(ctx, notification); err != nil {
		s.LogError(ctx, err, "Failed to save notification",
			slog.String("user_id", userID),
			slog.String("room_id", roomID),
			slog.String("kind", string(kind)))
	}
}

// ListNotifications returns the user's notifications, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, userID string, unreadOnly bool) ([]domain.Notification, error) {
	notifications, err := s.notificationRepo.ListNotificationsByUser(ctx, userID, unreadOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list notifications", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead marks one of the user's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	if err := s.notificationRepo.MarkNotificationRead(ctx, notificationID, userID); err != nil {
		s.LogError(ctx, err, "Failed to mark notification read",
			slog.String("notification_id", notificationID), slog.String("user_id", userID))
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}
