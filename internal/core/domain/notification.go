package domain

import "time"

// NotificationKind classifies in-app notifications.
type NotificationKind string

const (
	NotifyShareSubmitted NotificationKind = "SHARE_SUBMITTED"
	NotifyShareApproved  NotificationKind = "SHARE_APPROVED"
	NotifyShareDenied    NotificationKind = "SHARE_DENIED"
	NotifyDepositStatus  NotificationKind = "DEPOSIT_STATUS"
	NotifyExpenseStatus  NotificationKind = "EXPENSE_STATUS"
	NotifyPeriodOpened   NotificationKind = "PERIOD_OPENED"
	NotifyPeriodEnded    NotificationKind = "PERIOD_ENDED"
)

// Notification is the persisted in-app notification record. Delivery
// transports (push, socket, email) are external collaborators; a failed
// insert is logged and never fails the triggering request.
type Notification struct {
	NotificationID string           `json:"notificationID"`
	RoomID         string           `json:"roomID"`
	UserID         string           `json:"userID"`
	Kind           NotificationKind `json:"kind"`
	Message        string           `json:"message"`
	ReadAt         *time.Time       `json:"readAt,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
}
