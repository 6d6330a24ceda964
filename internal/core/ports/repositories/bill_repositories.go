package repositories

import (
	"context"
	"time"

	"github.com/billkhata/billkhata/internal/core/domain"
)

// BillRepository manages bills and their per-member shares.
type BillRepository interface {
	// SaveBill inserts the bill and all of its shares in one transaction.
	SaveBill(ctx context.Context, bill domain.Bill) error
	FindBillByID(ctx context.Context, billID string) (*domain.Bill, error)
	ListBillsByRoom(ctx context.Context, roomID string) ([]domain.Bill, error)
	// UpdateShareStatus writes a share's status (and paidAt when set).
	UpdateShareStatus(ctx context.Context, billID, userID string, status domain.ShareStatus, paidAt *time.Time) error
	// MarkSharePaid sets the share to PAID and, when expense is non-nil,
	// inserts the derived BILL_PAYMENT expense in the same transaction. A
	// unique violation on the expense's source share is swallowed: the
	// expense already exists, so only the status write applies.
	MarkSharePaid(ctx context.Context, billID, userID string, paidAt time.Time, expense *domain.Expense) error
	// MarkOverdueShares flips UNPAID shares of bills past their due date to
	// OVERDUE and returns the number of shares updated.
	MarkOverdueShares(ctx context.Context, roomID string, now time.Time) (int, error)
}
