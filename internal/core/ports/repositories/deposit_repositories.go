package repositories

import (
	"context"

	"github.com/billkhata/billkhata/internal/core/domain"
)

// DepositRepository manages meal-fund deposits.
type DepositRepository interface {
	SaveDeposit(ctx context.Context, deposit domain.Deposit) error
	FindDepositByID(ctx context.Context, depositID string) (*domain.Deposit, error)
	// ListDepositsByRoom optionally narrows to one calculation period.
	ListDepositsByRoom(ctx context.Context, roomID string, periodID *string) ([]domain.Deposit, error)
	// UpdateDepositStatus transitions a PENDING deposit to APPROVED or
	// REJECTED. Returns apperrors.ErrValidation when the deposit is not
	// PENDING.
	UpdateDepositStatus(ctx context.Context, depositID string, status domain.ApprovalStatus, approverID string) error
}
