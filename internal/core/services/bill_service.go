package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/billkhata/billkhata/internal/apperrors"
	"github.com/billkhata/billkhata/internal/core/domain"
	portsrepo "github.com/billkhata/billkhata/internal/core/ports/repositories"
	portssvc "github.com/billkhata/billkhata/internal/core/ports/services"
	"github.com/billkhata/billkhata/internal/dto"
)

// BillService manages split bills and drives each share through its payment
// state machine. Overdue detection is lazy: reads sweep UNPAID shares of
// past-due bills to OVERDUE before returning, so no background job is
// needed.
type BillService struct {
	BaseService
	billRepo   portsrepo.BillRepository
	periodRepo portsrepo.PeriodRepository
	roomReader portssvc.RoomReaderSvc
	notifier   portssvc.NotificationDispatcher
}

// NewBillService creates a new BillService.
func NewBillService(br portsrepo.BillRepository, pr portsrepo.PeriodRepository, authorizer portssvc.RoomAuthorizerSvc, reader portssvc.RoomReaderSvc, notifier portssvc.NotificationDispatcher) portssvc.BillSvcFacade {
	return &BillService{
		BaseService: BaseService{RoomAuthorizer: authorizer},
		billRepo:    br,
		periodRepo:  pr,
		roomReader:  reader,
		notifier:    notifier,
	}
}

var _ portssvc.BillSvcFacade = (*BillService)(nil)

// CreateBill creates a bill split across members. Manager only. When no
// share carries an explicit amount the total splits equally, with any
// remainder cents going to the first share so the sum stays exact.
func (s *BillService) CreateBill(ctx context.Context, roomID string, req dto.CreateBillRequest, userID string) (*domain.Bill, error) {
	if err := s.AuthorizeUser(ctx, userID, roomID, domain.RoleManager); err != nil {
		return nil, err
	}

	if req.TotalAmount.IsNegative() || req.TotalAmount.IsZero() {
		return nil, fmt.Errorf("%w: bill amount must be positive", apperrors.ErrValidation)
	}
	dueDate, err := time.Parse(time.DateOnly, req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%w: dueDate must be YYYY-MM-DD", apperrors.ErrValidation)
	}

	members, err := s.roomReader.GetRoomMembers(ctx, roomID)
	if err != nil {
		return nil, err
	}
	memberNames := make(map[string]string, len(members))
	for _, m := range members {
		memberNames[m.UserID] = m.UserName
	}

	seen := make(map[string]bool, len(req.Shares))
	for _, in := range req.Shares {
		if _, ok := memberNames[in.UserID]; !ok {
			return nil, fmt.Errorf("%w: user %s is not a member of this room", apperrors.ErrValidation, in.UserID)
		}
		if seen[in.UserID] {
			return nil, fmt.Errorf("%w: duplicate share for user %s", apperrors.ErrValidation, in.UserID)
		}
		seen[in.UserID] = true
	}

	amounts, err := shareAmounts(req.TotalAmount, req.Shares)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	bill := domain.Bill{
		BillID:      uuid.NewString(),
		RoomID:      roomID,
		Title:       req.Title,
		Category:    req.Category,
		TotalAmount: req.TotalAmount,
		DueDate:     dueDate,
		Shares:      make([]domain.BillShare, len(req.Shares)),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	for i, in := range req.Shares {
		bill.Shares[i] = domain.BillShare{
			BillID:   bill.BillID,
			UserID:   in.UserID,
			UserName: memberNames[in.UserID],
			Amount:   amounts[i],
			Status:   domain.ShareUnpaid,
		}
	}

	if err := s.billRepo.SaveBill(ctx, bill); err != nil {
		s.LogError(ctx, err, "Failed to save bill", slog.String("room_id", roomID))
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	s.LogInfo(ctx, "Bill created",
		slog.String("bill_id", bill.BillID),
		slog.String("room_id", roomID),
		slog.String("category", req.Category))
	return &bill, nil
}

// GetBill fetches one bill of the room after the lazy overdue sweep.
func (s *BillService) GetBill(ctx context.Context, roomID, billID, userID string) (*domain.Bill, error) {
	if err := s.AuthorizeUser(ctx, userID, roomID, domain.RoleMember); err != nil {
		return nil, err
	}
	s.sweepOverdue(ctx, roomID)
	return s.findRoomBill(ctx, roomID, billID)
}

// ListBills lists the room's bills after the lazy overdue sweep.
func (s *BillService) ListBills(ctx context.Context, roomID, userID string) ([]domain.Bill, error) {
	if err := s.AuthorizeUser(ctx, userID, roomID, domain.RoleMember); err != nil {
		return nil, err
	}
	s.sweepOverdue(ctx, roomID)
	bills, err := s.billRepo.ListBillsByRoom(ctx, roomID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bills", slog.String("room_id", roomID))
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}

// TransitionShare applies one state-machine transition to the share of
// targetUserID.
//
//	member (own share):  UNPAID/OVERDUE -> PENDING_APPROVAL
//	manager approve:     PENDING_APPROVAL -> PAID
//	manager deny:        PENDING_APPROVAL -> UNPAID
//	manager record:      UNPAID/OVERDUE -> PAID
//
// A PAID transition with PaidFromMealFund creates the derived BILL_PAYMENT
// expense exactly once, in the same transaction as the status write.
func (s *BillService) TransitionShare(ctx context.Context, roomID, billID, targetUserID string, req dto.ShareTransitionRequest, actorID string) (*domain.Bill, error) {
	if err := s.AuthorizeUser(ctx, actorID, roomID, domain.RoleMember); err != nil {
		return nil, err
	}

	s.sweepOverdue(ctx, roomID)

	bill, err := s.findRoomBill(ctx, roomID, billID)
	if err != nil {
		return nil, err
	}
	share := bill.ShareFor(targetUserID)
	if share == nil {
		return nil, fmt.Errorf("%w: user has no share on this bill", apperrors.ErrNotFound)
	}

	target := domain.ShareStatus(req.Status)
	isManager := s.AuthorizeUser(ctx, actorID, roomID, domain.RoleManager) == nil

	switch target {
	case domain.SharePendingApproval:
		if err := s.submitShare(ctx, bill, share, actorID, isManager); err != nil {
			return nil, err
		}
	case domain.SharePaid:
		if err := s.payShare(ctx, bill, share, req.PaidFromMealFund, actorID, isManager); err != nil {
			return nil, err
		}
	case domain.ShareUnpaid:
		if err := s.denyShare(ctx, bill, share, actorID, isManager); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: cannot transition a share to %s", apperrors.ErrValidation, target)
	}

	return s.findRoomBill(ctx, roomID, billID)
}

// submitShare is the member-facing "I paid this" transition.
func (s *BillService) submitShare(ctx context.Context, bill *domain.Bill, share *domain.BillShare, actorID string, isManager bool) error {
	if share.UserID != actorID && !isManager {
		return fmt.Errorf("%w: members can only submit their own share", apperrors.ErrForbidden)
	}
	if share.Status != domain.ShareUnpaid && share.Status != domain.ShareOverdue {
		return fmt.Errorf("%w: share cannot move from %s to PENDING_APPROVAL", apperrors.ErrValidation, share.Status)
	}

	if err := s.billRepo.UpdateShareStatus(ctx, bill.BillID, share.UserID, domain.SharePendingApproval, nil); err != nil {
		s.LogError(ctx, err, "Failed to submit share", slog.String("bill_id", bill.BillID))
		return fmt.Errorf("failed to submit share: %w", err)
	}

	s.LogInfo(ctx, "Bill share submitted for approval",
		slog.String("bill_id", bill.BillID),
		slog.String("user_id", share.UserID))
	if s.notifier != nil && s.roomReader != nil {
		if manager, err := s.roomReader.FindRoomManager(ctx, bill.RoomID); err == nil && manager.UserID != actorID {
			s.notifier.Dispatch(ctx, bill.RoomID, manager.UserID, domain.NotifyShareSubmitted,
				fmt.Sprintf("%s marked their share of %q as paid", share.UserName, bill.Title))
		}
	}
	return nil
}

// payShare is the manager-only transition into PAID, either approving a
// pending submission or recording a payment directly.
func (s *BillService) payShare(ctx context.Context, bill *domain.Bill, share *domain.BillShare, paidFromMealFund bool, actorID string, isManager bool) error {
	if !isManager {
		return fmt.Errorf("%w: only managers can mark a share paid", apperrors.ErrForbidden)
	}
	if share.Status == domain.SharePaid {
		// Re-approving a paid share is a no-op, not an error.
		s.LogDebug(ctx, "Share already paid, skipping",
			slog.String("bill_id", bill.BillID), slog.String("user_id", share.UserID))
		return nil
	}

	now := time.Now()
	var expense *domain.Expense
	if paidFromMealFund {
		sourceShare := bill.BillID + ":" + share.UserID
		category := domain.CategoryBillPayment
		expense = &domain.Expense{
			ExpenseID:   uuid.NewString(),
			RoomID:      bill.RoomID,
			UserID:      share.UserID,
			Amount:      share.Amount,
			Category:    &category,
			Status:      domain.ApprovalApproved,
			SourceShare: &sourceShare,
			Description: fmt.Sprintf("Bill payment: %s", bill.Title),
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
		if period, err := s.periodRepo.FindActivePeriod(ctx, bill.RoomID); err == nil {
			expense.CalculationPeriodID = &period.PeriodID
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve active period", slog.String("room_id", bill.RoomID))
			return fmt.Errorf("failed to resolve active period: %w", err)
		}
	}

	if err := s.billRepo.MarkSharePaid(ctx, bill.BillID, share.UserID, now, expense); err != nil {
		s.LogError(ctx, err, "Failed to mark share paid",
			slog.String("bill_id", bill.BillID), slog.String("user_id", share.UserID))
		return fmt.Errorf("failed to mark share paid: %w", err)
	}

	s.LogInfo(ctx, "Bill share paid",
		slog.String("bill_id", bill.BillID),
		slog.String("user_id", share.UserID),
		slog.Bool("paid_from_meal_fund", paidFromMealFund))
	if s.notifier != nil && share.UserID != actorID {
		s.notifier.Dispatch(ctx, bill.RoomID, share.UserID, domain.NotifyShareApproved,
			fmt.Sprintf("Your share of %q was marked paid", bill.Title))
	}
	return nil
}

// denyShare is the manager-only PENDING_APPROVAL -> UNPAID transition.
func (s *BillService) denyShare(ctx context.Context, bill *domain.Bill, share *domain.BillShare, actorID string, isManager bool) error {
	if !isManager {
		return fmt.Errorf("%w: only managers can deny a share submission", apperrors.ErrForbidden)
	}
	if share.Status != domain.SharePendingApproval {
		return fmt.Errorf("%w: share cannot move from %s to UNPAID", apperrors.ErrValidation, share.Status)
	}

	if err := s.billRepo.UpdateShareStatus(ctx, bill.BillID, share.UserID, domain.ShareUnpaid, nil); err != nil {
		s.LogError(ctx, err, "Failed to deny share", slog.String("bill_id", bill.BillID))
		return fmt.Errorf("failed to deny share: %w", err)
	}

	s.LogInfo(ctx, "Bill share submission denied",
		slog.String("bill_id", bill.BillID),
		slog.String("user_id", share.UserID))
	if s.notifier != nil && share.UserID != actorID {
		s.notifier.Dispatch(ctx, bill.RoomID, share.UserID, domain.NotifyShareDenied,
			fmt.Sprintf("Your payment claim on %q was denied", bill.Title))
	}
	return nil
}

// sweepOverdue flips UNPAID shares of past-due bills to OVERDUE. A sweep
// failure is logged but never blocks the read it runs in front of.
func (s *BillService) sweepOverdue(ctx context.Context, roomID string) {
	n, err := s.billRepo.MarkOverdueShares(ctx, roomID, time.Now())
	if err != nil {
		s.LogError(ctx, err, "Failed to sweep overdue shares", slog.String("room_id", roomID))
		return
	}
	if n > 0 {
		s.LogInfo(ctx, "Marked shares overdue", slog.String("room_id", roomID), slog.Int("count", n))
	}
}

// findRoomBill loads a bill and verifies it belongs to roomID.
func (s *BillService) findRoomBill(ctx context.Context, roomID, billID string) (*domain.Bill, error) {
	bill, err := s.billRepo.FindBillByID(ctx, billID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to find bill", slog.String("bill_id", billID))
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	if bill.RoomID != roomID {
		return nil, fmt.Errorf("%w: bill not found in this room", apperrors.ErrNotFound)
	}
	return bill, nil
}

// shareAmounts resolves per-share amounts. Either every share carries an
// explicit amount that sums to the total, or none does and the total splits
// equally with the rounding remainder on the first share.
func shareAmounts(total decimal.Decimal, shares []dto.BillShareInput) ([]decimal.Decimal, error) {
	explicit := 0
	for _, in := range shares {
		if in.Amount != nil {
			explicit++
		}
	}

	amounts := make([]decimal.Decimal, len(shares))
	switch explicit {
	case 0:
		n := decimal.NewFromInt(int64(len(shares)))
		each := total.Div(n).RoundDown(2)
		remainder := total.Sub(each.Mul(n))
		for i := range amounts {
			amounts[i] = each
		}
		amounts[0] = amounts[0].Add(remainder)
	case len(shares):
		sum := decimal.Zero
		for i, in := range shares {
			if in.Amount.IsNegative() || in.Amount.IsZero() {
				return nil, fmt.Errorf("%w: share amounts must be positive", apperrors.ErrValidation)
			}
			amounts[i] = *in.Amount
			sum = sum.Add(*in.Amount)
		}
		if !sum.Equal(total) {
			return nil, fmt.Errorf("%w: share amounts must sum to the bill total", apperrors.ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: either all shares or no shares may carry explicit amounts", apperrors.ErrValidation)
	}
	return amounts, nil
}
