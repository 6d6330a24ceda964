package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/billkhata/billkhata/internal/apperrors"
	"github.com/billkhata/billkhata/internal/core/domain"
	portsrepo "github.com/billkhata/billkhata/internal/core/ports/repositories"
	portssvc "github.com/billkhata/billkhata/internal/core/ports/services"
)

// mealRatePrecision bounds divisions; totals are money so two decimal places
// would lose too much on the intermediate rate.
const mealRatePrecision = 4

// SettlementService computes per-member balances for a calculation period.
// Every call recomputes from live aggregates; settlement results are never
// cached because members check them right after logging entries.
type SettlementService struct {
	BaseService
	settlementRepo portsrepo.SettlementRepository
	periodRepo     portsrepo.PeriodRepository
	roomReader     portssvc.RoomReaderSvc
}

// NewSettlementService creates a new SettlementService.
func NewSettlementService(sr portsrepo.SettlementRepository, pr portsrepo.PeriodRepository, authorizer portssvc.RoomAuthorizerSvc, reader portssvc.RoomReaderSvc) portssvc.SettlementSvcFacade {
	return &SettlementService{
		BaseService:    BaseService{RoomAuthorizer: authorizer},
		settlementRepo: sr,
		periodRepo:     pr,
		roomReader:     reader,
	}
}

var _ portssvc.SettlementSvcFacade = (*SettlementService)(nil)

// GetBalances computes the settlement for the explicit period, or the
// room's ACTIVE period when periodID is nil.
//
// Balance per member = deposits - meals*rate - billPayments, where
// rate = totalShopping / totalMeals (zero when no meals are logged).
// Balances deliberately do not sum to zero: each figure is the member's
// standing against the shared fund.
func (s *SettlementService) GetBalances(ctx context.Context, roomID string, periodID *string, userID string) (*domain.Settlement, error) {
	if err := s.AuthorizeUser(ctx, userID, roomID, domain.RoleMember); err != nil {
		return nil, err
	}

	period, err := s.resolvePeriod(ctx, roomID, periodID)
	if err != nil {
		return nil, err
	}
	if period == nil {
		// Room has never had a period: report every member at zero rather
		// than failing the first thing a new room's members look at.
		return s.zeroSettlement(ctx, roomID)
	}

	totalShopping, err := s.settlementRepo.GetPeriodShoppingTotal(ctx, roomID, period.PeriodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum shopping expenses", slog.String("period_id", period.PeriodID))
		return nil, fmt.Errorf("failed to compute settlement: %w", err)
	}
	totalMeals, err := s.settlementRepo.GetPeriodMealsTotal(ctx, roomID, period.PeriodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum meals", slog.String("period_id", period.PeriodID))
		return nil, fmt.Errorf("failed to compute settlement: %w", err)
	}

	rate := decimal.Zero
	if totalMeals > 0 {
		rate = totalShopping.DivRound(decimal.NewFromInt(int64(totalMeals)), mealRatePrecision)
	}

	memberTotals, err := s.settlementRepo.GetMemberTotals(ctx, roomID, period.PeriodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load member totals", slog.String("period_id", period.PeriodID))
		return nil, fmt.Errorf("failed to compute settlement: %w", err)
	}

	settlement := &domain.Settlement{
		RoomID:        roomID,
		PeriodID:      period.PeriodID,
		PeriodName:    period.Name,
		TotalShopping: totalShopping,
		TotalMeals:    totalMeals,
		MealRate:      rate,
		Members:       make([]domain.MemberBalance, len(memberTotals)),
	}
	for i, mt := range memberTotals {
		mealCost := rate.Mul(decimal.NewFromInt(int64(mt.TotalMeals))).Round(2)
		settlement.Members[i] = domain.MemberBalance{
			UserID:            mt.UserID,
			UserName:          mt.UserName,
			TotalDeposits:     mt.TotalDeposits,
			TotalMeals:        mt.TotalMeals,
			MealCost:          mealCost,
			TotalBillPayments: mt.TotalBillPayments,
			Balance:           mt.TotalDeposits.Sub(mealCost).Sub(mt.TotalBillPayments),
		}
	}

	s.LogDebug(ctx, "Settlement computed",
		slog.String("room_id", roomID),
		slog.String("period_id", period.PeriodID),
		slog.Int("members", len(settlement.Members)))
	return settlement, nil
}

// resolvePeriod picks the target period. A nil return with a nil error means
// the room has never had a period.
func (s *SettlementService) resolvePeriod(ctx context.Context, roomID string, periodID *string) (*domain.CalculationPeriod, error) {
	if periodID != nil {
		period, err := s.periodRepo.FindPeriodByID(ctx, *periodID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown calculation period", apperrors.ErrValidation)
			}
			s.LogError(ctx, err, "Failed to find period", slog.String("period_id", *periodID))
			return nil, fmt.Errorf("failed to resolve period: %w", err)
		}
		if period.RoomID != roomID {
			return nil, fmt.Errorf("%w: period does not belong to this room", apperrors.ErrValidation)
		}
		return period, nil
	}

	period, err := s.periodRepo.FindActivePeriod(ctx, roomID)
	if err == nil {
		return period, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to find active period", slog.String("room_id", roomID))
		return nil, fmt.Errorf("failed to resolve period: %w", err)
	}

	hasAny, err := s.periodRepo.HasAnyPeriod(ctx, roomID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check period history", slog.String("room_id", roomID))
		return nil, fmt.Errorf("failed to resolve period: %w", err)
	}
	if hasAny {
		return nil, fmt.Errorf("%w: room has no active period; pass calculationPeriodID for an ended one", apperrors.ErrValidation)
	}
	return nil, nil
}

// zeroSettlement builds the degenerate all-zero report for a room that has
// never opened a period.
func (s *SettlementService) zeroSettlement(ctx context.Context, roomID string) (*domain.Settlement, error) {
	members, err := s.roomReader.GetRoomMembers(ctx, roomID)
	if err != nil {
		return nil, err
	}

	settlement := &domain.Settlement{
		RoomID:        roomID,
		TotalShopping: decimal.Zero,
		MealRate:      decimal.Zero,
		Members:       make([]domain.MemberBalance, len(members)),
	}
	for i, m := range members {
		settlement.Members[i] = domain.MemberBalance{
			UserID:            m.UserID,
			UserName:          m.UserName,
			TotalDeposits:     decimal.Zero,
			MealCost:          decimal.Zero,
			TotalBillPayments: decimal.Zero,
			Balance:           decimal.Zero,
		}
	}
	return settlement, nil
}
