package services_test

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/billkhata/billkhata/internal/apperrors"
	"github.com/billkhata/billkhata/internal/core/domain"
)

// --- Role stub ---

// stubAuthorizer grants roles from a fixed userID -> role map. It stands in
// for the room service in tests that only need authorization outcomes.
type stubAuthorizer struct {
	roles map[string]domain.UserRoomRole
}

func (s *stubAuthorizer) AuthorizeRoomAction(_ context.Context, userID, _ string, requiredRole domain.UserRoomRole) error {
	role, ok := s.roles[userID]
	if !ok {
		return fmt.Errorf("%w: user is not a member of this room", apperrors.ErrNotFound)
	}
	if role == domain.RoleManager {
		return nil
	}
	if requiredRole == domain.RoleManager {
		return fmt.Errorf("%w: manager role required", apperrors.ErrForbidden)
	}
	return nil
}

// --- Mock RoomReaderSvc ---

type MockRoomReader struct {
	mock.Mock
}

func (m *MockRoomReader) GetRoomMembers(ctx context.Context, roomID string) ([]domain.UserRoom, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserRoom), args.Error(1)
}

func (m *MockRoomReader) FindRoomManager(ctx context.Context, roomID string) (*domain.UserRoom, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserRoom), args.Error(1)
}

// --- Mock NotificationDispatcher ---

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Dispatch(ctx context.Context, roomID, userID string, kind domain.NotificationKind, message string) {
	m.Called(ctx, roomID, userID, kind, message)
}

// --- Mock PeriodRepository ---

type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) OpenPeriod(ctx context.Context, period domain.CalculationPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) EndPeriod(ctx context.Context, periodID, endedBy string, endDate time.Time) error {
	args := m.Called(ctx, periodID, endedBy, endDate)
	return args.Error(0)
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.CalculationPeriod, error) {
	args := m.Called(ctx, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalculationPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindActivePeriod(ctx context.Context, roomID string) (*domain.CalculationPeriod, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CalculationPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriodsByRoom(ctx context.Context, roomID string) ([]domain.CalculationPeriod, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CalculationPeriod), args.Error(1)
}

func (m *MockPeriodRepository) HasAnyPeriod(ctx context.Context, roomID string) (bool, error) {
	args := m.Called(ctx, roomID)
	return args.Bool(0), args.Error(1)
}

// --- Mock SettlementRepository ---

type MockSettlementRepository struct {
	mock.Mock
}

func (m *MockSettlementRepository) GetPeriodShoppingTotal(ctx context.Context, roomID, periodID string) (decimal.Decimal, error) {
	args := m.Called(ctx, roomID, periodID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockSettlementRepository) GetPeriodMealsTotal(ctx context.Context, roomID, periodID string) (int, error) {
	args := m.Called(ctx, roomID, periodID)
	return args.Int(0), args.Error(1)
}

func (m *MockSettlementRepository) GetMemberTotals(ctx context.Context, roomID, periodID string) ([]domain.MemberTotals, error) {
	args := m.Called(ctx, roomID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MemberTotals), args.Error(1)
}

// --- Mock BillRepository ---

type MockBillRepository struct {
	mock.Mock
}

func (m *MockBillRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) FindBillByID(ctx context.Context, billID string) (*domain.Bill, error) {
	args := m.Called(ctx, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillRepository) ListBillsByRoom(ctx context.Context, roomID string) ([]domain.Bill, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}

func (m *MockBillRepository) UpdateShareStatus(ctx context.Context, billID, userID string, status domain.ShareStatus, paidAt *time.Time) error {
	args := m.Called(ctx, billID, userID, status, paidAt)
	return args.Error(0)
}

func (m *MockBillRepository) MarkSharePaid(ctx context.Context, billID, userID string, paidAt time.Time, expense *domain.Expense) error {
	args := m.Called(ctx, billID, userID, paidAt, expense)
	return args.Error(0)
}

func (m *MockBillRepository) MarkOverdueShares(ctx context.Context, roomID string, now time.Time) (int, error) {
	args := m.Called(ctx, roomID, now)
	return args.Int(0), args.Error(1)
}

// --- Mock MealRepository ---

type MockMealRepository struct {
	mock.Mock
}

func (m *MockMealRepository) UpsertMeal(ctx context.Context, meal domain.Meal) error {
	args := m.Called(ctx, meal)
	return args.Error(0)
}

func (m *MockMealRepository) ListMealsByRoom(ctx context.Context, roomID string, periodID *string) ([]domain.Meal, error) {
	args := m.Called(ctx, roomID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Meal), args.Error(1)
}

func (m *MockMealRepository) FindDateLock(ctx context.Context, roomID string, date time.Time) (*domain.MealDateLock, error) {
	args := m.Called(ctx, roomID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MealDateLock), args.Error(1)
}

func (m *MockMealRepository) SaveDateLock(ctx context.Context, lock domain.MealDateLock) error {
	args := m.Called(ctx, lock)
	return args.Error(0)
}

// --- Mock AnalyticsRepository ---

type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) GetShoppingTotal(ctx context.Context, roomID string, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, roomID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAnalyticsRepository) GetDepositTotal(ctx context.Context, roomID string, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, roomID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAnalyticsRepository) GetMealsTotal(ctx context.Context, roomID string, from, to time.Time) (int, error) {
	args := m.Called(ctx, roomID, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockAnalyticsRepository) GetBillTotal(ctx context.Context, roomID string, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, roomID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockAnalyticsRepository) GetBillCategoryTotals(ctx context.Context, roomID string, from, to time.Time) ([]domain.CategoryAmount, error) {
	args := m.Called(ctx, roomID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryAmount), args.Error(1)
}

func (m *MockAnalyticsRepository) GetMonthlyDeposits(ctx context.Context, roomID string, from, to time.Time) ([]domain.MonthlyAmount, error) {
	args := m.Called(ctx, roomID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyAmount), args.Error(1)
}

func (m *MockAnalyticsRepository) GetMonthlyShopping(ctx context.Context, roomID string, from, to time.Time) ([]domain.MonthlyAmount, error) {
	args := m.Called(ctx, roomID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyAmount), args.Error(1)
}

func (m *MockAnalyticsRepository) GetMonthlyBillTotals(ctx context.Context, roomID string, from, to time.Time) ([]domain.MonthlyAmount, error) {
	args := m.Called(ctx, roomID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyAmount), args.Error(1)
}

func (m *MockAnalyticsRepository) GetMonthlyBillCategoryTotals(ctx context.Context, roomID string, from, to time.Time) ([]domain.MonthlyCategoryAmount, error) {
	args := m.Called(ctx, roomID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyCategoryAmount), args.Error(1)
}
