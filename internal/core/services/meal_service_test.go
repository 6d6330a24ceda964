package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/billkhata/billkhata/internal/apperrors"
	"github.com/billkhata/billkhata/internal/core/domain"
	portssvc "github.com/billkhata/billkhata/internal/core/ports/services"
	"github.com/billkhata/billkhata/internal/core/services"
	"github.com/billkhata/billkhata/internal/dto"
)

type MealServiceTestSuite struct {
	suite.Suite
	mockMealRepo   *MockMealRepository
	mockPeriodRepo *MockPeriodRepository
	service        portssvc.MealSvcFacade

	roomID    string
	managerID string
	memberID  string
}

func (suite *MealServiceTestSuite) SetupTest() {
	suite.mockMealRepo = new(MockMealRepository)
	suite.mockPeriodRepo = new(MockPeriodRepository)

	suite.roomID = uuid.NewString()
	suite.managerID = uuid.NewString()
	suite.memberID = uuid.NewString()

	authorizer := &stubAuthorizer{roles: map[string]domain.UserRoomRole{
		suite.managerID: domain.RoleManager,
		suite.memberID:  domain.RoleMember,
	}}
	suite.service = services.NewMealService(suite.mockMealRepo, suite.mockPeriodRepo, authorizer)
}

func (suite *MealServiceTestSuite) TestUpsertMeal_MemberLogsOwnMeals() {
	ctx := context.Background()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	periodID := uuid.NewString()

	suite.mockMealRepo.On("FindDateLock", ctx, suite.roomID, date).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPeriodRepo.On("FindActivePeriod", ctx, suite.roomID).Return(&domain.CalculationPeriod{
		PeriodID: periodID, RoomID: suite.roomID, Status: domain.PeriodActive,
	}, nil).Once()
	suite.mockMealRepo.On("UpsertMeal", ctx, mock.MatchedBy(func(m domain.Meal) bool {
		return m.UserID == suite.memberID &&
			m.TotalMeals == 4 &&
			m.CalculationPeriodID != nil && *m.CalculationPeriodID == periodID
	})).Return(nil).Once()

	meal, err := suite.service.UpsertMeal(ctx, suite.roomID, dto.UpsertMealRequest{
		Date: "2026-09-01", Breakfast: 1, Lunch: 2, Dinner: 1,
	}, suite.memberID)

	suite.Require().NoError(err)
	suite.Equal(4, meal.TotalMeals)
	suite.mockMealRepo.AssertExpectations(suite.T())
}

func (suite *MealServiceTestSuite) TestUpsertMeal_FinalizedDateBlocksMember() {
	ctx := context.Background()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	suite.mockMealRepo.On("FindDateLock", ctx, suite.roomID, date).Return(&domain.MealDateLock{
		RoomID: suite.roomID, Date: date, LockedBy: suite.managerID,
	}, nil).Once()

	_, err := suite.service.UpsertMeal(ctx, suite.roomID, dto.UpsertMealRequest{
		Date: "2026-09-01", Lunch: 1,
	}, suite.memberID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockMealRepo.AssertNotCalled(suite.T(), "UpsertMeal", mock.Anything, mock.Anything)
}

func (suite *MealServiceTestSuite) TestUpsertMeal_ManagerBypassesDateLock() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindActivePeriod", ctx, suite.roomID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockMealRepo.On("UpsertMeal", ctx, mock.MatchedBy(func(m domain.Meal) bool {
		return m.UserID == suite.managerID && m.CalculationPeriodID == nil
	})).Return(nil).Once()

	_, err := suite.service.UpsertMeal(ctx, suite.roomID, dto.UpsertMealRequest{
		Date: "2026-09-01", Dinner: 1,
	}, suite.managerID)

	suite.Require().NoError(err)
	// Managers never consult the lock table.
	suite.mockMealRepo.AssertNotCalled(suite.T(), "FindDateLock", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *MealServiceTestSuite) TestUpsertMeal_ManagerLogsOnBehalf() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindActivePeriod", ctx, suite.roomID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockMealRepo.On("UpsertMeal", ctx, mock.MatchedBy(func(m domain.Meal) bool {
		return m.UserID == suite.memberID && m.CreatedBy == suite.managerID
	})).Return(nil).Once()

	_, err := suite.service.UpsertMeal(ctx, suite.roomID, dto.UpsertMealRequest{
		Date: "2026-09-01", Lunch: 1, UserID: &suite.memberID,
	}, suite.managerID)

	suite.Require().NoError(err)
	suite.mockMealRepo.AssertExpectations(suite.T())
}

func (suite *MealServiceTestSuite) TestUpsertMeal_MemberCannotLogForOthers() {
	ctx := context.Background()
	other := uuid.NewString()

	_, err := suite.service.UpsertMeal(ctx, suite.roomID, dto.UpsertMealRequest{
		Date: "2026-09-01", Lunch: 1, UserID: &other,
	}, suite.memberID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *MealServiceTestSuite) TestUpsertMeal_BadDateRejected() {
	ctx := context.Background()

	_, err := suite.service.UpsertMeal(ctx, suite.roomID, dto.UpsertMealRequest{
		Date: "01-09-2026", Lunch: 1,
	}, suite.memberID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MealServiceTestSuite) TestFinalizeDate_ManagerOnly() {
	ctx := context.Background()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	err := suite.service.FinalizeDate(ctx, suite.roomID, date, suite.memberID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *MealServiceTestSuite) TestFinalizeDate_AlreadyLockedIsNoOp() {
	ctx := context.Background()
	date := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	suite.mockMealRepo.On("SaveDateLock", ctx, mock.AnythingOfType("domain.MealDateLock")).Return(apperrors.ErrDuplicate).Once()

	err := suite.service.FinalizeDate(ctx, suite.roomID, date, suite.managerID)

	suite.Require().NoError(err)
	suite.mockMealRepo.AssertExpectations(suite.T())
}

func TestMealServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MealServiceTestSuite))
}
