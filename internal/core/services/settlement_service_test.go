package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/billkhata/billkhata/internal/apperrors"
	"github.com/billkhata/billkhata/internal/core/domain"
	portssvc "github.com/billkhata/billkhata/internal/core/ports/services"
	"github.com/billkhata/billkhata/internal/core/services"
)

type SettlementServiceTestSuite struct {
	suite.Suite
	mockSettlementRepo *MockSettlementRepository
	mockPeriodRepo     *MockPeriodRepository
	mockRoomReader     *MockRoomReader
	service            portssvc.SettlementSvcFacade

	roomID   string
	periodID string
	memberID string
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.mockSettlementRepo = new(MockSettlementRepository)
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockRoomReader = new(MockRoomReader)

	suite.roomID = uuid.NewString()
	suite.periodID = uuid.NewString()
	suite.memberID = uuid.NewString()

	authorizer := &stubAuthorizer{roles: map[string]domain.UserRoomRole{
		suite.memberID: domain.RoleMember,
	}}
	suite.service = services.NewSettlementService(suite.mockSettlementRepo, suite.mockPeriodRepo, authorizer, suite.mockRoomReader)
}

func (suite *SettlementServiceTestSuite) activePeriod() *domain.CalculationPeriod {
	return &domain.CalculationPeriod{
		PeriodID: suite.periodID,
		RoomID:   suite.roomID,
		Name:     "September",
		Status:   domain.PeriodActive,
	}
}

func (suite *SettlementServiceTestSuite) TestGetBalances_ComputesRateAndBalances() {
	ctx := context.Background()
	userA := uuid.NewString()
	userB := uuid.NewString()

	suite.mockPeriodRepo.On("FindActivePeriod", ctx, suite.roomID).Return(suite.activePeriod(), nil).Once()
	suite.mockSettlementRepo.On("GetPeriodShoppingTotal", ctx, suite.roomID, suite.periodID).
		Return(decimal.NewFromInt(1500), nil).Once()
	suite.mockSettlementRepo.On("GetPeriodMealsTotal", ctx, suite.roomID, suite.periodID).
		Return(30, nil).Once()
	suite.mockSettlementRepo.On("GetMemberTotals", ctx, suite.roomID, suite.periodID).
		Return([]domain.MemberTotals{
			{UserID: userA, UserName: "Asha", TotalDeposits: decimal.NewFromInt(2000), TotalMeals: 20, TotalBillPayments: decimal.NewFromInt(600)},
			{UserID: userB, UserName: "Babul", TotalDeposits: decimal.NewFromInt(500), TotalMeals: 10, TotalBillPayments: decimal.Zero},
		}, nil).Once()

	settlement, err := suite.service.GetBalances(ctx, suite.roomID, nil, suite.memberID)

	suite.Require().NoError(err)
	suite.Require().NotNil(settlement)

	// rate = 1500 / 30 = 50
	suite.True(decimal.NewFromInt(50).Equal(settlement.MealRate), "meal rate %s", settlement.MealRate)
	suite.Equal(30, settlement.TotalMeals)

	// Asha: 2000 - 20*50 - 600 = 400
	suite.True(decimal.NewFromInt(400).Equal(settlement.Members[0].Balance), "balance %s", settlement.Members[0].Balance)
	suite.True(decimal.NewFromInt(1000).Equal(settlement.Members[0].MealCost))

	// Babul: 500 - 10*50 - 0 = 0
	suite.True(settlement.Members[1].Balance.IsZero(), "balance %s", settlement.Members[1].Balance)

	// Balances are not zero-sum: together they hold 400 against the fund.
	suite.True(decimal.NewFromInt(400).Equal(settlement.Members[0].Balance.Add(settlement.Members[1].Balance)))

	suite.mockSettlementRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestGetBalances_ZeroMealsYieldsZeroRate() {
	ctx := context.Background()
	userA := uuid.NewString()

	suite.mockPeriodRepo.On("FindActivePeriod", ctx, suite.roomID).Return(suite.activePeriod(), nil).Once()
	suite.mockSettlementRepo.On("GetPeriodShoppingTotal", ctx, suite.roomID, suite.periodID).
		Return(decimal.NewFromInt(800), nil).Once()
	suite.mockSettlementRepo.On("GetPeriodMealsTotal", ctx, suite.roomID, suite.periodID).
		Return(0, nil).Once()
	suite.mockSettlementRepo.On("GetMemberTotals", ctx, suite.roomID, suite.periodID).
		Return([]domain.MemberTotals{
			{UserID: userA, UserName: "Asha", TotalDeposits: decimal.NewFromInt(800), TotalMeals: 0, TotalBillPayments: decimal.Zero},
		}, nil).Once()

	settlement, err := suite.service.GetBalances(ctx, suite.roomID, nil, suite.memberID)

	suite.Require().NoError(err)
	suite.True(settlement.MealRate.IsZero())
	suite.True(settlement.Members[0].MealCost.IsZero())
	suite.True(decimal.NewFromInt(800).Equal(settlement.Members[0].Balance))
}

func (suite *SettlementServiceTestSuite) TestGetBalances_NoPeriodsEverGivesZeroRows() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindActivePeriod", ctx, suite.roomID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPeriodRepo.On("HasAnyPeriod", ctx, suite.roomID).Return(false, nil).Once()
	suite.mockRoomReader.On("GetRoomMembers", ctx, suite.roomID).Return([]domain.UserRoom{
		{UserID: suite.memberID, UserName: "Asha", RoomID: suite.roomID, Role: domain.RoleMember},
	}, nil).Once()

	settlement, err := suite.service.GetBalances(ctx, suite.roomID, nil, suite.memberID)

	suite.Require().NoError(err)
	suite.Empty(settlement.PeriodID)
	suite.Require().Len(settlement.Members, 1)
	suite.True(settlement.Members[0].Balance.IsZero())
	suite.True(settlement.MealRate.IsZero())
}

func (suite *SettlementServiceTestSuite) TestGetBalances_NoActivePeriodWithHistoryFails() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("FindActivePeriod", ctx, suite.roomID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockPeriodRepo.On("HasAnyPeriod", ctx, suite.roomID).Return(true, nil).Once()

	settlement, err := suite.service.GetBalances(ctx, suite.roomID, nil, suite.memberID)

	suite.Require().Error(err)
	suite.Nil(settlement)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SettlementServiceTestSuite) TestGetBalances_PeriodFromAnotherRoomRejected() {
	ctx := context.Background()
	foreignPeriodID := uuid.NewString()

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, foreignPeriodID).Return(&domain.CalculationPeriod{
		PeriodID: foreignPeriodID,
		RoomID:   uuid.NewString(),
		Status:   domain.PeriodEnded,
	}, nil).Once()

	settlement, err := suite.service.GetBalances(ctx, suite.roomID, &foreignPeriodID, suite.memberID)

	suite.Require().Error(err)
	suite.Nil(settlement)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SettlementServiceTestSuite) TestGetBalances_UnknownPeriodRejected() {
	ctx := context.Background()
	unknownID := uuid.NewString()

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, unknownID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetBalances(ctx, suite.roomID, &unknownID, suite.memberID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SettlementServiceTestSuite) TestGetBalances_NonMemberForbidden() {
	ctx := context.Background()
	stranger := uuid.NewString()

	_, err := suite.service.GetBalances(ctx, suite.roomID, nil, stranger)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestSettlementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
