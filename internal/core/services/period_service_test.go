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
)

type PeriodServiceTestSuite struct {
	suite.Suite
	mockPeriodRepo *MockPeriodRepository
	mockRoomReader *MockRoomReader
	mockNotifier   *MockNotifier
	service        portssvc.PeriodSvcFacade

	roomID    string
	managerID string
	memberID  string
}

func (suite *PeriodServiceTestSuite) SetupTest() {
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.mockRoomReader = new(MockRoomReader)
	suite.mockNotifier = new(MockNotifier)

	suite.roomID = uuid.NewString()
	suite.managerID = uuid.NewString()
	suite.memberID = uuid.NewString()

	authorizer := &stubAuthorizer{roles: map[string]domain.UserRoomRole{
		suite.managerID: domain.RoleManager,
		suite.memberID:  domain.RoleMember,
	}}
	suite.service = services.NewPeriodService(suite.mockPeriodRepo, authorizer, suite.mockRoomReader, suite.mockNotifier)
}

func (suite *PeriodServiceTestSuite) TestOpenPeriod_Success() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("OpenPeriod", ctx, mock.MatchedBy(func(p domain.CalculationPeriod) bool {
		return p.RoomID == suite.roomID &&
			p.Status == domain.PeriodActive &&
			p.Name == "September" &&
			p.StartedBy == suite.managerID
	})).Return(nil).Once()
	suite.mockRoomReader.On("GetRoomMembers", ctx, suite.roomID).Return([]domain.UserRoom{
		{UserID: suite.managerID}, {UserID: suite.memberID},
	}, nil).Once()
	suite.mockNotifier.On("Dispatch", ctx, suite.roomID, suite.memberID, domain.NotifyPeriodOpened, mock.AnythingOfType("string")).Return().Once()

	period, err := suite.service.OpenPeriod(ctx, suite.roomID, "September", suite.managerID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodActive, period.Status)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestOpenPeriod_SecondActiveConflicts() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("OpenPeriod", ctx, mock.AnythingOfType("domain.CalculationPeriod")).Return(apperrors.ErrDuplicate).Once()

	period, err := suite.service.OpenPeriod(ctx, suite.roomID, "October", suite.managerID)

	suite.Require().Error(err)
	suite.Nil(period)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *PeriodServiceTestSuite) TestOpenPeriod_MemberForbidden() {
	ctx := context.Background()

	_, err := suite.service.OpenPeriod(ctx, suite.roomID, "September", suite.memberID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "OpenPeriod", mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestEndPeriod_Success() {
	ctx := context.Background()
	periodID := uuid.NewString()

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, periodID).Return(&domain.CalculationPeriod{
		PeriodID: periodID, RoomID: suite.roomID, Name: "September", Status: domain.PeriodActive,
	}, nil).Once()
	suite.mockPeriodRepo.On("EndPeriod", ctx, periodID, suite.managerID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockRoomReader.On("GetRoomMembers", ctx, suite.roomID).Return([]domain.UserRoom{
		{UserID: suite.managerID}, {UserID: suite.memberID},
	}, nil).Once()
	suite.mockNotifier.On("Dispatch", ctx, suite.roomID, suite.memberID, domain.NotifyPeriodEnded, mock.AnythingOfType("string")).Return().Once()

	period, err := suite.service.EndPeriod(ctx, suite.roomID, periodID, suite.managerID)

	suite.Require().NoError(err)
	suite.Equal(domain.PeriodEnded, period.Status)
	suite.Require().NotNil(period.EndedBy)
	suite.Equal(suite.managerID, *period.EndedBy)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *PeriodServiceTestSuite) TestEndPeriod_AlreadyEndedRejected() {
	ctx := context.Background()
	periodID := uuid.NewString()
	endDate := time.Now().AddDate(0, -1, 0)

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, periodID).Return(&domain.CalculationPeriod{
		PeriodID: periodID, RoomID: suite.roomID, Status: domain.PeriodEnded, EndDate: &endDate,
	}, nil).Once()

	_, err := suite.service.EndPeriod(ctx, suite.roomID, periodID, suite.managerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "EndPeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PeriodServiceTestSuite) TestGetPeriod_OtherRoomHidden() {
	ctx := context.Background()
	periodID := uuid.NewString()

	suite.mockPeriodRepo.On("FindPeriodByID", ctx, periodID).Return(&domain.CalculationPeriod{
		PeriodID: periodID, RoomID: uuid.NewString(), Status: domain.PeriodActive,
	}, nil).Once()

	_, err := suite.service.GetPeriod(ctx, suite.roomID, periodID, suite.memberID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestPeriodServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PeriodServiceTestSuite))
}
