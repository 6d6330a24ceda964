package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/billkhata/billkhata/internal/apperrors"
	"github.com/billkhata/billkhata/internal/core/domain"
	portssvc "github.com/billkhata/billkhata/internal/core/ports/services"
	"github.com/billkhata/billkhata/internal/core/services"
	"github.com/billkhata/billkhata/internal/dto"
)

type BillServiceTestSuite struct {
	suite.Suite
	mockBillRepo   *MockBillRepository
	mockPeriodRepo *MockPeriodRepository
	mockRoomReader *MockRoomReader
	mockNotifier   *MockNotifier
	service        portssvc.BillSvcFacade

	roomID    string
	managerID string
	memberID  string
}

func (suite *BillServiceTestSuite) SetupTest() {
	suite.mockBillRepo = new(MockBillRepository)
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
	suite.service = services.NewBillService(suite.mockBillRepo, suite.mockPeriodRepo, authorizer, suite.mockRoomReader, suite.mockNotifier)
}

func (suite *BillServiceTestSuite) members() []domain.UserRoom {
	return []domain.UserRoom{
		{UserID: suite.managerID, UserName: "Mgr", RoomID: suite.roomID, Role: domain.RoleManager},
		{UserID: suite.memberID, UserName: "Mem", RoomID: suite.roomID, Role: domain.RoleMember},
	}
}

func (suite *BillServiceTestSuite) bill(shareStatus domain.ShareStatus) *domain.Bill {
	billID := uuid.NewString()
	return &domain.Bill{
		BillID:      billID,
		RoomID:      suite.roomID,
		Title:       "Electricity",
		Category:    "Electricity",
		TotalAmount: decimal.NewFromInt(1200),
		DueDate:     time.Now().AddDate(0, 0, 7),
		Shares: []domain.BillShare{
			{BillID: billID, UserID: suite.managerID, UserName: "Mgr", Amount: decimal.NewFromInt(600), Status: domain.ShareUnpaid},
			{BillID: billID, UserID: suite.memberID, UserName: "Mem", Amount: decimal.NewFromInt(600), Status: shareStatus},
		},
	}
}

func (suite *BillServiceTestSuite) TestCreateBill_EqualSplit() {
	ctx := context.Background()
	suite.mockRoomReader.On("GetRoomMembers", ctx, suite.roomID).Return(suite.members(), nil).Once()
	suite.mockBillRepo.On("SaveBill", ctx, mock.MatchedBy(func(b domain.Bill) bool {
		if len(b.Shares) != 2 {
			return false
		}
		sum := b.Shares[0].Amount.Add(b.Shares[1].Amount)
		return sum.Equal(b.TotalAmount) && b.Shares[0].Status == domain.ShareUnpaid
	})).Return(nil).Once()

	req := dto.CreateBillRequest{
		Title:       "Internet",
		Category:    "Internet",
		TotalAmount: decimal.NewFromFloat(1000.01),
		DueDate:     "2026-09-30",
		Shares: []dto.BillShareInput{
			{UserID: suite.managerID},
			{UserID: suite.memberID},
		},
	}

	bill, err := suite.service.CreateBill(ctx, suite.roomID, req, suite.managerID)

	suite.Require().NoError(err)
	suite.Require().Len(bill.Shares, 2)
	// Remainder cent lands on the first share; the sum stays exact.
	suite.True(bill.Shares[0].Amount.Add(bill.Shares[1].Amount).Equal(req.TotalAmount))
	suite.mockBillRepo.AssertExpectations(suite.T())
}

func (suite *BillServiceTestSuite) TestCreateBill_ExplicitSharesMustSumToTotal() {
	ctx := context.Background()
	suite.mockRoomReader.On("GetRoomMembers", ctx, suite.roomID).Return(suite.members(), nil).Once()

	bad := decimal.NewFromInt(700)
	req := dto.CreateBillRequest{
		Title:       "Gas",
		Category:    "Gas",
		TotalAmount: decimal.NewFromInt(1200),
		DueDate:     "2026-09-30",
		Shares: []dto.BillShareInput{
			{UserID: suite.managerID, Amount: &bad},
			{UserID: suite.memberID, Amount: &bad},
		},
	}

	_, err := suite.service.CreateBill(ctx, suite.roomID, req, suite.managerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BillServiceTestSuite) TestCreateBill_MemberForbidden() {
	ctx := context.Background()
	req := dto.CreateBillRequest{
		Title:       "Water",
		Category:    "Water",
		TotalAmount: decimal.NewFromInt(300),
		DueDate:     "2026-09-30",
		Shares:      []dto.BillShareInput{{UserID: suite.memberID}},
	}

	_, err := suite.service.CreateBill(ctx, suite.roomID, req, suite.memberID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *BillServiceTestSuite) TestTransitionShare_MemberSubmitsOwnShare() {
	ctx := context.Background()
	bill := suite.bill(domain.ShareUnpaid)

	suite.mockBillRepo.On("MarkOverdueShares", ctx, suite.roomID, mock.AnythingOfType("time.Time")).Return(0, nil).Once()
	suite.mockBillRepo.On("FindBillByID", ctx, bill.BillID).Return(bill, nil).Twice()
	suite.mockBillRepo.On("UpdateShareStatus", ctx, bill.BillID, suite.memberID, domain.SharePendingApproval, (*time.Time)(nil)).Return(nil).Once()
	suite.mockRoomReader.On("FindRoomManager", ctx, suite.roomID).Return(&domain.UserRoom{UserID: suite.managerID, UserName: "Mgr"}, nil).Once()
	suite.mockNotifier.On("Dispatch", ctx, suite.roomID, suite.managerID, domain.NotifyShareSubmitted, mock.AnythingOfType("string")).Return().Once()

	_, err := suite.service.TransitionShare(ctx, suite.roomID, bill.BillID, suite.memberID,
		dto.ShareTransitionRequest{Status: "PENDING_APPROVAL"}, suite.memberID)

	suite.Require().NoError(err)
	suite.mockBillRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *BillServiceTestSuite) TestTransitionShare_MemberCannotSubmitOthersShare() {
	ctx := context.Background()
	bill := suite.bill(domain.ShareUnpaid)

	suite.mockBillRepo.On("MarkOverdueShares", ctx, suite.roomID, mock.AnythingOfType("time.Time")).Return(0, nil).Once()
	suite.mockBillRepo.On("FindBillByID", ctx, bill.BillID).Return(bill, nil).Once()

	_, err := suite.service.TransitionShare(ctx, suite.roomID, bill.BillID, suite.managerID,
		dto.ShareTransitionRequest{Status: "PENDING_APPROVAL"}, suite.memberID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *BillServiceTestSuite) TestTransitionShare_MemberCannotApprove() {
	ctx := context.Background()
	bill := suite.bill(domain.SharePendingApproval)

	suite.mockBillRepo.On("MarkOverdueShares", ctx, suite.roomID, mock.AnythingOfType("time.Time")).Return(0, nil).Once()
	suite.mockBillRepo.On("FindBillByID", ctx, bill.BillID).Return(bill, nil).Once()

	_, err := suite.service.TransitionShare(ctx, suite.roomID, bill.BillID, suite.memberID,
		dto.ShareTransitionRequest{Status: "PAID"}, suite.memberID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *BillServiceTestSuite) TestTransitionShare_ApproveFromMealFundCreatesExpense() {
	ctx := context.Background()
	bill := suite.bill(domain.SharePendingApproval)
	periodID := uuid.NewString()

	suite.mockBillRepo.On("MarkOverdueShares", ctx, suite.roomID, mock.AnythingOfType("time.Time")).Return(0, nil).Once()
	suite.mockBillRepo.On("FindBillByID", ctx, bill.BillID).Return(bill, nil).Twice()
	suite.mockPeriodRepo.On("FindActivePeriod", ctx, suite.roomID).Return(&domain.CalculationPeriod{
		PeriodID: periodID, RoomID: suite.roomID, Status: domain.PeriodActive,
	}, nil).Once()
	suite.mockBillRepo.On("MarkSharePaid", ctx, bill.BillID, suite.memberID, mock.AnythingOfType("time.Time"),
		mock.MatchedBy(func(e *domain.Expense) bool {
			return e != nil &&
				e.EffectiveCategory() == domain.CategoryBillPayment &&
				e.Status == domain.ApprovalApproved &&
				e.UserID == suite.memberID &&
				e.Amount.Equal(decimal.NewFromInt(600)) &&
				e.SourceShare != nil && *e.SourceShare == bill.BillID+":"+suite.memberID &&
				e.CalculationPeriodID != nil && *e.CalculationPeriodID == periodID
		})).Return(nil).Once()
	suite.mockNotifier.On("Dispatch", ctx, suite.roomID, suite.memberID, domain.NotifyShareApproved, mock.AnythingOfType("string")).Return().Once()

	_, err := suite.service.TransitionShare(ctx, suite.roomID, bill.BillID, suite.memberID,
		dto.ShareTransitionRequest{Status: "PAID", PaidFromMealFund: true}, suite.managerID)

	suite.Require().NoError(err)
	suite.mockBillRepo.AssertExpectations(suite.T())
}

func (suite *BillServiceTestSuite) TestTransitionShare_ApproveOutOfPocketSkipsExpense() {
	ctx := context.Background()
	bill := suite.bill(domain.SharePendingApproval)

	suite.mockBillRepo.On("MarkOverdueShares", ctx, suite.roomID, mock.AnythingOfType("time.Time")).Return(0, nil).Once()
	suite.mockBillRepo.On("FindBillByID", ctx, bill.BillID).Return(bill, nil).Twice()
	suite.mockBillRepo.On("MarkSharePaid", ctx, bill.BillID, suite.memberID, mock.AnythingOfType("time.Time"), (*domain.Expense)(nil)).Return(nil).Once()
	suite.mockNotifier.On("Dispatch", ctx, suite.roomID, suite.memberID, domain.NotifyShareApproved, mock.AnythingOfType("string")).Return().Once()

	_, err := suite.service.TransitionShare(ctx, suite.roomID, bill.BillID, suite.memberID,
		dto.ShareTransitionRequest{Status: "PAID", PaidFromMealFund: false}, suite.managerID)

	suite.Require().NoError(err)
	suite.mockBillRepo.AssertExpectations(suite.T())
}

func (suite *BillServiceTestSuite) TestTransitionShare_ReapprovingPaidShareIsNoOp() {
	ctx := context.Background()
	bill := suite.bill(domain.SharePaid)

	suite.mockBillRepo.On("MarkOverdueShares", ctx, suite.roomID, mock.AnythingOfType("time.Time")).Return(0, nil).Once()
	suite.mockBillRepo.On("FindBillByID", ctx, bill.BillID).Return(bill, nil).Twice()
	// No MarkSharePaid expectation: the service must not touch the repo.

	_, err := suite.service.TransitionShare(ctx, suite.roomID, bill.BillID, suite.memberID,
		dto.ShareTransitionRequest{Status: "PAID", PaidFromMealFund: true}, suite.managerID)

	suite.Require().NoError(err)
	suite.mockBillRepo.AssertNotCalled(suite.T(), "MarkSharePaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BillServiceTestSuite) TestTransitionShare_ManagerDeniesSubmission() {
	ctx := context.Background()
	bill := suite.bill(domain.SharePendingApproval)

	suite.mockBillRepo.On("MarkOverdueShares", ctx, suite.roomID, mock.AnythingOfType("time.Time")).Return(0, nil).Once()
	suite.mockBillRepo.On("FindBillByID", ctx, bill.BillID).Return(bill, nil).Twice()
	suite.mockBillRepo.On("UpdateShareStatus", ctx, bill.BillID, suite.memberID, domain.ShareUnpaid, (*time.Time)(nil)).Return(nil).Once()
	suite.mockNotifier.On("Dispatch", ctx, suite.roomID, suite.memberID, domain.NotifyShareDenied, mock.AnythingOfType("string")).Return().Once()

	_, err := suite.service.TransitionShare(ctx, suite.roomID, bill.BillID, suite.memberID,
		dto.ShareTransitionRequest{Status: "UNPAID"}, suite.managerID)

	suite.Require().NoError(err)
	suite.mockBillRepo.AssertExpectations(suite.T())
}

func (suite *BillServiceTestSuite) TestTransitionShare_DenyRequiresPendingState() {
	ctx := context.Background()
	bill := suite.bill(domain.ShareUnpaid)

	suite.mockBillRepo.On("MarkOverdueShares", ctx, suite.roomID, mock.AnythingOfType("time.Time")).Return(0, nil).Once()
	suite.mockBillRepo.On("FindBillByID", ctx, bill.BillID).Return(bill, nil).Once()

	_, err := suite.service.TransitionShare(ctx, suite.roomID, bill.BillID, suite.memberID,
		dto.ShareTransitionRequest{Status: "UNPAID"}, suite.managerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BillServiceTestSuite) TestListBills_SweepsOverdueFirst() {
	ctx := context.Background()

	suite.mockBillRepo.On("MarkOverdueShares", ctx, suite.roomID, mock.AnythingOfType("time.Time")).Return(2, nil).Once()
	suite.mockBillRepo.On("ListBillsByRoom", ctx, suite.roomID).Return([]domain.Bill{}, nil).Once()

	_, err := suite.service.ListBills(ctx, suite.roomID, suite.memberID)

	suite.Require().NoError(err)
	suite.mockBillRepo.AssertExpectations(suite.T())
}

func TestBillServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BillServiceTestSuite))
}
