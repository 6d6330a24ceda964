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
	"github.com/billkhata/billkhata/internal/platform/config"
	"github.com/billkhata/billkhata/internal/utils"
)

// --- Mock UserSvcFacade ---

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) VerifyCredentials(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, refreshTokenExpiryTime)
	return args.Error(0)
}

func (m *MockUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type TokenServiceTestSuite struct {
	suite.Suite
	mockUsers *MockUserService
	cfg       *config.Config
	service   portssvc.TokenSvcFacade
	userID    string
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.mockUsers = new(MockUserService)
	suite.cfg = &config.Config{
		JWTSecret:                  "test-secret",
		JWTExpiryDuration:          time.Hour,
		JWTIssuer:                  "billkhata-test",
		RefreshTokenExpiryDuration: 7 * 24 * time.Hour,
	}
	suite.service = services.NewTokenService(suite.cfg, suite.mockUsers)
	suite.userID = uuid.NewString()
}

func (suite *TokenServiceTestSuite) TestGenerateAccessToken_ProducesValidJWT() {
	ctx := context.Background()
	user := &domain.User{UserID: suite.userID}

	token, expiry, err := suite.service.GenerateAccessToken(ctx, user)

	suite.Require().NoError(err)
	suite.NotEmpty(token)
	suite.WithinDuration(time.Now().Add(time.Hour), expiry, 5*time.Second)

	claims, err := utils.ParseAndValidateJWT(token, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal(suite.userID, claims.Subject)
	suite.Equal(suite.cfg.JWTIssuer, claims.Issuer)
}

func (suite *TokenServiceTestSuite) TestGenerateRefreshToken_PersistsHashNotRawToken() {
	ctx := context.Background()
	user := &domain.User{UserID: suite.userID}

	var storedHash string
	suite.mockUsers.On("UpdateRefreshToken", ctx, suite.userID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(args mock.Arguments) { storedHash = args.String(2) }).
		Return(nil).Once()

	raw, expiry, err := suite.service.GenerateRefreshToken(ctx, user)

	suite.Require().NoError(err)
	suite.Len(raw, 64)
	suite.NotEqual(raw, storedHash)
	suite.True(utils.CompareRefreshTokenHash(raw, storedHash))
	suite.WithinDuration(time.Now().Add(suite.cfg.RefreshTokenExpiryDuration), expiry, 5*time.Second)
	suite.mockUsers.AssertExpectations(suite.T())
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_AcceptsMatchingToken() {
	ctx := context.Background()
	raw := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	expiry := time.Now().Add(time.Hour)
	user := &domain.User{
		UserID:                 suite.userID,
		RefreshTokenHash:       utils.HashRefreshToken(raw),
		RefreshTokenExpiryTime: &expiry,
	}
	suite.mockUsers.On("GetUserByID", ctx, suite.userID).Return(user, nil).Once()

	got, err := suite.service.ValidateRefreshToken(ctx, suite.userID, raw)

	suite.Require().NoError(err)
	suite.Equal(suite.userID, got.UserID)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_RejectsExpiredToken() {
	ctx := context.Background()
	raw := "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	expiry := time.Now().Add(-time.Minute)
	user := &domain.User{
		UserID:                 suite.userID,
		RefreshTokenHash:       utils.HashRefreshToken(raw),
		RefreshTokenExpiryTime: &expiry,
	}
	suite.mockUsers.On("GetUserByID", ctx, suite.userID).Return(user, nil).Once()

	got, err := suite.service.ValidateRefreshToken(ctx, suite.userID, raw)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_RejectsMismatchedToken() {
	ctx := context.Background()
	expiry := time.Now().Add(time.Hour)
	user := &domain.User{
		UserID:                 suite.userID,
		RefreshTokenHash:       utils.HashRefreshToken("the-real-token"),
		RefreshTokenExpiryTime: &expiry,
	}
	suite.mockUsers.On("GetUserByID", ctx, suite.userID).Return(user, nil).Once()

	got, err := suite.service.ValidateRefreshToken(ctx, suite.userID, "a-different-token")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_RejectsUserWithoutToken() {
	ctx := context.Background()
	user := &domain.User{UserID: suite.userID}
	suite.mockUsers.On("GetUserByID", ctx, suite.userID).Return(user, nil).Once()

	got, err := suite.service.ValidateRefreshToken(ctx, suite.userID, "anything")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
