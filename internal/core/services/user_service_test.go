package services_test

import (
	"context"
	"testing"

	"github.com/freelanceflow/ff_backend/internal/apperrors"
	"github.com/freelanceflow/ff_backend/internal/core/domain"
	portssvc "github.com/freelanceflow/ff_backend/internal/core/ports/services"
	"github.com/freelanceflow/ff_backend/internal/core/services"
	"github.com/freelanceflow/ff_backend/internal/dto"
	"github.com/freelanceflow/ff_backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

func (suite *UserServiceTestSuite) TestRegisterUser_NormalizesEmailAndHashesPassword() {
	ctx := context.Background()
	req := dto.RegisterUserRequest{Email: "  Jane@Example.COM ", Password: "s3cret!pass", FullName: "Jane Doe"}

	suite.mockRepo.On("FindUserByEmail", ctx, "jane@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "jane@example.com" &&
			u.AuthProvider == domain.ProviderLocal &&
			u.PasswordHash != "" &&
			u.PasswordHash != req.Password &&
			utils.CheckPasswordHash(req.Password, u.PasswordHash)
	})).Return(nil).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("jane@example.com", user.Email)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_RejectsDuplicateEmail() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "jane@example.com"}

	suite.mockRepo.On("FindUserByEmail", ctx, "jane@example.com").Return(existing, nil).Once()

	user, err := suite.service.RegisterUser(ctx, dto.RegisterUserRequest{Email: "jane@example.com", Password: "whatever1"})

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "jane@example.com",
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
	}

	suite.mockRepo.On("FindUserByEmail", ctx, "jane@example.com").Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, "Jane@Example.com", "correct-horse")

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)
	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "jane@example.com",
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
	}

	suite.mockRepo.On("FindUserByEmail", ctx, "jane@example.com").Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, "jane@example.com", "battery-staple")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmailMapsToUnauthorized() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	got, err := suite.service.AuthenticateUser(ctx, "nobody@example.com", "anything")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_GoogleAccountHasNoPassword() {
	ctx := context.Background()
	user := &domain.User{
		UserID:       uuid.NewString(),
		Email:        "jane@example.com",
		AuthProvider: domain.ProviderGoogle,
	}

	suite.mockRepo.On("FindUserByEmail", ctx, "jane@example.com").Return(user, nil).Once()

	got, err := suite.service.AuthenticateUser(ctx, "jane@example.com", "anything")

	suite.Require().Error(err)
	suite.Nil(got)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_ReturnsExisting() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "jane@example.com"}

	suite.mockRepo.On("FindUserByEmail", ctx, "jane@example.com").Return(existing, nil).Once()

	got, err := suite.service.FindOrCreateGoogleUser(ctx, domain.GoogleUserInfo{Email: "Jane@Example.com", Name: "Jane"})

	suite.Require().NoError(err)
	suite.Equal(existing.UserID, got.UserID)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_CreatesWhenMissing() {
	ctx := context.Background()

	suite.mockRepo.On("FindUserByEmail", ctx, "jane@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "jane@example.com" &&
			u.AuthProvider == domain.ProviderGoogle &&
			u.FullName == "Jane" &&
			u.PasswordHash == ""
	})).Return(nil).Once()

	got, err := suite.service.FindOrCreateGoogleUser(ctx, domain.GoogleUserInfo{Email: "jane@example.com", Name: "Jane"})

	suite.Require().NoError(err)
	suite.Equal(domain.ProviderGoogle, got.AuthProvider)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
