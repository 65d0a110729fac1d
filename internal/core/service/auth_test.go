package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	. "todoapi/pkg/test"

	"todoapi/internal/adapter/cache/memory"
	"todoapi/internal/adapter/database/sqlite"
	"todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/port"
	"todoapi/internal/core/service"
	"todoapi/pkg/config"
)

type AuthServiceTestSuite struct {
	suite.Suite
	UseCase port.AuthService
	Users   port.UserRepository
	Tokens  port.TokenRepository
	DB      *sqlite.DB
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.DB = InitTestDB()

	s.Users = repository.NewUserRepository(s.DB)
	s.Tokens = repository.NewTokenRepository(s.DB)

	s.UseCase = service.NewAuthService(s.Users, s.Tokens, memory.New(), config.AuthConfig{
		TokenSecret:   "test-secret",
		DecoyPassword: "decoy-password",
		TokenCacheTTL: time.Minute,
	})
}

func (s *AuthServiceTestSuite) TearDownTest() {
	if s.DB != nil {
		s.DB.Close()
	}
}

func TestAuthServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AuthServiceTestSuite))
}

func registerRequest(email string) *request.RegisterRequest {
	return &request.RegisterRequest{
		Name:                 "Test User",
		Email:                email,
		Password:             "password123",
		PasswordConfirmation: "password123",
	}
}

func (s *AuthServiceTestSuite) TestRegisterSuccess() {
	user, token, err := s.UseCase.Register(context.Background(), registerRequest("test@example.com"))

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "test@example.com", user.Email)
	assert.NotZero(s.T(), user.ID)
	assert.NotEmpty(s.T(), token)
	assert.NotEqual(s.T(), "password123", user.EncryptedPassword)
}

func (s *AuthServiceTestSuite) TestRegisterEmailTaken() {
	_, _, err := s.UseCase.Register(context.Background(), registerRequest("taken@example.com"))
	assert.NoError(s.T(), err)

	_, _, err = s.UseCase.Register(context.Background(), registerRequest("taken@example.com"))

	var domainErr *domain.Error
	assert.ErrorAs(s.T(), err, &domainErr)
	assert.Equal(s.T(), domain.ErrorValidation, domainErr.Kind)
	Expect(domainErr.Fields["email"]).To(ContainElement("email has already been taken"))
}

// Wraps the real repository and fails email lookups with a storage error.
type failingEmailLookupRepo struct {
	port.UserRepository
}

func (r *failingEmailLookupRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return domain.User{}, errors.New("connection reset")
}

func (s *AuthServiceTestSuite) TestRegisterSurfacesEmailLookupErrors() {
	useCase := service.NewAuthService(&failingEmailLookupRepo{s.Users}, s.Tokens, memory.New(), config.AuthConfig{
		TokenSecret:   "test-secret",
		DecoyPassword: "decoy-password",
		TokenCacheTTL: time.Minute,
	})

	_, _, err := useCase.Register(context.Background(), registerRequest("unreachable@example.com"))

	assert.EqualError(s.T(), err, "connection reset")

	_, lookupErr := s.Users.GetByEmail(context.Background(), "unreachable@example.com")
	assert.True(s.T(), domain.IsNotFound(lookupErr), "no user row should have been created")
}

func (s *AuthServiceTestSuite) TestLoginSuccess() {
	_, _, err := s.UseCase.Register(context.Background(), registerRequest("login@example.com"))
	assert.NoError(s.T(), err)

	user, token, err := s.UseCase.Login(context.Background(), &request.LoginRequest{
		Email:    "login@example.com",
		Password: "password123",
	})

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "login@example.com", user.Email)
	assert.NotEmpty(s.T(), token)
}

func (s *AuthServiceTestSuite) TestLoginWrongPassword() {
	_, _, err := s.UseCase.Register(context.Background(), registerRequest("wrongpass@example.com"))
	assert.NoError(s.T(), err)

	_, _, err = s.UseCase.Login(context.Background(), &request.LoginRequest{
		Email:    "wrongpass@example.com",
		Password: "not-the-password",
	})

	var domainErr *domain.Error
	assert.ErrorAs(s.T(), err, &domainErr)
	assert.Equal(s.T(), domain.ErrorUnauthorized, domainErr.Kind)
}

// Unknown email and wrong password must be indistinguishable to the caller.
func (s *AuthServiceTestSuite) TestLoginUnknownEmailMatchesWrongPassword() {
	_, _, err := s.UseCase.Register(context.Background(), registerRequest("known@example.com"))
	assert.NoError(s.T(), err)

	_, _, unknownErr := s.UseCase.Login(context.Background(), &request.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})

	_, _, wrongErr := s.UseCase.Login(context.Background(), &request.LoginRequest{
		Email:    "known@example.com",
		Password: "not-the-password",
	})

	assert.Error(s.T(), unknownErr)
	assert.Error(s.T(), wrongErr)
	assert.Equal(s.T(), wrongErr.Error(), unknownErr.Error())
}

func (s *AuthServiceTestSuite) TestAuthorizeRoundTrip() {
	registered, token, err := s.UseCase.Register(context.Background(), registerRequest("authorize@example.com"))
	assert.NoError(s.T(), err)

	user, err := s.UseCase.Authorize(context.Background(), token)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), registered.ID, user.ID)
	assert.Equal(s.T(), registered.Email, user.Email)
}

func (s *AuthServiceTestSuite) TestAuthorizeGarbageToken() {
	_, err := s.UseCase.Authorize(context.Background(), "not-a-token")

	var domainErr *domain.Error
	assert.ErrorAs(s.T(), err, &domainErr)
	assert.Equal(s.T(), domain.ErrorUnauthorized, domainErr.Kind)
}

func (s *AuthServiceTestSuite) TestLogoutRevokesEveryToken() {
	user, firstToken, err := s.UseCase.Register(context.Background(), registerRequest("logout@example.com"))
	assert.NoError(s.T(), err)

	_, secondToken, err := s.UseCase.Login(context.Background(), &request.LoginRequest{
		Email:    "logout@example.com",
		Password: "password123",
	})
	assert.NoError(s.T(), err)

	_, err = s.UseCase.Authorize(context.Background(), firstToken)
	assert.NoError(s.T(), err)

	err = s.UseCase.Logout(context.Background(), user.ID)
	assert.NoError(s.T(), err)

	_, err = s.UseCase.Authorize(context.Background(), firstToken)
	assert.Error(s.T(), err)

	_, err = s.UseCase.Authorize(context.Background(), secondToken)
	assert.Error(s.T(), err)
}

func (s *AuthServiceTestSuite) TestLogoutIsIdempotent() {
	user, _, err := s.UseCase.Register(context.Background(), registerRequest("idempotent@example.com"))
	assert.NoError(s.T(), err)

	assert.NoError(s.T(), s.UseCase.Logout(context.Background(), user.ID))
	assert.NoError(s.T(), s.UseCase.Logout(context.Background(), user.ID))
}
