package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	. "todoapi/pkg/test"
	"todoapi/pkg/test/factory"

	"todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/port"
)

type UserRepositoryTestSuite struct {
	suite.Suite
	UserRepo  port.UserRepository
	TokenRepo port.TokenRepository
}

func (s *UserRepositoryTestSuite) SetupTest() {
	db := InitTestDB()

	s.UserRepo = repository.NewUserRepository(db)
	s.TokenRepo = repository.NewTokenRepository(db)
}

func TestUserRepositoryTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserRepositoryTestSuite))
}

func (s *UserRepositoryTestSuite) TestCreateAndGetByID() {
	created, err := s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{
		"Name":  "Alice",
		"Email": "alice@example.com",
	}))

	assert.NoError(s.T(), err)
	assert.NotZero(s.T(), created.ID)

	found, err := s.UserRepo.GetByID(context.Background(), created.ID)

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "Alice", found.Name)
	assert.Equal(s.T(), "alice@example.com", found.Email)
}

func (s *UserRepositoryTestSuite) TestGetByEmail() {
	_, err := s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{
		"Email": "byemail@example.com",
	}))

	assert.NoError(s.T(), err)

	found, err := s.UserRepo.GetByEmail(context.Background(), "byemail@example.com")

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), "byemail@example.com", found.Email)
}

func (s *UserRepositoryTestSuite) TestGetByEmailNotFound() {
	_, err := s.UserRepo.GetByEmail(context.Background(), "missing@example.com")

	var domainErr *domain.Error
	assert.ErrorAs(s.T(), err, &domainErr)
	assert.Equal(s.T(), domain.ErrorNotFound, domainErr.Kind)
}

func (s *UserRepositoryTestSuite) TestTokenCreateAndGetByUUID() {
	user, err := s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{
		"Email": "tokens@example.com",
	}))
	assert.NoError(s.T(), err)

	token, err := s.TokenRepo.Create(context.Background(), domain.Token{
		UUID:   uuid.New(),
		UserID: user.ID,
		Name:   "AuthToken",
	})

	assert.NoError(s.T(), err)
	assert.NotZero(s.T(), token.ID)

	found, err := s.TokenRepo.GetByUUID(context.Background(), token.UUID.String())

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), token.UUID, found.UUID)
	assert.Equal(s.T(), user.ID, found.UserID)
}

func (s *UserRepositoryTestSuite) TestDeleteAllForUser() {
	user, err := s.UserRepo.Create(context.Background(), factory.NewUser(map[string]any{
		"Email": "revoked@example.com",
	}))
	assert.NoError(s.T(), err)

	first, err := s.TokenRepo.Create(context.Background(), domain.Token{UUID: uuid.New(), UserID: user.ID})
	assert.NoError(s.T(), err)

	second, err := s.TokenRepo.Create(context.Background(), domain.Token{UUID: uuid.New(), UserID: user.ID})
	assert.NoError(s.T(), err)

	assert.NoError(s.T(), s.TokenRepo.DeleteAllForUser(context.Background(), user.ID))

	_, err = s.TokenRepo.GetByUUID(context.Background(), first.UUID.String())
	assert.Error(s.T(), err)

	_, err = s.TokenRepo.GetByUUID(context.Background(), second.UUID.String())
	assert.Error(s.T(), err)
}

func (s *UserRepositoryTestSuite) TestDeleteAllForUserWithoutTokens() {
	assert.NoError(s.T(), s.TokenRepo.DeleteAllForUser(context.Background(), 999))
}
