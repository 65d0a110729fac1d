package service_test

import (
	"context"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	. "todoapi/pkg/test"
	"todoapi/pkg/test/factory"

	"todoapi/internal/adapter/database/sqlite"
	"todoapi/internal/adapter/database/sqlite/repository"
	"todoapi/internal/core/domain"
	"todoapi/internal/core/model/request"
	"todoapi/internal/core/port"
	"todoapi/internal/core/service"
)

type TodoServiceTestSuite struct {
	suite.Suite
	UseCase port.TodoService
	Users   port.UserRepository
	DB      *sqlite.DB

	user domain.User
}

func (s *TodoServiceTestSuite) SetupTest() {
	s.DB = InitTestDB()

	s.Users = repository.NewUserRepository(s.DB)
	s.UseCase = service.NewTodoService(repository.NewTodoRepository(s.DB))

	user, err := s.Users.Create(context.Background(), factory.NewUser(map[string]any{
		"Email": "owner@example.com",
	}))

	assert.NoError(s.T(), err)
	s.user = user
}

func (s *TodoServiceTestSuite) TearDownTest() {
	if s.DB != nil {
		s.DB.Close()
	}
}

func TestTodoServiceTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TodoServiceTestSuite))
}

func (s *TodoServiceTestSuite) TestCreateStartsPending() {
	done := true

	todo, err := s.UseCase.Create(context.Background(), s.user.ID, &request.TodoCreateRequest{
		Title:       "buy milk",
		Description: "2 liters",
		Done:        &done,
	})

	assert.NoError(s.T(), err)
	assert.NotZero(s.T(), todo.ID)
	assert.Equal(s.T(), s.user.ID, todo.UserID)
	assert.False(s.T(), todo.Done)
	assert.Nil(s.T(), todo.DoneAt)
}

func (s *TodoServiceTestSuite) TestAllReturnsEmptySlice() {
	todos, err := s.UseCase.All(context.Background(), s.user.ID, nil)

	assert.NoError(s.T(), err)
	Expect(todos).ToNot(BeNil())
	Expect(todos).To(BeEmpty())
}

func (s *TodoServiceTestSuite) TestAllListsTodos() {
	_, err := s.UseCase.Create(context.Background(), s.user.ID, &request.TodoCreateRequest{Title: "first"})
	assert.NoError(s.T(), err)

	_, err = s.UseCase.Create(context.Background(), s.user.ID, &request.TodoCreateRequest{Title: "second"})
	assert.NoError(s.T(), err)

	todos, err := s.UseCase.All(context.Background(), s.user.ID, nil)

	assert.NoError(s.T(), err)
	assert.Len(s.T(), todos, 2)
	assert.Equal(s.T(), "first", todos[0].Title)
	assert.Equal(s.T(), "second", todos[1].Title)
}

func (s *TodoServiceTestSuite) TestGetByIDMissing() {
	_, err := s.UseCase.GetByID(context.Background(), 9999)

	var domainErr *domain.Error
	assert.ErrorAs(s.T(), err, &domainErr)
	assert.Equal(s.T(), domain.ErrorNotFound, domainErr.Kind)
}

func (s *TodoServiceTestSuite) TestDoneThenUndone() {
	todo, err := s.UseCase.Create(context.Background(), s.user.ID, &request.TodoCreateRequest{Title: "task"})
	assert.NoError(s.T(), err)

	assert.NoError(s.T(), s.UseCase.Done(context.Background(), todo.ID))

	updated, err := s.UseCase.GetByID(context.Background(), todo.ID)
	assert.NoError(s.T(), err)
	assert.True(s.T(), updated.Done)
	assert.NotNil(s.T(), updated.DoneAt)

	assert.NoError(s.T(), s.UseCase.Undone(context.Background(), todo.ID))

	updated, err = s.UseCase.GetByID(context.Background(), todo.ID)
	assert.NoError(s.T(), err)
	assert.False(s.T(), updated.Done)
	assert.Nil(s.T(), updated.DoneAt)
}

func (s *TodoServiceTestSuite) TestDoneMissing() {
	err := s.UseCase.Done(context.Background(), 9999)

	var domainErr *domain.Error
	assert.ErrorAs(s.T(), err, &domainErr)
	assert.Equal(s.T(), domain.ErrorNotFound, domainErr.Kind)
}

func (s *TodoServiceTestSuite) TestDeleteRemovesTodo() {
	todo, err := s.UseCase.Create(context.Background(), s.user.ID, &request.TodoCreateRequest{Title: "doomed"})
	assert.NoError(s.T(), err)

	assert.NoError(s.T(), s.UseCase.Delete(context.Background(), todo.ID))

	_, err = s.UseCase.GetByID(context.Background(), todo.ID)
	assert.Error(s.T(), err)
}

func (s *TodoServiceTestSuite) TestDeleteMissing() {
	err := s.UseCase.Delete(context.Background(), 9999)

	var domainErr *domain.Error
	assert.ErrorAs(s.T(), err, &domainErr)
	assert.Equal(s.T(), domain.ErrorNotFound, domainErr.Kind)
}
