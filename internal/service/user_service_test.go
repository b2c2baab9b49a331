package service_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"taskmanager/internal/apperror"
	"taskmanager/internal/auth"
	"taskmanager/internal/dto"
	"taskmanager/internal/model"
	"taskmanager/internal/repository"
	"taskmanager/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context, offset, limit int) ([]model.User, error) {
	args := m.Called(ctx, offset, limit)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func registerRequest(n int) dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:    fmt.Sprintf("user%d@example.com", n),
		Fullname: fmt.Sprintf("User %d", n),
		Username: fmt.Sprintf("user%d", n),
		Password: "secret123",
	}
}

func TestUserService_Create_HashesAndStripsPassword(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	user, err := s.users.Create(ctx, dto.RegisterRequest{
		Email: "a@b.com", Fullname: "A B", Username: "ab", Password: "secret123",
	})

	require.NoError(t, err)
	assert.Equal(t, "a@b.com", user.Email)
	assert.Empty(t, user.Password)
	assert.NotEqual(t, uuid.Nil, user.ID)

	stored, err := memUserRepo{s.store}.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.True(t, auth.ComparePassword("secret123", stored.Password))
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	_, err := s.users.Create(ctx, registerRequest(1))
	require.NoError(t, err)

	again := registerRequest(2)
	again.Email = registerRequest(1).Email
	_, err = s.users.Create(ctx, again)

	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Equal(t, "User with email existed", apperror.PublicMessage(err))
}

func TestUserService_Create_DuplicateUsername(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	_, err := s.users.Create(ctx, registerRequest(1))
	require.NoError(t, err)

	again := registerRequest(2)
	again.Username = registerRequest(1).Username
	_, err = s.users.Create(ctx, again)

	assert.True(t, apperror.Is(err, apperror.KindConflict))
}

func TestUserService_Create_RepositoryFailure(t *testing.T) {
	repo := new(mockUserRepository)
	users := service.NewUserService(repo)

	repo.On("FindByEmail", mock.Anything, "a@b.com").Return(nil, assert.AnError)

	_, err := users.Create(context.Background(), dto.RegisterRequest{Email: "a@b.com", Username: "ab", Password: "x"})

	assert.True(t, apperror.Is(err, apperror.KindInternal))
	assert.ErrorIs(t, err, assert.AnError)
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_FindByID(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	created, err := s.users.Create(ctx, registerRequest(1))
	require.NoError(t, err)

	found, err := s.users.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, found.Email)
	assert.Empty(t, found.Password)

	_, err = s.users.FindByID(ctx, uuid.New())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestUserService_FindByEmail_KeepsDigest(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	_, err := s.users.Create(ctx, registerRequest(1))
	require.NoError(t, err)

	found, err := s.users.FindByEmail(ctx, registerRequest(1).Email)
	require.NoError(t, err)
	assert.NotEmpty(t, found.Password)

	_, err = s.users.FindByEmail(ctx, "missing@example.com")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestUserService_List_Paginates(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	for i := 1; i <= 25; i++ {
		_, err := s.users.Create(ctx, registerRequest(i))
		require.NoError(t, err)
	}

	users, err := s.users.List(ctx, 2, 10)

	require.NoError(t, err)
	require.Len(t, users, 10)
	assert.Equal(t, "user11@example.com", users[0].Email)
	assert.Equal(t, "user20@example.com", users[9].Email)
	for _, u := range users {
		assert.Empty(t, u.Password)
	}
}

func TestUserService_List_OffsetComputation(t *testing.T) {
	repo := new(mockUserRepository)
	users := service.NewUserService(repo)

	repo.On("List", mock.Anything, 20, 5).Return([]model.User{}, nil)

	_, err := users.List(context.Background(), 5, 5)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUserService_Update_MergesFields(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	created, err := s.users.Create(ctx, registerRequest(1))
	require.NoError(t, err)

	fullname := "Renamed"
	updated, err := s.users.Update(ctx, created.ID, dto.UpdateUserRequest{Fullname: &fullname})

	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Fullname)
	assert.Equal(t, created.Username, updated.Username)
	assert.Empty(t, updated.Password)
}

func TestUserService_Update_UsernameTaken(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	first, err := s.users.Create(ctx, registerRequest(1))
	require.NoError(t, err)
	_, err = s.users.Create(ctx, registerRequest(2))
	require.NoError(t, err)

	taken := registerRequest(2).Username
	_, err = s.users.Update(ctx, first.ID, dto.UpdateUserRequest{Username: &taken})

	assert.True(t, apperror.Is(err, apperror.KindConflict))
}

func TestUserService_Update_NotFound(t *testing.T) {
	s := newServices()

	name := "x"
	_, err := s.users.Update(context.Background(), uuid.New(), dto.UpdateUserRequest{Fullname: &name})

	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestUserService_Delete_CascadesTasks(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	owner, err := s.users.Create(ctx, registerRequest(1))
	require.NoError(t, err)
	task, err := s.tasks.Create(ctx, owner.ID, dto.CreateTaskRequest{Title: "t", Description: "d"})
	require.NoError(t, err)

	msg, err := s.users.Delete(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "User deleted successfully", msg)

	_, err = s.tasks.FindByID(ctx, task.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = s.tasks.ListByOwner(ctx, owner.ID, 1, 10)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = s.users.Delete(ctx, owner.ID)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestUserService_Delete_RepositoryFailure(t *testing.T) {
	repo := new(mockUserRepository)
	users := service.NewUserService(repo)
	id := uuid.New()

	repo.On("Delete", mock.Anything, id).Return(assert.AnError)

	_, err := users.Delete(context.Background(), id)

	assert.True(t, apperror.Is(err, apperror.KindInternal))
	assert.NotErrorIs(t, err, repository.ErrUserNotFound)
}

func TestUserService_Create_PasswordTooLong(t *testing.T) {
	s := newServices()
	ctx := context.Background()

	req := registerRequest(1)
	req.Password = strings.Repeat("p", 73)
	_, err := s.users.Create(ctx, req)
	assert.True(t, apperror.Is(err, apperror.KindBadRequest))

	req.Password = strings.Repeat("é", 40)
	_, err = s.users.Create(ctx, req)
	assert.True(t, apperror.Is(err, apperror.KindBadRequest))

	assert.Empty(t, s.store.users)
}
