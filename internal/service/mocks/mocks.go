// Package mocks provides testify mocks of the service interfaces.
package mocks

import (
	"context"

	"taskmanager/internal/dto"
	"taskmanager/internal/model"
	"taskmanager/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type UserStore struct {
	mock.Mock
}

var _ service.UserStore = (*UserStore)(nil)

func (m *UserStore) Create(ctx context.Context, req dto.RegisterRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserStore) List(ctx context.Context, page, limit int) ([]model.User, error) {
	args := m.Called(ctx, page, limit)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *UserStore) Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*model.User, error) {
	args := m.Called(ctx, id, req)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserStore) Delete(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

type TaskStore struct {
	mock.Mock
}

var _ service.TaskStore = (*TaskStore)(nil)

func (m *TaskStore) Create(ctx context.Context, ownerID uuid.UUID, req dto.CreateTaskRequest) (*model.Task, error) {
	args := m.Called(ctx, ownerID, req)
	return taskOrNil(args.Get(0)), args.Error(1)
}

func (m *TaskStore) FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	return taskOrNil(args.Get(0)), args.Error(1)
}

func (m *TaskStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]model.Task, error) {
	args := m.Called(ctx, ownerID, page, limit)
	tasks, _ := args.Get(0).([]model.Task)
	return tasks, args.Error(1)
}

func (m *TaskStore) Update(ctx context.Context, ownerID, taskID uuid.UUID, req dto.UpdateTaskRequest) (*model.Task, error) {
	args := m.Called(ctx, ownerID, taskID, req)
	return taskOrNil(args.Get(0)), args.Error(1)
}

func (m *TaskStore) Delete(ctx context.Context, ownerID, taskID uuid.UUID) (string, error) {
	args := m.Called(ctx, ownerID, taskID)
	return args.String(0), args.Error(1)
}

type AuthFlow struct {
	mock.Mock
}

var _ service.AuthFlow = (*AuthFlow)(nil)

func (m *AuthFlow) Register(ctx context.Context, req dto.RegisterRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *AuthFlow) ValidateCredentials(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *AuthFlow) Login(ctx context.Context, user *model.User) (*service.LoginResult, error) {
	args := m.Called(ctx, user)
	result, _ := args.Get(0).(*service.LoginResult)
	return result, args.Error(1)
}

func userOrNil(v any) *model.User {
	u, _ := v.(*model.User)
	return u
}

func taskOrNil(v any) *model.Task {
	t, _ := v.(*model.Task)
	return t
}
