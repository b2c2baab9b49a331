// Package service holds the User Store, the Task Store and the Auth Flow.
// Every error they return is an *apperror.Error.
package service

import (
	"context"

	"taskmanager/internal/dto"
	"taskmanager/internal/model"

	"github.com/google/uuid"
)

type UserStore interface {
	Create(ctx context.Context, req dto.RegisterRequest) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, page, limit int) ([]model.User, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) (string, error)
}

type TaskStore interface {
	Create(ctx context.Context, ownerID uuid.UUID, req dto.CreateTaskRequest) (*model.Task, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]model.Task, error)
	Update(ctx context.Context, ownerID, taskID uuid.UUID, req dto.UpdateTaskRequest) (*model.Task, error)
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) (string, error)
}

type AuthFlow interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*model.User, error)
	ValidateCredentials(ctx context.Context, email, password string) (*model.User, error)
	Login(ctx context.Context, user *model.User) (*LoginResult, error)
}

// OwnerResolver is the slice of the User Store the Task Store depends on.
type OwnerResolver interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type LoginResult struct {
	User        *model.User
	AccessToken string
}

func offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
