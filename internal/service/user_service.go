package service

import (
	"context"
	"errors"

	"taskmanager/internal/apperror"
	"taskmanager/internal/auth"
	"taskmanager/internal/dto"
	"taskmanager/internal/model"
	"taskmanager/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type UserService struct {
	repo repository.UserRepositoryInterface
}

var _ UserStore = (*UserService)(nil)

func NewUserService(repo repository.UserRepositoryInterface) *UserService {
	return &UserService{repo: repo}
}

// Create registers a user. Uniqueness is a read-then-write check.
func (s *UserService) Create(ctx context.Context, req dto.RegisterRequest) (*model.User, error) {
	if err := s.ensureFree(ctx, s.repo.FindByEmail, req.Email, "User with email existed"); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, s.repo.FindByUsername, req.Username, "User with username existed"); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if errors.Is(err, auth.ErrPasswordTooLong) {
		return nil, apperror.BadRequest("password must be shorter than or equal to 72 bytes")
	}
	if err != nil {
		log.Error().Err(err).Msg("Error hashing password")
		return nil, apperror.Internal(err)
	}

	user := &model.User{
		Email:    req.Email,
		Username: req.Username,
		Fullname: req.Fullname,
		Password: hash,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Error creating user")
		return nil, apperror.Internal(err)
	}

	return user.WithoutPassword(), nil
}

func (s *UserService) ensureFree(ctx context.Context, find func(context.Context, string) (*model.User, error), value, conflictMsg string) error {
	_, err := find(ctx, value)
	switch {
	case err == nil:
		return apperror.Conflict(conflictMsg)
	case errors.Is(err, repository.ErrUserNotFound):
		return nil
	default:
		log.Error().Err(err).Msg("Error checking user uniqueness")
		return apperror.Internal(err)
	}
}

func (s *UserService) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, userLookupError(err, "id", id.String())
	}
	return user.WithoutPassword(), nil
}

// FindByEmail keeps the password hash; it exists for credential checks only.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, userLookupError(err, "email", email)
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, page, limit int) ([]model.User, error) {
	users, err := s.repo.List(ctx, offset(page, limit), limit)
	if err != nil {
		log.Error().Err(err).Int("page", page).Int("limit", limit).Msg("Error listing users")
		return nil, apperror.Internal(err)
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateUserRequest) (*model.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, userLookupError(err, "id", id.String())
	}

	if req.Username != nil && *req.Username != user.Username {
		if err := s.ensureFree(ctx, s.repo.FindByUsername, *req.Username, "User with username existed"); err != nil {
			return nil, err
		}
		user.Username = *req.Username
	}
	if req.Fullname != nil {
		user.Fullname = *req.Fullname
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, userLookupError(err, "id", id.String())
	}
	return user.WithoutPassword(), nil
}

func (s *UserService) Delete(ctx context.Context, id uuid.UUID) (string, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return "", userLookupError(err, "id", id.String())
	}
	return "User deleted successfully", nil
}

func userLookupError(err error, field, value string) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return apperror.NotFound("User not found")
	}
	log.Error().Err(err).Str(field, value).Msg("Error loading user")
	return apperror.Internal(err)
}
