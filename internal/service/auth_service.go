package service

import (
	"context"

	"taskmanager/internal/apperror"
	"taskmanager/internal/auth"
	"taskmanager/internal/dto"
	"taskmanager/internal/model"

	"github.com/rs/zerolog/log"
)

type TokenIssuer interface {
	GenerateToken(userID, email string) (string, error)
}

type AuthService struct {
	users  UserStore
	tokens TokenIssuer
}

var _ AuthFlow = (*AuthService)(nil)

func NewAuthService(users UserStore, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*model.User, error) {
	return s.users.Create(ctx, req)
}

// ValidateCredentials never tells the caller which half of the pair was wrong.
func (s *AuthService) ValidateCredentials(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			return nil, apperror.Unauthorized("Invalid Credentials")
		}
		return nil, err
	}

	if !auth.ComparePassword(password, user.Password) {
		return nil, apperror.Unauthorized("Invalid Credentials")
	}

	return user.WithoutPassword(), nil
}

func (s *AuthService) Login(ctx context.Context, user *model.User) (*LoginResult, error) {
	token, err := s.tokens.GenerateToken(user.ID.String(), user.Email)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID.String()).Msg("Error signing access token")
		return nil, apperror.Internal(err)
	}
	return &LoginResult{User: user, AccessToken: token}, nil
}
