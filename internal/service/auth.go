package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/logger"
	"smartschool-backend/internal/repository"
	"smartschool-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	store  repository.Store
	tokens security.TokenManager
}

func NewAuthService(store repository.Store, tokens security.TokenManager) AuthService {
	return &authService{store: store, tokens: tokens}
}

// Login verifies the password against the stored bcrypt hash. Missing
// accounts and wrong passwords collapse to the same error so the response
// does not leak which emails exist.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", nil, err
	}

	logger.Info("User logged in", "user_id", user.ID, "role", user.Role)
	return token, user, nil
}
