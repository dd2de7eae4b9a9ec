package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"minjec-portal-backend/internal/domain"
	"minjec-portal-backend/internal/logger"
	"minjec-portal-backend/internal/repository"
	"minjec-portal-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	admins repository.AdminRepository
	tokens security.TokenManager
}

func NewAuthService(admins repository.AdminRepository, tokens security.TokenManager) AuthService {
	return &authService{admins: admins, tokens: tokens}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Admin, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(admin.ID, admin.Email)
	if err != nil {
		return "", nil, err
	}

	logger.WithService("auth").Info("admin logged in", "admin_id", admin.ID)
	return token, admin, nil
}
