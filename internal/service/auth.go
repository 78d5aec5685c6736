package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"bikeshop-rental-backend/internal/domain"
	"bikeshop-rental-backend/internal/repository"
	"bikeshop-rental-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type authService struct {
	staffRepo repository.StaffRepository
	tokens    security.TokenManager
}

func NewAuthService(staffRepo repository.StaffRepository, tokens security.TokenManager) AuthService {
	return &authService{
		staffRepo: staffRepo,
		tokens:    tokens,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.StaffUser, error) {
	user, err := s.staffRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
