package auth

import (
	"context"
	"fmt"

	"go-marketplace/internal/common/models"
	"go-marketplace/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*User, string, error)
	Login(ctx context.Context, req LoginRequest) (*User, string, error)
}

type AuthServiceImpl struct {
	repo UserRepository
}

func NewAuthService(repo UserRepository) AuthService {
	return &AuthServiceImpl{
		repo: repo,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, req RegisterRequest) (*User, string, error) {
	if req.Name == "" || req.Email == "" {
		return nil, "", fmt.Errorf("%w: name and email are required", ErrValidation)
	}
	if len(req.Password) < 8 {
		return nil, "", fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	role, ok := models.ParseRole(req.Role)
	if !ok || role == models.RoleAdmin {
		// Admins are provisioned out of band, never self-registered
		role = models.RoleCustomer
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, req LoginRequest) (*User, string, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
