package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/sicurlav/vdtcheck/internal/auth"
	"github.com/sicurlav/vdtcheck/internal/models"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	users     UserStore
	jwtSecret string
}

func NewAuthService(users UserStore, jwtSecret string) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret}
}

type AuthResult struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("email already registered")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.UserProfile{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		CompanyIDs:   []string{},
		SiteIDs:      []string{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	token, err := auth.GenerateToken(s.jwtSecret, user.UserID, email, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: *user}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	token, err := auth.GenerateToken(s.jwtSecret, user.UserID, user.Email, user.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: *user}, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (*models.UserProfile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	return user, nil
}

// SeedAdmin creates the bootstrap super admin if no profile holds its email.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) error {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user := &models.UserProfile{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleSuperAdmin,
		CompanyIDs:   []string{},
		SiteIDs:      []string{},
	}
	return s.users.Create(ctx, user)
}
