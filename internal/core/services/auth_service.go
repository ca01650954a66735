package services

import (
	"context"
	"log"
	"strings"

	"smarthealth/internal/adapters/persistence/models"
	"smarthealth/internal/adapters/persistence/repositories"
	"smarthealth/internal/config"
	"smarthealth/internal/core/domain"
	"smarthealth/internal/pkg/jwt"
	"smarthealth/internal/pkg/password"
)

// Staff roles
const (
	RoleAdmin        = "admin"
	RoleReceptionist = "receptionist"
	RoleDoctor       = "doctor"
)

var validRoles = map[string]bool{
	RoleAdmin:        true,
	RoleReceptionist: true,
	RoleDoctor:       true,
}

// AuthService handles staff authentication
type AuthService struct {
	userRepo repositories.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// LoginInput represents login input
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput represents staff registration input (admin only)
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User        *models.UserResponse `json:"user"`
	AccessToken string               `json:"access_token"`
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResponse, error) {
	if input == nil || input.Username == "" || input.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	if !password.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := jwt.GenerateAccessToken(user.ID, user.Username, user.Role, s.cfg.JWT.Secret, s.cfg.JWT.ExpiryHours)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Login: %s (role=%s)", user.Username, user.Role)

	return &AuthResponse{
		User:        user.ToResponse(),
		AccessToken: accessToken,
	}, nil
}

// Register creates a new staff account
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.UserResponse, error) {
	// 1. Validate input
	if input == nil || strings.TrimSpace(input.Username) == "" || strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validRoles[input.Role] {
		return nil, domain.ErrInvalidInput
	}
	if !password.ValidatePassword(input.Password) {
		return nil, domain.ErrInvalidInput
	}

	// 2. Check username is free
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrUserAlreadyExists
	}

	// 3. Hash password
	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	// 4. Create user
	user := &models.User{
		Username: strings.TrimSpace(input.Username),
		Password: hashedPassword,
		Name:     strings.TrimSpace(input.Name),
		Role:     input.Role,
		IsActive: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Staff registered: %s (role=%s)", user.Username, user.Role)
	return user.ToResponse(), nil
}

// GetProfile returns the account for a username from a validated token
func (s *AuthService) GetProfile(ctx context.Context, username string) (*models.UserResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user.ToResponse(), nil
}
