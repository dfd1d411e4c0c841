package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayanna-kiyanna/institute-service/internal/auth"
	"github.com/ayanna-kiyanna/institute-service/internal/config"
	"github.com/ayanna-kiyanna/institute-service/internal/models"
	"github.com/ayanna-kiyanna/institute-service/internal/repositories"
	"github.com/ayanna-kiyanna/institute-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	jwt       config.JWTConfig
}

func NewAuthService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, jwt config.JWTConfig) AuthService {
	return &authService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
		jwt:       jwt,
	}
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*models.LoginResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, fmt.Errorf("validation failed: %w", errs)
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	user, err := s.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := auth.NewAccessToken(s.jwt.Secret, s.jwt.Issuer, s.jwt.TokenTTL, user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "role", user.Role)

	return &models.LoginResponse{
		Token: token,
		User:  profileOf(user),
	}, nil
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*models.LoginResponse, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return nil, fmt.Errorf("validation failed: %w", errs)
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	exists, err := s.repo.User().ExistsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		Role:         models.RoleUser,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := auth.NewAccessToken(s.jwt.Secret, s.jwt.Issuer, s.jwt.TokenTTL, user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID)

	return &models.LoginResponse{
		Token: token,
		User:  profileOf(user),
	}, nil
}

// GetProfile resolves the identity behind a user ID. Every call re-reads the
// user record so a role change takes effect on the next identity check.
func (s *authService) GetProfile(ctx context.Context, userID string) (*models.ProfileResponse, error) {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve identity: %w", err)
	}
	profile := profileOf(user)
	return &profile, nil
}

func profileOf(user *models.User) models.ProfileResponse {
	return models.ProfileResponse{
		ID:            user.ID,
		FullName:      user.FullName,
		Email:         user.Email,
		Role:          models.ParseRole(string(user.Role)),
		AvatarURL:     user.AvatarURL,
		EmailVerified: user.EmailVerified,
	}
}
