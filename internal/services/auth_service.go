package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"sojourn/internal/models/db_models"
	"sojourn/internal/models/request_models"
	"sojourn/internal/models/response_models"
	"sojourn/internal/repositories"
	"sojourn/pkg/utils"
)

const resetTokenTTL = time.Hour

type AuthServiceInterface interface {
	SignUp(ctx context.Context, req request_models.SignUpRequest) (*response_models.TokenPairResponse, error)
	Login(ctx context.Context, req request_models.LoginRequest) (*response_models.TokenPairResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*response_models.TokenPairResponse, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
	CurrentUser(ctx context.Context, userID uuid.UUID) (*response_models.UserResponse, error)
}

type AuthService struct {
	userRepo repositories.UserRepository
	mail     MailServiceInterface
	logger   zerolog.Logger
}

func NewAuthService(userRepo repositories.UserRepository, mail MailServiceInterface, logger zerolog.Logger) AuthServiceInterface {
	return &AuthService{userRepo: userRepo, mail: mail, logger: logger}
}

func (a *AuthService) SignUp(ctx context.Context, req request_models.SignUpRequest) (*response_models.TokenPairResponse, error) {
	if len(req.Password) < 8 {
		return nil, utils.ErrWeakPassword
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := a.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	existing, err = a.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrUsernameAlreadyExists
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &db_models.User{
		Email:        email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		AuthProvider: "local",
		IsActive:     true,
	}
	if err := a.userRepo.Insert(ctx, user); err != nil {
		return nil, utils.ErrDatabaseError
	}

	a.logger.Info().Str("user_id", user.ID.String()).Msg("user registered")
	return issueTokenPair(user)
}

// Login resolves the login field as an email first, then as a username. Both
// misses and password mismatches return the same error.
func (a *AuthService) Login(ctx context.Context, req request_models.LoginRequest) (*response_models.TokenPairResponse, error) {
	user, err := a.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Login)))
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		user, err = a.userRepo.FindByUsername(ctx, req.Login)
		if err != nil {
			return nil, utils.ErrDatabaseError
		}
	}
	if user == nil || !user.IsActive {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, req.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	return issueTokenPair(user)
}

func (a *AuthService) Refresh(ctx context.Context, refreshToken string) (*response_models.TokenPairResponse, error) {
	userIDStr, err := utils.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, utils.ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, utils.ErrInvalidToken
	}

	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil || !user.IsActive {
		return nil, utils.ErrInvalidToken
	}

	return issueTokenPair(user)
}

// RequestPasswordReset never reveals whether the email exists; unknown
// addresses succeed silently.
func (a *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := a.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return utils.ErrDatabaseError
	}
	if user == nil {
		return nil
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return err
	}

	row := &db_models.PasswordResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := a.userRepo.InsertResetToken(ctx, row); err != nil {
		return utils.ErrDatabaseError
	}

	if err := a.mail.SendPasswordReset(user.Email, token); err != nil {
		a.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("password reset mail failed")
	}
	return nil
}

func (a *AuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < 8 {
		return utils.ErrWeakPassword
	}

	row, err := a.userRepo.FindResetToken(ctx, token)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if row == nil || time.Now().After(row.ExpiresAt) {
		return utils.ErrInvalidToken
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := a.userRepo.UpdatePasswordHash(ctx, row.UserID, hash); err != nil {
		return utils.ErrDatabaseError
	}

	// Single use. A failed delete leaves a live token, so it fails the call.
	if err := a.userRepo.DeleteResetToken(ctx, token); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

func (a *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*response_models.UserResponse, error) {
	user, err := a.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrUserNotFound
	}
	resp := userToResponse(user)
	return &resp, nil
}

func issueTokenPair(user *db_models.User) (*response_models.TokenPairResponse, error) {
	access, err := utils.CreateAccessToken(user.ID)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.CreateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	return &response_models.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		User:         userToResponse(user),
	}, nil
}

func userToResponse(user *db_models.User) response_models.UserResponse {
	return response_models.UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: unixToTime(user.CreatedAt),
		IsActive:  user.IsActive,
	}
}
