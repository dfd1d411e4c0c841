package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"

	"github.com/ayanna-kiyanna/institute-service/internal/cache"
	"github.com/ayanna-kiyanna/institute-service/internal/models"
	"github.com/ayanna-kiyanna/institute-service/internal/repositories"
	"github.com/ayanna-kiyanna/institute-service/internal/validator"

	internalauth "github.com/ayanna-kiyanna/institute-service/internal/auth"
)

// User-facing step messages. These strings travel to the client verbatim.
const (
	msgCodeSent      = "OTP sent to your email"
	msgCodeVerified  = "OTP verified successfully"
	msgPasswordReset = "Password reset successfully"

	msgNoPendingReset  = "No pending password reset. Please request a new code."
	msgCodeMismatch    = "Invalid verification code"
	msgTooManyAttempts = "Too many incorrect attempts. Please request a new code."
)

type recoveryService struct {
	repo      repositories.Repository
	store     *cache.ResetStore
	notifier  NotificationEventService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewRecoveryService(repo repositories.Repository, store *cache.ResetStore, notifier NotificationEventService, logger *slog.Logger, validator *validator.Validator) RecoveryService {
	return &recoveryService{
		repo:      repo,
		store:     store,
		notifier:  notifier,
		logger:    logger,
		validator: validator,
	}
}

// RequestReset starts the flow: issue a 6-digit code, store the session, and
// hand the code to the notification pipeline for mail dispatch.
func (s *recoveryService) RequestReset(ctx context.Context, req *ForgotPasswordRequest) (string, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return "", recoveryErr(errs.Error(), errs)
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if _, err := s.repo.User().GetByEmail(ctx, email); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", recoveryErr(ErrUserNotFound.Error(), ErrUserNotFound)
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	otp, err := generateOTP()
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	if err := s.store.Issue(ctx, email, otp); err != nil {
		return "", fmt.Errorf("failed to store reset session: %w", err)
	}

	if err := s.notifier.SendNotification(ctx, &NotificationRequest{
		Type:     models.NotificationPasswordResetOTP,
		Title:    "Password Reset Code",
		Message:  fmt.Sprintf("Your password reset code is %s. It expires shortly.", otp),
		Priority: models.PriorityHigh,
		Email:    email,
	}); err != nil {
		// The session exists even if dispatch failed; the user can retry.
		s.logger.Error("failed to publish reset code notification", "error", err)
		return "", fmt.Errorf("failed to send code: %w", err)
	}

	s.logger.Info("password reset code issued", "email", email)
	return msgCodeSent, nil
}

// VerifyCode checks the submitted code against the pending session.
func (s *recoveryService) VerifyCode(ctx context.Context, req *VerifyOTPRequest) (string, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return "", recoveryErr(errs.Error(), errs)
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if err := s.store.Verify(ctx, email, req.OTP); err != nil {
		return "", s.stepError(err)
	}

	s.logger.Info("password reset code verified", "email", email)
	return msgCodeVerified, nil
}

// ResetPassword finishes the flow: the session must have been verified with
// the same code, the new password must pass policy, and the session is
// consumed so the code cannot be replayed.
func (s *recoveryService) ResetPassword(ctx context.Context, req *ResetPasswordRequest) (string, error) {
	if errs := s.validator.Validate(req); errs.HasErrors() {
		return "", recoveryErr(errs.Error(), errs)
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	user, err := s.repo.User().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", recoveryErr(ErrUserNotFound.Error(), ErrUserNotFound)
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.store.Consume(ctx, email, req.OTP); err != nil {
		return "", s.stepError(err)
	}

	hash, err := internalauth.HashPassword(req.NewPassword)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.repo.User().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return "", fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.notifier.SendNotification(ctx, &NotificationRequest{
		Type:     models.NotificationPasswordChanged,
		Title:    "Password Changed",
		Message:  "Your account password was just reset. If this wasn't you, contact the institute.",
		Priority: models.PriorityHigh,
		Email:    email,
	}); err != nil {
		// Password is already changed; dispatch failure must not fail the step.
		s.logger.Error("failed to publish password changed notification", "error", err)
	}

	s.logger.Info("password reset completed", "user_id", user.ID)
	return msgPasswordReset, nil
}

// stepError maps store errors to the verbatim user-facing messages.
func (s *recoveryService) stepError(err error) error {
	switch {
	case errors.Is(err, cache.ErrNoPendingReset):
		return recoveryErr(msgNoPendingReset, err)
	case errors.Is(err, cache.ErrCodeMismatch), errors.Is(err, cache.ErrNotVerified):
		return recoveryErr(msgCodeMismatch, err)
	case errors.Is(err, cache.ErrTooManyAttempts):
		return recoveryErr(msgTooManyAttempts, err)
	default:
		return fmt.Errorf("reset session error: %w", err)
	}
}

// generateOTP returns a uniformly random 6-digit code, zero-padded.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
