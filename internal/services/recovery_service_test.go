package services

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/ayanna-kiyanna/institute-service/internal/auth"
	"github.com/ayanna-kiyanna/institute-service/internal/cache"
	"github.com/ayanna-kiyanna/institute-service/internal/models"
	"github.com/ayanna-kiyanna/institute-service/internal/validator"
)

var otpInMessage = regexp.MustCompile(`[0-9]{6}`)

func setupRecovery(t *testing.T, maxAttempts int) (RecoveryService, *fakeRepo, *recordingNotifier, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := cache.NewResetStore(client, 5*time.Minute, maxAttempts)

	repo := newFakeRepo()
	notifier := &recordingNotifier{}
	svc := NewRecoveryService(repo, store, notifier, testLogger(), validator.New())

	return svc, repo, notifier, mr
}

func seedUser(t *testing.T, repo *fakeRepo, email, password string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		ID:           "user-1",
		FullName:     "Nimal Perera",
		Email:        email,
		Role:         models.RoleStudent,
		PasswordHash: hash,
	}
	if err := repo.User().Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

// lastIssuedOTP pulls the code out of the recorded reset-code notification.
func lastIssuedOTP(t *testing.T, notifier *recordingNotifier) string {
	t.Helper()

	sent := notifier.sent()
	if len(sent) == 0 {
		t.Fatal("no notifications recorded")
	}
	otp := otpInMessage.FindString(sent[len(sent)-1].Message)
	if otp == "" {
		t.Fatalf("no code in notification message %q", sent[len(sent)-1].Message)
	}
	return otp
}

func TestRecoveryService_FullFlow(t *testing.T) {
	svc, repo, notifier, _ := setupRecovery(t, 5)
	seedUser(t, repo, "nimal@example.com", "oldpass")
	ctx := context.Background()

	msg, err := svc.RequestReset(ctx, &ForgotPasswordRequest{Email: "nimal@example.com"})
	if err != nil {
		t.Fatalf("RequestReset: %v", err)
	}
	if msg != "OTP sent to your email" {
		t.Errorf("unexpected message %q", msg)
	}

	sent := notifier.sent()
	if len(sent) != 1 || sent[0].Type != models.NotificationPasswordResetOTP {
		t.Fatalf("expected one reset-code notification, got %+v", sent)
	}
	otp := lastIssuedOTP(t, notifier)

	msg, err = svc.VerifyCode(ctx, &VerifyOTPRequest{Email: "nimal@example.com", OTP: otp})
	if err != nil {
		t.Fatalf("VerifyCode: %v", err)
	}
	if msg != "OTP verified successfully" {
		t.Errorf("unexpected message %q", msg)
	}

	msg, err = svc.ResetPassword(ctx, &ResetPasswordRequest{
		Email:       "nimal@example.com",
		OTP:         otp,
		NewPassword: "newpass1",
	})
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if msg != "Password reset successfully" {
		t.Errorf("unexpected message %q", msg)
	}

	user, err := repo.User().GetByEmail(ctx, "nimal@example.com")
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if err := auth.CheckPassword(user.PasswordHash, "newpass1"); err != nil {
		t.Error("new password does not verify")
	}
	if err := auth.CheckPassword(user.PasswordHash, "oldpass"); err == nil {
		t.Error("old password still verifies")
	}

	// The session is consumed: the same code cannot be replayed.
	if _, err := svc.ResetPassword(ctx, &ResetPasswordRequest{
		Email:       "nimal@example.com",
		OTP:         otp,
		NewPassword: "another1",
	}); err == nil {
		t.Error("expected replay to fail")
	}
}

func TestRecoveryService_UnknownEmail(t *testing.T) {
	svc, _, _, _ := setupRecovery(t, 5)

	_, err := svc.RequestReset(context.Background(), &ForgotPasswordRequest{Email: "ghost@example.com"})
	if err == nil {
		t.Fatal("expected error for unknown email")
	}
	if !IsRecoveryError(err) {
		t.Fatalf("expected recovery error, got %T", err)
	}
	if err.Error() != "no account found with this email" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestRecoveryService_StepOrder(t *testing.T) {
	svc, repo, notifier, _ := setupRecovery(t, 5)
	seedUser(t, repo, "nimal@example.com", "oldpass")
	ctx := context.Background()

	t.Run("verify without pending session", func(t *testing.T) {
		_, err := svc.VerifyCode(ctx, &VerifyOTPRequest{Email: "nimal@example.com", OTP: "123456"})
		if err == nil || err.Error() != "No pending password reset. Please request a new code." {
			t.Errorf("unexpected error %v", err)
		}
	})

	t.Run("reset without verify", func(t *testing.T) {
		if _, err := svc.RequestReset(ctx, &ForgotPasswordRequest{Email: "nimal@example.com"}); err != nil {
			t.Fatalf("RequestReset: %v", err)
		}
		otp := lastIssuedOTP(t, notifier)

		_, err := svc.ResetPassword(ctx, &ResetPasswordRequest{
			Email:       "nimal@example.com",
			OTP:         otp,
			NewPassword: "newpass1",
		})
		if err == nil || err.Error() != "Invalid verification code" {
			t.Errorf("unexpected error %v", err)
		}
	})
}

func TestRecoveryService_AttemptLimit(t *testing.T) {
	svc, repo, notifier, _ := setupRecovery(t, 3)
	seedUser(t, repo, "nimal@example.com", "oldpass")
	ctx := context.Background()

	if _, err := svc.RequestReset(ctx, &ForgotPasswordRequest{Email: "nimal@example.com"}); err != nil {
		t.Fatalf("RequestReset: %v", err)
	}
	otp := lastIssuedOTP(t, notifier)
	wrong := "000000"
	if wrong == otp {
		wrong = "000001"
	}

	for i := 0; i < 2; i++ {
		_, err := svc.VerifyCode(ctx, &VerifyOTPRequest{Email: "nimal@example.com", OTP: wrong})
		if err == nil || err.Error() != "Invalid verification code" {
			t.Fatalf("attempt %d: unexpected error %v", i+1, err)
		}
	}

	_, err := svc.VerifyCode(ctx, &VerifyOTPRequest{Email: "nimal@example.com", OTP: wrong})
	if err == nil || err.Error() != "Too many incorrect attempts. Please request a new code." {
		t.Fatalf("unexpected error %v", err)
	}

	// The session is destroyed; even the right code is refused now.
	_, err = svc.VerifyCode(ctx, &VerifyOTPRequest{Email: "nimal@example.com", OTP: otp})
	if err == nil || err.Error() != "No pending password reset. Please request a new code." {
		t.Errorf("unexpected error %v", err)
	}
}

func TestRecoveryService_SessionExpiry(t *testing.T) {
	svc, repo, notifier, mr := setupRecovery(t, 5)
	seedUser(t, repo, "nimal@example.com", "oldpass")
	ctx := context.Background()

	if _, err := svc.RequestReset(ctx, &ForgotPasswordRequest{Email: "nimal@example.com"}); err != nil {
		t.Fatalf("RequestReset: %v", err)
	}
	otp := lastIssuedOTP(t, notifier)

	mr.FastForward(6 * time.Minute)

	_, err := svc.VerifyCode(ctx, &VerifyOTPRequest{Email: "nimal@example.com", OTP: otp})
	if err == nil || err.Error() != "No pending password reset. Please request a new code." {
		t.Errorf("unexpected error %v", err)
	}
}

func TestRecoveryService_InvalidInput(t *testing.T) {
	svc, repo, _, _ := setupRecovery(t, 5)
	seedUser(t, repo, "nimal@example.com", "oldpass")
	ctx := context.Background()

	tests := []struct {
		name string
		run  func() error
	}{
		{"malformed email", func() error {
			_, err := svc.RequestReset(ctx, &ForgotPasswordRequest{Email: "not-an-email"})
			return err
		}},
		{"short otp", func() error {
			_, err := svc.VerifyCode(ctx, &VerifyOTPRequest{Email: "nimal@example.com", OTP: "123"})
			return err
		}},
		{"non-digit otp", func() error {
			_, err := svc.VerifyCode(ctx, &VerifyOTPRequest{Email: "nimal@example.com", OTP: "12a456"})
			return err
		}},
		{"short password", func() error {
			_, err := svc.ResetPassword(ctx, &ResetPasswordRequest{
				Email:       "nimal@example.com",
				OTP:         "123456",
				NewPassword: "abc12",
			})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !IsRecoveryError(err) {
				t.Errorf("expected recovery error, got %T", err)
			}
		})
	}
}
