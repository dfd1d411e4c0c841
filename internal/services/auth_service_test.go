package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ayanna-kiyanna/institute-service/internal/config"
	"github.com/ayanna-kiyanna/institute-service/internal/models"
	"github.com/ayanna-kiyanna/institute-service/internal/validator"
)

func setupAuth(t *testing.T) (AuthService, *fakeRepo) {
	t.Helper()

	repo := newFakeRepo()
	jwt := config.JWTConfig{
		Secret:   "test-secret",
		Issuer:   "institute-service",
		TokenTTL: time.Hour,
	}
	return NewAuthService(repo, nil, testLogger(), validator.New(), jwt), repo
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, _ := setupAuth(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{
		FullName: "Kamala Silva",
		Email:    "Kamala@Example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a token")
	}
	if resp.User.Email != "kamala@example.com" {
		t.Errorf("email not normalized: %q", resp.User.Email)
	}
	if resp.User.Role != models.RoleUser {
		t.Errorf("new accounts default to user role, got %q", resp.User.Role)
	}

	login, err := svc.Login(ctx, &LoginRequest{Email: "kamala@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.ID != resp.User.ID {
		t.Error("login resolved a different user")
	}
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, _ := setupAuth(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, &RegisterRequest{
		FullName: "Kamala Silva",
		Email:    "kamala@example.com",
		Password: "secret1",
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "kamala@example.com", "wrongpw"},
		{"unknown email", "ghost@example.com", "secret1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, &LoginRequest{Email: tt.email, Password: tt.password})
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestAuthService_DuplicateEmail(t *testing.T) {
	svc, _ := setupAuth(t)
	ctx := context.Background()

	req := &RegisterRequest{FullName: "Kamala Silva", Email: "kamala@example.com", Password: "secret1"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(ctx, req); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_GetProfile(t *testing.T) {
	svc, repo := setupAuth(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, &RegisterRequest{
		FullName: "Kamala Silva",
		Email:    "kamala@example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	profile, err := svc.GetProfile(ctx, resp.User.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.Role != models.RoleUser {
		t.Errorf("expected user role, got %q", profile.Role)
	}

	// A role change is visible on the next identity check.
	user, _ := repo.User().GetByEmail(ctx, "kamala@example.com")
	user.Role = models.RoleModerator
	if err := repo.User().Update(ctx, user); err != nil {
		t.Fatalf("Update: %v", err)
	}

	profile, err = svc.GetProfile(ctx, resp.User.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if profile.Role != models.RoleModerator {
		t.Errorf("expected moderator role after update, got %q", profile.Role)
	}
}
