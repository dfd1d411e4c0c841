package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ayanna-kiyanna/institute-service/internal/cache"
	"github.com/ayanna-kiyanna/institute-service/internal/config"
	"github.com/ayanna-kiyanna/institute-service/internal/events"
	"github.com/ayanna-kiyanna/institute-service/internal/validator"
)

func newTestManager(repo *fakeRepo) ServiceManager {
	return NewServiceManager(
		nil,
		repo,
		cache.NewResetStore(nil, 5*time.Minute, 3),
		events.NewMockEventPublisher(testLogger()),
		testLogger(),
		validator.New(),
		config.JWTConfig{Secret: "test-secret", Issuer: "institute-service", TokenTTL: time.Hour},
	)
}

func TestServiceManagerInitializePingsRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("healthy repository", func(t *testing.T) {
		manager := newTestManager(newFakeRepo())
		if err := manager.Initialize(ctx); err != nil {
			t.Fatalf("initialize: %v", err)
		}
		if manager.Auth() == nil || manager.Recovery() == nil {
			t.Fatal("services must be wired after initialization")
		}
	})

	t.Run("unreachable repository", func(t *testing.T) {
		repo := newFakeRepo()
		repo.pingErr = errors.New("connection refused")

		manager := newTestManager(repo)
		if err := manager.Initialize(ctx); err == nil {
			t.Fatal("expected initialization to fail when the repository is unreachable")
		}
	})
}

func TestServiceManagerShutdownClosesRepository(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()

	manager := newTestManager(repo)
	if err := manager.Initialize(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if err := manager.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}

	if !repo.closed {
		t.Error("shutdown must close the repository connections")
	}
}
