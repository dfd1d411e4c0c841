package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*ResetStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewResetStore(client, 5*time.Minute, 3), mr
}

func TestResetStoreHappyPath(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Issue(ctx, "user@example.com", "654321"); err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := store.Verify(ctx, "user@example.com", "654321"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := store.Consume(ctx, "user@example.com", "654321"); err != nil {
		t.Fatalf("consume: %v", err)
	}

	// Session is gone after consumption.
	if err := store.Consume(ctx, "user@example.com", "654321"); !errors.Is(err, ErrNoPendingReset) {
		t.Fatalf("expected ErrNoPendingReset, got %v", err)
	}
}

func TestResetStoreStepOrder(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	t.Run("verify without issue", func(t *testing.T) {
		if err := store.Verify(ctx, "nobody@example.com", "123456"); !errors.Is(err, ErrNoPendingReset) {
			t.Fatalf("expected ErrNoPendingReset, got %v", err)
		}
	})

	t.Run("consume without verify", func(t *testing.T) {
		if err := store.Issue(ctx, "user@example.com", "111111"); err != nil {
			t.Fatalf("issue: %v", err)
		}
		if err := store.Consume(ctx, "user@example.com", "111111"); !errors.Is(err, ErrNotVerified) {
			t.Fatalf("expected ErrNotVerified, got %v", err)
		}
	})
}

func TestResetStoreAttemptLimit(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Issue(ctx, "user@example.com", "654321"); err != nil {
		t.Fatalf("issue: %v", err)
	}

	if err := store.Verify(ctx, "user@example.com", "000000"); !errors.Is(err, ErrCodeMismatch) {
		t.Fatalf("expected ErrCodeMismatch, got %v", err)
	}
	if err := store.Verify(ctx, "user@example.com", "000001"); !errors.Is(err, ErrCodeMismatch) {
		t.Fatalf("expected ErrCodeMismatch, got %v", err)
	}
	if err := store.Verify(ctx, "user@example.com", "000002"); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}

	// Session was destroyed at the limit; even the right code is refused now.
	if err := store.Verify(ctx, "user@example.com", "654321"); !errors.Is(err, ErrNoPendingReset) {
		t.Fatalf("expected ErrNoPendingReset, got %v", err)
	}
}

func TestResetStoreExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Issue(ctx, "user@example.com", "654321"); err != nil {
		t.Fatalf("issue: %v", err)
	}

	mr.FastForward(6 * time.Minute)

	if err := store.Verify(ctx, "user@example.com", "654321"); !errors.Is(err, ErrNoPendingReset) {
		t.Fatalf("expected ErrNoPendingReset after expiry, got %v", err)
	}
}

func TestResetStoreWithoutRedisFailsLoudly(t *testing.T) {
	store := NewResetStore(nil, 5*time.Minute, 3)
	ctx := context.Background()

	// The store is authoritative, not a cache: with no backing client it
	// must refuse to issue a code instead of pretending it was stored.
	if err := store.Issue(ctx, "user@example.com", "654321"); !errors.Is(err, ErrCacheNotAvailable) {
		t.Fatalf("expected ErrCacheNotAvailable, got %v", err)
	}
	if err := store.Verify(ctx, "user@example.com", "654321"); !errors.Is(err, ErrCacheNotAvailable) {
		t.Fatalf("expected ErrCacheNotAvailable, got %v", err)
	}
}

func TestResetStoreReissueRestartsFlow(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Issue(ctx, "user@example.com", "111111"); err != nil {
		t.Fatalf("issue: %v", err)
	}
	if err := store.Verify(ctx, "user@example.com", "111111"); err != nil {
		t.Fatalf("verify: %v", err)
	}

	// A new code invalidates the old one and clears the verified flag.
	if err := store.Issue(ctx, "user@example.com", "222222"); err != nil {
		t.Fatalf("reissue: %v", err)
	}
	if err := store.Consume(ctx, "user@example.com", "111111"); err == nil {
		t.Fatal("expected old code to be rejected")
	}
}
