package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Password-reset session errors.
var (
	ErrNoPendingReset  = errors.New("no pending password reset")
	ErrCodeMismatch    = errors.New("verification code does not match")
	ErrTooManyAttempts = errors.New("too many verification attempts")
	ErrNotVerified     = errors.New("verification code not yet verified")
)

// ResetSession is the ephemeral server-side record backing one run of the
// password-recovery flow. It lives only in Redis, scoped by email, and is
// discarded on expiry or consumption.
type ResetSession struct {
	Email    string `json:"email"`
	OTP      string `json:"otp"`
	Attempts int    `json:"attempts"`
	Verified bool   `json:"verified"`
}

// ResetStore persists password-reset sessions with a TTL. The TTL is never
// exposed to clients: an expired session surfaces only as ErrNoPendingReset.
type ResetStore struct {
	helper      *CacheHelper
	ttl         time.Duration
	maxAttempts int
}

func NewResetStore(client *redis.Client, ttl time.Duration, maxAttempts int) *ResetStore {
	return &ResetStore{
		helper:      NewCacheHelper(client, "reset:"),
		ttl:         ttl,
		maxAttempts: maxAttempts,
	}
}

// Issue creates (or replaces) the reset session for an email. Re-requesting a
// code restarts the flow: previous attempts and verification state are lost.
// Unlike a cache, the store is authoritative: without Redis the flow must fail
// here rather than issue a code that can never be verified.
func (s *ResetStore) Issue(ctx context.Context, email, otp string) error {
	if s.helper.client == nil {
		return ErrCacheNotAvailable
	}
	session := ResetSession{
		Email: email,
		OTP:   otp,
	}
	return s.helper.Set(ctx, email, session, s.ttl)
}

// Verify checks the submitted code against the pending session. On match the
// session is marked verified; on mismatch the attempt counter advances and
// the session is destroyed once the limit is reached.
func (s *ResetStore) Verify(ctx context.Context, email, otp string) error {
	var session ResetSession
	if err := s.helper.Get(ctx, email, &session); err != nil {
		if errors.Is(err, ErrCacheNotFound) {
			return ErrNoPendingReset
		}
		return err
	}

	if session.OTP != otp {
		session.Attempts++
		if session.Attempts >= s.maxAttempts {
			_ = s.helper.Delete(ctx, email)
			return ErrTooManyAttempts
		}
		if err := s.resave(ctx, email, session); err != nil {
			return err
		}
		return ErrCodeMismatch
	}

	session.Verified = true
	return s.resave(ctx, email, session)
}

// Consume finishes the flow: the session must exist, be verified, and carry
// the same code. The session is deleted regardless of what happens after, so
// a code is usable at most once.
func (s *ResetStore) Consume(ctx context.Context, email, otp string) error {
	var session ResetSession
	if err := s.helper.Get(ctx, email, &session); err != nil {
		if errors.Is(err, ErrCacheNotFound) {
			return ErrNoPendingReset
		}
		return err
	}

	if session.OTP != otp {
		_ = s.helper.Delete(ctx, email)
		return ErrCodeMismatch
	}
	if !session.Verified {
		return ErrNotVerified
	}

	return s.helper.Delete(ctx, email)
}

// resave writes the session back without extending its original deadline.
func (s *ResetStore) resave(ctx context.Context, email string, session ResetSession) error {
	remaining, err := s.helper.TTL(ctx, email)
	if err != nil || remaining <= 0 {
		remaining = s.ttl
	}
	return s.helper.Set(ctx, email, session, remaining)
}

// HealthCheck verifies connectivity to the backing store.
func (s *ResetStore) HealthCheck(ctx context.Context) error {
	return s.helper.HealthCheck(ctx)
}
