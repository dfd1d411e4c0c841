package recoveryflow

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Step is the current position in the recovery dialog. Transitions only move
// forward; the dialog has no back affordance.
type Step int

const (
	StepEmailEntry Step = iota
	StepOtpVerification
	StepPasswordReset
)

const (
	otpLength         = 6
	minPasswordLength = 6
	defaultCloseDelay = 2 * time.Second
)

// Local validation messages. These never involve a network round trip.
const (
	msgEmailRequired    = "Please enter your email address"
	msgCodeIncomplete   = "Please enter the 6-digit code"
	msgPasswordTooShort = "Password must be at least 6 characters"
	msgPasswordMismatch = "Passwords do not match"
)

// Flow owns the full state of one recovery dialog. All methods are safe for
// concurrent use; Submit is single-flight per step.
type Flow struct {
	sender     Sender
	closeDelay time.Duration

	mu              sync.Mutex
	open            bool
	gen             uint64
	step            Step
	email           string
	otp             string
	newPassword     string
	confirmPassword string
	errorMsg        string
	successMsg      string
	loading         bool
	closeTimer      *time.Timer
}

// Option configures a Flow.
type Option func(*Flow)

// WithCloseDelay overrides the pause between the final success message and
// the automatic close. Tests shorten it.
func WithCloseDelay(d time.Duration) Option {
	return func(f *Flow) { f.closeDelay = d }
}

func New(sender Sender, opts ...Option) *Flow {
	f := &Flow{
		sender:     sender,
		closeDelay: defaultCloseDelay,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Open starts a fresh run of the dialog.
func (f *Flow) Open() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
	f.open = true
}

// Close discards the run. Every field returns to its initial value; nothing
// survives into the next Open.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resetLocked()
}

func (f *Flow) resetLocked() {
	if f.closeTimer != nil {
		f.closeTimer.Stop()
		f.closeTimer = nil
	}
	// New generation: any response still in flight belongs to the old run
	// and must not land.
	f.gen++
	f.open = false
	f.step = StepEmailEntry
	f.email = ""
	f.otp = ""
	f.newPassword = ""
	f.confirmPassword = ""
	f.errorMsg = ""
	f.successMsg = ""
	f.loading = false
}

func (f *Flow) IsOpen() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

func (f *Flow) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// Messages returns the single shared message slot. At most one of the two is
// non-empty.
func (f *Flow) Messages() (errorMsg, successMsg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errorMsg, f.successMsg
}

func (f *Flow) Email() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.email
}

func (f *Flow) SetEmail(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.email = email
}

func (f *Flow) OTP() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.otp
}

// SetOTP normalizes on every keystroke: non-digits are dropped and the result
// is truncated to six characters.
func (f *Flow) SetOTP(input string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.otp = normalizeOTP(input)
}

func (f *Flow) SetPasswords(newPassword, confirmPassword string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.newPassword = newPassword
	f.confirmPassword = confirmPassword
}

func normalizeOTP(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if b.Len() == otpLength {
			break
		}
	}
	return b.String()
}

// CanSubmit reports whether the current step's guard passes and no request is
// in flight. Callers use it to disable the submit control.
func (f *Flow) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.open || f.loading {
		return false
	}
	_, ok := f.validateLocked()
	return ok
}

func (f *Flow) validateLocked() (string, bool) {
	switch f.step {
	case StepEmailEntry:
		if strings.TrimSpace(f.email) == "" {
			return msgEmailRequired, false
		}
	case StepOtpVerification:
		if len(f.otp) != otpLength {
			return msgCodeIncomplete, false
		}
	case StepPasswordReset:
		if len(f.newPassword) < minPasswordLength {
			return msgPasswordTooShort, false
		}
		if f.newPassword != f.confirmPassword {
			return msgPasswordMismatch, false
		}
	}
	return "", true
}

// Submit runs the current step's request. While one request is in flight
// further calls are no-ops. A failed guard sets the message slot locally and
// never touches the network. On success the flow advances; after the final
// step it auto-closes once the close delay elapses.
func (f *Flow) Submit(ctx context.Context) {
	f.mu.Lock()
	if !f.open || f.loading {
		f.mu.Unlock()
		return
	}

	// A new attempt always clears the previous outcome first.
	f.errorMsg = ""
	f.successMsg = ""

	if msg, ok := f.validateLocked(); !ok {
		f.errorMsg = msg
		f.mu.Unlock()
		return
	}

	gen := f.gen
	step := f.step
	email, otp, newPassword := f.email, f.otp, f.newPassword
	f.loading = true
	f.mu.Unlock()

	var msg string
	var err error
	switch step {
	case StepEmailEntry:
		msg, err = f.sender.RequestReset(ctx, email)
	case StepOtpVerification:
		msg, err = f.sender.VerifyCode(ctx, email, otp)
	case StepPasswordReset:
		msg, err = f.sender.ResetPassword(ctx, email, otp, newPassword)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// The dialog was closed (and possibly reopened) while the request was
	// in flight; the outcome belongs to a run that no longer exists.
	if f.gen != gen || !f.open || f.step != step {
		return
	}
	f.loading = false

	if err != nil {
		f.errorMsg = userMessage(err)
		return
	}

	f.successMsg = msg
	switch step {
	case StepEmailEntry:
		f.step = StepOtpVerification
	case StepOtpVerification:
		f.step = StepPasswordReset
	case StepPasswordReset:
		f.closeTimer = time.AfterFunc(f.closeDelay, f.Close)
	}
}

// userMessage extracts the text to show for a failed step.
func userMessage(err error) string {
	if se, ok := err.(*ServerError); ok && se.Message != "" {
		return se.Message
	}
	return fallbackMessage
}
