// Package recoveryflow drives the three-step guided password-recovery dialog:
// request a code by email, verify the code, set a new password. Steps move
// strictly forward, every close discards all state, and the server's own
// messages are surfaced to the user unchanged.
package recoveryflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// fallbackMessage stands in when the transport fails or the server reply
// carries no usable message.
const fallbackMessage = "Something went wrong. Please try again."

// ServerError carries the human-readable message from a rejected step.
type ServerError struct {
	Message string
}

func (e *ServerError) Error() string { return e.Message }

// Sender performs the three recovery requests. Each call returns the server's
// confirmation message on success.
type Sender interface {
	RequestReset(ctx context.Context, email string) (string, error)
	VerifyCode(ctx context.Context, email, otp string) (string, error)
	ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error)
}

// HTTPSender talks to the institute's forgot-password endpoints.
type HTTPSender struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPSender(baseURL string, httpClient *http.Client) *HTTPSender {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPSender{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (s *HTTPSender) RequestReset(ctx context.Context, email string) (string, error) {
	return s.post(ctx, "/api/v1/auth/forgot-password", map[string]string{
		"email": email,
	})
}

func (s *HTTPSender) VerifyCode(ctx context.Context, email, otp string) (string, error) {
	return s.post(ctx, "/api/v1/auth/verify-otp", map[string]string{
		"email": email,
		"otp":   otp,
	})
}

func (s *HTTPSender) ResetPassword(ctx context.Context, email, otp, newPassword string) (string, error) {
	return s.post(ctx, "/api/v1/auth/reset-password", map[string]string{
		"email":       email,
		"otp":         otp,
		"newPassword": newPassword,
	})
}

// post sends one step request. A rejected step surfaces the server's message
// as a ServerError; transport failures collapse into the generic fallback.
func (s *HTTPSender) post(ctx context.Context, path string, payload map[string]string) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", &ServerError{Message: fallbackMessage}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &ServerError{Message: fallbackMessage}
	}
	defer resp.Body.Close()

	var reply struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return "", &ServerError{Message: fallbackMessage}
	}

	if resp.StatusCode != http.StatusOK {
		msg := reply.Message
		if msg == "" {
			msg = fallbackMessage
		}
		return "", &ServerError{Message: msg}
	}

	return reply.Message, nil
}
