package sessionguard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrIdentityCheckFailed covers every way the identity round trip can fail:
// transport error, non-200 status, malformed body. Callers must not branch on
// the cause; all of them mean "not authenticated".
var ErrIdentityCheckFailed = errors.New("identity check failed")

// Identity is the profile the identity endpoint resolves for a valid token.
type Identity struct {
	ID            string `json:"id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Role          Role   `json:"role"`
	EmailVerified bool   `json:"email_verified"`
}

// IdentityResolver confirms a bearer token against the identity endpoint.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
}

// HTTPIdentityClient resolves identities over HTTP.
type HTTPIdentityClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPIdentityClient(baseURL string, httpClient *http.Client) *HTTPIdentityClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPIdentityClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Resolve performs the single authenticated round trip. Any failure collapses
// into ErrIdentityCheckFailed; the wrapped cause stays available for logging.
func (c *HTTPIdentityClient) Resolve(ctx context.Context, token string) (*Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/auth/me", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentityCheckFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentityCheckFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrIdentityCheckFailed, resp.StatusCode)
	}

	var payload struct {
		ID            string `json:"id"`
		FullName      string `json:"full_name"`
		Email         string `json:"email"`
		Role          string `json:"role"`
		EmailVerified bool   `json:"email_verified"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIdentityCheckFailed, err)
	}
	if payload.Role == "" {
		return nil, fmt.Errorf("%w: missing role", ErrIdentityCheckFailed)
	}

	return &Identity{
		ID:            payload.ID,
		FullName:      payload.FullName,
		Email:         payload.Email,
		Role:          ParseRole(payload.Role),
		EmailVerified: payload.EmailVerified,
	}, nil
}
