package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tajerhq/vendorctl/internal/storage"
)

// defaultLanguage is sent as Accept-Language when no preference is stored.
const defaultLanguage = "ar"

var _ http.RoundTripper = (*authTransport)(nil)

// authTransport decorates every outbound request with the stored bearer token
// and the language preference, and recovers a 401 with exactly one token
// refresh followed by a replay of the original request.
//
// The retry marker is a local of RoundTrip, so concurrent requests failing
// with 401 each get their own one-shot refresh with no cross-request
// coordination. The replay goes straight to the inner transport, which makes
// a second refresh structurally impossible.
type authTransport struct {
	next          http.RoundTripper
	store         *storage.Store
	baseURL       string
	onAuthExpired func()
	log           zerolog.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	t.decorate(out)

	resp, err := t.next.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	// Login and register responses carry their own 401 semantics (bad
	// credentials, not an expired session).
	if resp.StatusCode != http.StatusUnauthorized || isAuthFlowPath(req.URL.Path) {
		return resp, nil
	}

	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	resp.Body.Close()

	accessToken, err := t.refresh(req.Context())
	if err != nil {
		if clearErr := t.store.ClearTokens(); clearErr != nil {
			t.log.Warn().Err(clearErr).Msg("failed to clear tokens after refresh failure")
		}
		if t.onAuthExpired != nil {
			t.onAuthExpired()
		}
		return nil, fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}

	retry, err := cloneWithBody(req)
	if err != nil {
		return nil, err
	}
	t.decorate(retry)
	retry.Header.Set("Authorization", "Bearer "+accessToken)

	t.log.Debug().Str("path", req.URL.Path).Msg("replaying request after token refresh")

	// A second 401 here passes through to the caller unmodified.
	return t.next.RoundTrip(retry)
}

// decorate attaches the auth and language headers. The token is read fresh
// from the store on every call, never cached on the transport.
func (t *authTransport) decorate(req *http.Request) {
	if token := t.store.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	language := t.store.Language()
	if language == "" {
		language = defaultLanguage
	}
	req.Header.Set("Accept-Language", language)

	if req.Header.Get("X-Request-Id") == "" {
		req.Header.Set("X-Request-Id", uuid.NewString())
	}
}

// refresh exchanges the stored refresh token for a new pair and persists it.
// Returns the new access token.
func (t *authTransport) refresh(ctx context.Context) (string, error) {
	refreshToken := t.store.RefreshToken()
	if refreshToken == "" {
		return "", errors.New("no refresh token stored")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+refreshTokenPath(refreshToken), nil)
	if err != nil {
		return "", fmt.Errorf("failed to build refresh request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return "", fmt.Errorf("refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return "", fmt.Errorf("refresh rejected with status %d", resp.StatusCode)
	}

	var pair struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&pair); err != nil {
		return "", fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		return "", errors.New("refresh response missing tokens")
	}

	if err := t.store.SetTokens(pair.AccessToken, pair.RefreshToken); err != nil {
		return "", fmt.Errorf("failed to persist refreshed tokens: %w", err)
	}

	t.log.Debug().Msg("access token refreshed")

	return pair.AccessToken, nil
}

// isAuthFlowPath reports whether the request belongs to the login/register
// flow, which never triggers a refresh.
func isAuthFlowPath(path string) bool {
	return strings.HasSuffix(path, loginPath) || strings.HasSuffix(path, registerVendorPath)
}

// cloneWithBody clones a request with a rewound body for replay.
func cloneWithBody(req *http.Request) (*http.Request, error) {
	clone := req.Clone(req.Context())
	if req.GetBody == nil {
		return clone, nil
	}

	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("failed to rewind request body: %w", err)
	}
	clone.Body = body

	return clone, nil
}
