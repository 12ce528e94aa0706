// Package session owns the in-memory authentication state consumed by the
// route guards and the command layer. The controller is constructed once at
// startup and handed by reference to everything that needs it; all state
// transitions are driven by backend call outcomes.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tajerhq/vendorctl/internal/api"
	"github.com/tajerhq/vendorctl/internal/storage"
)

// Sentinel errors
var (
	// ErrRoleRejected is returned when the backend accepts the token but the
	// account is a Customer, which this console does not serve.
	ErrRoleRejected = errors.New("account role is not allowed on this dashboard")

	// ErrLoginIncomplete is returned when the login response was accepted but
	// the follow-up profile check did not end authenticated.
	ErrLoginIncomplete = errors.New("login verification did not complete")

	// ErrNoAccessToken is returned when the login response carries no access
	// token.
	ErrNoAccessToken = errors.New("login response missing access token")
)

// State is a point-in-time snapshot of the session, safe to hand to guards.
type State struct {
	User            *api.User
	IsAuthenticated bool
	IsLoading       bool
}

// Controller sequences the auth operations and holds the session state.
// opMu serializes the controller's own operations (check, login, logout);
// stateMu guards the snapshot fields so State() stays readable while an
// operation is in flight.
type Controller struct {
	client *api.Client
	store  *storage.Store
	log    zerolog.Logger

	opMu sync.Mutex

	stateMu         sync.RWMutex
	user            *api.User
	isAuthenticated bool
	isLoading       bool
}

// New creates a controller in the Unknown state (loading until the first
// CheckAuthStatus resolves).
func New(client *api.Client, store *storage.Store, log zerolog.Logger) *Controller {
	return &Controller{
		client:    client,
		store:     store,
		log:       log,
		isLoading: true,
	}
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()

	return State{
		User:            c.user,
		IsAuthenticated: c.isAuthenticated,
		IsLoading:       c.isLoading,
	}
}

// User returns the current user record, nil when unauthenticated.
func (c *Controller) User() *api.User {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.user
}

// CheckAuthStatus resolves the session against the stored token. With no
// token it settles unauthenticated without a network call. With a token it
// fetches the current user and gates on the role: Customer accounts are
// rejected (tokens cleared, ErrRoleRejected returned). Any backend failure
// clears the tokens and settles unauthenticated without an error — an
// invalid token is an expected outcome, not a fault. Idempotent.
func (c *Controller) CheckAuthStatus(ctx context.Context) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	return c.checkAuthStatusLocked(ctx)
}

// RefreshAuth forces a full state resync; exposed for callers that set
// tokens out of band (OTP verification).
func (c *Controller) RefreshAuth(ctx context.Context) error {
	return c.CheckAuthStatus(ctx)
}

func (c *Controller) checkAuthStatusLocked(ctx context.Context) error {
	c.setLoading(true)
	defer c.setLoading(false)

	if c.store.AccessToken() == "" {
		c.setUnauthenticated()
		return nil
	}

	user, err := c.client.GetUserInfo(ctx)
	if err != nil {
		c.log.Debug().Err(err).Msg("auth check failed, clearing session")
		if clearErr := c.store.ClearTokens(); clearErr != nil {
			c.log.Warn().Err(clearErr).Msg("failed to clear tokens")
		}
		c.setUnauthenticated()
		return nil
	}

	if user.UserRole == api.RoleCustomer {
		if clearErr := c.store.ClearTokens(); clearErr != nil {
			c.log.Warn().Err(clearErr).Msg("failed to clear tokens")
		}
		c.setUnauthenticated()
		return ErrRoleRejected
	}

	c.setAuthenticated(user)

	return nil
}

// Login exchanges credentials for tokens, persists them, and only reports
// success once the follow-up profile fetch and role check have passed.
// Backend errors propagate unmodified. Tokens are persisted only after the
// response is confirmed to carry an access token, so a failed login leaves
// no partial state behind.
func (c *Controller) Login(ctx context.Context, creds api.Credentials, rememberMe bool) (*api.LoginResponse, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.setLoading(true)
	defer c.setLoading(false)

	resp, err := c.client.Login(ctx, creds, rememberMe)
	if err != nil {
		return nil, err
	}

	if resp.AccessToken == "" {
		if resp.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrNoAccessToken, resp.Message)
		}
		return nil, ErrNoAccessToken
	}

	if err := c.store.SetTokens(resp.AccessToken, resp.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to persist tokens: %w", err)
	}

	if rememberMe {
		// Convenience state only; a failure here must not fail the login.
		if err := c.store.SetRememberedIdentifier(creds.Identifier); err != nil {
			c.log.Warn().Err(err).Msg("failed to persist remembered identifier")
		}
	}

	if err := c.checkAuthStatusLocked(ctx); err != nil {
		return nil, err
	}
	if !c.State().IsAuthenticated {
		return nil, ErrLoginIncomplete
	}

	c.log.Info().Int64("userId", resp.UserID).Msg("login complete")

	return resp, nil
}

// Logout ends the session. The server-side call is best effort; local state
// is always cleared. Never fails.
func (c *Controller) Logout(ctx context.Context) {
	c.opMu.Lock()
	defer c.opMu.Unlock()

	c.setLoading(true)
	defer c.setLoading(false)

	if refreshToken := c.store.RefreshToken(); refreshToken != "" {
		if err := c.client.Logout(ctx, refreshToken); err != nil {
			c.log.Warn().Err(err).Msg("server-side logout failed")
		}
	}

	if err := c.store.ClearTokens(); err != nil {
		c.log.Warn().Err(err).Msg("failed to clear tokens")
	}
	if err := c.store.ClearRememberedIdentifier(); err != nil {
		c.log.Warn().Err(err).Msg("failed to clear remembered identifier")
	}

	c.setUnauthenticated()

	c.log.Info().Msg("logged out")
}

// Register submits a vendor registration. Session state is not touched:
// registration does not imply authentication, a verification step comes
// first. Errors propagate to the caller.
func (c *Controller) Register(ctx context.Context, input api.RegisterInput) (*api.RegisterResponse, error) {
	c.setLoading(true)
	defer c.setLoading(false)

	return c.client.RegisterVendor(ctx, input)
}

// UpdateUser shallow-merges edited fields into the in-memory user record
// without a network call; used after a profile edit succeeds elsewhere.
func (c *Controller) UpdateUser(patch api.UserPatch) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()

	if c.user == nil {
		return
	}

	updated := *c.user
	if patch.Username != nil {
		updated.Username = *patch.Username
	}
	if patch.Email != nil {
		updated.Email = *patch.Email
	}
	if patch.PhoneNumber != nil {
		updated.PhoneNumber = *patch.PhoneNumber
	}
	if patch.ImageURL != nil {
		updated.ImageURL = *patch.ImageURL
	}
	if patch.FacilityName != nil {
		updated.FacilityName = *patch.FacilityName
	}
	c.user = &updated
}

func (c *Controller) setLoading(loading bool) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	c.isLoading = loading
}

func (c *Controller) setAuthenticated(user *api.User) {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	c.user = user
	c.isAuthenticated = true
}

func (c *Controller) setUnauthenticated() {
	c.stateMu.Lock()
	defer c.stateMu.Unlock()
	c.user = nil
	c.isAuthenticated = false
}
