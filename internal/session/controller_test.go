package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tajerhq/vendorctl/internal/api"
	"github.com/tajerhq/vendorctl/internal/storage"
)

// backend is a stub of the auth endpoints with per-path call counters.
type backend struct {
	mux *http.ServeMux

	loginCalls    atomic.Int32
	userInfoCalls atomic.Int32
	logoutCalls   atomic.Int32
	totalCalls    atomic.Int32
}

func newBackend(t *testing.T, role api.Role, logoutStatus int) *backend {
	t.Helper()

	b := &backend{mux: http.NewServeMux()}

	b.mux.HandleFunc("/Auth/login", func(w http.ResponseWriter, r *http.Request) {
		b.loginCalls.Add(1)

		var body struct {
			Identifier string `json:"Identifer"`
			Password   string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body.Identifier != "vendor1" || body.Password != "secret123" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"}) //nolint:errcheck
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"accessToken": "abc", "refreshToken": "xyz", "userId": 7,
		})
	})

	b.mux.HandleFunc("/Auth/GetUserInfo", func(w http.ResponseWriter, r *http.Request) {
		b.userInfoCalls.Add(1)

		if r.Header.Get("Authorization") != "Bearer abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"user": map[string]any{"userId": 7, "userRole": role, "username": "vendor1"},
		})
	})

	b.mux.HandleFunc("/Auth/logout/", func(w http.ResponseWriter, r *http.Request) {
		b.logoutCalls.Add(1)
		w.WriteHeader(logoutStatus)
	})

	return b
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.totalCalls.Add(1)
	if strings.HasPrefix(r.URL.Path, "/Auth/refresh-token/") {
		// Sessions in these tests never hold a refreshable pair.
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	b.mux.ServeHTTP(w, r)
}

func newController(t *testing.T, b *backend) (*Controller, *storage.Store) {
	t.Helper()

	server := httptest.NewServer(b)
	t.Cleanup(server.Close)

	store, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)

	client, err := api.New(api.Config{BaseURL: server.URL, Logger: zerolog.Nop()}, store)
	require.NoError(t, err)

	return New(client, store, zerolog.Nop()), store
}

func TestNew_StartsUnknown(t *testing.T) {
	c, _ := newController(t, newBackend(t, api.RoleVendor, http.StatusOK))

	st := c.State()
	assert.True(t, st.IsLoading, "session is Unknown until the first check resolves")
	assert.False(t, st.IsAuthenticated)
	assert.Nil(t, st.User)
}

func TestController_CheckAuthStatus(t *testing.T) {
	t.Run("no token settles unauthenticated without a network call", func(t *testing.T) {
		b := newBackend(t, api.RoleVendor, http.StatusOK)
		c, _ := newController(t, b)

		require.NoError(t, c.CheckAuthStatus(context.Background()))

		st := c.State()
		assert.False(t, st.IsAuthenticated)
		assert.False(t, st.IsLoading)
		assert.Zero(t, b.totalCalls.Load())
	})

	t.Run("valid vendor token authenticates", func(t *testing.T) {
		c, store := newController(t, newBackend(t, api.RoleVendor, http.StatusOK))
		require.NoError(t, store.SetTokens("abc", "xyz"))

		require.NoError(t, c.CheckAuthStatus(context.Background()))

		st := c.State()
		assert.True(t, st.IsAuthenticated)
		require.NotNil(t, st.User)
		assert.Equal(t, api.RoleVendor, st.User.UserRole)
	})

	t.Run("customer role is rejected and tokens cleared", func(t *testing.T) {
		c, store := newController(t, newBackend(t, api.RoleCustomer, http.StatusOK))
		require.NoError(t, store.SetTokens("abc", "xyz"))

		err := c.CheckAuthStatus(context.Background())
		assert.ErrorIs(t, err, ErrRoleRejected)

		st := c.State()
		assert.False(t, st.IsAuthenticated)
		assert.Nil(t, st.User)
		assert.Empty(t, store.AccessToken())
		assert.Empty(t, store.RefreshToken())
	})

	t.Run("invalid token settles unauthenticated without error", func(t *testing.T) {
		c, store := newController(t, newBackend(t, api.RoleVendor, http.StatusOK))
		require.NoError(t, store.SetTokens("stale", "dead"))

		require.NoError(t, c.CheckAuthStatus(context.Background()))

		st := c.State()
		assert.False(t, st.IsAuthenticated)
		assert.Empty(t, store.AccessToken())
	})

	t.Run("idempotent", func(t *testing.T) {
		c, store := newController(t, newBackend(t, api.RoleVendor, http.StatusOK))
		require.NoError(t, store.SetTokens("abc", "xyz"))

		require.NoError(t, c.CheckAuthStatus(context.Background()))
		first := c.State()

		require.NoError(t, c.CheckAuthStatus(context.Background()))
		second := c.State()

		assert.Equal(t, first.IsAuthenticated, second.IsAuthenticated)
		assert.Equal(t, first.User.UserID, second.User.UserID)
	})
}

func TestController_Login(t *testing.T) {
	t.Run("success persists tokens and remembered identifier", func(t *testing.T) {
		b := newBackend(t, api.RoleVendor, http.StatusOK)
		c, store := newController(t, b)

		resp, err := c.Login(context.Background(), api.Credentials{Identifier: "vendor1", Password: "secret123"}, true)
		require.NoError(t, err)

		assert.Equal(t, int64(7), resp.UserID)
		assert.Equal(t, "abc", store.AccessToken())
		assert.Equal(t, "xyz", store.RefreshToken())

		remembered, ok := store.RememberedIdentifier()
		assert.True(t, ok)
		assert.Equal(t, "vendor1", remembered)

		st := c.State()
		assert.True(t, st.IsAuthenticated)
		assert.False(t, st.IsLoading)
		require.NotNil(t, st.User)
		assert.Equal(t, "vendor1", st.User.Username)

		assert.Equal(t, int32(1), b.userInfoCalls.Load(), "login awaits the full profile check")
	})

	t.Run("without remember-me no identifier is stored", func(t *testing.T) {
		c, store := newController(t, newBackend(t, api.RoleVendor, http.StatusOK))

		_, err := c.Login(context.Background(), api.Credentials{Identifier: "vendor1", Password: "secret123"}, false)
		require.NoError(t, err)

		_, ok := store.RememberedIdentifier()
		assert.False(t, ok)
	})

	t.Run("bad credentials propagate the backend error", func(t *testing.T) {
		c, store := newController(t, newBackend(t, api.RoleVendor, http.StatusOK))

		_, err := c.Login(context.Background(), api.Credentials{Identifier: "vendor1", Password: "wrong"}, false)
		require.Error(t, err)

		var apiErr *api.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
		assert.Equal(t, "invalid credentials", apiErr.Message)

		assert.Empty(t, store.AccessToken(), "failed login leaves no partial state")
		assert.False(t, c.State().IsAuthenticated)
	})

	t.Run("missing access token in response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"message": "pending verification"}) //nolint:errcheck
		}))
		t.Cleanup(server.Close)

		store, err := storage.NewStore(t.TempDir())
		require.NoError(t, err)
		client, err := api.New(api.Config{BaseURL: server.URL, Logger: zerolog.Nop()}, store)
		require.NoError(t, err)
		c := New(client, store, zerolog.Nop())

		_, err = c.Login(context.Background(), api.Credentials{Identifier: "vendor1", Password: "secret123"}, false)
		assert.ErrorIs(t, err, ErrNoAccessToken)
		assert.Empty(t, store.AccessToken())
	})

	t.Run("customer login is rejected", func(t *testing.T) {
		c, store := newController(t, newBackend(t, api.RoleCustomer, http.StatusOK))

		_, err := c.Login(context.Background(), api.Credentials{Identifier: "vendor1", Password: "secret123"}, false)
		assert.ErrorIs(t, err, ErrRoleRejected)

		assert.Empty(t, store.AccessToken())
		assert.False(t, c.State().IsAuthenticated)
	})
}

func TestController_Logout(t *testing.T) {
	t.Run("clears local state", func(t *testing.T) {
		b := newBackend(t, api.RoleVendor, http.StatusOK)
		c, store := newController(t, b)

		_, err := c.Login(context.Background(), api.Credentials{Identifier: "vendor1", Password: "secret123"}, true)
		require.NoError(t, err)

		c.Logout(context.Background())

		assert.Equal(t, int32(1), b.logoutCalls.Load())
		assert.Empty(t, store.AccessToken())
		assert.Empty(t, store.RefreshToken())

		_, ok := store.RememberedIdentifier()
		assert.False(t, ok, "remember-me state goes with the session")

		st := c.State()
		assert.False(t, st.IsAuthenticated)
		assert.Nil(t, st.User)
	})

	t.Run("server failure does not block local logout", func(t *testing.T) {
		b := newBackend(t, api.RoleVendor, http.StatusInternalServerError)
		c, store := newController(t, b)

		_, err := c.Login(context.Background(), api.Credentials{Identifier: "vendor1", Password: "secret123"}, false)
		require.NoError(t, err)

		c.Logout(context.Background())

		assert.Empty(t, store.AccessToken())
		assert.False(t, c.State().IsAuthenticated)
	})

	t.Run("no-op without a session", func(t *testing.T) {
		b := newBackend(t, api.RoleVendor, http.StatusOK)
		c, _ := newController(t, b)

		c.Logout(context.Background())

		assert.Zero(t, b.logoutCalls.Load())
		assert.False(t, c.State().IsAuthenticated)
	})
}

func TestController_Register(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/Auth/register/vendor", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.RegisterResponse{Success: true, UserID: 11}) //nolint:errcheck
	}))
	t.Cleanup(server.Close)

	store, err := storage.NewStore(t.TempDir())
	require.NoError(t, err)
	client, err := api.New(api.Config{BaseURL: server.URL, Logger: zerolog.Nop()}, store)
	require.NoError(t, err)
	c := New(client, store, zerolog.Nop())

	resp, err := c.Register(context.Background(), api.RegisterInput{
		Username: "vendor2",
		Email:    "vendor2@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)

	st := c.State()
	assert.False(t, st.IsAuthenticated, "registration does not authenticate")
	assert.Empty(t, store.AccessToken())
}

func TestController_UpdateUser(t *testing.T) {
	t.Run("merges only the set fields", func(t *testing.T) {
		c, store := newController(t, newBackend(t, api.RoleVendor, http.StatusOK))
		require.NoError(t, store.SetTokens("abc", "xyz"))
		require.NoError(t, c.CheckAuthStatus(context.Background()))

		email := "new@example.com"
		c.UpdateUser(api.UserPatch{Email: &email})

		user := c.User()
		require.NotNil(t, user)
		assert.Equal(t, "new@example.com", user.Email)
		assert.Equal(t, "vendor1", user.Username, "unset fields keep their value")
	})

	t.Run("no-op when unauthenticated", func(t *testing.T) {
		c, _ := newController(t, newBackend(t, api.RoleVendor, http.StatusOK))

		email := "new@example.com"
		c.UpdateUser(api.UserPatch{Email: &email})

		assert.Nil(t, c.User())
	})
}

func TestController_RefreshAuth(t *testing.T) {
	c, store := newController(t, newBackend(t, api.RoleVendor, http.StatusOK))

	// Tokens set out of band, as the OTP verification flow does.
	require.NoError(t, store.SetTokens("abc", "xyz"))

	require.NoError(t, c.RefreshAuth(context.Background()))
	assert.True(t, c.State().IsAuthenticated)
}
