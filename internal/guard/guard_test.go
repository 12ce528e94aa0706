package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tajerhq/vendorctl/internal/api"
	"github.com/tajerhq/vendorctl/internal/session"
)

func TestPrivate(t *testing.T) {
	t.Run("loading shows placeholder regardless of auth flag", func(t *testing.T) {
		// No redirect may be issued while loading, whatever the flag says.
		for _, authenticated := range []bool{true, false} {
			d := Private(session.State{IsLoading: true, IsAuthenticated: authenticated}, "/orders")
			assert.Equal(t, ShowLoading, d.Action)
			assert.Empty(t, d.Target)
		}
	})

	t.Run("unauthenticated redirects to login preserving location", func(t *testing.T) {
		d := Private(session.State{IsLoading: false, IsAuthenticated: false}, "/orders/42")
		assert.Equal(t, Redirect, d.Action)
		assert.Equal(t, LoginRoute, d.Target)
		assert.Equal(t, "/orders/42", d.From)
	})

	t.Run("authenticated renders", func(t *testing.T) {
		st := session.State{IsAuthenticated: true, User: &api.User{UserRole: api.RoleVendor}}
		d := Private(st, "/orders")
		assert.Equal(t, Render, d.Action)
	})
}

func TestPublic(t *testing.T) {
	t.Run("loading shows placeholder regardless of auth flag", func(t *testing.T) {
		for _, authenticated := range []bool{true, false} {
			d := Public(session.State{IsLoading: true, IsAuthenticated: authenticated})
			assert.Equal(t, ShowLoading, d.Action)
			assert.Empty(t, d.Target)
		}
	})

	t.Run("authenticated redirects to dashboard", func(t *testing.T) {
		d := Public(session.State{IsAuthenticated: true})
		assert.Equal(t, Redirect, d.Action)
		assert.Equal(t, DashboardRoute, d.Target)
	})

	t.Run("unauthenticated renders", func(t *testing.T) {
		d := Public(session.State{})
		assert.Equal(t, Render, d.Action)
	})
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "loading", ShowLoading.String())
	assert.Equal(t, "render", Render.String())
	assert.Equal(t, "redirect", Redirect.String())
}
