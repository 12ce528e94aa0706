// Package guard holds the route-guard decision functions. Guards are pure
// functions of a session snapshot: they never trigger auth calls themselves
// (the startup bootstrap runs the single CheckAuthStatus).
package guard

import "github.com/tajerhq/vendorctl/internal/session"

// Routes guarded decisions redirect to.
const (
	LoginRoute     = "/auth/login"
	DashboardRoute = "/dashboard"
)

// Action is what the caller should do with the guarded view.
type Action int

const (
	// ShowLoading means the session is still resolving; render a placeholder
	// and make no redirect decision yet.
	ShowLoading Action = iota

	// Render means the guarded content may be shown.
	Render

	// Redirect means navigation must move to Target first.
	Redirect
)

func (a Action) String() string {
	switch a {
	case ShowLoading:
		return "loading"
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the guard outcome. From carries the attempted location on a
// Private redirect so the caller can return there after login.
type Decision struct {
	Action Action
	Target string
	From   string
}

// Private gates authenticated-only content. While the session is loading it
// decides nothing — redirecting mid-check would flash the login screen at an
// already-authenticated user.
func Private(st session.State, attempted string) Decision {
	if st.IsLoading {
		return Decision{Action: ShowLoading}
	}
	if !st.IsAuthenticated {
		return Decision{Action: Redirect, Target: LoginRoute, From: attempted}
	}
	return Decision{Action: Render}
}

// Public gates login/register content: an authenticated user is sent to the
// dashboard instead.
func Public(st session.State) Decision {
	if st.IsLoading {
		return Decision{Action: ShowLoading}
	}
	if st.IsAuthenticated {
		return Decision{Action: Redirect, Target: DashboardRoute}
	}
	return Decision{Action: Render}
}
