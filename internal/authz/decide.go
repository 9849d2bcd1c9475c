// Package authz implements the access-control decision for protected views.
// Decide is a pure function from session state and view policy to a
// render/navigate decision; Gate wraps it with idempotent navigation.
package authz

import (
	"net/url"
	"strings"
)

// Default landing paths used when a policy does not override them.
const (
	LoginPath     = "/login"
	HomePath      = "/dashboard"
	AdminHomePath = "/admin"
)

// SessionState is the authorization-relevant slice of a session as seen by a
// view about to render. While Loading is true the other fields are unreliable
// and must not drive navigation.
type SessionState struct {
	Loading       bool
	Authenticated bool
	Role          string
}

// ViewPolicy declares a view's access requirements. RequireAdmin restricts a
// view to admins; AdminRestricted blocks admins from user-only views and sends
// them to RedirectTo (the admin landing when empty). The two are mutually
// exclusive in practice but Decide handles any combination.
type ViewPolicy struct {
	RequireAdmin    bool
	AdminRestricted bool
	RedirectTo      string
}

// Action is what the caller should do before (or instead of) rendering.
type Action int

const (
	// ActionNone means no navigation is needed.
	ActionNone Action = iota
	// ActionNavigate means the caller must navigate to Decision.Target.
	ActionNavigate
)

// Render selects what the view may show this cycle.
type Render int

const (
	// RenderWaiting shows a neutral waiting indicator. It is the fallback
	// for every state where showing content would be premature or wrong.
	RenderWaiting Render = iota
	// RenderRedirecting shows a short redirect placeholder.
	RenderRedirecting
	// RenderContent shows the protected content.
	RenderContent
)

// Decision is the outcome of one evaluation cycle. Target is only meaningful
// when Action is ActionNavigate.
type Decision struct {
	Action Action
	Target string
	Render Render
}

// IsAdminRole reports whether role names the admin role, ignoring case.
func IsAdminRole(role string) bool {
	return strings.EqualFold(role, "admin")
}

// Decide computes the render/navigate decision for a view at requestedPath.
// Rules are evaluated in order: loading wins over everything, then the
// authentication check, then the role checks. It never returns protected
// content unless every check passes, and it never fails; undefined input
// combinations degrade to the waiting render.
func Decide(state SessionState, policy ViewPolicy, requestedPath string) Decision {
	if state.Loading {
		return Decision{Action: ActionNone, Render: RenderWaiting}
	}

	if !state.Authenticated {
		return Decision{
			Action: ActionNavigate,
			Target: loginTarget(requestedPath),
			Render: RenderWaiting,
		}
	}

	isAdmin := IsAdminRole(state.Role)

	if policy.RequireAdmin && !isAdmin {
		return Decision{
			Action: ActionNavigate,
			Target: HomePath,
			Render: RenderWaiting,
		}
	}

	if policy.AdminRestricted && isAdmin {
		target := policy.RedirectTo
		if target == "" {
			target = AdminHomePath
		}
		return Decision{
			Action: ActionNavigate,
			Target: target,
			Render: RenderRedirecting,
		}
	}

	return Decision{Action: ActionNone, Render: RenderContent}
}

// DecideEntry computes the decision for the root entry view, which has no
// content of its own: once loading resolves it forwards authenticated users
// to the authenticated landing and everyone else to login.
func DecideEntry(state SessionState) Decision {
	if state.Loading {
		return Decision{Action: ActionNone, Render: RenderWaiting}
	}
	if state.Authenticated {
		return Decision{
			Action: ActionNavigate,
			Target: HomePath,
			Render: RenderRedirecting,
		}
	}
	return Decision{
		Action: ActionNavigate,
		Target: LoginPath,
		Render: RenderWaiting,
	}
}

// loginTarget builds the login path carrying the originally requested path so
// the user lands back on intent after authenticating.
func loginTarget(requestedPath string) string {
	if requestedPath == "" || requestedPath == "/" {
		return LoginPath
	}
	return LoginPath + "?next=" + url.QueryEscape(requestedPath)
}
