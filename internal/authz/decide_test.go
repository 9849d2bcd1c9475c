package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name     string
		state    SessionState
		policy   ViewPolicy
		path     string
		expected Decision
	}{
		{
			name:     "loading renders waiting with no action",
			state:    SessionState{Loading: true},
			policy:   ViewPolicy{},
			path:     "/bets",
			expected: Decision{Action: ActionNone, Render: RenderWaiting},
		},
		{
			name:   "loading wins even with authenticated flags set",
			state:  SessionState{Loading: true, Authenticated: true, Role: "admin"},
			policy: ViewPolicy{RequireAdmin: true},
			path:   "/admin/users",
			expected: Decision{
				Action: ActionNone,
				Render: RenderWaiting,
			},
		},
		{
			name:   "unauthenticated redirects to login with return path",
			state:  SessionState{},
			policy: ViewPolicy{},
			path:   "/bets",
			expected: Decision{
				Action: ActionNavigate,
				Target: "/login?next=%2Fbets",
				Render: RenderWaiting,
			},
		},
		{
			name:   "unauthenticated at root omits return path",
			state:  SessionState{},
			policy: ViewPolicy{},
			path:   "/",
			expected: Decision{
				Action: ActionNavigate,
				Target: "/login",
				Render: RenderWaiting,
			},
		},
		{
			name:   "unauthenticated redirects even for admin views",
			state:  SessionState{},
			policy: ViewPolicy{RequireAdmin: true},
			path:   "/admin/users",
			expected: Decision{
				Action: ActionNavigate,
				Target: "/login?next=%2Fadmin%2Fusers",
				Render: RenderWaiting,
			},
		},
		{
			name:   "user on admin-only view lands on dashboard",
			state:  SessionState{Authenticated: true, Role: "user"},
			policy: ViewPolicy{RequireAdmin: true},
			path:   "/admin/users",
			expected: Decision{
				Action: ActionNavigate,
				Target: HomePath,
				Render: RenderWaiting,
			},
		},
		{
			name:   "admin on admin-only view renders content",
			state:  SessionState{Authenticated: true, Role: "admin"},
			policy: ViewPolicy{RequireAdmin: true},
			path:   "/admin/users",
			expected: Decision{
				Action: ActionNone,
				Render: RenderContent,
			},
		},
		{
			name:   "role comparison ignores case",
			state:  SessionState{Authenticated: true, Role: "ADMIN"},
			policy: ViewPolicy{RequireAdmin: true},
			path:   "/admin/users",
			expected: Decision{
				Action: ActionNone,
				Render: RenderContent,
			},
		},
		{
			name:   "admin on user-only view redirects to admin landing",
			state:  SessionState{Authenticated: true, Role: "admin"},
			policy: ViewPolicy{AdminRestricted: true},
			path:   "/bets",
			expected: Decision{
				Action: ActionNavigate,
				Target: AdminHomePath,
				Render: RenderRedirecting,
			},
		},
		{
			name:   "admin-restricted honours redirect override",
			state:  SessionState{Authenticated: true, Role: "admin"},
			policy: ViewPolicy{AdminRestricted: true, RedirectTo: "/admin/games"},
			path:   "/bets",
			expected: Decision{
				Action: ActionNavigate,
				Target: "/admin/games",
				Render: RenderRedirecting,
			},
		},
		{
			name:   "user on user-only view renders content",
			state:  SessionState{Authenticated: true, Role: "user"},
			policy: ViewPolicy{AdminRestricted: true},
			path:   "/bets",
			expected: Decision{
				Action: ActionNone,
				Render: RenderContent,
			},
		},
		{
			name:   "authenticated user on open view renders content",
			state:  SessionState{Authenticated: true, Role: "user"},
			policy: ViewPolicy{},
			path:   "/bets",
			expected: Decision{
				Action: ActionNone,
				Render: RenderContent,
			},
		},
		{
			name:   "unknown role is treated as non-admin",
			state:  SessionState{Authenticated: true, Role: "superuser"},
			policy: ViewPolicy{RequireAdmin: true},
			path:   "/admin/users",
			expected: Decision{
				Action: ActionNavigate,
				Target: HomePath,
				Render: RenderWaiting,
			},
		},
		{
			name:   "empty role is treated as non-admin",
			state:  SessionState{Authenticated: true},
			policy: ViewPolicy{RequireAdmin: true},
			path:   "/admin/users",
			expected: Decision{
				Action: ActionNavigate,
				Target: HomePath,
				Render: RenderWaiting,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.state, tt.policy, tt.path)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDecideNeverRendersContentBeforeLoadingResolves(t *testing.T) {
	policies := []ViewPolicy{
		{},
		{RequireAdmin: true},
		{AdminRestricted: true},
		{RequireAdmin: true, AdminRestricted: true},
	}
	for _, policy := range policies {
		got := Decide(SessionState{Loading: true, Authenticated: true, Role: "admin"}, policy, "/bets")
		assert.NotEqual(t, RenderContent, got.Render)
		assert.Equal(t, ActionNone, got.Action)
	}
}

func TestDecideEntry(t *testing.T) {
	tests := []struct {
		name     string
		state    SessionState
		expected Decision
	}{
		{
			name:     "waits while loading",
			state:    SessionState{Loading: true},
			expected: Decision{Action: ActionNone, Render: RenderWaiting},
		},
		{
			name:  "authenticated forwards to dashboard",
			state: SessionState{Authenticated: true, Role: "user"},
			expected: Decision{
				Action: ActionNavigate,
				Target: HomePath,
				Render: RenderRedirecting,
			},
		},
		{
			name:  "unauthenticated forwards to login",
			state: SessionState{},
			expected: Decision{
				Action: ActionNavigate,
				Target: LoginPath,
				Render: RenderWaiting,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DecideEntry(tt.state))
		})
	}
}

func TestIsAdminRole(t *testing.T) {
	assert.True(t, IsAdminRole("admin"))
	assert.True(t, IsAdminRole("Admin"))
	assert.True(t, IsAdminRole("ADMIN"))
	assert.False(t, IsAdminRole("user"))
	assert.False(t, IsAdminRole(""))
	assert.False(t, IsAdminRole("administrator"))
}
