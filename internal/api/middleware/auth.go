package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cards10e/laquiniela247/internal/api/apierr"
	"github.com/cards10e/laquiniela247/internal/authz"
	"github.com/cards10e/laquiniela247/internal/model"
	"github.com/cards10e/laquiniela247/internal/services/auth"
)

type contextKey string

const (
	userContextKey    contextKey = "user"
	sessionContextKey contextKey = "session"
)

// Auth creates authentication middleware
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			session, err := authService.ValidateSession(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			// Add session and user to context
			ctx := r.Context()
			ctx = context.WithValue(ctx, sessionContextKey, session)
			ctx = context.WithValue(ctx, userContextKey, &session.User)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin guards admin-only routes. It must run inside Auth. The role
// check itself lives in authz.Decide so the API and any other surface agree
// on what "admin" means.
func RequireAdmin() func(http.Handler) http.Handler {
	return guard(authz.ViewPolicy{RequireAdmin: true}, "Admin access required")
}

// UserOnly guards routes admins are blocked from, such as placing bets.
func UserOnly() func(http.Handler) http.Handler {
	return guard(authz.ViewPolicy{AdminRestricted: true}, "Not available to admin accounts")
}

func guard(policy authz.ViewPolicy, denyMessage string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r.Context())
			state := authz.SessionState{
				Authenticated: user != nil,
			}
			if user != nil {
				state.Role = string(user.Role)
			}

			decision := authz.Decide(state, policy, r.URL.Path)
			if decision.Render != authz.RenderContent {
				if !state.Authenticated {
					apierr.WriteError(w, apierr.NewUnauthorizedError())
					return
				}
				apierr.WriteError(w, apierr.NewForbiddenError(denyMessage))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request) string {
	// Check Authorization header first
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to cookie
	cookie, err := r.Cookie("session")
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetUser returns the authenticated user from the request context
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// GetSession returns the session from the request context
func GetSession(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionContextKey).(*auth.Session)
	return session
}

// MustGetUser returns the authenticated user or panics
func MustGetUser(ctx context.Context) *model.User {
	user := GetUser(ctx)
	if user == nil {
		panic("no user in context - auth middleware not applied?")
	}
	return user
}
