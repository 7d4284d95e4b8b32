package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sgs-events/eventdesk/internal/api/apierr"
	"github.com/sgs-events/eventdesk/internal/services/login"
)

type contextKey string

const (
	sessionContextKey contextKey = "session"
)

// Session creates middleware that resolves the bearer token to a live
// session in any login state and stores it in the request context. Used
// by the verify endpoint, which must accept pre-authentication sessions.
func Session(loginService *login.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := resolveSession(r, loginService)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Auth creates middleware that requires an authenticated session
func Auth(loginService *login.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := resolveSession(r, loginService)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}
			if session.State != login.StateAuthenticated {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalSession resolves a session if a token is present but doesn't
// require one
func OptionalSession(loginService *login.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session, err := resolveSession(r, loginService); err == nil {
				ctx := context.WithValue(r.Context(), sessionContextKey, session)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolveSession(r *http.Request, loginService *login.Service) (*login.Session, error) {
	token := extractToken(r)
	if token == "" {
		return nil, apierr.NewUnauthorizedError()
	}
	return loginService.ValidateSession(token)
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

func withSession(ctx context.Context, session *login.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// GetSession returns the session from the request context
func GetSession(ctx context.Context) *login.Session {
	session, _ := ctx.Value(sessionContextKey).(*login.Session)
	return session
}

// MustGetSession returns the session or panics
func MustGetSession(ctx context.Context) *login.Session {
	session := GetSession(ctx)
	if session == nil {
		panic("no session in context - auth middleware not applied?")
	}
	return session
}
