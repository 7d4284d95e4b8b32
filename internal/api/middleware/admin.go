package middleware

import (
	"net/http"

	"github.com/sgs-events/eventdesk/internal/api/apierr"
	"github.com/sgs-events/eventdesk/internal/model"
	"github.com/sgs-events/eventdesk/internal/services/login"
)

// Admin creates middleware that requires an admin-authorized session.
// Apply after (or instead of) Auth; it performs the full session check
// itself so it can be used standalone.
func Admin(loginService *login.Service) func(http.Handler) http.Handler {
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
			if !session.IsAdmin {
				apierr.WriteError(w, model.ErrAdminRequired)
				return
			}

			ctx := r.Context()
			ctx = withSession(ctx, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
