package middleware

import (
	"context"
	"net/http"

	"gitea.com/go-chi/session"

	"github.com/meveto/meveto-go-sdk/userctx"
)

// Session keys shared with the auth controller
const (
	SessionUserIDKey      = "user_id"
	SessionDisplayNameKey = "display_name"
	SessionStateKey       = "state"
	SessionRedirectKey    = "redirect_after_login"
)

// LoginChecker reports whether a user is still logged in with Meveto
type LoginChecker interface {
	IsLoggedIn(ctx context.Context, userID string) (bool, error)
}

// RequireAuth ensures the user is authenticated and has not logged out of
// Meveto since the session was created. If not, redirects to /login and
// stores the intended destination.
func RequireAuth(checker LoginChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.GetSession(r)
			userID, _ := sess.Get(SessionUserIDKey).(string)

			if userID == "" {
				// Store the intended destination for redirect after login
				sess.Set(SessionRedirectKey, r.URL.Path)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			loggedIn, err := checker.IsLoggedIn(r.Context(), userID)
			if err != nil {
				http.Error(w, "Failed to check login state: "+err.Error(), http.StatusInternalServerError)
				return
			}

			// Logged out through the Meveto webhook
			if !loggedIn {
				sess.Delete(SessionUserIDKey)
				sess.Delete(SessionDisplayNameKey)
				sess.Set(SessionRedirectKey, r.URL.Path)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			// Add user to request context for use in handlers
			ctx := userctx.SetUserID(r.Context(), userID)
			if name, ok := sess.Get(SessionDisplayNameKey).(string); ok {
				ctx = userctx.SetDisplayName(ctx, name)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
