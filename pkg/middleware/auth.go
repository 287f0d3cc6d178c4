package middleware

import (
	"net/http"

	"github.com/shashiranjanraj/vyapar/pkg/auth"
	"github.com/shashiranjanraj/vyapar/pkg/response"
	"github.com/shashiranjanraj/vyapar/pkg/session"
)

// Auth resolves the caller's session and injects the user id into the
// request context. Requests without a valid, non-expired session are
// rejected with 401 before reaching the handler. The identity placed here
// is the sole source of truth for ownership checks downstream.
func Auth(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessions.TokenFromRequest(r)
			if token == "" {
				response.Unauthorized(w)
				return
			}

			userID, err := sessions.Resolve(r.Context(), token)
			if err != nil {
				response.Unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUserID(r.Context(), userID)))
		})
	}
}
