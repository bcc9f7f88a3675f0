package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/leave-calendar/internal/handler/http/response"
	"github.com/cmlabs-hris/leave-calendar/internal/pkg/session"
	"github.com/go-chi/jwtauth/v5"
)

// SessionRequired resolves the caller's session from the bearer token and
// stores it in the request context. When ja is set the token must also have
// passed jwtauth.Verify earlier in the chain.
func SessionRequired(store *session.Store, ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			if ja != nil {
				token, _, err := jwtauth.FromContext(r.Context())
				if err != nil {
					response.Unauthorized(w, jwtauth.ErrorReason(err).Error())
					return
				}
				if token == nil {
					response.Unauthorized(w, "Invalid token")
					return
				}
			}

			raw := jwtauth.TokenFromHeader(r)
			if raw == "" {
				raw = jwtauth.TokenFromQuery(r)
			}

			sess, err := store.Resolve(raw)
			if err != nil {
				response.HandleError(w, err)
				return
			}
			if err := sess.Err(); err != nil {
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), sess)))
		}
		return http.HandlerFunc(hfn)
	}
}
