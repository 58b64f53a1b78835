package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/hris-console/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-console/internal/service/session"
	"github.com/go-chi/chi/v5"
)

type contextKey struct{ name string }

var sessionKey = &contextKey{"session"}

// SessionParam is the route parameter holding the session id.
const SessionParam = "sid"

// SessionRequired resolves the {sid} route parameter and stores the session in the request context.
func SessionRequired(registry *session.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			s, err := registry.Get(chi.URLParam(r, SessionParam))
			if err != nil {
				response.HandleError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// SessionFromContext returns the session stored by SessionRequired.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionKey).(*session.Session)
	return s, ok
}
