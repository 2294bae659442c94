package middlewares

import (
	"net/http"

	"github.com/vino121095/valenmart-storefront/internal/pkg/interceptors/constants"
	"github.com/vino121095/valenmart-storefront/internal/pkg/session"
)

// AttachSession parses the bearer token into a session. Requests without a
// token continue anonymously; the backend decides whether that is allowed.
func AttachSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := session.FromAuthorizationHeader(r.Header.Get(constants.HeaderAuthorization))
		next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
	})
}
