package middlewares

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/vino121095/valenmart-storefront/internal/pkg/interceptors"
	"github.com/vino121095/valenmart-storefront/internal/pkg/interceptors/constants"
)

// AttachTracingMetadata copies the chi request id and the caller's
// idempotency key into the context so backend calls can forward them.
func AttachTracingMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := interceptors.WithRequestID(r.Context(), middleware.GetReqID(r.Context()))
		if key := r.Header.Get(constants.HeaderXIdempotencyKey); key != "" {
			ctx = interceptors.WithIdempotencyKey(ctx, key)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
