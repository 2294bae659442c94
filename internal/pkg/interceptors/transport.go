// Package interceptors decorates outbound calls to the storefront backend
// with the request id, idempotency key and bearer token carried by the
// context of the inbound request.
package interceptors

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/vino121095/valenmart-storefront/internal/pkg/interceptors/constants"
	"github.com/vino121095/valenmart-storefront/internal/pkg/session"
)

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// Chain wraps base with the request-id and session interceptors.
func Chain(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return RequestID(Session(base))
}

// RequestID forwards the inbound request id, generating one when the caller
// did not supply any, and the idempotency key when one is set.
func RequestID(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		r = r.Clone(r.Context())
		if r.Header.Get(constants.HeaderXRequestId) == "" {
			id := GetValue(r.Context(), constants.ContextKeyRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			r.Header.Set(constants.HeaderXRequestId, id)
		}
		if key := GetValue(r.Context(), constants.ContextKeyIdempotencyKey); key != "" {
			r.Header.Set(constants.HeaderXIdempotencyKey, key)
		}
		return next.RoundTrip(r)
	})
}

// Session sets the bearer token of the session in the request context.
// Anonymous sessions leave the request untouched.
func Session(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		s := session.FromContext(r.Context())
		if !s.Anonymous() && r.Header.Get(constants.HeaderAuthorization) == "" {
			r = r.Clone(r.Context())
			r.Header.Set(constants.HeaderAuthorization, "Bearer "+s.Token)
		}
		return next.RoundTrip(r)
	})
}

// WithRequestID stores id for outbound propagation.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, constants.ContextKeyRequestID, id)
}

// WithIdempotencyKey stores key for the next outbound mutating call.
func WithIdempotencyKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, constants.ContextKeyIdempotencyKey, key)
}

// GetValue reads a string context value, returning "" when absent.
func GetValue(ctx context.Context, key any) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
