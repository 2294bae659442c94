// Package session carries the caller's bearer token and customer id through
// a context.Context instead of process-wide state.
package session

import (
	"context"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey struct{}

// Session identifies the storefront caller. The zero value is an anonymous
// session: requests made with it go out without an Authorization header.
type Session struct {
	Token      string
	CustomerID string
}

func (s Session) Anonymous() bool {
	return s.Token == ""
}

func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored in ctx, or an anonymous one.
func FromContext(ctx context.Context) Session {
	s, _ := ctx.Value(contextKey{}).(Session)
	return s
}

// FromAuthorizationHeader builds a session from an "Authorization: Bearer"
// header value. Missing or malformed headers produce an anonymous session.
func FromAuthorizationHeader(header string) Session {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return Session{}
	}
	return FromToken(strings.TrimSpace(token))
}

// FromToken keeps the raw token and reads the customer id claim from it.
// The signature is not checked here; the backend verifies every request.
func FromToken(token string) Session {
	if token == "" {
		return Session{}
	}
	return Session{Token: token, CustomerID: customerIDClaim(token)}
}

var customerClaimKeys = []string{"customerId", "customer_id", "sub"}

func customerIDClaim(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	for _, k := range customerClaimKeys {
		switch v := claims[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}
