package session

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestFromAuthorizationHeader(t *testing.T) {
	tok := signed(t, jwt.MapClaims{"customerId": "c-7", "sub": "ignored"})

	s := FromAuthorizationHeader("Bearer " + tok)

	assert.Equal(t, tok, s.Token)
	assert.Equal(t, "c-7", s.CustomerID)
	assert.False(t, s.Anonymous())
}

func TestFromAuthorizationHeader_NumericAndSubClaims(t *testing.T) {
	assert.Equal(t, "42", FromToken(signed(t, jwt.MapClaims{"customer_id": 42})).CustomerID)
	assert.Equal(t, "u-1", FromToken(signed(t, jwt.MapClaims{"sub": "u-1"})).CustomerID)
}

func TestFromAuthorizationHeader_Tolerant(t *testing.T) {
	assert.True(t, FromAuthorizationHeader("").Anonymous())
	assert.True(t, FromAuthorizationHeader("Basic abc").Anonymous())

	s := FromAuthorizationHeader("bearer not-a-jwt")
	assert.Equal(t, "not-a-jwt", s.Token)
	assert.Empty(t, s.CustomerID)
}

func TestContextRoundTrip(t *testing.T) {
	assert.True(t, FromContext(context.Background()).Anonymous())

	ctx := WithSession(context.Background(), Session{Token: "t", CustomerID: "c"})
	assert.Equal(t, Session{Token: "t", CustomerID: "c"}, FromContext(ctx))
}
