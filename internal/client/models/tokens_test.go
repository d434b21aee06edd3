package models

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokensResponse_Token_ReadsJWTExpiry(t *testing.T) {
	exp := time.Now().Add(15 * time.Minute).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tok := TokensResponse{AccessToken: signed, RefreshToken: "r1", TokenType: "bearer"}.Token()

	assert.Equal(t, signed, tok.AccessToken)
	assert.Equal(t, "r1", tok.RefreshToken)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.True(t, exp.Equal(tok.Expiry), "expiry %v != %v", tok.Expiry, exp)
}

func TestTokensResponse_Token_OpaqueAccessToken(t *testing.T) {
	tok := TokensResponse{AccessToken: "opaque"}.Token()

	assert.Equal(t, "Bearer", tok.TokenType)
	assert.True(t, tok.Expiry.IsZero())
	assert.True(t, tok.Valid())
}
