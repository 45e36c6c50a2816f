package helper

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"testing"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestParseTokenClaims(t *testing.T) {
	t.Run("String user_id", func(t *testing.T) {
		claims, err := ParseTokenClaims(signToken(t, jwt.MapClaims{"user_id": "u-42", "role": "freelancer"}))
		require.NoError(t, err)
		assert.Equal(t, "u-42", claims.Subject())
		assert.Equal(t, "freelancer", claims.Role)
	})

	t.Run("Numeric user_id", func(t *testing.T) {
		claims, err := ParseTokenClaims(signToken(t, jwt.MapClaims{"user_id": 42}))
		require.NoError(t, err)
		assert.Equal(t, "42", claims.Subject())
	})

	t.Run("Falls back to sub", func(t *testing.T) {
		claims, err := ParseTokenClaims(signToken(t, jwt.MapClaims{"sub": "client@example.com"}))
		require.NoError(t, err)
		assert.Equal(t, "client@example.com", claims.Subject())
	})

	t.Run("Not a token", func(t *testing.T) {
		_, err := ParseTokenClaims("not-a-jwt")
		assert.Error(t, err)
	})
}

func newTestJWKS(t *testing.T) (*rsa.PrivateKey, *keyfunc.JWKS) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	jwksJSON, err := json.Marshal(map[string]interface{}{
		"keys": []map[string]string{{
			"kty": "RSA",
			"kid": "k1",
			"alg": "RS256",
			"use": "sig",
			"n":   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
		}},
	})
	require.NoError(t, err)

	jwks, err := keyfunc.NewJSON(jwksJSON)
	require.NoError(t, err)
	return key, jwks
}

func signRS256(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = "k1"
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestJWKSVerifier(t *testing.T) {
	key, jwks := newTestJWKS(t)
	verifier := NewJWKSVerifierFromKeys(jwks, "https://api.afrilance.co.za")

	t.Run("Valid signature", func(t *testing.T) {
		token := signRS256(t, key, jwt.MapClaims{
			"sub": "u1",
			"iss": "https://api.afrilance.co.za",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		claims, err := verifier.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.Subject())
	})

	t.Run("Wrong issuer", func(t *testing.T) {
		token := signRS256(t, key, jwt.MapClaims{"sub": "u1", "iss": "https://elsewhere.example"})
		_, err := verifier.Verify(token)
		assert.Error(t, err)
	})

	t.Run("Expired", func(t *testing.T) {
		token := signRS256(t, key, jwt.MapClaims{
			"sub": "u1",
			"iss": "https://api.afrilance.co.za",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		_, err := verifier.Verify(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("Shared secret tokens are refused", func(t *testing.T) {
		_, err := verifier.Verify(signToken(t, jwt.MapClaims{"sub": "u1", "iss": "https://api.afrilance.co.za"}))
		assert.Error(t, err)
	})
}

func TestUnverifiedTokens(t *testing.T) {
	claims, err := UnverifiedTokens.Verify(signToken(t, jwt.MapClaims{"sub": "u1"}))
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject())
}
