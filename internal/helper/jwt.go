package helper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
)

type TokenClaims struct {
	UserID interface{} `json:"user_id,omitempty"`
	Role   string      `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenVerifier turns a marketplace access token into its claims.
type TokenVerifier interface {
	Verify(tokenString string) (*TokenClaims, error)
}

// ParseTokenClaims reads the claims of a marketplace access token without
// verifying the signature. The marketplace API verifies every request; the
// claims are only used to tell the signed-in user's messages apart.
func ParseTokenClaims(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	return claims, nil
}

type unverifiedTokens struct{}

func (unverifiedTokens) Verify(tokenString string) (*TokenClaims, error) {
	return ParseTokenClaims(tokenString)
}

// UnverifiedTokens is used when no JWKS endpoint is configured.
var UnverifiedTokens TokenVerifier = unverifiedTokens{}

// JWKSVerifier checks token signatures against the marketplace's published
// signing keys.
type JWKSVerifier struct {
	jwks   *keyfunc.JWKS
	issuer string
}

func NewJWKSVerifier(ctx context.Context, jwksURL, issuer string) (*JWKSVerifier, error) {
	options := keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			slog.Error("JWKS refresh failed", "error", err, "url", jwksURL)
		},
	}

	jwks, err := keyfunc.Get(jwksURL, options)
	if err != nil {
		return nil, fmt.Errorf("failed to load JWKS: %w", err)
	}

	return NewJWKSVerifierFromKeys(jwks, issuer), nil
}

func NewJWKSVerifierFromKeys(jwks *keyfunc.JWKS, issuer string) *JWKSVerifier {
	return &JWKSVerifier{jwks: jwks, issuer: issuer}
}

func (v *JWKSVerifier) Verify(tokenString string) (*TokenClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256", "RS384", "RS512", "ES256", "ES384"}),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, v.jwks.Keyfunc, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	return claims, nil
}

func (v *JWKSVerifier) Close() {
	v.jwks.EndBackground()
}

// Subject returns the user id carried by the token, preferring user_id over sub.
func (c *TokenClaims) Subject() string {
	switch v := c.UserID.(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return c.RegisteredClaims.Subject
}
