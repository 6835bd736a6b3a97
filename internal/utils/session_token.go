package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSessionToken is returned for cookies that fail signature,
// issuer or structure checks.
var ErrInvalidSessionToken = errors.New("invalid session token")

// SignSessionToken wraps an opaque session id into an HS256 JWT so the
// cookie value cannot be forged or altered. The id travels in the "jti"
// claim. A zero lifetime produces a token without "exp"; server-side expiry
// is authoritative either way.
//
// Example usage:
//
//	cookieValue, err := utils.SignSessionToken("expense-ledger", sessionID, 720*time.Hour, "secret")
func SignSessionToken(issuer, sessionID string, lifetime time.Duration, signKey string) (string, error) {
	if issuer == "" || sessionID == "" || signKey == "" {
		return "", errors.New("invalid params for signing session token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:   issuer,
		ID:       sessionID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if lifetime > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(lifetime))
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing session token: %w", err)
	}

	return signed, nil
}

// ParseSessionToken verifies a cookie value produced by SignSessionToken
// and returns the session id it carries.
func ParseSessionToken(tokenString, signKey, issuer string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSessionToken, err)
	}

	if claims.ID == "" {
		return "", fmt.Errorf("%w: empty session id", ErrInvalidSessionToken)
	}

	return claims.ID, nil
}
