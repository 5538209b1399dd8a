package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSessionToken is returned for cookie values that are malformed,
// carry a bad signature or have expired.
var ErrInvalidSessionToken = errors.New("invalid session token")

// SignSessionID wraps a server-side session id in an HS256 JWT so the cookie
// cannot be forged without the secret. The id travels in the jti claim.
func SignSessionID(secret, sid string, exp time.Time) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		ID:        sid,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseSessionID verifies a value produced by SignSessionID and returns the
// session id it carries.
func ParseSessionID(secret, raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid || claims.ID == "" {
		return "", ErrInvalidSessionToken
	}
	return claims.ID, nil
}
