// Package auth holds the credential-hashing primitives, the signed session
// token format, and the context keys that carry the authenticated identity
// from the auth middleware into handlers.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ─── Credentials ─────────────────────────────────────────────────────────────

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// DummyHash is a valid bcrypt hash of a random string. Login verifies
// against it when the username is unknown, so both failure cases cost one
// bcrypt comparison and stay indistinguishable on the wire.
const DummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// ─── Session tokens ──────────────────────────────────────────────────────────

// SessionClaims is the payload of a signed session token. The token itself
// carries no authority — the session store is the source of truth — but the
// signature keeps session IDs tamper-evident in cookies.
type SessionClaims struct {
	SessionID string `json:"sid"`
	UserID    uint   `json:"user_id"`
	jwt.RegisteredClaims
}

// SignSessionToken creates a signed HS256 token for the given session.
func SignSessionToken(secret []byte, sessionID string, userID uint, ttl time.Duration) (string, error) {
	claims := SessionClaims{
		SessionID: sessionID,
		UserID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseSessionToken validates the signature and expiry of a session token.
func ParseSessionToken(secret []byte, token string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse session token: %w", err)
	}

	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}

// ─── Identity context ────────────────────────────────────────────────────────

type userKey struct{}

// WithUserID stores the authenticated user id in ctx. Set by the auth
// middleware; handlers must not set it themselves.
func WithUserID(ctx context.Context, id uint) context.Context {
	return context.WithValue(ctx, userKey{}, id)
}

// UserIDFrom extracts the authenticated user id from ctx.
func UserIDFrom(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userKey{}).(uint)
	return id, ok
}
