// Package session tracks the authenticated identity for a request.
//
// A login creates a random session ID in the Store (Redis in production,
// memory in dev/tests) and hands the client a signed token carrying that ID.
// Resolve verifies the signature, then requires the ID to still exist in the
// store — so logout invalidates a token immediately, even though its
// signature stays valid until expiry.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shashiranjanraj/vyapar/pkg/apperr"
	"github.com/shashiranjanraj/vyapar/pkg/auth"
)

// Options configures cookie behaviour and token lifetime.
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		CookieName: "vyapar_session",
		TTL:        2 * time.Hour,
		Secure:     false, // set true in production
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

// Manager creates, resolves, and destroys sessions.
type Manager struct {
	store  Store
	secret []byte
	opts   Options
}

// NewManager builds a Manager over the given store and signing secret.
func NewManager(store Store, secret string, opts Options) *Manager {
	return &Manager{store: store, secret: []byte(secret), opts: opts}
}

// newID generates a cryptographically random 32-byte hex session ID.
func newID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Login creates a session for userID and returns the signed token.
func (m *Manager) Login(ctx context.Context, userID uint) (string, error) {
	sid, err := newID()
	if err != nil {
		return "", fmt.Errorf("session: generate id: %w", err)
	}

	if err := m.store.Put(ctx, sid, userID, m.opts.TTL); err != nil {
		return "", fmt.Errorf("session: store: %w", err)
	}

	token, err := auth.SignSessionToken(m.secret, sid, userID, m.opts.TTL)
	if err != nil {
		return "", fmt.Errorf("session: sign token: %w", err)
	}
	return token, nil
}

// Resolve returns the user id behind a session token.
// Returns apperr.ErrUnauthorized for malformed, expired, or logged-out tokens.
func (m *Manager) Resolve(ctx context.Context, token string) (uint, error) {
	claims, err := auth.ParseSessionToken(m.secret, token)
	if err != nil {
		return 0, apperr.ErrUnauthorized
	}

	userID, ok, err := m.store.Get(ctx, claims.SessionID)
	if err != nil {
		return 0, fmt.Errorf("session: store lookup: %w", err)
	}
	if !ok {
		return 0, apperr.ErrUnauthorized
	}
	return userID, nil
}

// Logout destroys the session behind the token. A token that no longer
// resolves is reported as unauthorized.
func (m *Manager) Logout(ctx context.Context, token string) error {
	claims, err := auth.ParseSessionToken(m.secret, token)
	if err != nil {
		return apperr.ErrUnauthorized
	}
	return m.store.Del(ctx, claims.SessionID)
}

// Cookie builds the session cookie carrying token.
func (m *Manager) Cookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    token,
		Path:     m.opts.Path,
		MaxAge:   int(m.opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: m.opts.SameSite,
	}
}

// ClearCookie builds an expired cookie that removes the session cookie.
func (m *Manager) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    "",
		Path:     m.opts.Path,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: m.opts.SameSite,
	}
}

// TokenFromRequest extracts the session token from the session cookie or an
// Authorization: Bearer header (for non-browser clients). Empty when absent.
func (m *Manager) TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(m.opts.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
