package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shashiranjanraj/vyapar/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager(NewMemoryStore(), "test-secret", DefaultOptions())
}

func TestLoginThenResolve(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	token, err := m.Login(ctx, 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestResolveRejectsGarbage(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Resolve(ctx, token)
		assert.ErrorIs(t, err, apperr.ErrUnauthorized, "token %q", token)
	}
}

func TestResolveRejectsForeignSignature(t *testing.T) {
	ctx := context.Background()

	other := NewManager(NewMemoryStore(), "other-secret", DefaultOptions())
	token, err := other.Login(ctx, 7)
	require.NoError(t, err)

	_, err = newTestManager().Resolve(ctx, token)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	token, err := m.Login(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, m.Logout(ctx, token))

	// The signature is still valid but the session is gone.
	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestExpiredSessionIsUnauthorized(t *testing.T) {
	opts := DefaultOptions()
	opts.TTL = -time.Minute
	m := NewManager(NewMemoryStore(), "test-secret", opts)
	ctx := context.Background()

	token, err := m.Login(ctx, 1)
	require.NoError(t, err)

	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "live", 1, time.Hour))
	require.NoError(t, s.Put(ctx, "stale", 2, -time.Second))

	_, ok, err := s.Get(ctx, "live")
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = s.Get(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Del(ctx, "live"))
	_, ok, err = s.Get(ctx, "live")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTokenFromRequest(t *testing.T) {
	m := newTestManager()

	r := httptest.NewRequest(http.MethodGet, "/orders", nil)
	assert.Empty(t, m.TokenFromRequest(r))

	r = httptest.NewRequest(http.MethodGet, "/orders", nil)
	r.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", m.TokenFromRequest(r))

	// The cookie wins over the header.
	r = httptest.NewRequest(http.MethodGet, "/orders", nil)
	r.AddCookie(&http.Cookie{Name: DefaultOptions().CookieName, Value: "from-cookie"})
	r.Header.Set("Authorization", "Bearer from-header")
	assert.Equal(t, "from-cookie", m.TokenFromRequest(r))
}

func TestCookieLifecycle(t *testing.T) {
	m := newTestManager()

	cookie := m.Cookie("tok")
	assert.Equal(t, "vyapar_session", cookie.Name)
	assert.Equal(t, "tok", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Positive(t, cookie.MaxAge)

	cleared := m.ClearCookie()
	assert.Equal(t, cookie.Name, cleared.Name)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}
