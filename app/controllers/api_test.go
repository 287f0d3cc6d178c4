package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/shashiranjanraj/vyapar/app/models"
	"github.com/shashiranjanraj/vyapar/internal/kernel"
	"github.com/shashiranjanraj/vyapar/pkg/database"
	"github.com/shashiranjanraj/vyapar/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestApp boots the full application over a throwaway sqlite file and an
// in-memory session store, so every test exercises the real middleware stack
// and route table.
func newTestApp(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()

	db, err := database.Open("sqlite", filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Order{}))

	sessions := session.NewManager(session.NewMemoryStore(), "test-secret", session.DefaultOptions())
	return kernel.New(db, sessions).Handler(), db
}

func doJSON(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	r := httptest.NewRequest(method, path, reader)
	r.Header.Set("Content-Type", "application/json")
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dest))
}

type orderPayload struct {
	ID       uint   `json:"id"`
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
}

type userPayload struct {
	ID       uint           `json:"id"`
	Username string         `json:"username"`
	Orders   []orderPayload `json:"orders"`
}

type errPayload struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

func register(t *testing.T, h http.Handler, username, password string) userPayload {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/register", "",
		`{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var user userPayload
	decode(t, rec, &user)
	return user
}

func login(t *testing.T, h http.Handler, username, password string) string {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/login", "",
		`{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	token := rec.Header().Get("X-Session-Token")
	require.NotEmpty(t, token)
	return token
}

func createOrder(t *testing.T, h http.Handler, token string, quantity int) orderPayload {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/orders", token,
		`{"quantity":`+strconv.Itoa(quantity)+`}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var order orderPayload
	decode(t, rec, &order)
	return order
}

func listOrders(t *testing.T, h http.Handler, token string) []orderPayload {
	t.Helper()

	rec := doJSON(t, h, http.MethodGet, "/orders", token, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var orders []orderPayload
	decode(t, rec, &orders)
	return orders
}

// ─── Registration ────────────────────────────────────────────────────────────

func TestRegisterReturnsUserWithoutPassword(t *testing.T) {
	h, _ := newTestApp(t)

	rec := doJSON(t, h, http.MethodPost, "/register", "",
		`{"username":"alice","password":"secret-pw"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var user userPayload
	decode(t, rec, &user)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotNil(t, user.Orders)
	assert.Empty(t, user.Orders)

	// A fresh user serialises orders as [], and no hash ever leaks.
	assert.Contains(t, rec.Body.String(), `"orders":[]`)
	assert.NotContains(t, strings.ToLower(rec.Body.String()), "password")
}

func TestRegisterDuplicateUsername(t *testing.T) {
	h, db := newTestApp(t)

	register(t, h, "alice", "first-pw")

	rec := doJSON(t, h, http.MethodPost, "/register", "",
		`{"username":"alice","password":"second-pw"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errPayload
	decode(t, rec, &body)
	assert.Equal(t, "Username already exists", body.Message)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("username = ?", "alice").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterValidation(t *testing.T) {
	h, _ := newTestApp(t)

	cases := map[string]string{
		"missing password":   `{"username":"alice"}`,
		"missing username":   `{"password":"pw"}`,
		"empty body":         `{}`,
		"username with dots": `{"username":"alice.smith","password":"pw"}`,
	}
	for name, body := range cases {
		rec := doJSON(t, h, http.MethodPost, "/register", "", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}

	rec := doJSON(t, h, http.MethodPost, "/register", "", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ─── Login / logout ──────────────────────────────────────────────────────────

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	h, _ := newTestApp(t)
	register(t, h, "alice", "right-pw")

	unknown := doJSON(t, h, http.MethodPost, "/login", "",
		`{"username":"nobody","password":"whatever"}`)
	wrongPw := doJSON(t, h, http.MethodPost, "/login", "",
		`{"username":"alice","password":"wrong-pw"}`)

	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.JSONEq(t, unknown.Body.String(), wrongPw.Body.String())
}

func TestLoginSetsCookieAndReturnsOrders(t *testing.T) {
	h, _ := newTestApp(t)
	register(t, h, "alice", "pw")

	token := login(t, h, "alice", "pw")
	createOrder(t, h, token, 2)
	createOrder(t, h, token, 5)

	rec := doJSON(t, h, http.MethodPost, "/login", "",
		`{"username":"alice","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "vyapar_session" {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "session cookie not set")
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	var user userPayload
	decode(t, rec, &user)
	require.Len(t, user.Orders, 2)
	assert.Equal(t, 2, user.Orders[0].Quantity)
	assert.Equal(t, 5, user.Orders[1].Quantity)
}

func TestSessionCookieAuthenticates(t *testing.T) {
	h, _ := newTestApp(t)
	register(t, h, "alice", "pw")

	rec := doJSON(t, h, http.MethodPost, "/login", "",
		`{"username":"alice","password":"pw"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	r := httptest.NewRequest(http.MethodGet, "/orders", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	out := httptest.NewRecorder()
	h.ServeHTTP(out, r)
	assert.Equal(t, http.StatusOK, out.Code)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	h, _ := newTestApp(t)
	register(t, h, "alice", "pw")
	token := login(t, h, "alice", "pw")

	rec := doJSON(t, h, http.MethodGet, "/logout", token, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	// The token's signature is still valid, but the session is gone.
	rec = doJSON(t, h, http.MethodGet, "/orders", token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutWithoutSession(t *testing.T) {
	h, _ := newTestApp(t)

	rec := doJSON(t, h, http.MethodGet, "/logout", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/logout", "garbage-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─── Orders ──────────────────────────────────────────────────────────────────

func TestOrdersRequireSession(t *testing.T) {
	h, _ := newTestApp(t)

	paths := []struct{ method, path string }{
		{http.MethodPost, "/orders"},
		{http.MethodGet, "/orders"},
		{http.MethodPut, "/orders/1"},
		{http.MethodDelete, "/orders/1"},
	}
	for _, p := range paths {
		rec := doJSON(t, h, p.method, p.path, "", `{"quantity":1}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
	}
}

func TestCreateOrderDefaultsToOpen(t *testing.T) {
	h, _ := newTestApp(t)
	register(t, h, "alice", "pw")
	token := login(t, h, "alice", "pw")

	order := createOrder(t, h, token, 3)
	assert.NotZero(t, order.ID)
	assert.Equal(t, 3, order.Quantity)
	assert.Equal(t, "open", order.Status)
}

func TestCreateOrderValidation(t *testing.T) {
	h, _ := newTestApp(t)
	register(t, h, "alice", "pw")
	token := login(t, h, "alice", "pw")

	for name, body := range map[string]string{
		"zero quantity":     `{"quantity":0}`,
		"negative quantity": `{"quantity":-4}`,
		"missing quantity":  `{}`,
		"string quantity":   `{"quantity":"three"}`,
	} {
		rec := doJSON(t, h, http.MethodPost, "/orders", token, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}

func TestListIsOwnerScoped(t *testing.T) {
	h, _ := newTestApp(t)

	register(t, h, "alice", "pw")
	register(t, h, "bob", "pw")
	alice := login(t, h, "alice", "pw")
	bob := login(t, h, "bob", "pw")

	createOrder(t, h, alice, 1)
	createOrder(t, h, alice, 2)
	createOrder(t, h, bob, 9)

	aliceOrders := listOrders(t, h, alice)
	require.Len(t, aliceOrders, 2)
	assert.Equal(t, 1, aliceOrders[0].Quantity)
	assert.Equal(t, 2, aliceOrders[1].Quantity)

	bobOrders := listOrders(t, h, bob)
	require.Len(t, bobOrders, 1)
	assert.Equal(t, 9, bobOrders[0].Quantity)
}

func TestEmptyListSerialisesAsArray(t *testing.T) {
	h, _ := newTestApp(t)
	register(t, h, "alice", "pw")
	token := login(t, h, "alice", "pw")

	rec := doJSON(t, h, http.MethodGet, "/orders", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestUpdateOrder(t *testing.T) {
	h, _ := newTestApp(t)
	register(t, h, "alice", "pw")
	token := login(t, h, "alice", "pw")
	order := createOrder(t, h, token, 3)

	rec := doJSON(t, h, http.MethodPut, "/orders/"+orderID(order), token,
		`{"status":"shipped"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated orderPayload
	decode(t, rec, &updated)
	assert.Equal(t, order.ID, updated.ID)
	assert.Equal(t, "shipped", updated.Status)
	assert.Equal(t, 3, updated.Quantity)

	orders := listOrders(t, h, token)
	require.Len(t, orders, 1)
	assert.Equal(t, "shipped", orders[0].Status)
}

func orderID(o orderPayload) string {
	return strconv.FormatUint(uint64(o.ID), 10)
}

func TestDeleteOrder(t *testing.T) {
	h, _ := newTestApp(t)
	register(t, h, "alice", "pw")
	token := login(t, h, "alice", "pw")
	order := createOrder(t, h, token, 3)

	rec := doJSON(t, h, http.MethodDelete, "/orders/"+orderID(order), token, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	assert.Empty(t, listOrders(t, h, token))

	// A second delete finds nothing.
	rec = doJSON(t, h, http.MethodDelete, "/orders/"+orderID(order), token, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMutationPrecedence(t *testing.T) {
	h, _ := newTestApp(t)

	register(t, h, "alice", "pw")
	register(t, h, "bob", "pw")
	alice := login(t, h, "alice", "pw")
	bob := login(t, h, "bob", "pw")
	order := createOrder(t, h, alice, 3)
	id := orderID(order)

	// Missing order → 404, even with an invalid payload.
	rec := doJSON(t, h, http.MethodPut, "/orders/99999", alice, `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Non-numeric id → 404.
	rec = doJSON(t, h, http.MethodPut, "/orders/abc", alice, `{"status":"shipped"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Someone else's order → 403, even with an invalid payload.
	rec = doJSON(t, h, http.MethodPut, "/orders/"+id, bob, `{}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = doJSON(t, h, http.MethodDelete, "/orders/"+id, bob, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Own order with a bad payload → 400, and the order is untouched.
	rec = doJSON(t, h, http.MethodPut, "/orders/"+id, alice, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	orders := listOrders(t, h, alice)
	require.Len(t, orders, 1)
	assert.Equal(t, "open", orders[0].Status)
}

// ─── Full lifecycle ──────────────────────────────────────────────────────────

func TestAccountLifecycle(t *testing.T) {
	h, _ := newTestApp(t)

	user := register(t, h, "carol", "pw-carol")
	assert.Equal(t, "carol", user.Username)

	token := login(t, h, "carol", "pw-carol")

	order := createOrder(t, h, token, 7)
	assert.Equal(t, "open", order.Status)

	orders := listOrders(t, h, token)
	require.Len(t, orders, 1)

	rec := doJSON(t, h, http.MethodPut, "/orders/"+orderID(order), token,
		`{"status":"cancelled"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/orders/"+orderID(order), token, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	assert.Empty(t, listOrders(t, h, token))

	rec = doJSON(t, h, http.MethodGet, "/logout", token, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/orders", token, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
