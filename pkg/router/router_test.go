package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func tagMiddleware(tag string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Trace", tag)
			next.ServeHTTP(w, r)
		})
	}
}

func TestNamedRoutes(t *testing.T) {
	r := New()
	r.Get("/orders", "orders.list", okHandler)
	r.Post("/orders", "orders.create", okHandler)
	r.Put("/orders/{id}", "orders.update", okHandler)

	infos := r.Routes()
	require.Len(t, infos, 3)

	path, ok := r.Path("orders.update")
	require.True(t, ok)
	assert.Equal(t, "/orders/{id}", path)

	_, ok = r.Path("missing")
	assert.False(t, ok)
}

func TestURLBuilding(t *testing.T) {
	r := New()
	r.Put("/orders/{id}", "orders.update", okHandler)

	url, err := r.URL("orders.update", map[string]string{"id": "7"})
	require.NoError(t, err)
	assert.Equal(t, "/orders/7", url)

	_, err = r.URL("orders.update", nil)
	assert.Error(t, err, "unsubstituted params must fail")

	_, err = r.URL("missing", nil)
	assert.Error(t, err)
}

func TestGroupPrefixAndMiddleware(t *testing.T) {
	r := New()
	api := r.Group("/api", tagMiddleware("group"))
	api.Get("/orders", "orders.list", okHandler, tagMiddleware("route"))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	// Group middleware runs before route middleware.
	assert.Equal(t, []string{"group", "route"}, rec.Header().Values("X-Trace"))
}

func TestNestedGroups(t *testing.T) {
	r := New()
	v1 := r.Group("/v1").Group("/admin")
	v1.Get("/stats", "admin.stats", okHandler)

	path, ok := r.Path("admin.stats")
	require.True(t, ok)
	assert.Equal(t, "/v1/admin/stats", path)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/admin/stats", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMethodNotMatched(t *testing.T) {
	r := New()
	r.Get("/orders", "orders.list", okHandler)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/orders", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
