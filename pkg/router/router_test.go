package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoMethod(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(r.Method)) //nolint:errcheck
}

func TestVerbMethodsRoute(t *testing.T) {
	r := New()
	r.Get("/things", "things.index", echoMethod)
	r.Post("/things", "things.store", echoMethod)
	r.Put("/things/{id}", "things.update", echoMethod)
	r.Patch("/things/{id}", "things.patch", echoMethod)
	r.Delete("/things/{id}", "things.destroy", echoMethod)

	for _, method := range []string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete,
	} {
		path := "/things"
		if method != http.MethodGet && method != http.MethodPost {
			path = "/things/1"
		}
		req := httptest.NewRequest(method, path, nil)
		rec := httptest.NewRecorder()
		r.Handler().ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code, method)
		assert.Equal(t, method, rec.Body.String())
	}
}

func TestVerbsAreRegisteredAsNamedRoutes(t *testing.T) {
	r := New()
	r.Put("/items/{id}", "items.update", echoMethod)
	r.Delete("/items/{id}", "items.destroy", echoMethod)

	url, err := r.URL("items.update", map[string]string{"id": "7"})
	require.NoError(t, err)
	assert.Equal(t, "/items/7", url)

	infos := r.Routes()
	require.Len(t, infos, 2)
	assert.Equal(t, http.MethodPut, infos[0].Method)
	assert.Equal(t, http.MethodDelete, infos[1].Method)
}

func TestGroupVerbsInheritPrefix(t *testing.T) {
	r := New()
	api := r.Group("/api")
	api.Put("/items/{id}", "api.items.update", echoMethod)
	api.Patch("/items/{id}", "api.items.patch", echoMethod)
	api.Delete("/items/{id}", "api.items.destroy", echoMethod)

	req := httptest.NewRequest(http.MethodPatch, "/api/items/3", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.MethodPatch, rec.Body.String())
}
