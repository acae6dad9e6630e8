package rbac

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/stretchr/testify/assert"
)

func TestHasAny(t *testing.T) {
	ctx := middleware.WithUser(context.Background(), 1, []string{"USER", "ITEMUPDATE"})

	assert.True(t, HasAny(ctx, "ITEMUPDATE"))
	assert.True(t, HasAny(ctx, "ADMIN", "USER"))
	assert.False(t, HasAny(ctx, "ADMIN"))
	assert.True(t, HasAny(ctx), "empty requirement is always satisfied")

	assert.False(t, HasAny(context.Background(), "USER"), "no session holds nothing")
}

func TestRequire(t *testing.T) {
	handler := Require("ADMIN")(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	serve := func(ctx context.Context) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, serve(context.Background()))
	assert.Equal(t, http.StatusForbidden,
		serve(middleware.WithUser(context.Background(), 1, []string{"USER"})))
	assert.Equal(t, http.StatusOK,
		serve(middleware.WithUser(context.Background(), 1, []string{"ADMIN"})))
}
