// Package rbac gates requests and service calls on the permission names
// carried by the session. It deals in plain strings so the framework layer
// stays ignorant of application permission types.
package rbac

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

// HasAny reports whether the context's session carries at least one of the
// required permission names. An empty required list is always satisfied.
func HasAny(ctx context.Context, required ...string) bool {
	if len(required) == 0 {
		return true
	}
	for _, held := range middleware.Permissions(ctx) {
		for _, want := range required {
			if held == want {
				return true
			}
		}
	}
	return false
}

// Require returns middleware that allows access only to sessions holding
// at least one of the given permissions. Requires middleware.Auth to have
// already run.
func Require(required ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := middleware.UserID(r.Context()); !ok {
				response.Unauthorized(w)
				return
			}
			if !HasAny(r.Context(), required...) {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Guest returns middleware that blocks authenticated users (useful for
// signup/signin endpoints).
func Guest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.UserID(r.Context()); ok {
			response.Error(w, http.StatusConflict, "Already authenticated")
			return
		}
		next.ServeHTTP(w, r)
	})
}
