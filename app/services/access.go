package services

import (
	"context"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/rbac"
)

// granted reports whether the session in ctx holds at least one of the
// required permissions. Bridges the typed permission set onto the
// string-based rbac layer.
func granted(ctx context.Context, required ...models.Permission) bool {
	return rbac.HasAny(ctx, models.PermissionSet(required).Strings()...)
}
