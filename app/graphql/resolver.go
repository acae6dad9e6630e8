// Package graphql exposes the storefront's API: a single /graphql endpoint
// whose query side reads the catalogue, cart and orders, and whose mutation
// side covers accounts, items, cart edits and checkout.
package graphql

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/graphql-go/graphql"
	apperr "github.com/shashiranjanraj/storefront/app/errors"
	"github.com/shashiranjanraj/storefront/app/payment"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"gorm.io/gorm"
)

// Resolver bundles the services the schema resolves against. Construct it
// once at boot and share it across requests.
type Resolver struct {
	Auth     *services.AuthService
	Items    *services.ItemService
	Cart     *services.CartService
	Checkout *services.CheckoutService
}

// NewResolver wires the default service graph.
func NewResolver(db *gorm.DB, gateway payment.Gateway, mailer services.Mailer) *Resolver {
	return &Resolver{
		Auth:     services.NewAuthService(db, mailer),
		Items:    services.NewItemService(db),
		Cart:     services.NewCartService(db),
		Checkout: services.NewCheckoutService(db, gateway),
	}
}

type ctxKey int

const responseWriterKey ctxKey = 1

// withResponseWriter lets cookie-setting resolvers (signup, signin, signout,
// resetPassword) reach the response while resolving.
func withResponseWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, responseWriterKey, w)
}

func responseWriter(ctx context.Context) http.ResponseWriter {
	w, _ := ctx.Value(responseWriterKey).(http.ResponseWriter)
	return w
}

// resolve wraps a resolver so clients only ever see the user-facing message.
// The full error chain goes to the log.
func resolve(fn graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		out, err := fn(p)
		if err == nil {
			return out, nil
		}
		if apperr.KindOf(err) == 0 || apperr.KindOf(err) == apperr.StoreUnavailable {
			logger.WithCtx(p.Context).Error("resolver failed", "field", p.Info.FieldName, "error", err)
		}
		return nil, errors.New(apperr.UserMessage(err))
	}
}

// setSession stores the session token as the HTTP-only cookie, when the
// resolver runs under an HTTP request.
func setSession(ctx context.Context, token string) {
	if w := responseWriter(ctx); w != nil {
		auth.SetSessionCookie(w, token)
	}
}

func clearSession(ctx context.Context) {
	if w := responseWriter(ctx); w != nil {
		auth.ClearSessionCookie(w)
	}
}

// argID reads an ID argument. graphql-go hands IDs over as strings.
func argID(p graphql.ResolveParams, name string) (uint, error) {
	switch v := p.Args[name].(type) {
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, apperr.New(apperr.ValidationFailed, name+" must be a numeric id")
		}
		return uint(n), nil
	case int:
		if v < 0 {
			return 0, apperr.New(apperr.ValidationFailed, name+" must be a numeric id")
		}
		return uint(v), nil
	default:
		return 0, apperr.New(apperr.ValidationFailed, name+" is required")
	}
}

func argString(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

func argInt(p graphql.ResolveParams, name string, def int) int {
	if n, ok := p.Args[name].(int); ok {
		return n
	}
	return def
}

// optString returns the argument as a pointer, nil when absent, for partial
// updates.
func optString(p graphql.ResolveParams, name string) *string {
	if s, ok := p.Args[name].(string); ok {
		return &s
	}
	return nil
}

func optInt64(p graphql.ResolveParams, name string) *int64 {
	if n, ok := p.Args[name].(int); ok {
		v := int64(n)
		return &v
	}
	return nil
}
