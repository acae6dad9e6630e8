package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	gql "github.com/graphql-go/graphql"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/payment"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type nopMailer struct{}

func (nopMailer) SendPasswordReset(_, _, _ string) error { return nil }

var gqlDBSeq atomic.Int64

func newSchema(t *testing.T) (gql.Schema, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:gql%d?mode=memory&cache=shared", gqlDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Item{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{}, &models.PaymentIncident{},
	))

	schema, err := NewSchema(NewResolver(db, payment.NewFakeGateway(), nopMailer{}))
	require.NoError(t, err)
	return schema, db
}

func do(schema gql.Schema, ctx context.Context, query string, vars map[string]interface{}) *gql.Result {
	if ctx == nil {
		ctx = context.Background()
	}
	return gql.Do(gql.Params{
		Schema:         schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        ctx,
	})
}

func TestUserPermissionsFieldResolvesFromValueSource(t *testing.T) {
	// Resolvers receive models.User by value, so the permissions accessor
	// must work on a non-addressable source.
	var u models.User
	u.SetPermissions(models.PermissionSet{models.PermUser, models.PermAdmin})

	out, err := userType.Fields()["permissions"].Resolve(gql.ResolveParams{Source: u})
	require.NoError(t, err)
	assert.Equal(t, []string{"USER", "ADMIN"}, out)
}

func TestMeReturnsNullWhenSignedOut(t *testing.T) {
	schema, _ := newSchema(t)

	result := do(schema, nil, `{ me { id email } }`, nil)
	require.Empty(t, result.Errors)

	data := result.Data.(map[string]interface{})
	assert.Nil(t, data["me"])
}

func TestSignupSigninAndMe(t *testing.T) {
	schema, _ := newSchema(t)

	result := do(schema, nil, `
		mutation {
			signup(name: "Ada", email: "ada@example.com", password: "correct horse battery") {
				id name email permissions
			}
		}`, nil)
	require.Empty(t, result.Errors)

	signup := result.Data.(map[string]interface{})["signup"].(map[string]interface{})
	assert.Equal(t, "ada@example.com", signup["email"])
	assert.Equal(t, []interface{}{"USER"}, signup["permissions"])

	bad := do(schema, nil, `
		mutation { signin(email: "ada@example.com", password: "wrong") { id } }`, nil)
	require.NotEmpty(t, bad.Errors)
	assert.Equal(t, "Invalid email or password", bad.Errors[0].Message)

	ok := do(schema, nil, `
		mutation { signin(email: "ada@example.com", password: "correct horse battery") { id email } }`, nil)
	require.Empty(t, ok.Errors)

	// me resolves once the context carries the session.
	ctx := middleware.WithUser(context.Background(), 1, []string{"USER"})
	me := do(schema, ctx, `{ me { email } }`, nil)
	require.Empty(t, me.Errors)
	assert.Equal(t, "ada@example.com",
		me.Data.(map[string]interface{})["me"].(map[string]interface{})["email"])
}

func TestCheckoutMutationEndToEnd(t *testing.T) {
	schema, db := newSchema(t)

	user := models.User{Name: "Buyer", Email: "buyer@example.com", Password: "x"}
	user.SetPermissions(models.PermissionSet{models.PermUser})
	require.NoError(t, db.Create(&user).Error)
	ctx := middleware.WithUser(context.Background(), user.ID, user.Permissions().Strings())

	created := do(schema, ctx, `
		mutation {
			createItem(title: "Mug", description: "Enamel", price: 1450) { id price }
		}`, nil)
	require.Empty(t, created.Errors)
	itemID := created.Data.(map[string]interface{})["createItem"].(map[string]interface{})["id"]

	added := do(schema, ctx, `
		mutation($id: ID!) { addToCart(id: $id, quantity: 2) { quantity item { title } } }`,
		map[string]interface{}{"id": fmt.Sprint(itemID)})
	require.Empty(t, added.Errors)

	out := do(schema, ctx, `
		mutation { checkout(token: "tok_visa") { total charge items { title quantity } } }`, nil)
	require.Empty(t, out.Errors)

	order := out.Data.(map[string]interface{})["checkout"].(map[string]interface{})
	assert.Equal(t, 2900, order["total"])
	assert.NotEmpty(t, order["charge"])

	cart := do(schema, ctx, `{ cart { id } }`, nil)
	require.Empty(t, cart.Errors)
	assert.Empty(t, cart.Data.(map[string]interface{})["cart"])

	orders := do(schema, ctx, `{ orders { total } }`, nil)
	require.Empty(t, orders.Errors)
	assert.Len(t, orders.Data.(map[string]interface{})["orders"], 1)
}

func TestMutationsRequireAuth(t *testing.T) {
	schema, _ := newSchema(t)

	for name, query := range map[string]string{
		"createItem": `mutation { createItem(title: "x", description: "y", price: 1) { id } }`,
		"addToCart":  `mutation { addToCart(id: "1") { id } }`,
		"checkout":   `mutation { checkout(token: "tok") { id } }`,
	} {
		result := do(schema, nil, query, nil)
		assert.NotEmpty(t, result.Errors, "%s should demand a session", name)
	}
}

func TestHandlerSetsSessionCookieOnSignup(t *testing.T) {
	schema, _ := newSchema(t)
	handler := Handler(schema)

	body := `{"query":"mutation { signup(name: \"Ada\", email: \"ada@example.com\", password: \"correct horse battery\") { email } }"}`
	req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "signup must set the session cookie")
	assert.True(t, cookie.HttpOnly)

	claims, err := auth.ValidateToken(cookie.Value)
	require.NoError(t, err)
	assert.NotZero(t, claims.UserID)

	var payload struct {
		Data map[string]map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "ada@example.com", payload.Data["signup"]["email"])
}
