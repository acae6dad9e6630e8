package graphql

import (
	"testing"

	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/router"
	"github.com/shashiranjanraj/storefront/pkg/testkit"
)

// Scenario-driven coverage of the endpoint as it is mounted in production:
// POST /graphql behind middleware.Auth.
func TestGraphQLEndpointScenarios(t *testing.T) {
	schema, _ := newSchema(t)

	r := router.New()
	r.Post("/graphql", "graphql", Handler(schema), middleware.Auth)

	testkit.RunDir(t, r.Handler(), "testdata")
}
