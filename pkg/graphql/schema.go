package graphql

import (
	"github.com/graphql-go/graphql"
)

// NewSchema creates a new GraphQL schema from the provided root objects.
// mutation may be nil for a read-only schema.
func NewSchema(query, mutation *graphql.Object) (graphql.Schema, error) {
	cfg := graphql.SchemaConfig{Query: query}
	if mutation != nil {
		cfg.Mutation = mutation
	}
	return graphql.NewSchema(cfg)
}
