package graphql

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
)

// request is the standard GraphQL-over-HTTP POST body.
type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler serves POST /graphql. Session cookies ride on the response writer
// threaded through the resolver context.
func Handler(schema graphql.Schema) http.HandlerFunc {
	return ctx.Wrap(func(c *ctx.Context) {
		var req request
		if !c.BindJSON(&req) {
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        withResponseWriter(c.Context(), c.W),
		})
		c.JSON(http.StatusOK, result)
	})
}
