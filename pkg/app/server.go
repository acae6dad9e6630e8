package app

// pkg/app/server.go — bridges Application → internal/server.
// The only job of this file is to build the HTTP handler (via kernel.go)
// and pass it to the internal server that actually binds the port.

import (
	"net/http"

	"github.com/shashiranjanraj/storefront/internal/server"
)

// startServer hands the handler builder to internal/server.Start, which
// connects the stores before building so route callbacks see a live DB.
func startServer(a *Application) error {
	return server.Start(func() http.Handler { return buildHandler(a) })
}
