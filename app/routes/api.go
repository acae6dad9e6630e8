// Package routes mounts the storefront's HTTP surface and boots the
// background machinery that rides along with it (order websocket hub,
// queue listeners, scheduled maintenance).
package routes

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/shashiranjanraj/storefront/app/controllers"
	appgql "github.com/shashiranjanraj/storefront/app/graphql"
	"github.com/shashiranjanraj/storefront/app/jobs"
	"github.com/shashiranjanraj/storefront/app/payment"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/container"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/shashiranjanraj/storefront/pkg/queue"
	"github.com/shashiranjanraj/storefront/pkg/router"
	"github.com/shashiranjanraj/storefront/pkg/schedule"
	"github.com/shashiranjanraj/storefront/pkg/storage"
	"github.com/shashiranjanraj/storefront/pkg/ws"
)

// OrderEvents pushes order.created notifications to connected clients.
var OrderEvents = ws.NewHub()

var bootOnce sync.Once

// Register mounts the API on r. Called by the kernel after the stores are
// connected; also called by route:list with no live DB, so nothing here may
// touch the database directly.
func Register(r *router.Router) {
	// Collaborators resolve through the container so tests can pre-bind
	// fakes before calling Register.
	if !container.Has("payment.gateway") {
		container.Singleton("payment.gateway", func() interface{} { return payment.FromConfig() })
	}
	if !container.Has("mailer") {
		container.Singleton("mailer", func() interface{} { return jobs.QueueMailer{} })
	}
	gateway := container.Make("payment.gateway").(payment.Gateway)
	mailer := container.Make("mailer").(services.Mailer)

	resolver := appgql.NewResolver(database.DB, gateway, mailer)
	schema, err := appgql.NewSchema(resolver)
	if err != nil {
		// A schema that fails to assemble is a programming error.
		panic(fmt.Sprintf("graphql schema: %v", err))
	}

	r.Post("/graphql", "graphql", appgql.Handler(schema), middleware.Auth)
	r.Get("/healthz", "healthz", ctx.Wrap(controllers.Health))
	r.Get("/api/items", "items.index", ctx.Wrap(controllers.ListItems))
	r.Post("/upload", "upload.image", ctx.Wrap(controllers.UploadImage), middleware.Auth, middleware.RequireAuth)
	r.Get("/ws/orders", "ws.orders", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, OrderEvents)
	}, middleware.Auth, middleware.RequireAuth)

	bootOnce.Do(boot)
}

// boot starts the pieces that outlive a request. Runs once per process.
func boot() {
	storage.Connect()

	go OrderEvents.Run()

	jobs.RegisterAll()
	jobs.RegisterListeners(database.DB, OrderEvents)

	// In-process workers drain the queue even without a dedicated worker
	// deployment. `storefront workers` scales this out separately.
	queue.StartWorkers(context.Background(), 2)

	RegisterSchedules()
	go schedule.Start(context.Background())
}
