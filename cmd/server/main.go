// cmd/server is the storefront application binary.
//
//	go run ./cmd/server serve
//	go run ./cmd/server migrate
//	go run ./cmd/server seed
package main

import (
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/routes"
	"github.com/shashiranjanraj/storefront/database/seeders"
	"github.com/shashiranjanraj/storefront/pkg/app"
	"github.com/shashiranjanraj/storefront/pkg/database"
	"github.com/shashiranjanraj/storefront/pkg/logger"

	_ "github.com/shashiranjanraj/storefront/database/migrations"
)

func main() {
	app.New().
		Routes(routes.Register).
		AutoMigrate(
			&models.User{},
			&models.Item{},
			&models.CartItem{},
			&models.Order{},
			&models.OrderItem{},
			&models.PaymentIncident{},
		).
		Seeders(func() {
			if err := seeders.RunAll(database.DB); err != nil {
				logger.Error("seeding failed", "error", err)
			}
		}).
		Run()
}
