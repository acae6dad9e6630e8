package migrations

import (
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260101000001_create_items_table", &CreateItemsTable{})
	migration.Register("20260101000002_create_cart_items_table", &CreateCartItemsTable{})
	migration.Register("20260101000003_create_orders_tables", &CreateOrdersTables{})
	migration.Register("20260101000004_create_payment_incidents_table", &CreatePaymentIncidentsTable{})
}

// -------- 0000: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0001: items --------

type CreateItemsTable struct{}

func (m *CreateItemsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Item{})
}

func (m *CreateItemsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("items")
}

// -------- 0002: cart_items --------

type CreateCartItemsTable struct{}

func (m *CreateCartItemsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.CartItem{})
}

func (m *CreateCartItemsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("cart_items")
}

// -------- 0003: orders + order_items --------

type CreateOrdersTables struct{}

func (m *CreateOrdersTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *CreateOrdersTables) Down(db *gorm.DB) error {
	if err := db.Migrator().DropTable("order_items"); err != nil {
		return err
	}
	return db.Migrator().DropTable("orders")
}

// -------- 0004: payment_incidents --------

type CreatePaymentIncidentsTable struct{}

func (m *CreatePaymentIncidentsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.PaymentIncident{})
}

func (m *CreatePaymentIncidentsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("payment_incidents")
}
