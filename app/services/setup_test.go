package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB opens a fresh in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Item{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.PaymentIncident{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string, perms ...models.Permission) models.User {
	t.Helper()

	hash, err := auth.HashPassword("hunter2boogaloo")
	require.NoError(t, err)

	user := models.User{Name: "Test User", Email: email, Password: hash}
	if len(perms) == 0 {
		perms = []models.Permission{models.PermUser}
	}
	user.SetPermissions(models.PermissionSet(perms))
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createItem(t *testing.T, db *gorm.DB, owner models.User, title string, price int64) models.Item {
	t.Helper()

	item := models.Item{Title: title, Description: "test item", Price: price, UserID: owner.ID}
	require.NoError(t, db.Create(&item).Error)
	return item
}

// as returns a context authenticated as user, the way middleware.Auth would
// build it from a session cookie.
func as(user models.User) context.Context {
	return middleware.WithUser(context.Background(), user.ID, user.Permissions().Strings())
}

// recordingMailer captures reset emails instead of sending them.
type recordingMailer struct {
	emails []string
	urls   []string
	fail   error
}

func (m *recordingMailer) SendPasswordReset(email, _, resetURL string) error {
	if m.fail != nil {
		return m.fail
	}
	m.emails = append(m.emails, email)
	m.urls = append(m.urls, resetURL)
	return nil
}
