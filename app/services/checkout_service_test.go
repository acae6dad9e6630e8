package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	apperr "github.com/shashiranjanraj/storefront/app/errors"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/payment"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func fillCart(t *testing.T, db *gorm.DB, user models.User, contents map[models.Item]int) {
	t.Helper()
	carts := repositories.NewCartRepository(db)
	for item, qty := range contents {
		_, err := carts.AddOrIncrement(user.ID, item.ID, qty)
		require.NoError(t, err)
	}
}

func TestCartTotal(t *testing.T) {
	lines := []models.CartItem{
		{Quantity: 3, Item: models.Item{Price: 1999}},
		{Quantity: 1, Item: models.Item{Price: 50}},
	}
	assert.Equal(t, int64(3*1999+50), CartTotal(lines))
	assert.Equal(t, int64(0), CartTotal(nil))
}

func TestCheckoutHappyPath(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "buyer@example.com")
	mug := createItem(t, db, user, "Mug", 1450)
	hat := createItem(t, db, user, "Hat", 2500)
	fillCart(t, db, user, map[models.Item]int{mug: 2, hat: 1})

	gateway := payment.NewFakeGateway()
	svc := NewCheckoutService(db, gateway)

	order, err := svc.Checkout(as(user), "tok_visa")
	require.NoError(t, err)

	assert.Equal(t, int64(2*1450+2500), order.Total)
	assert.Equal(t, 1, gateway.Calls())
	assert.Equal(t, order.Total, gateway.Charges[0].Amount)
	assert.NotEmpty(t, order.Charge)
	assert.Len(t, order.Items, 2)

	// The cart was cleared in the same transaction.
	lines, err := repositories.NewCartRepository(db).LinesForUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)

	// The order row is really there with its snapshots.
	saved, err := repositories.NewOrderRepository(db).FindByID(order.ID)
	require.NoError(t, err)
	assert.Len(t, saved.Items, 2)
}

func TestCheckoutSnapshotsSurviveCatalogueEdits(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "buyer@example.com")
	item := createItem(t, db, user, "Backpack", 7999)
	fillCart(t, db, user, map[models.Item]int{item: 1})

	svc := NewCheckoutService(db, payment.NewFakeGateway())
	order, err := svc.Checkout(as(user), "tok_visa")
	require.NoError(t, err)

	// Reprice and rename the live item after the sale.
	item.Price = 100
	item.Title = "Discount Backpack"
	require.NoError(t, db.Save(&item).Error)

	saved, err := repositories.NewOrderRepository(db).FindByID(order.ID)
	require.NoError(t, err)
	require.Len(t, saved.Items, 1)
	assert.Equal(t, "Backpack", saved.Items[0].Title)
	assert.Equal(t, int64(7999), saved.Items[0].Price)
	assert.Equal(t, int64(7999), saved.Total)
}

func TestCheckoutRequiresAuth(t *testing.T) {
	db := newTestDB(t)
	gateway := payment.NewFakeGateway()
	svc := NewCheckoutService(db, gateway)

	_, err := svc.Checkout(context.Background(), "tok_visa")
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
	assert.Zero(t, gateway.Calls())
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "buyer@example.com")

	gateway := payment.NewFakeGateway()
	svc := NewCheckoutService(db, gateway)

	_, err := svc.Checkout(as(user), "tok_visa")
	assert.Equal(t, apperr.ValidationFailed, apperr.KindOf(err))
	assert.Zero(t, gateway.Calls(), "an empty cart must never reach the gateway")
}

func TestCheckoutPaymentFailureWritesNothing(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "buyer@example.com")
	item := createItem(t, db, user, "Mug", 1450)
	fillCart(t, db, user, map[models.Item]int{item: 1})

	gateway := payment.NewFakeGateway()
	gateway.FailWith = apperr.New(apperr.PaymentFailed, "card declined")
	svc := NewCheckoutService(db, gateway)

	_, err := svc.Checkout(as(user), "tok_bad")
	assert.Equal(t, apperr.PaymentFailed, apperr.KindOf(err))

	// Cart untouched, no order, no incident.
	lines, err := repositories.NewCartRepository(db).LinesForUser(user.ID)
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)

	open, err := repositories.NewIncidentRepository(db).Unresolved()
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestCheckoutRetryAfterPaymentFailure(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "buyer@example.com")
	item := createItem(t, db, user, "Mug", 1450)
	fillCart(t, db, user, map[models.Item]int{item: 1})

	gateway := payment.NewFakeGateway()
	gateway.FailWith = apperr.New(apperr.PaymentFailed, "card declined")
	svc := NewCheckoutService(db, gateway)

	_, err := svc.Checkout(as(user), "tok_bad")
	require.Equal(t, apperr.PaymentFailed, apperr.KindOf(err))

	// A fresh call with a working card succeeds: the lock was released and
	// the cart is still intact.
	gateway.FailWith = nil
	order, err := svc.Checkout(as(user), "tok_visa")
	require.NoError(t, err)
	assert.Equal(t, int64(1450), order.Total)
	assert.Equal(t, 1, gateway.Calls())
}

func TestCheckoutInconsistencyIsRecorded(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "buyer@example.com")
	item := createItem(t, db, user, "Mug", 1450)
	fillCart(t, db, user, map[models.Item]int{item: 1})

	// The fake gateway's first charge id collides with this pre-existing
	// order, so the order insert fails after the charge succeeded.
	require.NoError(t, db.Create(&models.Order{
		UserID: user.ID, Total: 1, Charge: "ch_fake_000001",
	}).Error)

	gateway := payment.NewFakeGateway()
	svc := NewCheckoutService(db, gateway)

	_, err := svc.Checkout(as(user), "tok_visa")
	require.Error(t, err)
	assert.Equal(t, apperr.Inconsistent, apperr.KindOf(err))

	// The caller sees a masked message, not the charge id.
	assert.NotContains(t, apperr.UserMessage(err), "ch_fake")

	// The charge id landed in the incident table for reconciliation.
	open, openErr := repositories.NewIncidentRepository(db).Unresolved()
	require.NoError(t, openErr)
	require.Len(t, open, 1)
	assert.Equal(t, "ch_fake_000001", open[0].ChargeID)
	assert.Equal(t, int64(1450), open[0].Amount)

	// The failed transaction rolled back: the cart still has its line.
	lines, linesErr := repositories.NewCartRepository(db).LinesForUser(user.ID)
	require.NoError(t, linesErr)
	assert.Len(t, lines, 1)
}

func TestCheckoutClearsOnlyCapturedLines(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "buyer@example.com")
	mug := createItem(t, db, user, "Mug", 1450)
	hat := createItem(t, db, user, "Hat", 2500)
	fillCart(t, db, user, map[models.Item]int{mug: 2})

	// A second add lands while the charge is in flight, after the checkout
	// captured its line ids.
	gateway := payment.NewFakeGateway()
	carts := repositories.NewCartRepository(db)
	gateway.OnCharge = func(payment.ChargeRequest) {
		_, err := carts.AddOrIncrement(user.ID, hat.ID, 1)
		require.NoError(t, err)
	}

	svc := NewCheckoutService(db, gateway)
	order, err := svc.Checkout(as(user), "tok_visa")
	require.NoError(t, err)
	assert.Equal(t, int64(2900), order.Total)

	// The late line survives the clear; only the charged lines are gone.
	lines, err := carts.LinesForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, hat.ID, lines[0].ItemID)
}

func TestCheckoutLockBlocksConcurrentAttempt(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "buyer@example.com")
	item := createItem(t, db, user, "Mug", 1450)
	fillCart(t, db, user, map[models.Item]int{item: 1})

	lock, err := cache.TryLock(fmt.Sprintf("storefront:checkout:%d", user.ID), time.Minute)
	require.NoError(t, err)
	defer lock.Unlock()

	gateway := payment.NewFakeGateway()
	svc := NewCheckoutService(db, gateway)

	_, err = svc.Checkout(as(user), "tok_visa")
	assert.Equal(t, apperr.ValidationFailed, apperr.KindOf(err))
	assert.Zero(t, gateway.Calls())
}

func TestOrderVisibility(t *testing.T) {
	db := newTestDB(t)
	buyer := createUser(t, db, "buyer@example.com")
	other := createUser(t, db, "other@example.com")
	admin := createUser(t, db, "admin@example.com", models.PermAdmin)
	item := createItem(t, db, buyer, "Mug", 1450)
	fillCart(t, db, buyer, map[models.Item]int{item: 1})

	svc := NewCheckoutService(db, payment.NewFakeGateway())
	order, err := svc.Checkout(as(buyer), "tok_visa")
	require.NoError(t, err)

	_, err = svc.Order(as(buyer), order.ID)
	assert.NoError(t, err)

	_, err = svc.Order(as(other), order.ID)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	_, err = svc.Order(as(admin), order.ID)
	assert.NoError(t, err)

	mine, _, err := svc.Orders(as(buyer), 1, 10)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, _, err := svc.Orders(as(other), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}
