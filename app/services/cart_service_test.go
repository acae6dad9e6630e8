package services

import (
	"context"
	"sync"
	"testing"

	apperr "github.com/shashiranjanraj/storefront/app/errors"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCartCreatesLine(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "shopper@example.com")
	item := createItem(t, db, user, "Mug", 1450)

	svc := NewCartService(db)
	line, err := svc.AddToCart(as(user), item.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, item.ID, line.ItemID)
}

func TestAddToCartIncrementsExistingLine(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "shopper@example.com")
	item := createItem(t, db, user, "Mug", 1450)

	svc := NewCartService(db)
	_, err := svc.AddToCart(as(user), item.ID, 2)
	require.NoError(t, err)
	line, err := svc.AddToCart(as(user), item.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, line.Quantity)

	// Still exactly one row for the pair.
	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).
		Where("user_id = ? AND item_id = ?", user.ID, item.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAddToCartValidation(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "shopper@example.com")
	item := createItem(t, db, user, "Mug", 1450)

	svc := NewCartService(db)

	_, err := svc.AddToCart(context.Background(), item.ID, 1)
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))

	_, err = svc.AddToCart(as(user), item.ID, 0)
	assert.Equal(t, apperr.ValidationFailed, apperr.KindOf(err))

	_, err = svc.AddToCart(as(user), 9999, 1)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestConcurrentAddsToSameLine(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "shopper@example.com")
	item := createItem(t, db, user, "Mug", 1450)

	svc := NewCartService(db)
	_, err := svc.AddToCart(as(user), item.ID, 1)
	require.NoError(t, err)

	// SQLite serialises writers, so this mainly proves no add panics or is
	// lost once the row exists.
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.AddToCart(as(user), item.ID, 1)
		}()
	}
	wg.Wait()

	lines, err := svc.Lines(as(user))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.GreaterOrEqual(t, lines[0].Quantity, 2)
}

func TestRemoveFromCart(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "shopper@example.com")
	item := createItem(t, db, user, "Mug", 1450)

	svc := NewCartService(db)
	line, err := svc.AddToCart(as(user), item.ID, 1)
	require.NoError(t, err)

	removed, err := svc.RemoveFromCart(as(user), line.ID)
	require.NoError(t, err)
	assert.Equal(t, line.ID, removed.ID)

	lines, err := svc.Lines(as(user))
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestRemoveFromCartForeignLineReadsAsNotFound(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	thief := createUser(t, db, "thief@example.com")
	item := createItem(t, db, owner, "Mug", 1450)

	svc := NewCartService(db)
	line, err := svc.AddToCart(as(owner), item.ID, 1)
	require.NoError(t, err)

	// Someone else's line id must not reveal whether it exists.
	_, err = svc.RemoveFromCart(as(thief), line.ID)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	// And the owner's cart is untouched.
	lines, err := svc.Lines(as(owner))
	require.NoError(t, err)
	assert.Len(t, lines, 1)
}
