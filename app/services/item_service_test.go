package services

import (
	"context"
	"testing"

	apperr "github.com/shashiranjanraj/storefront/app/errors"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func i64Ptr(n int64) *int64   { return &n }

func TestCreateItemSetsOwner(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "seller@example.com")

	svc := NewItemService(db)
	item, err := svc.Create(as(user), ItemInput{
		Title:       "Mug",
		Description: "Enamel, 350ml",
		Price:       1450,
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, item.UserID)

	_, err = svc.Create(context.Background(), ItemInput{Title: "x", Description: "y"})
	assert.Equal(t, apperr.Unauthenticated, apperr.KindOf(err))
}

func TestCreateItemValidation(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "seller@example.com")

	svc := NewItemService(db)
	_, err := svc.Create(as(user), ItemInput{Description: "no title"})
	assert.Equal(t, apperr.ValidationFailed, apperr.KindOf(err))
}

func TestUpdateItemOwnershipGate(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	stranger := createUser(t, db, "stranger@example.com")
	editor := createUser(t, db, "editor@example.com", models.PermItemUpdate)
	item := createItem(t, db, owner, "Mug", 1450)

	svc := NewItemService(db)

	// A signed-in non-owner without elevated permissions is rejected.
	_, err := svc.Update(as(stranger), item.ID, ItemUpdate{Price: i64Ptr(1)})
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	// The owner may edit without any elevated permission.
	updated, err := svc.Update(as(owner), item.ID, ItemUpdate{Title: strPtr("Big Mug")})
	require.NoError(t, err)
	assert.Equal(t, "Big Mug", updated.Title)

	// ITEMUPDATE lets a non-owner edit.
	updated, err = svc.Update(as(editor), item.ID, ItemUpdate{Price: i64Ptr(1600)})
	require.NoError(t, err)
	assert.Equal(t, int64(1600), updated.Price)

	// Partial update left the other fields alone.
	assert.Equal(t, "Big Mug", updated.Title)

	_, err = svc.Update(as(owner), item.ID, ItemUpdate{Price: i64Ptr(-5)})
	assert.Equal(t, apperr.ValidationFailed, apperr.KindOf(err))
}

func TestDeleteItemOwnershipGate(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	stranger := createUser(t, db, "stranger@example.com")
	admin := createUser(t, db, "admin@example.com", models.PermAdmin)
	keep := createItem(t, db, owner, "Keep", 100)
	gone := createItem(t, db, owner, "Gone", 100)

	svc := NewItemService(db)

	_, err := svc.Delete(as(stranger), keep.ID)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	// ITEMUPDATE alone does not grant delete.
	editor := createUser(t, db, "editor@example.com", models.PermItemUpdate)
	_, err = svc.Delete(as(editor), keep.ID)
	assert.Equal(t, apperr.Forbidden, apperr.KindOf(err))

	deleted, err := svc.Delete(as(admin), gone.ID)
	require.NoError(t, err)
	assert.Equal(t, gone.ID, deleted.ID)

	_, err = svc.Find(gone.ID)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	deleted, err = svc.Delete(as(owner), keep.ID)
	require.NoError(t, err)
	assert.Equal(t, keep.ID, deleted.ID)
}

func TestItemsPagination(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com")
	for i := 0; i < 5; i++ {
		createItem(t, db, owner, "Item", 100)
	}

	svc := NewItemService(db)
	items, pagination, err := svc.All(1, 2)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, int64(5), pagination.Total)
	assert.Equal(t, 3, pagination.TotalPages)
}
