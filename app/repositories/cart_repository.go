package repositories

import (
	"errors"

	apperr "github.com/shashiranjanraj/storefront/app/errors"
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository handles cart-line persistence. The (user_id, item_id)
// unique index plus the locking transaction in AddOrIncrement are what keep
// "one line per (user, item)" true under concurrent adds.
type CartRepository struct {
	q *orm.Query
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{q: orm.New(db)}
}

// LinesForUser returns the user's cart lines with their items joined in,
// oldest first.
func (r *CartRepository) LinesForUser(userID uint) ([]models.CartItem, error) {
	var lines []models.CartItem
	err := r.q.Model(&models.CartItem{}).
		Preload("Item").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Get(&lines)
	return lines, translate(err, "cart")
}

// AddOrIncrement adds qty of an item to the user's cart. An existing line
// is incremented under a row lock; otherwise a fresh line is inserted.
// Run inside one transaction so two concurrent adds serialise instead of
// racing check-then-increment.
func (r *CartRepository) AddOrIncrement(userID, itemID uint, qty int) (models.CartItem, error) {
	var line models.CartItem

	err := r.q.Transaction(func(tx *orm.Query) error {
		db := tx.Gorm()

		err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND item_id = ?", userID, itemID).
			First(&line).Error
		switch {
		case err == nil:
			line.Quantity += qty
			return db.Save(&line).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			line = models.CartItem{UserID: userID, ItemID: itemID, Quantity: qty}
			return db.Create(&line).Error
		default:
			return err
		}
	})
	if err != nil {
		return models.CartItem{}, translate(err, "cart line")
	}

	if err := r.q.Gorm().Preload("Item").First(&line, line.ID).Error; err != nil {
		return models.CartItem{}, translate(err, "cart line")
	}
	return line, nil
}

// FindLineOwnedBy fetches a cart line only if it belongs to userID.
// A line owned by someone else reads as NotFound so the response does not
// reveal whether the id exists.
func (r *CartRepository) FindLineOwnedBy(lineID, userID uint) (models.CartItem, error) {
	var line models.CartItem
	err := r.q.Model(&models.CartItem{}).
		Preload("Item").
		Where("id = ? AND user_id = ?", lineID, userID).
		First(&line)
	return line, translate(err, "cart line")
}

// DeleteLineOwnedBy removes a single cart line scoped to its owner.
func (r *CartRepository) DeleteLineOwnedBy(lineID, userID uint) error {
	affected, err := r.q.Model(&models.CartItem{}).
		Where("id = ? AND user_id = ?", lineID, userID).
		Delete(&models.CartItem{})
	if err != nil {
		return translate(err, "cart line")
	}
	if affected == 0 {
		return apperr.New(apperr.NotFound, "cart line not found")
	}
	return nil
}

// CountForUser returns the number of cart lines a user has.
func (r *CartRepository) CountForUser(userID uint) (int64, error) {
	var n int64
	err := r.q.Gorm().Model(&models.CartItem{}).Where("user_id = ?", userID).Count(&n).Error
	return n, translate(err, "cart")
}
