package repositories

import (
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"gorm.io/gorm"
)

// OrderRepository handles order persistence.
type OrderRepository struct {
	q *orm.Query
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{q: orm.New(db)}
}

// CreateAndClearCart writes the order (with its item snapshots) and deletes
// exactly the given cart-line ids in one transaction. Lines added to the
// cart after checkout captured its snapshot are not touched.
func (r *OrderRepository) CreateAndClearCart(order *models.Order, cartLineIDs []uint) error {
	err := r.q.Transaction(func(tx *orm.Query) error {
		if err := tx.Create(order); err != nil {
			return err
		}
		if len(cartLineIDs) == 0 {
			return nil
		}
		return tx.Gorm().
			Where("id IN ?", cartLineIDs).
			Delete(&models.CartItem{}).Error
	})
	return translate(err, "order")
}

// FindByID fetches one order with its snapshots.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := r.q.Model(&models.Order{}).Preload("Items").Where("id = ?", id).First(&order)
	return order, translate(err, "order")
}

// ForUser lists a user's orders, newest first.
func (r *OrderRepository) ForUser(userID uint, page, limit int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	pagination, err := r.q.Model(&models.Order{}).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		GetWithPagination(&orders, page, limit)
	return orders, pagination, translate(err, "orders")
}

// FindByCharge returns the order recorded for a gateway charge id, used by
// reconciliation to detect whether a retried write already landed.
func (r *OrderRepository) FindByCharge(chargeID string) (models.Order, error) {
	var order models.Order
	err := r.q.Model(&models.Order{}).Preload("Items").
		Where("charge = ?", chargeID).First(&order)
	return order, translate(err, "order")
}
