package repositories

import (
	"time"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/orm"
	"gorm.io/gorm"
)

// itemListCacheTTL bounds how stale the public item listing may be.
const itemListCacheTTL = 30 * time.Second

// ItemRepository handles database operations for catalogue items.
type ItemRepository struct {
	q *orm.Query
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{q: orm.New(db)}
}

// FindByID looks up an item by primary key.
func (r *ItemRepository) FindByID(id uint) (models.Item, error) {
	var item models.Item
	err := r.q.Model(&models.Item{}).Where("id = ?", id).First(&item)
	return item, translate(err, "item")
}

// Create persists a new item.
func (r *ItemRepository) Create(item *models.Item) error {
	return translate(r.q.Create(item), "item")
}

// Update persists changes to an existing item.
func (r *ItemRepository) Update(item *models.Item) error {
	return translate(r.q.Save(item), "item")
}

// Delete removes an item. Cart lines referencing it are left in place;
// checkout snapshots cart prices at read time, and order history is
// already decoupled via OrderItem.
func (r *ItemRepository) Delete(id uint) error {
	affected, err := r.q.Model(&models.Item{}).Where("id = ?", id).Delete(&models.Item{})
	if err == nil && affected == 0 {
		return translate(gorm.ErrRecordNotFound, "item")
	}
	return translate(err, "item")
}

// All returns a page of the catalogue ordered newest-first.
func (r *ItemRepository) All(page, limit int) ([]models.Item, orm.Pagination, error) {
	var items []models.Item
	pagination, err := r.q.Model(&models.Item{}).Order("created_at DESC").
		GetWithPagination(&items, page, limit)
	return items, pagination, translate(err, "items")
}

// Recent returns the newest items through the cache.
func (r *ItemRepository) Recent(limit int) ([]models.Item, error) {
	var items []models.Item
	err := r.q.Model(&models.Item{}).Order("created_at DESC").
		Cache("storefront:items:recent", itemListCacheTTL, &items)
	if err != nil {
		return nil, translate(err, "items")
	}
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
