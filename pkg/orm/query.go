// Package orm is a thin query layer over GORM. A Query is bound to an
// explicit *gorm.DB handle so repositories receive their database as a
// constructor dependency and tests can hand in an isolated sqlite handle.
package orm

import (
	"time"

	"gorm.io/gorm"
)

// Cacher is the cache hook used by Query.Cache. pkg/app wires the Redis
// cache in here at boot; it stays nil in tests.
var CacheStore Cacher

// Cacher abstracts pkg/cache so orm does not import it (avoids a cycle).
type Cacher interface {
	Get(key string, dest interface{}) bool
	Set(key string, value interface{}, ttl time.Duration) error
}

// Pagination describes one page of a larger result set.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type Query struct {
	db *gorm.DB
}

// New binds a Query to a database handle.
func New(db *gorm.DB) *Query {
	return &Query{db: db}
}

// Gorm exposes the underlying handle for operations the wrapper does not
// cover (locking clauses, raw SQL).
func (q *Query) Gorm() *gorm.DB { return q.db }

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Preload(association string) *Query {
	return &Query{db: q.db.Preload(association)}
}

func (q *Query) Order(value string) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

func (q *Query) Create(value interface{}) error {
	return q.db.Create(value).Error
}

func (q *Query) Save(value interface{}) error {
	return q.db.Save(value).Error
}

// Delete removes matching rows and reports how many were affected, so
// callers can distinguish "deleted" from "was never there".
func (q *Query) Delete(value interface{}) (int64, error) {
	res := q.db.Delete(value)
	return res.RowsAffected, res.Error
}

// Transaction runs fn inside a database transaction. The callback receives
// a Query bound to the transactional handle.
func (q *Query) Transaction(fn func(tx *Query) error) error {
	return q.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

// GetWithPagination fills dest with one page and returns page metadata.
func (q *Query) GetWithPagination(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var total int64
	if err := q.db.Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (page - 1) * limit
	if err := q.db.Offset(offset).Limit(limit).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}, nil
}

// Cache reads dest through CacheStore when configured, falling back to the
// database and populating the cache on a miss.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if CacheStore != nil && CacheStore.Get(key, dest) {
		return nil
	}

	if err := q.db.Find(dest).Error; err != nil {
		return err
	}

	if CacheStore != nil {
		return CacheStore.Set(key, dest, ttl)
	}
	return nil
}
