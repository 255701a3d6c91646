// Package orm is a thin chainable wrapper over GORM used by repositories.
//
// It adds three things the raw API spreads out: explicit eager loading via
// With, offset pagination with metadata, and an optional read-through cache
// for hot read paths.
package orm

import (
	"time"

	"github.com/shashiranjanraj/vypar/pkg/database"
	"gorm.io/gorm"
)

// Cacher is the read-through cache plugged in at boot (pkg/cache satisfies
// it). Nil disables caching entirely.
type Cacher interface {
	Get(key string, dest interface{}) bool
	Set(key string, value interface{}, ttl time.Duration) error
	Forget(key string) error
}

// CacheStore is installed by the server during boot.
var CacheStore Cacher

type Query struct {
	db *gorm.DB
}

// DB starts a query on the global connection.
func DB() *Query {
	return &Query{db: database.DB}
}

// Wrap starts a query on an explicit *gorm.DB (e.g. a transaction handle).
func Wrap(db *gorm.DB) *Query {
	return &Query{db: db}
}

// Raw exposes the underlying handle for operations the wrapper does not
// cover (associations, column updates, composite-key deletes).
func (q *Query) Raw() *gorm.DB {
	return q.db
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Order(value interface{}) *Query {
	return &Query{db: q.db.Order(value)}
}

// With eager-loads the named associations, e.g. With("Items", "Payment").
// Read operations take this list explicitly instead of hiding fetch hints
// in model annotations.
func (q *Query) With(associations ...string) *Query {
	db := q.db
	for _, a := range associations {
		db = db.Preload(a)
	}
	return &Query{db: db}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

func (q *Query) Count(count *int64) error {
	return q.db.Count(count).Error
}

func (q *Query) Create(value interface{}) error {
	return q.db.Create(value).Error
}

func (q *Query) Save(value interface{}) error {
	return q.db.Save(value).Error
}

func (q *Query) Delete(value interface{}) error {
	return q.db.Delete(value).Error
}

// ── Pagination ───────────────────────────────────────────────────────────────

// Pagination describes one page of a paged listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// GetWithPagination fills dest with one page of results and returns the page
// metadata. Page and limit are clamped to sane values.
func (q *Query) GetWithPagination(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	var total int64
	if err := q.db.Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (page - 1) * limit
	if err := q.db.Offset(offset).Limit(limit).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}, nil
}

// ── Read-through cache ───────────────────────────────────────────────────────

// Cache runs the query only on a cache miss, storing the result under key
// for ttl. With no CacheStore installed it degrades to a plain Get.
func (q *Query) Cache(key string, ttl time.Duration, dest interface{}) error {
	if CacheStore != nil && CacheStore.Get(key, dest) {
		return nil
	}

	if err := q.db.Find(dest).Error; err != nil {
		return err
	}

	if CacheStore != nil {
		_ = CacheStore.Set(key, dest, ttl)
	}
	return nil
}

// Invalidate drops a cached key after a write.
func Invalidate(key string) {
	if CacheStore != nil {
		_ = CacheStore.Forget(key)
	}
}
