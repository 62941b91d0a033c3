package query

import (
	"gorm.io/gorm"
)

type Scope func(*gorm.DB) *gorm.DB

// Query collects the clauses of a read against one table and applies them
// only when executed, so the same Query can be counted and fetched.
type Query[T any] struct {
	db      *gorm.DB
	table   string
	selects string
	joins   []string
	orderBy string
	scopes  []Scope
}

func New[T any](db *gorm.DB, table string) *Query[T] {
	return &Query[T]{
		db:     db,
		table:  table,
		scopes: make([]Scope, 0),
	}
}

func (q *Query[T]) Select(columns string) *Query[T] {
	q.selects = columns
	return q
}

func (q *Query[T]) Join(join string) *Query[T] {
	q.joins = append(q.joins, join)
	return q
}

func (q *Query[T]) Where(query interface{}, args ...interface{}) *Query[T] {
	q.scopes = append(q.scopes, func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	})
	return q
}

// Scope appends an arbitrary clause, e.g. a row lock.
func (q *Query[T]) Scope(scope Scope) *Query[T] {
	q.scopes = append(q.scopes, scope)
	return q
}

func (q *Query[T]) Order(order string) *Query[T] {
	q.orderBy = order
	return q
}

func (q *Query[T]) build() *gorm.DB {
	db := q.db.Table(q.table)
	if q.selects != "" {
		db = db.Select(q.selects)
	}
	for _, join := range q.joins {
		db = db.Joins(join)
	}
	for _, scope := range q.scopes {
		db = scope(db)
	}
	return db
}

func (q *Query[T]) Count() (int64, error) {
	var count int64
	err := q.build().Count(&count).Error
	return count, err
}

// Take returns the first matching row in no particular order, or
// gorm.ErrRecordNotFound.
func (q *Query[T]) Take() (*T, error) {
	var result T
	err := q.build().Take(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (q *Query[T]) Find() ([]T, error) {
	var results []T
	db := q.build()
	if q.orderBy != "" {
		db = db.Order(q.orderBy)
	}
	err := db.Find(&results).Error
	return results, err
}

func (q *Query[T]) Exists() (bool, error) {
	count, err := q.Count()
	return count > 0, err
}

// DB exposes the built statement without ordering, for pagination helpers
// that order on their own.
func (q *Query[T]) DB() *gorm.DB {
	return q.build()
}

func (q *Query[T]) OrderBy() string {
	return q.orderBy
}
