// Package controller holds the data access helpers shared by the per entity controllers.
package controller

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

const (
	// DefaultLimit is used when a list request carries no limit.
	DefaultLimit = 100

	// MaxLimit caps the page size of list requests.
	MaxLimit = 500
)

var (
	// ErrNotFound is wrapped by every entity specific not found error.
	ErrNotFound = errors.New("not found")

	// ErrConflict is wrapped by every entity specific duplicate error.
	ErrConflict = errors.New("already exists")

	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Page bounds a list query.
type Page struct {
	Skip  int
	Limit int
}

// Scope applies offset and limit, a zero limit means DefaultLimit.
func (p Page) Scope(db *gorm.DB) *gorm.DB {
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	if limit > MaxLimit {
		limit = MaxLimit
	}

	return db.Offset(max(p.Skip, 0)).Limit(limit)
}

// Translate maps gorm errors onto the sentinels of this package.
// notFound replaces gorm.ErrRecordNotFound, conflict replaces gorm.ErrDuplicatedKey.
func Translate(err, notFound, conflict error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", conflict, err)
	default:
		return err
	}
}

// FindByID loads the row whose primary key column equals id.
func FindByID[T any](db *gorm.DB, column, id string, notFound error) (*T, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var row T
	if err := db.Where(column+" = ?", id).First(&row).Error; err != nil {
		return nil, Translate(err, notFound, ErrConflict)
	}

	return &row, nil
}

// FindAll returns every row matching the optional scopes.
func FindAll[T any](db *gorm.DB, scopes ...func(*gorm.DB) *gorm.DB) ([]T, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	rows := []T{}
	if err := db.Scopes(scopes...).Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

// UpdateByID applies changes (column name to value) to the row with the given id
// and returns the reloaded row. Empty changes only reload.
func UpdateByID[T any](db *gorm.DB, column, id string, changes map[string]any, notFound, conflict error) (*T, error) {
	row, err := FindByID[T](db, column, id, notFound)
	if err != nil {
		return nil, err
	}

	if len(changes) == 0 {
		return row, nil
	}

	if err = db.Model(row).Updates(changes).Error; err != nil {
		return nil, Translate(err, notFound, conflict)
	}

	return FindByID[T](db, column, id, notFound)
}

// DeleteByID removes the row with the given id, dependents go with it by foreign key cascade.
func DeleteByID[T any](db *gorm.DB, column, id string, notFound error) error {
	if db == nil {
		return ErrDBNil
	}

	var row T

	result := db.Where(column+" = ?", id).Delete(&row)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return notFound
	}

	return nil
}

// Exists reports whether a row of T matches the query.
func Exists[T any](db *gorm.DB, query string, args ...any) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	var (
		row   T
		count int64
	)

	if err := db.Model(&row).Where(query, args...).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}
