// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// WireframeRecord model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a record is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
//
// Ordering: listings are newest-first by the auto-incrementing ID column;
// UID is a correlation key, never an ordering key.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/apollohq/wireframe-to-code-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// InsertRecord persists a new generation record and returns it with the
// storage-assigned numeric identity populated.
func InsertRecord(ctx context.Context, db *gorm.DB, rec *domain.WireframeRecord) (*domain.WireframeRecord, error) {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	if err := db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// GetRecordByUID fetches a single record by its client-generated UID.
// If no row matches, it returns ErrNotFound. When the UID is (erroneously)
// not unique, the oldest row wins, matching the source behavior of
// returning the first match.
func GetRecordByUID(ctx context.Context, db *gorm.DB, uid string) (*domain.WireframeRecord, error) {
	var rec domain.WireframeRecord
	err := db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("id asc").
		First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListRecordsByOwner returns all records created by the given email,
// newest first (id descending). It returns an empty slice when the owner
// has no records.
func ListRecordsByOwner(ctx context.Context, db *gorm.DB, email string) ([]domain.WireframeRecord, error) {
	var out []domain.WireframeRecord
	err := db.WithContext(ctx).
		Where("created_by = ?", email).
		Order("id desc").
		Find(&out).Error
	return out, err
}

// UpdateRecordCode replaces the code field of the record identified by uid.
// All other fields are left untouched. Returns ErrNotFound when no row
// matches.
func UpdateRecordCode(ctx context.Context, db *gorm.DB, uid, code string) error {
	res := db.WithContext(ctx).
		Model(&domain.WireframeRecord{}).
		Where("uid = ?", uid).
		Update("code", code)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteRecordByUID removes the record row. The caller is responsible for
// deleting the stored image object first; this function never touches the
// object store. Returns ErrNotFound when no row matches.
func DeleteRecordByUID(ctx context.Context, db *gorm.DB, uid string) error {
	res := db.WithContext(ctx).
		Where("uid = ?", uid).
		Delete(&domain.WireframeRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountRecordsByOwner returns the number of records owned by email.
func CountRecordsByOwner(ctx context.Context, db *gorm.DB, email string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.WireframeRecord{}).
		Where("created_by = ?", email).
		Count(&total).Error
	return total, err
}
