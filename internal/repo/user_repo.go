// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// UserAccount model and its credit ledger.
//
// The credit balance is the only shared mutable resource in the system, so
// the decrement is a single conditional UPDATE rather than read-then-write:
// concurrent generations cannot drive the balance below zero, and exactly
// one of two racing callers wins the last credit.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/apollohq/wireframe-to-code-backend/internal/domain"
)

// ErrInsufficientCredits is returned by DecrementCredits when the balance
// is already zero at the time of the conditional update.
var ErrInsufficientCredits = errors.New("insufficient credits")

// EnsureUser returns the account for email, creating it with the given
// starting balance when absent. Creation is idempotent: a concurrent insert
// losing the primary-key race falls back to reading the winner's row.
func EnsureUser(ctx context.Context, db *gorm.DB, email, name string, startingCredits int) (*domain.UserAccount, error) {
	u, err := GetUser(ctx, db, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := &domain.UserAccount{
		Email:     email,
		Name:      name,
		Credits:   startingCredits,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(created).Error; err != nil {
		// Lost a concurrent-create race; the existing row is authoritative.
		if existing, gerr := GetUser(ctx, db, email); gerr == nil {
			return existing, nil
		}
		return nil, err
	}
	return created, nil
}

// GetUser fetches an account by email or returns ErrNotFound.
func GetUser(ctx context.Context, db *gorm.DB, email string) (*domain.UserAccount, error) {
	var u domain.UserAccount
	if err := db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetCredits returns the current credit balance for email, or ErrNotFound
// when the account does not exist.
func GetCredits(ctx context.Context, db *gorm.DB, email string) (int, error) {
	u, err := GetUser(ctx, db, email)
	if err != nil {
		return 0, err
	}
	return u.Credits, nil
}

// DecrementCredits atomically charges one credit:
//
//	UPDATE users SET credits = credits - 1 WHERE email = ? AND credits > 0
//
// RowsAffected == 0 means either the account is missing or the balance is
// exhausted; the two are disambiguated with a follow-up read so callers get
// ErrNotFound vs ErrInsufficientCredits.
func DecrementCredits(ctx context.Context, db *gorm.DB, email string) error {
	res := db.WithContext(ctx).
		Model(&domain.UserAccount{}).
		Where("email = ? AND credits > 0", email).
		UpdateColumn("credits", gorm.Expr("credits - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := GetUser(ctx, db, email); err != nil {
			return err
		}
		return ErrInsufficientCredits
	}
	return nil
}
