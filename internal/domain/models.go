// Package domain defines the persistence models for wireframe generation
// records and user accounts. These types are mapped with GORM and form the
// core data layer of the wireframe-to-code application.
package domain

import "time"

// WireframeRecord represents one image-to-code generation request and its
// result. A record is created only after the inference gate succeeds; its
// generated code may be written back later (first stream completion or a
// regeneration) without touching any other field.
//
// Fields:
//   - ID: auto-incrementing storage identity; newest-first listings order
//     by this column, not by UID.
//   - UID: client-generated UUID correlating the upload, inference, and
//     persistence steps before the row exists.
//   - Description: free text describing the desired page.
//   - ImageURL: durable retrieval URL of the uploaded wireframe image.
//   - Model: identifier of the inference model used.
//   - Code: generated markup; empty until the first successful inference
//     completes and is written back.
//   - CreatedBy: owning user's email.
type WireframeRecord struct {
	ID          int64     `json:"id"          gorm:"primaryKey;autoIncrement"`
	UID         string    `json:"uid"         gorm:"type:varchar(64);not null;index:idx_record_uid"`
	Description string    `json:"description" gorm:"type:text;not null"`
	ImageURL    string    `json:"imageUrl"    gorm:"type:text;not null"`
	Model       string    `json:"model"       gorm:"type:varchar(128);not null"`
	Code        string    `json:"code"        gorm:"type:text"`
	CreatedBy   string    `json:"createdBy"   gorm:"type:varchar(255);not null;index:idx_record_owner"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the database table name for WireframeRecord.
func (WireframeRecord) TableName() string { return "wireframe_records" }

// UserAccount represents an authenticated user and their consumable credit
// balance. Email is the identity key; every generation record references it
// through CreatedBy.
//
// Credits gate how many generations a user may perform. The balance is only
// ever changed through a conditional single-statement decrement (see
// repo.DecrementCredits), so it cannot go negative under concurrent
// generations.
type UserAccount struct {
	Email     string    `json:"email"   gorm:"type:varchar(255);primaryKey"`
	Name      string    `json:"name"    gorm:"type:varchar(255)"`
	Credits   int       `json:"credits" gorm:"not null;default:0;check:credits >= 0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for UserAccount.
func (UserAccount) TableName() string { return "users" }
