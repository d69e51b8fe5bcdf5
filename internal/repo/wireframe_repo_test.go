package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/apollohq/wireframe-to-code-backend/internal/domain"
)

func newRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func seedRecord(t *testing.T, db *gorm.DB, uid, owner string) *domain.WireframeRecord {
	t.Helper()
	rec := &domain.WireframeRecord{
		UID:         uid,
		Description: "a login page with email and password fields",
		ImageURL:    "http://localhost:8080/files/wireframes/" + uid + ".png",
		Model:       "deepseek/deepseek-chat-v3-0324:free",
		CreatedBy:   owner,
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("seed %s: %v", uid, err)
	}
	return rec
}

func TestInsertRecord_Error_NoTable(t *testing.T) {
	db := newRepoDB(t /* no migrations */)
	_, err := InsertRecord(context.Background(), db, &domain.WireframeRecord{UID: "u"})
	if err == nil {
		t.Fatalf("expected error inserting without table")
	}
}

func TestInsertRecord_AssignsIdentityAndTimestamp(t *testing.T) {
	db := newRepoDB(t, &domain.WireframeRecord{})

	start := time.Now().UTC().Add(-time.Minute)
	rec, err := InsertRecord(context.Background(), db, &domain.WireframeRecord{
		UID:         "uid-1",
		Description: "desc",
		ImageURL:    "http://x/files/wireframes/1.png",
		Model:       "m",
		CreatedBy:   "a@b.com",
	})
	if err != nil {
		t.Fatalf("InsertRecord: %v", err)
	}
	if rec.ID == 0 {
		t.Fatalf("expected storage identity to be assigned, got %+v", rec)
	}
	if rec.CreatedAt.Before(start) {
		t.Fatalf("CreatedAt seems unset/really old: %v", rec.CreatedAt)
	}
}

func TestGetRecordByUID_FoundAndNotFound(t *testing.T) {
	db := newRepoDB(t, &domain.WireframeRecord{})

	if _, err := GetRecordByUID(context.Background(), db, "missing"); err == nil {
		t.Fatalf("expected ErrNotFound for missing uid")
	}

	seedRecord(t, db, "uid-1", "a@b.com")
	got, err := GetRecordByUID(context.Background(), db, "uid-1")
	if err != nil {
		t.Fatalf("GetRecordByUID: %v", err)
	}
	if got.UID != "uid-1" || got.CreatedBy != "a@b.com" {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestGetRecordByUID_Idempotent(t *testing.T) {
	db := newRepoDB(t, &domain.WireframeRecord{})
	seedRecord(t, db, "uid-1", "a@b.com")

	first, err := GetRecordByUID(context.Background(), db, "uid-1")
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	second, err := GetRecordByUID(context.Background(), db, "uid-1")
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if *first != *second {
		t.Fatalf("lookups disagree without mutation:\n%+v\n%+v", first, second)
	}
}

func TestListRecordsByOwner_NewestFirstAndFiltered(t *testing.T) {
	db := newRepoDB(t, &domain.WireframeRecord{})

	// Insertion order assigns increasing IDs; listing must reverse it.
	seedRecord(t, db, "uid-1", "a@b.com")
	seedRecord(t, db, "uid-2", "a@b.com")
	seedRecord(t, db, "uid-x", "other@b.com")
	seedRecord(t, db, "uid-3", "a@b.com")

	list, err := ListRecordsByOwner(context.Background(), db, "a@b.com")
	if err != nil {
		t.Fatalf("ListRecordsByOwner: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 records, got %d", len(list))
	}
	if list[0].UID != "uid-3" || list[1].UID != "uid-2" || list[2].UID != "uid-1" {
		t.Fatalf("unexpected order: %v %v %v", list[0].UID, list[1].UID, list[2].UID)
	}
}

func TestUpdateRecordCode_ReplacesOnlyCode(t *testing.T) {
	db := newRepoDB(t, &domain.WireframeRecord{})
	orig := seedRecord(t, db, "uid-1", "a@b.com")

	if err := UpdateRecordCode(context.Background(), db, "uid-1", "<html></html>"); err != nil {
		t.Fatalf("UpdateRecordCode: %v", err)
	}

	got, err := GetRecordByUID(context.Background(), db, "uid-1")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Code != "<html></html>" {
		t.Fatalf("code not replaced: %q", got.Code)
	}
	if got.Description != orig.Description || got.ImageURL != orig.ImageURL ||
		got.Model != orig.Model || got.CreatedBy != orig.CreatedBy {
		t.Fatalf("non-code fields changed: %+v", got)
	}
}

func TestUpdateRecordCode_NotFound(t *testing.T) {
	db := newRepoDB(t, &domain.WireframeRecord{})
	if err := UpdateRecordCode(context.Background(), db, "missing", "x"); err == nil {
		t.Fatalf("expected ErrNotFound for missing uid")
	}
}

func TestDeleteRecordByUID_RoundTrip(t *testing.T) {
	db := newRepoDB(t, &domain.WireframeRecord{})
	seedRecord(t, db, "uid-1", "a@b.com")

	if err := DeleteRecordByUID(context.Background(), db, "uid-1"); err != nil {
		t.Fatalf("DeleteRecordByUID: %v", err)
	}
	if _, err := GetRecordByUID(context.Background(), db, "uid-1"); err == nil {
		t.Fatalf("expected not-found after delete")
	}
	// Deleting again reports not-found, not success.
	if err := DeleteRecordByUID(context.Background(), db, "uid-1"); err == nil {
		t.Fatalf("expected ErrNotFound on second delete")
	}
}

func TestCountRecordsByOwner(t *testing.T) {
	db := newRepoDB(t, &domain.WireframeRecord{})
	seedRecord(t, db, "uid-1", "a@b.com")
	seedRecord(t, db, "uid-2", "a@b.com")
	seedRecord(t, db, "uid-x", "other@b.com")

	total, err := CountRecordsByOwner(context.Background(), db, "a@b.com")
	if err != nil {
		t.Fatalf("CountRecordsByOwner: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2, got %d", total)
	}
}
