package repo

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/apollohq/wireframe-to-code-backend/internal/domain"
)

func TestEnsureUser_CreatesThenReuses(t *testing.T) {
	db := newRepoDB(t, &domain.UserAccount{})

	u, err := EnsureUser(context.Background(), db, "dev@example.com", "Dev", 3)
	if err != nil {
		t.Fatalf("EnsureUser (create): %v", err)
	}
	if u.Credits != 3 || u.Name != "Dev" {
		t.Fatalf("unexpected new account: %+v", u)
	}

	// A second call must not reset the balance.
	if err := DecrementCredits(context.Background(), db, "dev@example.com"); err != nil {
		t.Fatalf("DecrementCredits: %v", err)
	}
	again, err := EnsureUser(context.Background(), db, "dev@example.com", "Dev Renamed", 3)
	if err != nil {
		t.Fatalf("EnsureUser (reuse): %v", err)
	}
	if again.Credits != 2 {
		t.Fatalf("EnsureUser reset credits: %+v", again)
	}
	if again.Name != "Dev" {
		t.Fatalf("EnsureUser overwrote existing profile: %+v", again)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	db := newRepoDB(t, &domain.UserAccount{})
	if _, err := GetUser(context.Background(), db, "missing@example.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestGetCredits(t *testing.T) {
	db := newRepoDB(t, &domain.UserAccount{})
	if _, err := EnsureUser(context.Background(), db, "dev@example.com", "Dev", 5); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := GetCredits(context.Background(), db, "dev@example.com")
	if err != nil {
		t.Fatalf("GetCredits: %v", err)
	}
	if got != 5 {
		t.Fatalf("credits = %d, want 5", got)
	}

	if _, err := GetCredits(context.Background(), db, "missing@example.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestDecrementCredits_DownToZeroThenInsufficient(t *testing.T) {
	db := newRepoDB(t, &domain.UserAccount{})
	if _, err := EnsureUser(context.Background(), db, "dev@example.com", "Dev", 2); err != nil {
		t.Fatalf("seed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := DecrementCredits(context.Background(), db, "dev@example.com"); err != nil {
			t.Fatalf("decrement %d: %v", i+1, err)
		}
	}
	got, err := GetCredits(context.Background(), db, "dev@example.com")
	if err != nil {
		t.Fatalf("GetCredits: %v", err)
	}
	if got != 0 {
		t.Fatalf("credits = %d, want 0", got)
	}

	// Balance never goes negative; the exhausted case is its own error.
	err = DecrementCredits(context.Background(), db, "dev@example.com")
	if !errors.Is(err, ErrInsufficientCredits) {
		t.Fatalf("expected ErrInsufficientCredits, got %v", err)
	}
	if got, _ := GetCredits(context.Background(), db, "dev@example.com"); got != 0 {
		t.Fatalf("credits went negative: %d", got)
	}
}

func TestDecrementCredits_MissingUser(t *testing.T) {
	db := newRepoDB(t, &domain.UserAccount{})
	err := DecrementCredits(context.Background(), db, "missing@example.com")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
