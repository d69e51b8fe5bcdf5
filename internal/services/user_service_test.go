package services

import (
	"context"
	"errors"
	"testing"
)

func TestRegister_SeedsDefaultCredits(t *testing.T) {
	svc := &UserService{DB: newServiceDB(t), DefaultCredits: 3}

	u, err := svc.Register(context.Background(), " Dev@Example.com ", "Dev")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.Email != "dev@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.Credits != 3 {
		t.Fatalf("credits = %d, want 3", u.Credits)
	}

	// Re-registering keeps the existing account as-is.
	again, err := svc.Register(context.Background(), "dev@example.com", "Other Name")
	if err != nil {
		t.Fatalf("Register again: %v", err)
	}
	if again.Name != "Dev" || again.Credits != 3 {
		t.Fatalf("re-register mutated account: %+v", again)
	}
}

func TestRegister_RequiresEmail(t *testing.T) {
	svc := &UserService{DB: newServiceDB(t), DefaultCredits: 3}
	if _, err := svc.Register(context.Background(), "  ", "Dev"); !errors.Is(err, ErrMissingEmail) {
		t.Fatalf("expected ErrMissingEmail, got %v", err)
	}
}

func TestProfile(t *testing.T) {
	svc := &UserService{DB: newServiceDB(t), DefaultCredits: 2}
	if _, err := svc.Profile(context.Background(), "nobody@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if _, err := svc.Register(context.Background(), "dev@example.com", "Dev"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	u, err := svc.Profile(context.Background(), "dev@example.com")
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if u.Credits != 2 {
		t.Fatalf("credits = %d, want 2", u.Credits)
	}
}
