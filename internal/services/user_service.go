package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/apollohq/wireframe-to-code-backend/internal/domain"
	"github.com/apollohq/wireframe-to-code-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// UserService manages account registration and the credit balance view.
type UserService struct {
	DB *gorm.DB

	// DefaultCredits seeds the balance of newly registered accounts.
	DefaultCredits int
}

// Register returns the account for email, creating it with the default
// credit balance when it does not exist yet. Re-registering never resets an
// existing balance or profile.
func (s *UserService) Register(ctx context.Context, email, name string) (*domain.UserAccount, error) {
	tr := otel.Tracer("services/UserService")
	ctx, span := tr.Start(ctx, "Register")
	defer span.End()

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, ErrMissingEmail
	}
	return repo.EnsureUser(ctx, s.DB, email, strings.TrimSpace(name), s.DefaultCredits)
}

// Profile returns the account for email, including the remaining credits.
func (s *UserService) Profile(ctx context.Context, email string) (*domain.UserAccount, error) {
	tr := otel.Tracer("services/UserService")
	ctx, span := tr.Start(ctx, "Profile",
		trace.WithAttributes(attribute.Bool("email.present", email != "")),
	)
	defer span.End()

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, ErrMissingEmail
	}
	u, err := repo.GetUser(ctx, s.DB, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
