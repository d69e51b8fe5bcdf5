// Handler wiring.
//
// This file declares the service contracts the HTTP layer consumes and the
// Handlers aggregate that binds them. Handlers are transport-thin: they
// validate and normalize inputs, delegate to application services, and
// translate results into HTTP responses.
package handlers

import (
	"context"

	"github.com/apollohq/wireframe-to-code-backend/internal/config"
	"github.com/apollohq/wireframe-to-code-backend/internal/domain"
	"github.com/apollohq/wireframe-to-code-backend/internal/inference"
	"github.com/apollohq/wireframe-to-code-backend/internal/services"
	"github.com/apollohq/wireframe-to-code-backend/internal/storage"
)

//
// Service contracts (context-aware)
//

// GenerationService defines the wireframe generation lifecycle consumed by
// HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type GenerationService interface {
	// Create records a new generation after gating on credits (and,
	// when inline image data is present, on inference success).
	Create(ctx context.Context, in services.CreateInput) (*domain.WireframeRecord, error)
	// Get returns the record for uid.
	Get(ctx context.Context, uid string) (*domain.WireframeRecord, error)
	// ListByOwner returns the owner's records, newest first.
	ListByOwner(ctx context.Context, email string) ([]domain.WireframeRecord, error)
	// UpdateCode writes generated code back to the record.
	UpdateCode(ctx context.Context, uid, code string) error
	// Delete removes the stored image and the record.
	Delete(ctx context.Context, uid string) error
}

// UserService defines account registration and profile lookup.
type UserService interface {
	Register(ctx context.Context, email, name string) (*domain.UserAccount, error)
	Profile(ctx context.Context, email string) (*domain.UserAccount, error)
}

// EnhanceService rewrites rough prompts into structured ones. The bool
// reports whether the local fallback produced the result.
type EnhanceService interface {
	Enhance(ctx context.Context, prompt string) (string, bool, error)
}

// StreamClient is the streaming inference surface used by the ai-process
// endpoint.
type StreamClient interface {
	StreamChat(ctx context.Context, model, system string, parts []inference.Part, emit func(delta string) error) error
}

// Handlers groups the HTTP endpoints for generations, users, uploads, and
// prompt enhancement. It depends on abstract service interfaces to keep
// transport concerns separate from business logic.
type Handlers struct {
	genSvc     GenerationService
	userSvc    UserService
	enhanceSvc EnhanceService
	stream     StreamClient
	store      storage.Store

	systemPrompt  string
	maxImageBytes int64
	enhanceBounds config.EnhanceConfig
}

// New constructs a Handlers instance bound to the given services.
func New(
	genSvc GenerationService,
	userSvc UserService,
	enhanceSvc EnhanceService,
	stream StreamClient,
	store storage.Store,
	systemPrompt string,
	maxImageBytes int64,
	enhanceBounds config.EnhanceConfig,
) *Handlers {
	return &Handlers{
		genSvc:        genSvc,
		userSvc:       userSvc,
		enhanceSvc:    enhanceSvc,
		stream:        stream,
		store:         store,
		systemPrompt:  systemPrompt,
		maxImageBytes: maxImageBytes,
		enhanceBounds: enhanceBounds,
	}
}
