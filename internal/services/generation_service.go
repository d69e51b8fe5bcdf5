// Package services – GenerationService
//
// This file implements GenerationService, the application-level component
// that owns the wireframe-to-code generation lifecycle. It validates inputs,
// runs the vision model as the success gate, and persists the record and the
// credit charge in one transaction so a stored generation always corresponds
// to exactly one spent credit.
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// include the record uid and owner where applicable.

package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/apollohq/wireframe-to-code-backend/internal/domain"
	"github.com/apollohq/wireframe-to-code-backend/internal/inference"
	"github.com/apollohq/wireframe-to-code-backend/internal/repo"
	"github.com/apollohq/wireframe-to-code-backend/internal/storage"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// VisionClient is the narrow inference surface the generation flow needs.
type VisionClient interface {
	Complete(ctx context.Context, model, system string, parts []inference.Part) (string, error)
}

// GenerationService coordinates inference, persistence, and credit
// accounting for wireframe generations.
type GenerationService struct {
	DB     *gorm.DB
	Store  storage.Store
	Vision VisionClient

	// SystemPrompt steers the vision model toward HTML/CSS output.
	SystemPrompt string

	// MaxImageBytes caps the decoded size of an inline Base64Image.
	// Zero disables the check.
	MaxImageBytes int64
}

// DecodedImageSize upper-bounds the decoded byte length of an inline image
// reference. A data-URL header, when present, is not part of the payload.
func DecodedImageSize(ref string) int64 {
	payload := ref
	if strings.HasPrefix(ref, "data:") {
		if i := strings.IndexByte(ref, ','); i >= 0 {
			payload = ref[i+1:]
		}
	}
	return int64(base64.StdEncoding.DecodedLen(len(payload)))
}

// CreateInput is the request to record a new generation.
type CreateInput struct {
	UID         string
	Description string
	ImageURL    string
	Model       string
	Email       string

	// Base64Image, when set, is a data URL of the wireframe; the service
	// then runs inference itself and stores the generated code with the
	// record. When empty the code is written back later via UpdateCode.
	Base64Image string
}

func (in *CreateInput) validate(maxImageBytes int64) error {
	in.UID = strings.TrimSpace(in.UID)
	in.Description = strings.TrimSpace(in.Description)
	in.Email = strings.TrimSpace(in.Email)
	switch {
	case in.UID == "":
		return ErrMissingUID
	case in.Description == "":
		return ErrEmptyDescription
	case in.Email == "":
		return ErrMissingEmail
	case in.ImageURL == "":
		return ErrMissingImage
	case !inference.IsAllowed(in.Model):
		return ErrInvalidModel
	case in.Base64Image != "" && maxImageBytes > 0 && DecodedImageSize(in.Base64Image) > maxImageBytes:
		return ErrImageTooLarge
	}
	return nil
}

// Create validates the request, optionally runs the vision model as the
// success gate, then inserts the record and charges one credit in a single
// transaction. A generation that reaches the database has always cost
// exactly one credit; a request that fails anywhere costs nothing stored.
//
// Completed inference is not refunded when the transaction fails afterwards;
// the upstream call cannot be rolled back.
func (s *GenerationService) Create(ctx context.Context, in CreateInput) (*domain.WireframeRecord, error) {
	tr := otel.Tracer("services/GenerationService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(
			attribute.String("record.uid", in.UID),
			attribute.String("model", in.Model),
		),
	)
	defer span.End()

	if err := in.validate(s.MaxImageBytes); err != nil {
		return nil, err
	}

	// Cheap pre-check so an exhausted balance never burns an inference call.
	// The transaction below remains the authoritative gate.
	credits, err := repo.GetCredits(ctx, s.DB, in.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if credits <= 0 {
		return nil, ErrInsufficientCredits
	}

	var code string
	if in.Base64Image != "" {
		code, err = s.Vision.Complete(ctx, in.Model, s.SystemPrompt, []inference.Part{
			inference.TextPart(in.Description),
			inference.ImagePart(in.Base64Image),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInferenceFailed, err)
		}
	}

	rec := &domain.WireframeRecord{
		UID:         in.UID,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Model:       in.Model,
		Code:        code,
		CreatedBy:   in.Email,
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.DecrementCredits(ctx, tx, in.Email); err != nil {
			return err
		}
		_, err := repo.InsertRecord(ctx, tx, rec)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrInsufficientCredits):
			return nil, ErrInsufficientCredits
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return rec, nil
}

// Get returns the record for uid.
func (s *GenerationService) Get(ctx context.Context, uid string) (*domain.WireframeRecord, error) {
	tr := otel.Tracer("services/GenerationService")
	ctx, span := tr.Start(ctx, "Get",
		trace.WithAttributes(attribute.String("record.uid", uid)),
	)
	defer span.End()

	if strings.TrimSpace(uid) == "" {
		return nil, ErrMissingUID
	}
	rec, err := repo.GetRecordByUID(ctx, s.DB, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return rec, nil
}

// ListByOwner returns the owner's records, newest first.
func (s *GenerationService) ListByOwner(ctx context.Context, email string) ([]domain.WireframeRecord, error) {
	tr := otel.Tracer("services/GenerationService")
	ctx, span := tr.Start(ctx, "ListByOwner")
	defer span.End()

	if strings.TrimSpace(email) == "" {
		return nil, ErrMissingEmail
	}
	return repo.ListRecordsByOwner(ctx, s.DB, email)
}

// UpdateCode writes the generated (or regenerated) code back to the record.
// Only the code column changes; description, image, model, and owner are
// untouched, and no credit is charged.
func (s *GenerationService) UpdateCode(ctx context.Context, uid, code string) error {
	tr := otel.Tracer("services/GenerationService")
	ctx, span := tr.Start(ctx, "UpdateCode",
		trace.WithAttributes(attribute.String("record.uid", uid)),
	)
	defer span.End()

	if strings.TrimSpace(uid) == "" {
		return ErrMissingUID
	}
	if err := repo.UpdateRecordCode(ctx, s.DB, uid, code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	return nil
}

// Delete removes the stored image object first and the database row second.
// An object-store failure aborts the whole operation so the record never
// points at a half-deleted generation; an already-missing object is treated
// as deleted. Image URLs not managed by the store (external hosts) are left
// alone.
func (s *GenerationService) Delete(ctx context.Context, uid string) error {
	tr := otel.Tracer("services/GenerationService")
	ctx, span := tr.Start(ctx, "Delete",
		trace.WithAttributes(attribute.String("record.uid", uid)),
	)
	defer span.End()

	if strings.TrimSpace(uid) == "" {
		return ErrMissingUID
	}
	rec, err := repo.GetRecordByUID(ctx, s.DB, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return err
	}

	if rec.ImageURL != "" && s.Store != nil && s.Store.Owns(rec.ImageURL) {
		if err := s.Store.Delete(ctx, rec.ImageURL); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
			return fmt.Errorf("%w: %v", ErrUploadFailed, err)
		}
	}

	if err := repo.DeleteRecordByUID(ctx, s.DB, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		return err
	}
	return nil
}
