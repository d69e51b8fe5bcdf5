// Wireframe generation HTTP handlers.
//
// This file exposes the REST surface for generation records:
//   - POST   /wireframe-to-code   (gate on credits + inference, persist record)
//   - GET    /wireframe-to-code   (single record by uid, or owner listing by email)
//   - PUT    /wireframe-to-code   (write generated code back to a record)
//   - DELETE /wireframe-to-code   (remove the image object and the record)
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/apollohq/wireframe-to-code-backend/internal/domain"
	"github.com/apollohq/wireframe-to-code-backend/internal/http/middleware"
	"github.com/apollohq/wireframe-to-code-backend/internal/services"
)

//
// DTOs
//

// CreateGenerationRequest is the JSON payload for recording a generation.
type CreateGenerationRequest struct {
	// UID is the client-generated correlation id for the record.
	UID string `json:"uid" binding:"required" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	// Description is the wireframe description fed to the vision model.
	Description string `json:"description" binding:"required" example:"a login page with email and password fields"`
	// ImageURL is the durable URL of the uploaded wireframe image.
	ImageURL string `json:"imageUrl" binding:"required" example:"http://localhost:8080/files/wireframes/1700000000_1.png"`
	// Model is one of the supported vision model identifiers.
	Model string `json:"model" binding:"required" example:"deepseek/deepseek-chat-v3-0324:free"`
	// Email identifies the owning account, charged one credit on success.
	Email string `json:"email" binding:"required" example:"dev@example.com"`
	// Base64Image optionally carries the wireframe as a data URL; when set
	// the server runs inference itself and stores the result with the record.
	Base64Image string `json:"base64Image,omitempty"`
}

// CreateGenerationResponse returns the identifiers of the stored record.
type CreateGenerationResponse struct {
	ID  int64  `json:"id" example:"7"`
	UID string `json:"uid" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
}

// UpdateCodeRequest is the JSON payload for the code write-back.
type UpdateCodeRequest struct {
	UID      string `json:"uid" binding:"required" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	CodeResp string `json:"codeResp" binding:"required"`
}

// CreateGeneration godoc
// @ID          createGeneration
// @Summary     Record a wireframe generation
// @Description Validates the request, optionally runs the vision model over the
// @Description inline image as the success gate, then stores the record and
// @Description charges exactly one credit in a single transaction.
// @Tags        Generations
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateGenerationRequest  true  "Generation payload"
// @Success     200  {object}  handlers.CreateGenerationResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     402  {object}  handlers.ErrorResponse  "Not enough credits"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Processing failed"
// @Router      /wireframe-to-code [post]
func (h *Handlers) CreateGeneration(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "uid, description, imageUrl, model and email are required")
		return
	}

	rec, err := h.genSvc.Create(ctx, services.CreateInput{
		UID:         req.UID,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Model:       req.Model,
		Email:       req.Email,
		Base64Image: req.Base64Image,
	})
	if err != nil {
		middleware.ObserveGeneration(req.Model, outcomeFor(err))
		switch {
		case errors.Is(err, services.ErrInsufficientCredits):
			fail(c, http.StatusPaymentRequired, ErrCodeInsufficientCredits, "Not enough credits")
		case errors.Is(err, services.ErrUserNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		case errors.Is(err, services.ErrInferenceFailed):
			fail(c, http.StatusInternalServerError, ErrCodeAIProcessingFailed, err.Error())
		case isValidation(err):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}

	middleware.ObserveGeneration(req.Model, middleware.OutcomeSuccess)
	ok(c, http.StatusOK, CreateGenerationResponse{ID: rec.ID, UID: rec.UID})
}

// GetGeneration godoc
// @ID          getGeneration
// @Summary     Fetch a generation record or an owner's listing
// @Description With ?uid= returns the single matching record. With ?email=
// @Description returns all of the owner's records, newest first. With neither
// @Description parameter the lookup fails.
// @Tags        Generations
// @Produce     json
// @Param       uid    query  string  false  "Record uid"
// @Param       email  query  string  false  "Owner email"
// @Success     200  {object}  domain.WireframeRecord
// @Failure     404  {object}  handlers.ErrorResponse  "No record found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /wireframe-to-code [get]
func (h *Handlers) GetGeneration(c *gin.Context) {
	ctx := c.Request.Context()

	if uid := strings.TrimSpace(c.Query("uid")); uid != "" {
		rec, err := h.genSvc.Get(ctx, uid)
		if err != nil {
			if errors.Is(err, services.ErrRecordNotFound) {
				fail(c, http.StatusNotFound, ErrCodeNotFound, "no record found")
				return
			}
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
			return
		}
		ok(c, http.StatusOK, rec)
		return
	}

	if email := strings.TrimSpace(c.Query("email")); email != "" {
		list, err := h.genSvc.ListByOwner(ctx, email)
		if err != nil {
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
			return
		}
		if list == nil {
			list = []domain.WireframeRecord{}
		}
		ok(c, http.StatusOK, list)
		return
	}

	fail(c, http.StatusNotFound, ErrCodeNotFound, "no record found")
}

// UpdateGenerationCode godoc
// @ID          updateGenerationCode
// @Summary     Write generated code back to a record
// @Description Overwrites only the code column; regeneration reuses the stored
// @Description image and description and never charges a credit.
// @Tags        Generations
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.UpdateCodeRequest  true  "Write-back payload"
// @Success     200  {object}  map[string]string
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "No record found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /wireframe-to-code [put]
func (h *Handlers) UpdateGenerationCode(c *gin.Context) {
	ctx := c.Request.Context()

	var req UpdateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "uid and codeResp are required")
		return
	}

	if err := h.genSvc.UpdateCode(ctx, req.UID, req.CodeResp); err != nil {
		switch {
		case errors.Is(err, services.ErrRecordNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "no record found")
		case errors.Is(err, services.ErrMissingUID):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, gin.H{"uid": req.UID})
}

// DeleteGeneration godoc
// @ID          deleteGeneration
// @Summary     Delete a generation record and its stored image
// @Description Removes the image object first and the database row second; an
// @Description object-store failure leaves both intact.
// @Tags        Generations
// @Produce     json
// @Param       uid  query  string  true  "Record uid"
// @Success     200  {object}  map[string]bool
// @Failure     400  {object}  handlers.ErrorResponse  "UID is required"
// @Failure     404  {object}  handlers.ErrorResponse  "No record found"
// @Failure     500  {object}  handlers.ErrorResponse  "Delete failed"
// @Router      /wireframe-to-code [delete]
func (h *Handlers) DeleteGeneration(c *gin.Context) {
	ctx := c.Request.Context()

	uid := strings.TrimSpace(c.Query("uid"))
	if uid == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "UID is required")
		return
	}

	if err := h.genSvc.Delete(ctx, uid); err != nil {
		switch {
		case errors.Is(err, services.ErrRecordNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "no record found")
		case errors.Is(err, services.ErrUploadFailed):
			fail(c, http.StatusInternalServerError, ErrCodeDeleteFailed, "failed to delete record")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, gin.H{"success": true})
}

// outcomeFor maps a generation error to its metric outcome label.
func outcomeFor(err error) string {
	switch {
	case err == nil:
		return middleware.OutcomeSuccess
	case errors.Is(err, services.ErrInsufficientCredits):
		return middleware.OutcomeInsufficientCredits
	case errors.Is(err, services.ErrInferenceFailed):
		return middleware.OutcomeInferenceFailed
	case isValidation(err):
		return middleware.OutcomeInvalid
	}
	return middleware.OutcomeError
}

// isValidation reports whether err is one of the request-shape sentinels.
func isValidation(err error) bool {
	for _, v := range []error{
		services.ErrMissingUID,
		services.ErrEmptyDescription,
		services.ErrMissingEmail,
		services.ErrMissingImage,
		services.ErrInvalidModel,
		services.ErrImageTooLarge,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}
