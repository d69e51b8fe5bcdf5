// Prompt enhancement HTTP handler.
//
// POST /enhance-prompt rewrites a rough wireframe description into a
// structured brief. Once the input length validates, the endpoint always
// answers 200: upstream model failures are absorbed by the deterministic
// local fallback and flagged through the `note` field.
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/apollohq/wireframe-to-code-backend/internal/services"
)

// EnhancePromptRequest is the JSON payload for prompt enhancement.
type EnhancePromptRequest struct {
	Prompt string `json:"prompt" binding:"required" example:"a dashboard for tracking my daily workouts with charts"`
}

// EnhancePromptResponse carries the rewritten prompt. Note is present only
// when the local fallback produced the result.
type EnhancePromptResponse struct {
	EnhancedPrompt string `json:"enhancedPrompt"`
	Note           string `json:"note,omitempty" example:"Used fallback enhancement due to API issues"`
}

// EnhancePrompt godoc
// @ID          enhancePrompt
// @Summary     Rewrite a prompt into a structured brief
// @Description Validates the character bound, rewrites the prompt with a text
// @Description model, and clamps the output into the same bound. On model
// @Description failure a deterministic local enhancement is returned instead.
// @Tags        Enhancement
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.EnhancePromptRequest  true  "Prompt payload"
// @Success     200  {object}  handlers.EnhancePromptResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Prompt outside character bounds"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /enhance-prompt [post]
func (h *Handlers) EnhancePrompt(c *gin.Context) {
	ctx := c.Request.Context()

	var req EnhancePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "prompt is required")
		return
	}

	enhanced, usedFallback, err := h.enhanceSvc.Enhance(ctx, req.Prompt)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPromptTooShort):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest,
				fmt.Sprintf("Input must be at least %d characters.", h.enhanceBounds.MinChars))
		case errors.Is(err, services.ErrPromptTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest,
				fmt.Sprintf("Input is too long. Please limit to %d characters or less.", h.enhanceBounds.MaxChars))
		default:
			fail(c, http.StatusInternalServerError, ErrCodeEnhanceFailed, "Failed to enhance prompt. Please try again.")
		}
		return
	}

	resp := EnhancePromptResponse{EnhancedPrompt: enhanced}
	if usedFallback {
		resp.Note = "Used fallback enhancement due to API issues"
	}
	ok(c, http.StatusOK, resp)
}
