// Streaming inference HTTP handler.
//
// POST /ai-process runs the vision model over a wireframe and streams the
// generated code back as plain text, chunk by chunk, exactly as the deltas
// arrive from the upstream model. The request carries the wireframe either as
// a multipart file upload or as JSON with a base64 data URL / public image
// URL.
//
// Failure semantics are two-phase: before the first delta is written the
// handler can still answer with a JSON error envelope; once streaming has
// begun the status line is gone and the stream simply ends early (the client
// detects the truncation).
package handlers

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/apollohq/wireframe-to-code-backend/internal/http/middleware"
	"github.com/apollohq/wireframe-to-code-backend/internal/inference"
	"github.com/apollohq/wireframe-to-code-backend/internal/services"
)

// AIProcessRequest is the JSON variant of the streaming inference request.
// Exactly one of Base64Image and ImageURL must be set.
type AIProcessRequest struct {
	Model       string `json:"model" binding:"required" example:"deepseek/deepseek-chat-v3-0324:free"`
	Description string `json:"description" binding:"required" example:"a login page with email and password fields"`
	Base64Image string `json:"base64Image,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// AIProcess godoc
// @ID          aiProcess
// @Summary     Stream wireframe-to-code inference
// @Description Runs the selected vision model over the wireframe image and
// @Description streams the generated code as text/plain chunks.
// @Tags        Inference
// @Accept      json
// @Accept      mpfd
// @Produce     plain
// @Param       body  body  handlers.AIProcessRequest  false  "JSON request (alternative to multipart image/model/description)"
// @Success     200  {string}  string  "Generated code stream"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     413  {object}  handlers.ErrorResponse  "Image too large"
// @Failure     502  {object}  handlers.ErrorResponse  "Upstream inference failed"
// @Router      /ai-process [post]
func (h *Handlers) AIProcess(c *gin.Context) {
	ctx := c.Request.Context()

	model, description, imageRef, errCode, errMsg := h.parseAIProcessRequest(c)
	if errMsg != "" {
		status := http.StatusBadRequest
		if errCode == ErrCodePayloadTooLarge {
			status = http.StatusRequestEntityTooLarge
		}
		fail(c, status, errCode, errMsg)
		return
	}
	if !inference.IsAllowed(model) {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "model not supported")
		return
	}

	parts := []inference.Part{
		inference.TextPart(description),
		inference.ImagePart(imageRef),
	}

	wrote := false
	start := time.Now()
	streamErr := h.stream.StreamChat(ctx, model, h.systemPrompt, parts, func(delta string) error {
		if !wrote {
			c.Header("Content-Type", "text/plain; charset=utf-8")
			c.Header("X-Accel-Buffering", "no")
			c.Status(http.StatusOK)
			wrote = true
		}
		if _, err := c.Writer.WriteString(delta); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	})
	middleware.ObserveInference(model, time.Since(start))

	if streamErr != nil {
		middleware.ObserveGeneration(model, middleware.OutcomeInferenceFailed)
		if !wrote {
			fail(c, http.StatusBadGateway, ErrCodeAIProcessingFailed, streamErr.Error())
			return
		}
		// Mid-stream failure: the status line is already on the wire, so the
		// best we can do is stop and leave a trace in the logs.
		middleware.LoggerFrom(c).Error().Err(streamErr).Str("model", model).Msg("inference stream aborted")
		c.Abort()
		return
	}

	middleware.ObserveGeneration(model, middleware.OutcomeSuccess)
	if !wrote {
		// Empty completion: still answer with an empty 200 text body.
		c.Data(http.StatusOK, "text/plain; charset=utf-8", nil)
	}
}

// parseAIProcessRequest extracts (model, description, image reference) from
// either a multipart upload or a JSON body. On failure it returns an error
// code and message instead.
func (h *Handlers) parseAIProcessRequest(c *gin.Context) (model, description, imageRef, errCode, errMsg string) {
	ct := c.GetHeader("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			return "", "", "", ErrCodeBadRequest, "image file is required"
		}
		if h.maxImageBytes > 0 && fileHeader.Size > h.maxImageBytes {
			return "", "", "", ErrCodePayloadTooLarge,
				fmt.Sprintf("Image size too large. Please use an image under %dMB.", h.maxImageBytes>>20)
		}
		f, err := fileHeader.Open()
		if err != nil {
			return "", "", "", ErrCodeBadRequest, "cannot read image file"
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, h.maxImageBytes+1))
		if err != nil {
			return "", "", "", ErrCodeBadRequest, "cannot read image file"
		}
		if h.maxImageBytes > 0 && int64(len(data)) > h.maxImageBytes {
			return "", "", "", ErrCodePayloadTooLarge,
				fmt.Sprintf("Image size too large. Please use an image under %dMB.", h.maxImageBytes>>20)
		}

		mime := fileHeader.Header.Get("Content-Type")
		if mime == "" {
			mime = "image/png"
		}
		dataURL := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)

		model = c.PostForm("model")
		description = c.PostForm("description")
		if model == "" || description == "" {
			return "", "", "", ErrCodeBadRequest, "model and description are required"
		}
		return model, description, dataURL, "", ""
	}

	var req AIProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return "", "", "", ErrCodeBadRequest, "model and description are required"
	}
	ref := req.Base64Image
	if ref == "" {
		ref = req.ImageURL
	}
	if ref == "" {
		return "", "", "", ErrCodeBadRequest, "base64Image or imageUrl is required"
	}
	// The global body cap admits base64 payloads whose decoded size exceeds
	// the image ceiling; enforce the decoded bound here.
	if req.Base64Image != "" && h.maxImageBytes > 0 && services.DecodedImageSize(req.Base64Image) > h.maxImageBytes {
		return "", "", "", ErrCodePayloadTooLarge,
			fmt.Sprintf("Image size too large. Please use an image under %dMB.", h.maxImageBytes>>20)
	}
	return req.Model, req.Description, ref, "", ""
}
