// Wireframe upload HTTP handler.
//
// POST /upload stores a wireframe image in the object store and returns its
// durable public URL, which the client then passes to the generation
// endpoint as imageUrl.
package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/apollohq/wireframe-to-code-backend/internal/inference"
)

// UploadResponse carries the public URL of the stored wireframe image.
type UploadResponse struct {
	ImageURL string `json:"imageUrl" example:"http://localhost:8080/files/wireframes/1700000000_1.png"`
}

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".gif":  true,
}

// Upload godoc
// @ID          uploadWireframe
// @Summary     Upload a wireframe image
// @Description Stores the multipart `image` file and returns the public URL
// @Description under which the service serves it back.
// @Tags        Uploads
// @Accept      mpfd
// @Produce     json
// @Param       image  formData  file  true  "Wireframe image (max 10MB)"
// @Success     200  {object}  handlers.UploadResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     413  {object}  handlers.ErrorResponse  "Image too large"
// @Failure     500  {object}  handlers.ErrorResponse  "Storage failure"
// @Router      /upload [post]
func (h *Handlers) Upload(c *gin.Context) {
	ctx := c.Request.Context()

	fileHeader, err := c.FormFile("image")
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "image file is required")
		return
	}
	if h.maxImageBytes > 0 && fileHeader.Size > h.maxImageBytes {
		fail(c, http.StatusRequestEntityTooLarge, ErrCodePayloadTooLarge,
			fmt.Sprintf("Image size too large. Please use an image under %dMB.", h.maxImageBytes>>20))
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext == "" || !allowedImageExts[ext] {
		ext = ".png"
	}

	f, err := fileHeader.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "cannot read image file")
		return
	}
	defer f.Close()

	url, err := h.store.Save(ctx, ext, f)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeUploadFailed, "failed to store image")
		return
	}
	ok(c, http.StatusOK, UploadResponse{ImageURL: url})
}

// ListModels godoc
// @ID          listModels
// @Summary     List the supported vision models
// @Tags        Inference
// @Produce     json
// @Success     200  {array}  inference.ModelInfo
// @Router      /models [get]
func (h *Handlers) ListModels(c *gin.Context) {
	ok(c, http.StatusOK, inference.Catalog)
}
