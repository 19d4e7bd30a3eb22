package api

import (
	"errors"
	"net/http"

	"github.com/fitnesshub/fitnesshub-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UploadHandler struct {
	uploadService service.UploadService
	log           *zap.Logger
}

func NewUploadHandler(uploadService service.UploadService, log *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		log:           log,
	}
}

// --- DTOs ---
type imageUploadURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType"`
}

// ImageUploadURL handles POST /uploads/image-url: it returns a presigned PUT
// URL the client uploads the image to, plus the object key to reference.
func (h *UploadHandler) ImageUploadURL(c *gin.Context) {
	var req imageUploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	uploadURL, objectKey, err := h.uploadService.GenerateImageUploadURL(c.Request.Context(), req.FileName, req.ContentType)
	if err != nil {
		if errors.Is(err, service.ErrUploadFileNameRequired) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("failed to generate upload URL", zap.String("fileName", req.FileName), zap.Error(err))
		abortWithError(c, http.StatusInternalServerError, "Failed to generate upload URL.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "uploadUrl": uploadURL, "objectKey": objectKey})
}
