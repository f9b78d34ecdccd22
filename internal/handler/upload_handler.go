package handler

import (
	"net/http"

	"paxala/internal/storage"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploader *storage.Uploader
}

func NewUploadHandler(uploader *storage.Uploader) *UploadHandler {
	return &UploadHandler{uploader: uploader}
}

// Create stores the multipart field "file" and returns where it lives.
// @Summary  Upload media
// @Tags     Uploads
// @Accept   multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param    file formData file true "File"
// @Success  201 {object} storage.Object
// @Failure  400 {object} map[string]string
// @Router   /uploads [post]
func (h *UploadHandler) Create(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	obj, err := h.uploader.Save(c.Request.Context(), fh)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, obj)
}
