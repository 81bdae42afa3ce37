package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ren89/property-listing-app/internal/storage"
)

// RestStorageHandler accepts property image uploads.
type RestStorageHandler struct {
	storage  storage.IBlobStorage
	maxBytes int64
}

// NewRestStorageHandler creates a new RestStorageHandler. maxSizeMB caps a
// single uploaded image.
func NewRestStorageHandler(blobStorage storage.IBlobStorage, maxSizeMB int) *RestStorageHandler {
	return &RestStorageHandler{
		storage:  blobStorage,
		maxBytes: int64(maxSizeMB) * 1024 * 1024,
	}
}

// UploadImage handles POST /v1/images
// Expects a multipart form with an "image" file field. Responds with the
// public URL to reference from a listing's image list.
func (h *RestStorageHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file required"})
		return
	}

	if h.maxBytes > 0 && fileHeader.Size > h.maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Image exceeds the maximum allowed size"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image uploads are accepted"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	url, err := h.storage.Upload(c.Request.Context(), fileHeader.Filename, contentType, file)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"url": url}})
}
