package upload

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"homeserve/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// maxUploadSize caps a single image at 5MB.
const maxUploadSize = 5 << 20

var allowedTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// Handler accepts a single image and returns it inline as a data URI;
// there is no file store behind this endpoint.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/upload", h.Upload)
}

func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Please upload an image file")
		return
	}

	if fileHeader.Size > maxUploadSize {
		response.Error(c, http.StatusBadRequest, "Image must be smaller than 5MB")
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	mimeType, ok := allowedTypes[ext]
	if !ok {
		response.Error(c, http.StatusBadRequest, "Only jpg, jpeg, png, gif and webp images are allowed")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil || int64(len(data)) > maxUploadSize {
		response.Error(c, http.StatusBadRequest, "Image must be smaller than 5MB")
		return
	}

	dataURI := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"imageUrl": dataURI,
		"filename": fileHeader.Filename,
	})
}
