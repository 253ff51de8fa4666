package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arora427/HomeVerse/internal/storage"
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// saveUploadedImages decodes the "images" multipart field into stored file
// references. The file-count cap, per-file size cap and MIME allow-list are
// all enforced here, before any handler logic runs. On failure it writes the
// error response and returns ok=false; nothing is persisted to the database.
func saveUploadedImages(c *gin.Context, store storage.Storage, maxFiles, maxSizeMB int) ([]string, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			// Not a multipart request: no files to process.
			return nil, true
		}
		// Truncated or otherwise malformed multipart body. The request fails
		// here so the handler never reaches the database.
		c.JSON(http.StatusBadRequest, gin.H{"message": "Malformed upload payload"})
		return nil, false
	}

	files := form.File["images"]
	if len(files) == 0 {
		return nil, true
	}
	if len(files) > maxFiles {
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("At most %d images may be uploaded per request", maxFiles)})
		return nil, false
	}

	maxSize := int64(maxSizeMB) * 1024 * 1024
	for _, file := range files {
		if file.Size > maxSize {
			c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Each image must be at most %dMB", maxSizeMB)})
			return nil, false
		}
		if !allowedImageTypes[file.Header.Get("Content-Type")] {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Only image files are allowed"})
			return nil, false
		}
	}

	paths := make([]string, 0, len(files))
	for _, file := range files {
		path, err := saveOne(c, store, file)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return nil, false
		}
		paths = append(paths, path)
	}
	return paths, true
}

func saveOne(c *gin.Context, store storage.Storage, file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file %s: %w", file.Filename, err)
	}
	defer src.Close()

	return store.Save(c.Request.Context(), file.Filename, src)
}
