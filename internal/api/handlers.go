package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipeshare/backend/internal/apperrors"
	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/storage"
)

// HealthHandler reports whether the store is reachable.
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck returns the health status of the API
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := database.HealthCheck(ctx, h.db); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "database": "unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "database": "ok"})
}

// fail hands err to middleware.ErrorHandler.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		fail(c, apperrors.ValidationWithDetails("invalid id", map[string]string{param: "must be a valid UUID"}))
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, apperrors.Validation("invalid request body"))
		return false
	}
	return true
}

func queryInt(c *gin.Context, key string) (int, bool) {
	v := c.Query(key)
	if v == "" {
		return 0, true
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		fail(c, apperrors.ValidationWithDetails("invalid query", map[string]string{key: "must be an integer"}))
		return 0, false
	}
	return n, true
}

// readUpload opens the multipart "file" field. The caller must close the
// returned file.
func readUpload(c *gin.Context) (service.Upload, multipart.File, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			fail(c, apperrors.ValidationWithDetails("invalid upload", map[string]string{"file": "is required"}))
		} else {
			fail(c, apperrors.Validation("invalid multipart form"))
		}
		return service.Upload{}, nil, false
	}
	file, err := header.Open()
	if err != nil {
		fail(c, apperrors.Validation("could not read upload"))
		return service.Upload{}, nil, false
	}

	// the declared type is only a hint; the stored type comes from the bytes
	sniff := make([]byte, 512)
	n, _ := io.ReadFull(file, sniff)
	contentType := http.DetectContentType(sniff[:n])
	if declared, ok := storage.ImageExtension(header.Header.Get("Content-Type")); ok {
		if actual, _ := storage.ImageExtension(contentType); actual != declared {
			_ = file.Close()
			fail(c, apperrors.ValidationWithDetails("invalid upload", map[string]string{
				"file": "content does not match the declared type",
			}))
			return service.Upload{}, nil, false
		}
	}
	body := io.MultiReader(bytes.NewReader(sniff[:n]), file)

	return service.Upload{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        body,
	}, file, true
}
