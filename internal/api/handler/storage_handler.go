package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
	"github.com/anurag-po/CODSOFT/internal/core/ports"
)

// StorageHandler serves objects from the public buckets.
type StorageHandler struct {
	storage ports.FileStorage
}

func NewStorageHandler(storage ports.FileStorage) *StorageHandler {
	return &StorageHandler{storage: storage}
}

// Object streams one stored file.
//
// @Summary      Download a public object
// @Tags         storage
// @Produce      octet-stream
// @Param        bucket  path  string  true  "avatars or resumes"
// @Param        name    path  string  true  "Object name"
// @Success      200
// @Failure      404  {object}  errorResponse
// @Router       /storage/v1/object/public/{bucket}/{name} [get]
func (h *StorageHandler) Object(c echo.Context) error {
	bucket := c.Param("bucket")
	if !domain.KnownBucket(bucket) {
		return domain.ErrUnknownBucket
	}

	// Echo matches on the raw path, so escaped names arrive still escaped.
	name, err := url.PathUnescape(c.Param("name"))
	if err != nil {
		return domain.ErrObjectNotFound
	}

	rc, info, err := h.storage.Open(c.Request().Context(), bucket, name)
	if err != nil {
		return err
	}
	defer rc.Close()

	header := c.Response().Header()
	if info.Size > 0 {
		header.Set(echo.HeaderContentLength, strconv.FormatInt(info.Size, 10))
	}
	header.Set("Cache-Control", "public, max-age=3600")
	return c.Stream(http.StatusOK, info.ContentType, rc)
}
