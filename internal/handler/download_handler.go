package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/innovators-hub-api/internal/service"
	appErrors "github.com/noah-isme/innovators-hub-api/pkg/errors"
	"github.com/noah-isme/innovators-hub-api/pkg/response"
)

type exportOpener interface {
	Open(token string) (*service.Download, error)
}

// DownloadHandler streams stored exports behind signed tokens.
type DownloadHandler struct {
	exports exportOpener
}

// NewDownloadHandler constructs the handler.
func NewDownloadHandler(exports exportOpener) *DownloadHandler {
	return &DownloadHandler{exports: exports}
}

// Download godoc
// @Summary Download an analytics export via signed token
// @Tags Admin
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /downloads/{token} [get]
func (h *DownloadHandler) Download(c *gin.Context) {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	result, err := h.exports.Open(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer result.File.Close() //nolint:errcheck

	info, err := result.File.Stat()
	if err != nil {
		response.Error(c, appErrors.As(err, appErrors.ErrInternal, "failed to read export"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", result.Filename))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, info.Size(), result.ContentType, result.File, nil)
}
