package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/innovators-hub-api/internal/dto"
	"github.com/noah-isme/innovators-hub-api/internal/models"
	appErrors "github.com/noah-isme/innovators-hub-api/pkg/errors"
	"github.com/noah-isme/innovators-hub-api/pkg/response"
)

type galleryService interface {
	List(ctx context.Context, query dto.GalleryQuery) ([]models.ProjectDetail, bool, error)
	Detail(ctx context.Context, id string) (*models.ProjectDetail, error)
}

// GalleryHandler serves the public project gallery.
type GalleryHandler struct {
	service galleryService
}

// NewGalleryHandler constructs the handler.
func NewGalleryHandler(svc galleryService) *GalleryHandler {
	return &GalleryHandler{service: svc}
}

// List godoc
// @Summary Browse approved projects
// @Description Approved projects newest first; search matches title or description ignoring case
// @Tags Gallery
// @Produce json
// @Param category_id query string false "Category ID"
// @Param faculty_id query string false "Faculty ID"
// @Param search query string false "Search term"
// @Success 200 {object} response.Envelope
// @Router /gallery [get]
func (h *GalleryHandler) List(c *gin.Context) {
	var query dto.GalleryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid gallery filters"))
		return
	}
	projects, hit, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := cacheMeta(c, hit)
	meta["count"] = len(projects)
	response.JSON(c, http.StatusOK, projects, meta)
}

// Detail godoc
// @Summary Approved project detail
// @Tags Gallery
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /gallery/{id} [get]
func (h *GalleryHandler) Detail(c *gin.Context) {
	id, ok := projectIDParam(c)
	if !ok {
		return
	}
	project, err := h.service.Detail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, project)
}
