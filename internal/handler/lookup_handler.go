package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/innovators-hub-api/internal/models"
	"github.com/noah-isme/innovators-hub-api/pkg/response"
)

type lookupService interface {
	Faculties(ctx context.Context) ([]models.Faculty, error)
	Categories(ctx context.Context) ([]models.Category, error)
	Technologies(ctx context.Context) ([]models.Technology, error)
}

// LookupHandler exposes the reference lists.
type LookupHandler struct {
	service lookupService
}

// NewLookupHandler constructs the handler.
func NewLookupHandler(svc lookupService) *LookupHandler {
	return &LookupHandler{service: svc}
}

// Faculties godoc
// @Summary List faculties
// @Tags Lookups
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /lookups/faculties [get]
func (h *LookupHandler) Faculties(c *gin.Context) {
	items, err := h.service.Faculties(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Categories godoc
// @Summary List categories
// @Tags Lookups
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /lookups/categories [get]
func (h *LookupHandler) Categories(c *gin.Context) {
	items, err := h.service.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}

// Technologies godoc
// @Summary List technologies
// @Tags Lookups
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /lookups/technologies [get]
func (h *LookupHandler) Technologies(c *gin.Context) {
	items, err := h.service.Technologies(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}
