package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/innovators-hub-api/internal/dto"
	"github.com/noah-isme/innovators-hub-api/internal/models"
	appErrors "github.com/noah-isme/innovators-hub-api/pkg/errors"
	"github.com/noah-isme/innovators-hub-api/pkg/response"
)

type adminAnalyticsService interface {
	Admin(ctx context.Context) (*models.AdminAnalytics, bool, error)
}

type exportGenerator interface {
	Generate(ctx context.Context, req dto.ExportRequest) (*dto.ExportResponse, error)
}

type systemMetricsProvider interface {
	Snapshot() models.AnalyticsSystemMetrics
}

// AdminHandler serves the admin analytics endpoints.
type AdminHandler struct {
	analytics adminAnalyticsService
	exports   exportGenerator
	metrics   systemMetricsProvider
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(analytics adminAnalyticsService, exports exportGenerator, metrics systemMetricsProvider) *AdminHandler {
	return &AdminHandler{analytics: analytics, exports: exports, metrics: metrics}
}

// Dashboard godoc
// @Summary Admin analytics
// @Description Status totals, approval rate, per-faculty counts and top technologies
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
	start := time.Now()
	analytics, hit, err := h.analytics.Admin(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := cacheMeta(c, hit)
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, analytics, meta)
}

// Export godoc
// @Summary Export admin analytics
// @Description Renders the analytics as CSV or PDF and returns a signed download link
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ExportRequest true "Format"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/dashboard/export [post]
func (h *AdminHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrFeatureDisabled, "exports are disabled"))
		return
	}
	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	result, err := h.exports.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// System godoc
// @Summary Process metrics snapshot
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/system [get]
func (h *AdminHandler) System(c *gin.Context) {
	if h.metrics == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrInternal, "metrics not configured"))
		return
	}
	response.JSON(c, http.StatusOK, h.metrics.Snapshot())
}
