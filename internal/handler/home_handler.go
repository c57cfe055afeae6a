package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/innovators-hub-api/internal/access"
	"github.com/noah-isme/innovators-hub-api/internal/dto"
	"github.com/noah-isme/innovators-hub-api/pkg/response"
)

// HomeHandler serves the public landing payload.
type HomeHandler struct {
	appName string
}

// NewHomeHandler constructs the handler.
func NewHomeHandler(appName string) *HomeHandler {
	return &HomeHandler{appName: appName}
}

// Index godoc
// @Summary Landing page
// @Description Entry links; signed-in callers also get their dashboard link
// @Tags Home
// @Produce json
// @Success 200 {object} response.Envelope
// @Router / [get]
func (h *HomeHandler) Index(c *gin.Context) {
	links := map[string]string{
		"gallery": "/gallery",
		"sign_in": access.LoginPath + "/login",
		"sign_up": access.LoginPath + "/signup",
	}
	if profile := profileFromContext(c); profile != nil {
		links["dashboard"] = profile.Role.HomePath()
	}
	response.JSON(c, http.StatusOK, dto.HomeResponse{Name: h.appName, Links: links})
}
