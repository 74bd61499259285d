package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-inventory-api/internal/models"
	"github.com/noah-isme/school-inventory-api/pkg/response"
)

type securityLogService interface {
	Query(ctx context.Context, filter models.SecurityLogFilter) (*models.SecurityLogPage, error)
}

// SecurityLogHandler serves the authentication audit trail.
type SecurityLogHandler struct {
	service securityLogService
}

// NewSecurityLogHandler constructs a security log handler.
func NewSecurityLogHandler(svc securityLogService) *SecurityLogHandler {
	return &SecurityLogHandler{service: svc}
}

// List godoc
// @Summary Query security logs
// @Description Newest first. limit defaults to 100 and is capped at 10000.
// @Tags Admin
// @Produce json
// @Param limit query int false "Maximum entries"
// @Param event_type query string false "Event type"
// @Param username query string false "Username"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /security-logs [get]
func (h *SecurityLogHandler) List(c *gin.Context) {
	limit, err := queryInt(c, "limit")
	if err != nil {
		response.Error(c, err)
		return
	}

	filter := models.SecurityLogFilter{
		EventType: models.SecurityEvent(strings.TrimSpace(c.Query("event_type"))),
		Username:  strings.TrimSpace(c.Query("username")),
	}
	if limit != nil {
		filter.Limit = *limit
	}

	page, err := h.service.Query(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, page, nil)
}
