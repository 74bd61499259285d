package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-inventory-api/internal/models"
	"github.com/noah-isme/school-inventory-api/internal/service"
	"github.com/noah-isme/school-inventory-api/pkg/response"
)

type reportService interface {
	Materials(ctx context.Context, filter models.MaterialFilter, format string) (*service.Report, error)
	Books(ctx context.Context, filter models.BookFilter, format string) (*service.Report, error)
}

// ReportHandler exposes stock report downloads.
type ReportHandler struct {
	reports reportService
}

// NewReportHandler constructs handler.
func NewReportHandler(reports reportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func reportFormat(c *gin.Context) string {
	format := strings.ToLower(strings.TrimSpace(c.Query("format")))
	if format == "" {
		return "csv"
	}
	return format
}

// Materials godoc
// @Summary Material stock report
// @Description Accepts the material list filters
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /reports/materials [get]
func (h *ReportHandler) Materials(c *gin.Context) {
	filter, err := materialFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.reports.Materials(c.Request.Context(), filter, reportFormat(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, report.Filename, report.ContentType, report.Payload)
}

// Books godoc
// @Summary Book stock report
// @Description Accepts the book list filters
// @Tags Reports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /reports/books [get]
func (h *ReportHandler) Books(c *gin.Context) {
	filter, err := bookFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.reports.Books(c.Request.Context(), filter, reportFormat(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, report.Filename, report.ContentType, report.Payload)
}
