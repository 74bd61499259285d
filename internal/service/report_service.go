package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-inventory-api/internal/models"
	appErrors "github.com/noah-isme/school-inventory-api/pkg/errors"
	"github.com/noah-isme/school-inventory-api/pkg/export"
)

type materialLister interface {
	List(ctx context.Context, filter models.MaterialFilter) ([]models.Material, error)
}

type bookLister interface {
	List(ctx context.Context, filter models.BookFilter) ([]models.Book, error)
}

// ReportConfig tunes stock report rendering.
type ReportConfig struct {
	Title string
}

// Report is a rendered document ready to be streamed.
type Report struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ReportService renders current stock as CSV or PDF documents.
type ReportService struct {
	materials materialLister
	books     bookLister
	renderers func(format string) (export.Renderer, error)
	logger    *zap.Logger
	cfg       ReportConfig
	now       func() time.Time
}

// NewReportService constructs a ReportService.
func NewReportService(materials materialLister, books bookLister, logger *zap.Logger, cfg ReportConfig) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Title == "" {
		cfg.Title = "School inventory"
	}
	return &ReportService{
		materials: materials,
		books:     books,
		renderers: export.ForFormat,
		logger:    logger,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

var materialReportColumns = []export.Column{
	{Key: "name", Label: "Name", Width: 3},
	{Key: "category", Label: "Category", Width: 2},
	{Key: "quantity", Label: "Quantity"},
	{Key: "min_threshold", Label: "Min"},
	{Key: "max_threshold", Label: "Max"},
	{Key: "status", Label: "Status"},
	{Key: "notes", Label: "Notes", Width: 3},
}

var bookReportColumns = []export.Column{
	{Key: "type", Label: "Type"},
	{Key: "subject", Label: "Subject", Width: 2.5},
	{Key: "grade", Label: "Grade", Width: 0.7},
	{Key: "publisher", Label: "Publisher", Width: 2},
	{Key: "author", Label: "Author", Width: 2},
	{Key: "quantity", Label: "Quantity"},
	{Key: "status", Label: "Status"},
	{Key: "notes", Label: "Notes", Width: 2.5},
}

// Materials renders the material stock report.
func (s *ReportService) Materials(ctx context.Context, filter models.MaterialFilter, format string) (*Report, error) {
	renderer, err := s.renderers(format)
	if err != nil {
		return nil, appErrors.Validation(err, "format must be csv or pdf")
	}
	materials, err := s.materials.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]string, 0, len(materials))
	for _, m := range materials {
		rows = append(rows, map[string]string{
			"name":          m.Name,
			"category":      m.Category,
			"quantity":      strconv.Itoa(m.Quantity),
			"min_threshold": strconv.Itoa(m.MinThreshold),
			"max_threshold": strconv.Itoa(m.MaxThreshold),
			"status":        string(m.StockStatus),
			"notes":         m.Notes,
		})
	}
	return s.render(renderer, "materials", s.cfg.Title+" - Materials", materialReportColumns, rows)
}

// Books renders the book stock report.
func (s *ReportService) Books(ctx context.Context, filter models.BookFilter, format string) (*Report, error) {
	renderer, err := s.renderers(format)
	if err != nil {
		return nil, appErrors.Validation(err, "format must be csv or pdf")
	}
	books, err := s.books.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]string, 0, len(books))
	for _, b := range books {
		publisher := ""
		if b.Publisher != nil {
			publisher = *b.Publisher
		}
		rows = append(rows, map[string]string{
			"type":      string(b.Type),
			"subject":   b.Subject,
			"grade":     strconv.Itoa(b.Grade),
			"publisher": publisher,
			"author":    b.Author,
			"quantity":  strconv.Itoa(b.Quantity),
			"status":    string(b.StockStatus),
			"notes":     b.Notes,
		})
	}
	return s.render(renderer, "books", s.cfg.Title+" - Books", bookReportColumns, rows)
}

func (s *ReportService) render(renderer export.Renderer, name, title string, columns []export.Column, rows []map[string]string) (*Report, error) {
	generatedAt := s.now()
	payload, err := renderer.Render(export.Table{
		Title:       title,
		Columns:     columns,
		Rows:        rows,
		GeneratedAt: generatedAt,
		Highlight:   outOfStockRow,
	})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render report")
	}
	s.logger.Info("stock report rendered", zap.String("report", name), zap.Int("rows", len(rows)), zap.String("format", renderer.Extension()))
	return &Report{
		Filename:    fmt.Sprintf("%s-%s.%s", name, generatedAt.Format("20060102-150405"), renderer.Extension()),
		ContentType: renderer.ContentType(),
		Payload:     payload,
	}, nil
}

func outOfStockRow(row map[string]string) bool {
	return row["status"] == string(models.StockOut)
}
