package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/school-inventory-api/internal/dto"
	"github.com/noah-isme/school-inventory-api/internal/models"
	"github.com/noah-isme/school-inventory-api/internal/repository"
	appErrors "github.com/noah-isme/school-inventory-api/pkg/errors"
)

type materialRepository interface {
	List(ctx context.Context, filter models.MaterialFilter) ([]models.Material, error)
	FindByID(ctx context.Context, id string) (*models.Material, error)
	Create(ctx context.Context, material *models.Material) error
	Update(ctx context.Context, material *models.Material, quantity *int) error
	Delete(ctx context.Context, id string) error
	AdjustQuantity(ctx context.Context, id string, delta int) (*models.Material, error)
	Stats(ctx context.Context) (*models.StockStats, error)
	Categories(ctx context.Context) ([]string, error)
}

// MaterialService implements the material stock use cases.
type MaterialService struct {
	repo      materialRepository
	cache     statsCache
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMaterialService constructs a MaterialService. cache and metrics may be nil.
func NewMaterialService(repo materialRepository, cache statsCache, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *MaterialService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaterialService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// List returns materials matching filter with their stock status.
func (s *MaterialService) List(ctx context.Context, filter models.MaterialFilter) ([]models.Material, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Category = models.NormalizeName(filter.Category)
	materials, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list materials")
	}
	if materials == nil {
		materials = []models.Material{}
	}
	for i := range materials {
		materials[i].Classify()
	}
	return materials, nil
}

// Get returns a material by id.
func (s *MaterialService) Get(ctx context.Context, id string) (*models.Material, error) {
	material, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, stockError(err, "material")
	}
	material.Classify()
	return material, nil
}

// Create registers a material, adding its category to the registry when new.
func (s *MaterialService) Create(ctx context.Context, req dto.MaterialRequest) (*models.Material, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid material payload")
	}
	material := &models.Material{
		MinThreshold: models.DefaultMinThreshold,
		MaxThreshold: models.DefaultMaxThreshold,
	}
	if err := applyMaterial(material, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, material); err != nil {
		return nil, stockError(err, "material")
	}
	s.invalidate(ctx)
	material.Classify()
	s.logger.Info("material created", zap.String("material_id", material.ID), zap.String("category", material.Category))
	return material, nil
}

// Update overwrites a material. Omitted thresholds keep the values read
// before the edit; an omitted quantity keeps whatever is stored when the
// write lands.
func (s *MaterialService) Update(ctx context.Context, id string, req dto.MaterialRequest) (*models.Material, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid material payload")
	}
	material, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, stockError(err, "material")
	}
	if err := applyMaterial(material, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, material, req.Quantity); err != nil {
		return nil, stockError(err, "material")
	}
	s.invalidate(ctx)
	material.Classify()
	return material, nil
}

// Delete removes a material unless a pending request still references it.
func (s *MaterialService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrInUse) {
			return appErrors.Clone(appErrors.ErrInUse, "material has pending requests")
		}
		return stockError(err, "material")
	}
	s.invalidate(ctx)
	s.logger.Info("material deleted", zap.String("material_id", id))
	return nil
}

// AdjustQuantity applies delta atomically. The quantity never drops below zero.
func (s *MaterialService) AdjustQuantity(ctx context.Context, id string, delta int) (*models.Material, error) {
	if delta == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "change must not be zero")
	}
	material, err := s.repo.AdjustQuantity(ctx, id, delta)
	s.metrics.RecordStockAdjustment(models.StockKindMaterial, err)
	if err != nil {
		return nil, stockError(err, "material")
	}
	s.invalidate(ctx)
	material.Classify()
	return material, nil
}

// Stats summarises material stock levels. The bool reports a cache hit.
func (s *MaterialService) Stats(ctx context.Context) (*models.StockStats, bool, error) {
	var cached models.StockStats
	if tryCache(ctx, s.cache, cacheKeyMaterialStats, &cached) {
		return &cached, true, nil
	}
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to compute material stats")
	}
	persistCache(ctx, s.cache, cacheKeyMaterialStats, stats)
	return stats, false, nil
}

// Categories lists the distinct categories used by materials.
func (s *MaterialService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list categories")
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}

func (s *MaterialService) invalidate(ctx context.Context) {
	invalidateCache(ctx, s.cache, cacheKeyMaterialStats)
}

func applyMaterial(material *models.Material, req dto.MaterialRequest) error {
	name := strings.TrimSpace(req.Name)
	category := models.NormalizeName(req.Category)
	if name == "" || category == "" {
		return appErrors.Clone(appErrors.ErrValidation, "name and category are required")
	}
	material.Name = name
	material.Category = category
	material.Notes = strings.TrimSpace(req.Notes)
	if req.Quantity != nil {
		material.Quantity = *req.Quantity
	}
	if req.MinThreshold != nil {
		material.MinThreshold = *req.MinThreshold
	}
	if req.MaxThreshold != nil {
		material.MaxThreshold = *req.MaxThreshold
	}
	if material.Quantity < 0 || material.MinThreshold < 0 {
		return appErrors.Clone(appErrors.ErrValidation, "quantity and thresholds must not be negative")
	}
	if material.MaxThreshold < material.MinThreshold {
		return appErrors.Clone(appErrors.ErrValidation, "max_threshold must be greater than or equal to min_threshold")
	}
	return nil
}

type bookRepository interface {
	List(ctx context.Context, filter models.BookFilter) ([]models.Book, error)
	FindByID(ctx context.Context, id string) (*models.Book, error)
	Create(ctx context.Context, book *models.Book) error
	Update(ctx context.Context, book *models.Book, quantity *int) error
	Delete(ctx context.Context, id string) error
	AdjustQuantity(ctx context.Context, id string, delta int) (*models.Book, error)
	Stats(ctx context.Context, bookType models.BookType) (*models.StockStats, error)
	Grades(ctx context.Context) ([]int, error)
	Publishers(ctx context.Context) ([]string, error)
}

// BookService implements the textbook and workbook stock use cases.
type BookService struct {
	repo      bookRepository
	cache     statsCache
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBookService constructs a BookService. cache and metrics may be nil.
func NewBookService(repo bookRepository, cache statsCache, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *BookService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// List returns books matching filter with their stock status.
func (s *BookService) List(ctx context.Context, filter models.BookFilter) ([]models.Book, error) {
	if filter.Grade != nil && (*filter.Grade < models.MinGrade || *filter.Grade > models.MaxGrade) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("grade must be between %d and %d", models.MinGrade, models.MaxGrade))
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "type must be textbook or workbook")
	}
	filter.Search = strings.TrimSpace(filter.Search)
	filter.Publisher = models.NormalizeName(filter.Publisher)
	books, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list books")
	}
	if books == nil {
		books = []models.Book{}
	}
	for i := range books {
		books[i].Classify()
	}
	return books, nil
}

// Get returns a book by id.
func (s *BookService) Get(ctx context.Context, id string) (*models.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, stockError(err, "book")
	}
	book.Classify()
	return book, nil
}

// Create registers a book, adding its publisher to the registry when new.
func (s *BookService) Create(ctx context.Context, req dto.BookRequest) (*models.Book, error) {
	book := &models.Book{}
	if err := s.apply(book, req); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, book); err != nil {
		return nil, stockError(err, "book")
	}
	s.invalidate(ctx)
	book.Classify()
	s.logger.Info("book created", zap.String("book_id", book.ID), zap.String("type", string(book.Type)), zap.Int("grade", book.Grade))
	return book, nil
}

// Update overwrites a book. An omitted quantity keeps whatever is stored when
// the write lands.
func (s *BookService) Update(ctx context.Context, id string, req dto.BookRequest) (*models.Book, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, stockError(err, "book")
	}
	if err := s.apply(book, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, book, req.Quantity); err != nil {
		return nil, stockError(err, "book")
	}
	s.invalidate(ctx)
	book.Classify()
	return book, nil
}

// Delete removes a book.
func (s *BookService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return stockError(err, "book")
	}
	s.invalidate(ctx)
	return nil
}

// AdjustQuantity applies delta atomically. The quantity never drops below zero.
func (s *BookService) AdjustQuantity(ctx context.Context, id string, delta int) (*models.Book, error) {
	if delta == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "change must not be zero")
	}
	book, err := s.repo.AdjustQuantity(ctx, id, delta)
	s.metrics.RecordStockAdjustment(models.StockKindBook, err)
	if err != nil {
		return nil, stockError(err, "book")
	}
	s.invalidate(ctx)
	book.Classify()
	return book, nil
}

// Stats summarises book stock levels, optionally for one type. The bool
// reports a cache hit.
func (s *BookService) Stats(ctx context.Context, bookType models.BookType) (*models.StockStats, bool, error) {
	if bookType != "" && !bookType.Valid() {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "type must be textbook or workbook")
	}
	key := bookStatsKey(bookType)
	var cached models.StockStats
	if tryCache(ctx, s.cache, key, &cached) {
		return &cached, true, nil
	}
	stats, err := s.repo.Stats(ctx, bookType)
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to compute book stats")
	}
	persistCache(ctx, s.cache, key, stats)
	return stats, false, nil
}

// Grades lists the distinct grades that have books.
func (s *BookService) Grades(ctx context.Context) ([]int, error) {
	grades, err := s.repo.Grades(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list grades")
	}
	if grades == nil {
		grades = []int{}
	}
	return grades, nil
}

// Publishers lists the distinct non-empty publishers used by books.
func (s *BookService) Publishers(ctx context.Context) ([]string, error) {
	publishers, err := s.repo.Publishers(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list publishers")
	}
	if publishers == nil {
		publishers = []string{}
	}
	return publishers, nil
}

func (s *BookService) invalidate(ctx context.Context) {
	invalidateCache(ctx, s.cache, cacheKeyBookStatsPrefix+"*")
}

func (s *BookService) apply(book *models.Book, req dto.BookRequest) error {
	bookType, ok := models.ParseBookType(string(req.Type))
	if !ok || bookType == "" {
		return appErrors.Clone(appErrors.ErrValidation, "type must be textbook or workbook")
	}
	req.Type = bookType
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Validation(err, "invalid book payload")
	}
	subject := strings.TrimSpace(req.Subject)
	if subject == "" {
		return appErrors.Clone(appErrors.ErrValidation, "subject is required")
	}
	book.Type = bookType
	book.Subject = subject
	book.Grade = req.Grade
	book.Author = strings.TrimSpace(req.Author)
	book.Notes = strings.TrimSpace(req.Notes)
	book.Publisher = nil
	if publisher := models.NormalizeName(req.Publisher); publisher != "" {
		book.Publisher = &publisher
	}
	if req.Quantity != nil {
		book.Quantity = *req.Quantity
	}
	return nil
}

// stockError translates repository failures for stock items.
func stockError(err error, item string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.Clone(appErrors.ErrNotFound, item+" not found")
	case errors.Is(err, repository.ErrInsufficientStock):
		return appErrors.Clone(appErrors.ErrInsufficientStock, "quantity cannot drop below zero")
	case errors.Is(err, repository.ErrInUse):
		return appErrors.Clone(appErrors.ErrInUse, item+" is still referenced")
	default:
		return appErrors.Internal(err, "failed to persist "+item)
	}
}
