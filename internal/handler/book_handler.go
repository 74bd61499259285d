package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-inventory-api/internal/dto"
	"github.com/noah-isme/school-inventory-api/internal/middleware"
	"github.com/noah-isme/school-inventory-api/internal/models"
	appErrors "github.com/noah-isme/school-inventory-api/pkg/errors"
	"github.com/noah-isme/school-inventory-api/pkg/response"
)

type bookService interface {
	List(ctx context.Context, filter models.BookFilter) ([]models.Book, error)
	Get(ctx context.Context, id string) (*models.Book, error)
	Create(ctx context.Context, req dto.BookRequest) (*models.Book, error)
	Update(ctx context.Context, id string, req dto.BookRequest) (*models.Book, error)
	Delete(ctx context.Context, id string) error
	AdjustQuantity(ctx context.Context, id string, delta int) (*models.Book, error)
	Stats(ctx context.Context, bookType models.BookType) (*models.StockStats, bool, error)
	Grades(ctx context.Context) ([]int, error)
	Publishers(ctx context.Context) ([]string, error)
}

// BookHandler exposes textbooks and workbooks.
type BookHandler struct {
	service bookService
}

// NewBookHandler constructs a book handler.
func NewBookHandler(svc bookService) *BookHandler {
	return &BookHandler{service: svc}
}

// List godoc
// @Summary List books
// @Tags Books
// @Produce json
// @Param search query string false "Substring of subject, author or notes"
// @Param publisher query string false "Exact publisher"
// @Param grade query int false "Grade 1-7"
// @Param type query string false "textbook or workbook"
// @Param low_stock query bool false "Only low stock"
// @Param out_of_stock query bool false "Only out of stock"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /books [get]
func (h *BookHandler) List(c *gin.Context) {
	filter, err := bookFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

func bookFilterFromQuery(c *gin.Context) (models.BookFilter, error) {
	grade, err := queryInt(c, "grade")
	if err != nil {
		return models.BookFilter{}, err
	}
	lowStock, err := queryBool(c, "low_stock")
	if err != nil {
		return models.BookFilter{}, err
	}
	outOfStock, err := queryBool(c, "out_of_stock")
	if err != nil {
		return models.BookFilter{}, err
	}
	bookType, ok := models.ParseBookType(c.Query("type"))
	if !ok {
		return models.BookFilter{}, appErrors.Clone(appErrors.ErrValidation, "type must be textbook or workbook")
	}
	return models.BookFilter{
		Search:     strings.TrimSpace(c.Query("search")),
		Publisher:  strings.TrimSpace(c.Query("publisher")),
		Grade:      grade,
		Type:       bookType,
		LowStock:   lowStock,
		OutOfStock: outOfStock,
	}, nil
}

// Get godoc
// @Summary Get book
// @Tags Books
// @Produce json
// @Param id path string true "Book ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create book
// @Tags Books
// @Accept json
// @Produce json
// @Param payload body dto.BookRequest true "Book payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid book payload"))
		return
	}
	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update book
// @Tags Books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param payload body dto.BookRequest true "Book payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid book payload"))
		return
	}
	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Delete book
// @Tags Books
// @Param id path string true "Book ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AdjustQuantity godoc
// @Summary Adjust book quantity
// @Tags Books
// @Accept json
// @Produce json
// @Param id path string true "Book ID"
// @Param payload body dto.AdjustQuantityRequest true "Quantity change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /books/{id}/quantity [patch]
func (h *BookHandler) AdjustQuantity(c *gin.Context) {
	var req dto.AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid quantity payload"))
		return
	}
	item, err := h.service.AdjustQuantity(c.Request.Context(), c.Param("id"), req.Change)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Grades godoc
// @Summary List grades in use
// @Tags Books
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /books/grades [get]
func (h *BookHandler) Grades(c *gin.Context) {
	grades, err := h.service.Grades(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grades, nil)
}

// Publishers godoc
// @Summary List publishers
// @Tags Books
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /books/publishers [get]
func (h *BookHandler) Publishers(c *gin.Context) {
	names, err := h.service.Publishers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, names, nil)
}

// Stats godoc
// @Summary Book stock statistics
// @Tags Books
// @Produce json
// @Param type query string false "textbook or workbook"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /books/stats [get]
func (h *BookHandler) Stats(c *gin.Context) {
	bookType, ok := models.ParseBookType(c.Query("type"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "type must be textbook or workbook"))
		return
	}
	stats, hit, err := h.service.Stats(c.Request.Context(), bookType)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, stats, nil, middleware.ExtractMeta(c))
}
