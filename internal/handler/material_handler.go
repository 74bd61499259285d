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

type materialService interface {
	List(ctx context.Context, filter models.MaterialFilter) ([]models.Material, error)
	Get(ctx context.Context, id string) (*models.Material, error)
	Create(ctx context.Context, req dto.MaterialRequest) (*models.Material, error)
	Update(ctx context.Context, id string, req dto.MaterialRequest) (*models.Material, error)
	Delete(ctx context.Context, id string) error
	AdjustQuantity(ctx context.Context, id string, delta int) (*models.Material, error)
	Stats(ctx context.Context) (*models.StockStats, bool, error)
	Categories(ctx context.Context) ([]string, error)
}

// MaterialHandler exposes the consumable supplies catalog.
type MaterialHandler struct {
	service materialService
}

// NewMaterialHandler constructs a material handler.
func NewMaterialHandler(svc materialService) *MaterialHandler {
	return &MaterialHandler{service: svc}
}

// List godoc
// @Summary List materials
// @Tags Materials
// @Produce json
// @Param search query string false "Substring of name or notes"
// @Param category query string false "Exact category"
// @Param low_stock query bool false "Only low stock"
// @Param out_of_stock query bool false "Only out of stock"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /materials [get]
func (h *MaterialHandler) List(c *gin.Context) {
	filter, err := materialFilterFromQuery(c)
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

func materialFilterFromQuery(c *gin.Context) (models.MaterialFilter, error) {
	lowStock, err := queryBool(c, "low_stock")
	if err != nil {
		return models.MaterialFilter{}, err
	}
	outOfStock, err := queryBool(c, "out_of_stock")
	if err != nil {
		return models.MaterialFilter{}, err
	}
	return models.MaterialFilter{
		Search:     strings.TrimSpace(c.Query("search")),
		Category:   strings.TrimSpace(c.Query("category")),
		LowStock:   lowStock,
		OutOfStock: outOfStock,
	}, nil
}

// Get godoc
// @Summary Get material
// @Tags Materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /materials/{id} [get]
func (h *MaterialHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create material
// @Description Unknown categories are registered automatically
// @Tags Materials
// @Accept json
// @Produce json
// @Param payload body dto.MaterialRequest true "Material payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /materials [post]
func (h *MaterialHandler) Create(c *gin.Context) {
	var req dto.MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid material payload"))
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
// @Summary Update material
// @Tags Materials
// @Accept json
// @Produce json
// @Param id path string true "Material ID"
// @Param payload body dto.MaterialRequest true "Material payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /materials/{id} [put]
func (h *MaterialHandler) Update(c *gin.Context) {
	var req dto.MaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid material payload"))
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
// @Summary Delete material
// @Description Fails while pending requests reference the material
// @Tags Materials
// @Param id path string true "Material ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /materials/{id} [delete]
func (h *MaterialHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AdjustQuantity godoc
// @Summary Adjust material quantity
// @Description Apply a signed change. The quantity never drops below zero.
// @Tags Materials
// @Accept json
// @Produce json
// @Param id path string true "Material ID"
// @Param payload body dto.AdjustQuantityRequest true "Quantity change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /materials/{id}/quantity [patch]
func (h *MaterialHandler) AdjustQuantity(c *gin.Context) {
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

// Categories godoc
// @Summary List material categories
// @Tags Materials
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /categories [get]
func (h *MaterialHandler) Categories(c *gin.Context) {
	names, err := h.service.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, names, nil)
}

// Stats godoc
// @Summary Material stock statistics
// @Tags Materials
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats [get]
func (h *MaterialHandler) Stats(c *gin.Context) {
	stats, hit, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, stats, nil, middleware.ExtractMeta(c))
}
