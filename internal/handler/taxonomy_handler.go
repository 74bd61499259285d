package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/school-inventory-api/internal/dto"
	"github.com/noah-isme/school-inventory-api/internal/models"
	appErrors "github.com/noah-isme/school-inventory-api/pkg/errors"
	"github.com/noah-isme/school-inventory-api/pkg/response"
)

type taxonomyService interface {
	List(ctx context.Context) ([]models.TaxonomyEntry, error)
	Create(ctx context.Context, name string) (*models.TaxonomyEntry, error)
	Rename(ctx context.Context, oldName, newName string) (*models.TaxonomyEntry, error)
	Delete(ctx context.Context, name string) error
}

// TaxonomyHandler manages one name registry. The same handler type serves
// material categories and book publishers.
type TaxonomyHandler struct {
	service taxonomyService
}

// NewTaxonomyHandler constructs a taxonomy handler.
func NewTaxonomyHandler(svc taxonomyService) *TaxonomyHandler {
	return &TaxonomyHandler{service: svc}
}

// List godoc
// @Summary List registry names with usage counts
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/categories [get]
// @Router /admin/publishers [get]
func (h *TaxonomyHandler) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Create godoc
// @Summary Register a name
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body dto.TaxonomyRequest true "Name"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/categories [post]
// @Router /admin/publishers [post]
func (h *TaxonomyHandler) Create(c *gin.Context) {
	var req dto.TaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid name payload"))
		return
	}
	entry, err := h.service.Create(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// Rename godoc
// @Summary Rename a name and every item using it
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body dto.RenameTaxonomyRequest true "Rename"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/categories [put]
// @Router /admin/publishers [put]
func (h *TaxonomyHandler) Rename(c *gin.Context) {
	var req dto.RenameTaxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid rename payload"))
		return
	}
	entry, err := h.service.Rename(c.Request.Context(), req.OldName, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Delete godoc
// @Summary Delete an unused name
// @Description The name comes from the path or from a {name} body.
// @Tags Admin
// @Param name path string false "Name"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/categories/{name} [delete]
// @Router /admin/publishers/{name} [delete]
func (h *TaxonomyHandler) Delete(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		var req dto.TaxonomyRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid name payload"))
			return
		}
		name = req.Name
	}
	if err := h.service.Delete(c.Request.Context(), name); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
