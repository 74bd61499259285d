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

type requestService interface {
	SubmitBatch(ctx context.Context, actor *models.JWTClaims, req dto.SubmitRequestsRequest) (*dto.SubmitRequestsResult, error)
	Process(ctx context.Context, actor *models.JWTClaims, id string, req dto.ProcessRequestRequest) (*models.MaterialRequest, error)
	Cancel(ctx context.Context, actor *models.JWTClaims, id string) error
	Get(ctx context.Context, actor *models.JWTClaims, id string) (*models.MaterialRequestView, error)
	List(ctx context.Context, actor *models.JWTClaims, filter models.RequestFilter) ([]models.MaterialRequestView, error)
	History(ctx context.Context, actor *models.JWTClaims, userID string) ([]models.MaterialRequestView, error)
	Stats(ctx context.Context) (*models.RequestStats, bool, error)
}

// RequestHandler exposes the material request workflow.
type RequestHandler struct {
	service requestService
}

// NewRequestHandler constructs a request handler.
func NewRequestHandler(svc requestService) *RequestHandler {
	return &RequestHandler{service: svc}
}

// List godoc
// @Summary List material requests
// @Description Non-administrators only see their own requests
// @Tags Requests
// @Produce json
// @Param user_id query string false "Requester"
// @Param material_id query string false "Material"
// @Param status query string false "pending, approved or rejected"
// @Param date_from query string false "YYYY-MM-DD inclusive"
// @Param date_to query string false "YYYY-MM-DD inclusive"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	dateFrom, err := queryDate(c, "date_from")
	if err != nil {
		response.Error(c, err)
		return
	}
	dateTo, err := queryDate(c, "date_to")
	if err != nil {
		response.Error(c, err)
		return
	}

	filter := models.RequestFilter{
		UserID:     strings.TrimSpace(c.Query("user_id")),
		MaterialID: strings.TrimSpace(c.Query("material_id")),
		Status:     models.RequestStatus(strings.ToLower(strings.TrimSpace(c.Query("status")))),
		DateFrom:   dateFrom,
		DateTo:     dateTo,
	}
	items, err := h.service.List(c.Request.Context(), claims, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Submit godoc
// @Summary Submit material requests
// @Description Accepts a batch {items, notes} or a single {material_id, requested_quantity, notes}. Lines fail independently.
// @Tags Requests
// @Accept json
// @Produce json
// @Param payload body dto.SubmitRequestsRequest true "Requests"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /requests [post]
func (h *RequestHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.SubmitRequestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid request payload"))
		return
	}

	result, err := h.service.SubmitBatch(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Created == 0 {
		response.JSON(c, http.StatusBadRequest, result, nil)
		return
	}
	response.Created(c, result)
}

// Get godoc
// @Summary Get material request
// @Tags Requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	item, err := h.service.Get(c.Request.Context(), claims, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Cancel godoc
// @Summary Cancel a pending request
// @Tags Requests
// @Param id path string true "Request ID"
// @Success 204 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /requests/{id} [delete]
func (h *RequestHandler) Cancel(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	if err := h.service.Cancel(c.Request.Context(), claims, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Process godoc
// @Summary Approve or reject a request
// @Description Approval deducts stock atomically and fails when stock is insufficient
// @Tags Requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param payload body dto.ProcessRequestRequest true "Decision"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /requests/{id} [put]
func (h *RequestHandler) Process(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.ProcessRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid process payload"))
		return
	}

	item, err := h.service.Process(c.Request.Context(), claims, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// History godoc
// @Summary Request history of a user
// @Tags Requests
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /requests/history/{user_id} [get]
func (h *RequestHandler) History(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	items, err := h.service.History(c.Request.Context(), claims, c.Param("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}

// Stats godoc
// @Summary Request counts per status
// @Tags Requests
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /requests/stats [get]
func (h *RequestHandler) Stats(c *gin.Context) {
	stats, hit, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, stats, nil, middleware.ExtractMeta(c))
}
