package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-inventory-api/internal/dto"
	"github.com/noah-isme/school-inventory-api/internal/models"
	"github.com/noah-isme/school-inventory-api/internal/repository"
	appErrors "github.com/noah-isme/school-inventory-api/pkg/errors"
)

type requestRepository interface {
	Create(ctx context.Context, req *models.MaterialRequest) error
	FindByID(ctx context.Context, id string) (*models.MaterialRequestView, error)
	List(ctx context.Context, filter models.RequestFilter) ([]models.MaterialRequestView, error)
	History(ctx context.Context, userID string) ([]models.MaterialRequestView, error)
	Stats(ctx context.Context) (*models.RequestStats, error)
	Process(ctx context.Context, params models.ProcessRequestParams) (*models.MaterialRequest, error)
	DeletePending(ctx context.Context, id string) error
}

// RequestService drives the material request workflow.
type RequestService struct {
	repo    requestRepository
	cache   statsCache
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
}

// NewRequestService constructs a RequestService. cache and metrics may be nil.
func NewRequestService(repo requestRepository, cache statsCache, metrics *MetricsService, logger *zap.Logger) *RequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestService{
		repo:    repo,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SubmitBatch creates one pending request per valid line. Lines fail
// independently. A submission without lines but with notes becomes a single
// free-text request for an item outside the catalog.
func (s *RequestService) SubmitBatch(ctx context.Context, actor *models.JWTClaims, req dto.SubmitRequestsRequest) (*dto.SubmitRequestsResult, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	req.Normalize()
	notes := strings.TrimSpace(req.Notes)
	if len(req.Items) == 0 && notes == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "at least one item or notes are required")
	}

	result := &dto.SubmitRequestsResult{
		Requests: []models.MaterialRequest{},
		Errors:   []dto.ItemError{},
	}

	if len(req.Items) == 0 {
		request := &models.MaterialRequest{UserID: actor.UserID, RequestedQuantity: 1, Notes: notes}
		if err := s.repo.Create(ctx, request); err != nil {
			return nil, appErrors.Internal(err, "failed to create request")
		}
		result.Created = 1
		result.Requests = append(result.Requests, *request)
		s.invalidate(ctx)
		return result, nil
	}

	for i, item := range req.Items {
		materialID := strings.TrimSpace(item.MaterialID)
		lineErr := func(code, message string) {
			result.Errors = append(result.Errors, dto.ItemError{Index: i, MaterialID: materialID, Code: code, Message: message})
		}
		if materialID == "" {
			lineErr(appErrors.ErrValidation.Code, "material_id is required")
			continue
		}
		if item.RequestedQuantity < 1 {
			lineErr(appErrors.ErrValidation.Code, "requested_quantity must be at least 1")
			continue
		}

		request := &models.MaterialRequest{
			UserID:            actor.UserID,
			MaterialID:        &materialID,
			RequestedQuantity: item.RequestedQuantity,
			Notes:             notes,
		}
		if err := s.repo.Create(ctx, request); err != nil {
			if errors.Is(err, repository.ErrMaterialNotFound) {
				lineErr(appErrors.ErrNotFound.Code, "material not found")
				continue
			}
			s.logger.Error("failed to create request line", zap.Int("index", i), zap.String("material_id", materialID), zap.Error(err))
			lineErr(appErrors.ErrInternal.Code, "failed to create request")
			continue
		}
		result.Created++
		result.Requests = append(result.Requests, *request)
	}

	if result.Created > 0 {
		s.invalidate(ctx)
	}
	return result, nil
}

// Process approves or rejects a pending request. Approval deducts the
// requested quantity in the same transaction and fails without side effects
// when stock is insufficient.
func (s *RequestService) Process(ctx context.Context, actor *models.JWTClaims, id string, req dto.ProcessRequestRequest) (*models.MaterialRequest, error) {
	if !actor.IsAdmin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only administrators can process requests")
	}
	if !req.Status.IsDecision() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be approved or rejected")
	}

	params := models.ProcessRequestParams{
		ID:          id,
		Status:      req.Status,
		ProcessedBy: actor.UserID,
		ProcessedAt: s.now(),
	}
	if notes := strings.TrimSpace(req.AdminNotes); notes != "" {
		params.AdminNotes = &notes
	}

	processed, err := s.repo.Process(ctx, params)
	s.metrics.RecordRequestProcessed(req.Status, err)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "request not found")
		case errors.Is(err, repository.ErrInvalidState):
			return nil, appErrors.Clone(appErrors.ErrInvalidState, "request has already been processed")
		case errors.Is(err, repository.ErrInsufficientStock):
			return nil, appErrors.Clone(appErrors.ErrInsufficientStock, "not enough stock to approve this request")
		case errors.Is(err, repository.ErrMaterialNotFound):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "requested material no longer exists")
		default:
			return nil, appErrors.Internal(err, "failed to process request")
		}
	}

	patterns := []string{cacheKeyRequestStats}
	if processed.Status == models.RequestApproved && !processed.IsFreeText() {
		patterns = append(patterns, cacheKeyMaterialStats)
	}
	invalidateCache(ctx, s.cache, patterns...)

	s.logger.Info("request processed",
		zap.String("request_id", processed.ID),
		zap.String("status", string(processed.Status)),
		zap.String("processed_by", actor.Username))
	return processed, nil
}

// Cancel deletes a pending request. Only the owner or an administrator may
// cancel.
func (s *RequestService) Cancel(ctx context.Context, actor *models.JWTClaims, id string) error {
	request, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if request.Status != models.RequestPending {
		return appErrors.Clone(appErrors.ErrInvalidState, "only pending requests can be cancelled")
	}
	if err := s.repo.DeletePending(ctx, id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return appErrors.Clone(appErrors.ErrNotFound, "request not found")
		case errors.Is(err, repository.ErrInvalidState):
			return appErrors.Clone(appErrors.ErrInvalidState, "only pending requests can be cancelled")
		default:
			return appErrors.Internal(err, "failed to cancel request")
		}
	}
	s.invalidate(ctx)
	return nil
}

// Get returns a request visible to actor.
func (s *RequestService) Get(ctx context.Context, actor *models.JWTClaims, id string) (*models.MaterialRequestView, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "request not found")
		}
		return nil, appErrors.Internal(err, "failed to load request")
	}
	if request.UserID != actor.UserID && !actor.IsAdmin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "request belongs to another user")
	}
	return request, nil
}

// List returns requests matching filter. Non-administrators only see their own.
func (s *RequestService) List(ctx context.Context, actor *models.JWTClaims, filter models.RequestFilter) ([]models.MaterialRequestView, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be pending, approved or rejected")
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date_to must not be before date_from")
	}
	if !actor.IsAdmin() {
		filter.UserID = actor.UserID
	}
	requests, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list requests")
	}
	if requests == nil {
		requests = []models.MaterialRequestView{}
	}
	return requests, nil
}

// History returns the approved requests of userID, most recently processed first.
func (s *RequestService) History(ctx context.Context, actor *models.JWTClaims, userID string) ([]models.MaterialRequestView, error) {
	if actor == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if userID != actor.UserID && !actor.IsAdmin() {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "history belongs to another user")
	}
	requests, err := s.repo.History(ctx, userID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load request history")
	}
	if requests == nil {
		requests = []models.MaterialRequestView{}
	}
	return requests, nil
}

// Stats counts requests per status. The bool reports a cache hit.
func (s *RequestService) Stats(ctx context.Context) (*models.RequestStats, bool, error) {
	var cached models.RequestStats
	if tryCache(ctx, s.cache, cacheKeyRequestStats, &cached) {
		return &cached, true, nil
	}
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, false, appErrors.Internal(err, "failed to compute request stats")
	}
	persistCache(ctx, s.cache, cacheKeyRequestStats, stats)
	return stats, false, nil
}

func (s *RequestService) invalidate(ctx context.Context) {
	invalidateCache(ctx, s.cache, cacheKeyRequestStats)
}
