package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-inventory-api/internal/dto"
	"github.com/noah-isme/school-inventory-api/internal/models"
	appErrors "github.com/noah-isme/school-inventory-api/pkg/errors"
)

type requestServiceMock struct {
	submitted   dto.SubmitRequestsRequest
	submitResp  *dto.SubmitRequestsResult
	processReq  dto.ProcessRequestRequest
	processErr  error
	lastFilter  models.RequestFilter
	lastActor   *models.JWTClaims
	lastID      string
	cancelErr   error
	historyUser string
}

func (m *requestServiceMock) SubmitBatch(ctx context.Context, actor *models.JWTClaims, req dto.SubmitRequestsRequest) (*dto.SubmitRequestsResult, error) {
	m.lastActor = actor
	m.submitted = req
	return m.submitResp, nil
}

func (m *requestServiceMock) Process(ctx context.Context, actor *models.JWTClaims, id string, req dto.ProcessRequestRequest) (*models.MaterialRequest, error) {
	m.lastID = id
	m.processReq = req
	if m.processErr != nil {
		return nil, m.processErr
	}
	return &models.MaterialRequest{ID: id, Status: req.Status}, nil
}

func (m *requestServiceMock) Cancel(ctx context.Context, actor *models.JWTClaims, id string) error {
	m.lastID = id
	return m.cancelErr
}

func (m *requestServiceMock) Get(ctx context.Context, actor *models.JWTClaims, id string) (*models.MaterialRequestView, error) {
	return &models.MaterialRequestView{MaterialRequest: models.MaterialRequest{ID: id}}, nil
}

func (m *requestServiceMock) List(ctx context.Context, actor *models.JWTClaims, filter models.RequestFilter) ([]models.MaterialRequestView, error) {
	m.lastActor = actor
	m.lastFilter = filter
	return []models.MaterialRequestView{}, nil
}

func (m *requestServiceMock) History(ctx context.Context, actor *models.JWTClaims, userID string) ([]models.MaterialRequestView, error) {
	m.historyUser = userID
	return nil, nil
}

func (m *requestServiceMock) Stats(ctx context.Context) (*models.RequestStats, bool, error) {
	return &models.RequestStats{Pending: 2, Total: 2}, false, nil
}

func TestRequestHandlerSubmitBatch(t *testing.T) {
	svc := &requestServiceMock{submitResp: &dto.SubmitRequestsResult{
		Created:  1,
		Requests: []models.MaterialRequest{{ID: "r1"}},
		Errors:   []dto.ItemError{{Index: 1, MaterialID: "ghost", Code: "NOT_FOUND", Message: "material not found"}},
	}}
	h := NewRequestHandler(svc)

	body := `{"items":[{"material_id":"m1","requested_quantity":2},{"material_id":"ghost","requested_quantity":1}],"notes":"class 3A"}`
	c, w := newTestContext(http.MethodPost, "/api/requests", body, userClaims)
	h.Submit(c)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, svc.submitted.Items, 2)
	assert.Equal(t, "class 3A", svc.submitted.Notes)
	assert.Equal(t, userClaims, svc.lastActor)
	assert.Contains(t, w.Body.String(), `"code":"NOT_FOUND"`)
}

func TestRequestHandlerSubmitNothingCreated(t *testing.T) {
	svc := &requestServiceMock{submitResp: &dto.SubmitRequestsResult{
		Errors: []dto.ItemError{{Index: 0, MaterialID: "ghost", Code: "NOT_FOUND"}},
	}}
	h := NewRequestHandler(svc)

	c, w := newTestContext(http.MethodPost, "/api/requests", `{"material_id":"ghost","requested_quantity":1}`, userClaims)
	h.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ghost", svc.submitted.MaterialID)
}

func TestRequestHandlerSubmitRequiresSession(t *testing.T) {
	h := NewRequestHandler(&requestServiceMock{})

	c, w := newTestContext(http.MethodPost, "/api/requests", `{"notes":"x"}`, nil)
	h.Submit(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequestHandlerListParsesFilters(t *testing.T) {
	svc := &requestServiceMock{}
	h := NewRequestHandler(svc)

	c, w := newTestContext(http.MethodGet, "/api/requests?status=Pending&material_id=m1&date_from=2024-03-01&date_to=2024-03-31", "", adminClaims)
	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.RequestPending, svc.lastFilter.Status)
	assert.Equal(t, "m1", svc.lastFilter.MaterialID)
	require.NotNil(t, svc.lastFilter.DateFrom)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *svc.lastFilter.DateFrom)
	require.NotNil(t, svc.lastFilter.DateTo)
}

func TestRequestHandlerListRejectsBadDate(t *testing.T) {
	h := NewRequestHandler(&requestServiceMock{})

	c, w := newTestContext(http.MethodGet, "/api/requests?date_from=01-03-2024", "", adminClaims)
	h.List(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestHandlerProcess(t *testing.T) {
	svc := &requestServiceMock{}
	h := NewRequestHandler(svc)

	c, w := newTestContext(http.MethodPut, "/api/requests/r1", `{"status":"approved","admin_notes":"ok"}`, adminClaims, gin.Param{Key: "id", Value: "r1"})
	h.Process(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "r1", svc.lastID)
	assert.Equal(t, models.RequestApproved, svc.processReq.Status)
	assert.Equal(t, "ok", svc.processReq.AdminNotes)
}

func TestRequestHandlerProcessInsufficientStock(t *testing.T) {
	h := NewRequestHandler(&requestServiceMock{processErr: appErrors.Clone(appErrors.ErrInsufficientStock, "only 1 available")})

	c, w := newTestContext(http.MethodPut, "/api/requests/r1", `{"status":"approved"}`, adminClaims, gin.Param{Key: "id", Value: "r1"})
	h.Process(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INSUFFICIENT_STOCK", decodeEnvelope(t, w).Error.Code)
}

func TestRequestHandlerCancelAndHistory(t *testing.T) {
	svc := &requestServiceMock{cancelErr: appErrors.Clone(appErrors.ErrInvalidState, "only pending requests can be cancelled")}
	h := NewRequestHandler(svc)

	c, w := newTestContext(http.MethodDelete, "/api/requests/r9", "", userClaims, gin.Param{Key: "id", Value: "r9"})
	h.Cancel(c)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "r9", svc.lastID)

	c, w = newTestContext(http.MethodGet, "/api/requests/history/user-1", "", userClaims, gin.Param{Key: "user_id", Value: "user-1"})
	h.History(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", svc.historyUser)
}
