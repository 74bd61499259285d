package service

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/school-inventory-api/internal/models"
)

func TestMetricsServiceDomainCounters(t *testing.T) {
	m := NewMetricsService()
	m.RecordStockAdjustment(models.StockKindMaterial, nil)
	m.RecordStockAdjustment(models.StockKindMaterial, errors.New("short"))
	m.RecordRequestProcessed(models.RequestApproved, nil)
	m.RecordLoginEvent(models.EventLoginFailed)
	m.RecordLoginEvent(models.EventLoginFailed)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.stockAdjustments.WithLabelValues("material", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsProcessed.WithLabelValues("approved", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.loginAttempts.WithLabelValues("LOGIN_FAILED")))
}

func TestMetricsServiceCacheRatio(t *testing.T) {
	m := NewMetricsService()
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)

	assert.InDelta(t, 2.0/3.0, testutil.ToFloat64(m.cacheHitRatio), 0.0001)
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.RecordStockAdjustment(models.StockKindBook, nil)
	m.ObserveHTTPRequest("GET", "/", 200, time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
