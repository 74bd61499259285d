package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-inventory-api/internal/models"
)

var requestRowColumns = []string{"id", "user_id", "material_id", "requested_quantity", "notes", "status", "admin_notes", "created_at", "processed_at", "processed_by"}

func strPtr(s string) *string { return &s }

func TestRequestCreateLocksMaterial(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM materials WHERE id = $1 FOR KEY SHARE")).
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("m1"))
	mock.ExpectExec("INSERT INTO material_requests").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	req := &models.MaterialRequest{UserID: "u1", MaterialID: strPtr("m1"), RequestedQuantity: 2}
	require.NoError(t, repo.Create(context.Background(), req))
	assert.Equal(t, models.RequestPending, req.Status)
	assert.NotEmpty(t, req.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestCreateUnknownMaterial(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR KEY SHARE").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.MaterialRequest{UserID: "u1", MaterialID: strPtr("gone"), RequestedQuantity: 1})
	assert.ErrorIs(t, err, ErrMaterialNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestMalformedIDs(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)
	badID := &pq.Error{Code: "22P02", Message: "invalid input syntax for type uuid"}

	mock.ExpectBegin()
	mock.ExpectQuery("FOR KEY SHARE").WithArgs("abc").WillReturnError(badID)
	mock.ExpectRollback()
	err := repo.Create(context.Background(), &models.MaterialRequest{UserID: "u1", MaterialID: strPtr("abc"), RequestedQuantity: 1})
	assert.ErrorIs(t, err, ErrMaterialNotFound)

	mock.ExpectQuery("WHERE r.id = ").WithArgs("abc").WillReturnError(badID)
	_, err = repo.FindByID(context.Background(), "abc")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	mock.ExpectExec("DELETE FROM material_requests").WithArgs("abc").WillReturnError(badID)
	assert.ErrorIs(t, repo.DeletePending(context.Background(), "abc"), sql.ErrNoRows)

	mock.ExpectQuery("WHERE r.user_id = ").WithArgs("abc").WillReturnError(badID)
	views, err := repo.History(context.Background(), "abc")
	require.NoError(t, err)
	assert.Empty(t, views)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestCreateFreeText(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO material_requests").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), &models.MaterialRequest{UserID: "u1", RequestedQuantity: 1, Notes: "stapler"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestListOrderingAndDateBounds(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE r.user_id = $1 AND r.status = $2 AND r.created_at >= $3 AND r.created_at < $4 ORDER BY CASE r.status WHEN 'pending' THEN 0 WHEN 'approved' THEN 1 ELSE 2 END, r.created_at DESC")).
		WithArgs("u1", models.RequestPending, from, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	views, err := repo.List(context.Background(), models.RequestFilter{UserID: "u1", Status: models.RequestPending, DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	assert.Empty(t, views)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestFindByIDToleratesDeletedMaterial(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	now := time.Now()
	cols := append(append([]string{}, requestRowColumns...), "username", "full_name", "material_name", "material_category", "current_quantity", "processed_by_name")
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN materials m ON m.id = r.material_id")).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("r1", "u1", "m-gone", 2, "", "approved", nil, now, now, "a1", "alice", "Alice", nil, nil, nil, "Admin"))

	view, err := repo.FindByID(context.Background(), "r1")
	require.NoError(t, err)
	assert.Nil(t, view.MaterialName)
	assert.Nil(t, view.CurrentQuantity)
	assert.Equal(t, "alice", *view.Username)
	assert.Equal(t, models.RequestApproved, view.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestProcessApproveDeductsStock(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM material_requests WHERE id = $1 FOR UPDATE")).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows(requestRowColumns).AddRow("r1", "u1", "m1", 3, "", "pending", nil, now, nil, nil))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE materials SET quantity = quantity - $2, updated_at = $3 WHERE id = $1 AND quantity >= $2 RETURNING quantity")).
		WithArgs("m1", 3, now).
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE material_requests SET status = $2, admin_notes = $3, processed_by = $4, processed_at = $5 WHERE id = $1 AND status = 'pending'")).
		WithArgs("r1", models.RequestApproved, sqlmock.AnyArg(), "admin-1", now).
		WillReturnRows(sqlmock.NewRows(requestRowColumns).AddRow("r1", "u1", "m1", 3, "", "approved", "ok", now, now, "admin-1"))
	mock.ExpectCommit()

	req, err := repo.Process(context.Background(), models.ProcessRequestParams{
		ID: "r1", Status: models.RequestApproved, AdminNotes: strPtr("ok"), ProcessedBy: "admin-1", ProcessedAt: now,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequestApproved, req.Status)
	assert.Equal(t, "admin-1", *req.ProcessedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestProcessInsufficientStockRollsBack(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(requestRowColumns).AddRow("r1", "u1", "m1", 30, "", "pending", nil, now, nil, nil))
	mock.ExpectQuery("UPDATE materials SET quantity").WillReturnRows(sqlmock.NewRows([]string{"quantity"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM materials WHERE id = $1)")).
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := repo.Process(context.Background(), models.ProcessRequestParams{ID: "r1", Status: models.RequestApproved, ProcessedBy: "a", ProcessedAt: now})
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestProcessOrphanedMaterial(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(requestRowColumns).AddRow("r1", "u1", "m1", 1, "", "pending", nil, now, nil, nil))
	mock.ExpectQuery("UPDATE materials SET quantity").WillReturnRows(sqlmock.NewRows([]string{"quantity"}))
	mock.ExpectQuery("SELECT EXISTS").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, err := repo.Process(context.Background(), models.ProcessRequestParams{ID: "r1", Status: models.RequestApproved, ProcessedBy: "a", ProcessedAt: now})
	assert.ErrorIs(t, err, ErrMaterialNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestProcessRejectSkipsStock(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(requestRowColumns).AddRow("r1", "u1", "m1", 1, "", "pending", nil, now, nil, nil))
	mock.ExpectQuery("UPDATE material_requests SET status").
		WillReturnRows(sqlmock.NewRows(requestRowColumns).AddRow("r1", "u1", "m1", 1, "", "rejected", nil, now, now, "a"))
	mock.ExpectCommit()

	req, err := repo.Process(context.Background(), models.ProcessRequestParams{ID: "r1", Status: models.RequestRejected, ProcessedBy: "a", ProcessedAt: now})
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, req.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestProcessAlreadyProcessed(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	now := time.Now().UTC()
	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(requestRowColumns).AddRow("r1", "u1", "m1", 1, "", "approved", nil, now, now, "a"))
	mock.ExpectRollback()

	_, err := repo.Process(context.Background(), models.ProcessRequestParams{ID: "r1", Status: models.RequestRejected, ProcessedBy: "a", ProcessedAt: now})
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestDeletePending(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM material_requests WHERE id = $1 AND status = 'pending'")).
		WithArgs("r1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM material_requests WHERE id = $1)")).
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	assert.ErrorIs(t, repo.DeletePending(context.Background(), "r1"), ErrInvalidState)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestStats(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRequestRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) FILTER (WHERE status = 'pending') AS pending")).
		WillReturnRows(sqlmock.NewRows([]string{"pending", "approved", "rejected", "total"}).AddRow(1, 2, 3, 6))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
