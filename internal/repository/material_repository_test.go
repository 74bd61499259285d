package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-inventory-api/internal/models"
)

var materialRowColumns = []string{"id", "name", "category", "quantity", "min_threshold", "max_threshold", "notes", "created_at", "updated_at"}

func TestMaterialListFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(materialRowColumns).AddRow("m1", "Pencil", "Stationery", 3, 5, 50, "", now, now)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM materials WHERE (LOWER(name) LIKE $1 ESCAPE '\' OR LOWER(notes) LIKE $1 ESCAPE '\') AND category = $2 AND quantity > 0 AND quantity <= min_threshold ORDER BY category, name`)).
		WithArgs("%pen%", "Stationery").
		WillReturnRows(rows)

	items, err := repo.List(context.Background(), models.MaterialFilter{Search: "PEN", Category: "Stationery", LowStock: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Pencil", items[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialCreateRegistersCategory(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO categories (name) VALUES ($1) ON CONFLICT (name) DO NOTHING")).
		WithArgs("Paper").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO materials").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	m := &models.Material{Name: "A4", Category: "Paper", Quantity: 10, MinThreshold: 5, MaxThreshold: 50}
	require.NoError(t, repo.Create(context.Background(), m))
	assert.NotEmpty(t, m.ID)
	assert.False(t, m.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialCreateRollsBackOnInsertFailure(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO categories").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO materials").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Material{Name: "A4", Category: "Paper"})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialListEscapesWildcards(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	mock.ExpectQuery("FROM materials WHERE").
		WithArgs(`%50\%\_a%`).
		WillReturnRows(sqlmock.NewRows(materialRowColumns))

	items, err := repo.List(context.Background(), models.MaterialFilter{Search: "50%_A"})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialUpdateMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO categories").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("UPDATE materials SET name").WillReturnRows(sqlmock.NewRows(materialRowColumns))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), &models.Material{ID: "missing", Name: "A4", Category: "Paper"}, nil)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialUpdateWithoutQuantityKeepsStoredValue(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO categories").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE materials SET name = $2, category = $3, quantity = COALESCE($4, quantity),")).
		WithArgs("m1", "A4 notebook", "Paper", nil, 5, 50, "", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(materialRowColumns).AddRow("m1", "A4 notebook", "Paper", 7, 5, 50, "", now, now))
	mock.ExpectCommit()

	m := &models.Material{ID: "m1", Name: "A4 notebook", Category: "Paper", Quantity: 10, MinThreshold: 5, MaxThreshold: 50}
	require.NoError(t, repo.Update(context.Background(), m, nil))
	assert.Equal(t, 7, m.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialMalformedIDIsNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)
	badID := &pq.Error{Code: "22P02", Message: "invalid input syntax for type uuid"}

	mock.ExpectQuery("FROM materials WHERE id = \\$1").WithArgs("42").WillReturnError(badID)
	_, err := repo.FindByID(context.Background(), "42")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	mock.ExpectQuery("UPDATE materials SET quantity").WithArgs("42", -1, sqlmock.AnyArg()).WillReturnError(badID)
	_, err = repo.AdjustQuantity(context.Background(), "42", -1)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM materials WHERE id = \\$1 FOR UPDATE").WithArgs("42").WillReturnError(badID)
	mock.ExpectRollback()
	assert.ErrorIs(t, repo.Delete(context.Background(), "42"), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialAdjustQuantity(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE materials SET quantity = quantity + $2, updated_at = $3 WHERE id = $1 AND quantity + $2 >= 0 RETURNING")).
		WithArgs("m1", -2, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(materialRowColumns).AddRow("m1", "Pencil", "Stationery", 1, 5, 50, "", now, now))

	m, err := repo.AdjustQuantity(context.Background(), "m1", -2)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialAdjustQuantityInsufficient(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	mock.ExpectQuery("UPDATE materials SET quantity").
		WithArgs("m1", -5, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(materialRowColumns))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM materials WHERE id = $1)")).
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := repo.AdjustQuantity(context.Background(), "m1", -5)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialAdjustQuantityMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	mock.ExpectQuery("UPDATE materials SET quantity").WillReturnRows(sqlmock.NewRows(materialRowColumns))
	mock.ExpectQuery("SELECT EXISTS").WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := repo.AdjustQuantity(context.Background(), "nope", 1)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialDeleteBlockedByPendingRequest(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM materials WHERE id = $1 FOR UPDATE")).
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("m1"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM material_requests WHERE material_id = $1 AND status = 'pending'")).
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), "m1")
	assert.ErrorIs(t, err, ErrInUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialDelete(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("m1"))
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM materials WHERE id = $1")).WithArgs("m1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), "m1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialDeleteMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	assert.ErrorIs(t, repo.Delete(context.Background(), "m1"), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaterialStats(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMaterialRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("COUNT(*) FILTER (WHERE quantity > 0 AND quantity <= min_threshold) AS low_stock")).
		WillReturnRows(sqlmock.NewRows([]string{"total", "out_of_stock", "low_stock", "adequate"}).AddRow(10, 2, 3, 5))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.StockStats{Total: 10, OutOfStock: 2, LowStock: 3, Adequate: 5}, *stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}
