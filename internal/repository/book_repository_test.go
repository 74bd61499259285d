package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-inventory-api/internal/models"
)

var bookRowColumns = []string{"id", "type", "subject", "grade", "publisher", "author", "quantity", "notes", "created_at", "updated_at"}

func TestBookListFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewBookRepository(db)

	now := time.Now()
	grade := 4
	mock.ExpectQuery(regexp.QuoteMeta("FROM books WHERE publisher = $1 AND grade = $2 AND type = $3 AND quantity > 0 AND quantity <= $4 ORDER BY grade, subject")).
		WithArgs("Erlangga", 4, models.BookTypeWorkbook, models.BookLowStockThreshold).
		WillReturnRows(sqlmock.NewRows(bookRowColumns).AddRow("b1", "workbook", "Math", 4, "Erlangga", "", 2, "", now, now))

	books, err := repo.List(context.Background(), models.BookFilter{Publisher: "Erlangga", Grade: &grade, Type: models.BookTypeWorkbook, LowStock: true})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.Equal(t, models.BookTypeWorkbook, books[0].Type)
	assert.Equal(t, "Erlangga", *books[0].Publisher)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookCreateWithoutPublisherSkipsRegistry(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewBookRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO books").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), &models.Book{Type: models.BookTypeTextbook, Subject: "Science", Grade: 2}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookCreateRegistersPublisher(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewBookRepository(db)

	publisher := "Yudhistira"
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO publishers (name) VALUES ($1)")).WithArgs(publisher).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO books").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), &models.Book{Type: models.BookTypeTextbook, Subject: "Science", Grade: 2, Publisher: &publisher}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookStatsByType(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewBookRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM books WHERE type = $2")).
		WithArgs(models.BookLowStockThreshold, models.BookTypeTextbook).
		WillReturnRows(sqlmock.NewRows([]string{"total", "out_of_stock", "low_stock", "adequate"}).AddRow(4, 1, 1, 2))

	stats, err := repo.Stats(context.Background(), models.BookTypeTextbook)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Adequate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookAdjustQuantityInsufficient(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewBookRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE books SET quantity = quantity + $2")).WithArgs("b1", -3, sqlmock.AnyArg()).WillReturnRows(sqlmock.NewRows(bookRowColumns))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)")).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := repo.AdjustQuantity(context.Background(), "b1", -3)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookUpdateWithQuantityOverride(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewBookRepository(db)

	now := time.Now()
	quantity := 15
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("quantity = COALESCE($7, quantity)")).
		WithArgs("b1", models.BookTypeTextbook, "Science", 5, nil, "", 15, "", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(bookRowColumns).AddRow("b1", "textbook", "Science", 5, nil, "", 15, "", now, now))
	mock.ExpectCommit()

	book := &models.Book{ID: "b1", Type: models.BookTypeTextbook, Subject: "Science", Grade: 5}
	require.NoError(t, repo.Update(context.Background(), book, &quantity))
	assert.Equal(t, 15, book.Quantity)
	assert.Nil(t, book.Publisher)
	assert.NoError(t, mock.ExpectationsWereMet())
}
