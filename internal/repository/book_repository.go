package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-inventory-api/internal/models"
)

const bookColumns = `id, type, subject, grade, publisher, author, quantity, notes, created_at, updated_at`

// BookRepository persists textbooks and workbooks.
type BookRepository struct {
	db *sqlx.DB
}

// NewBookRepository constructs the repository.
func NewBookRepository(db *sqlx.DB) *BookRepository {
	return &BookRepository{db: db}
}

// List returns books matching filter ordered by grade and subject.
func (r *BookRepository) List(ctx context.Context, filter models.BookFilter) ([]models.Book, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.Search != "" {
		args = append(args, likePattern(filter.Search))
		conditions = append(conditions, fmt.Sprintf(`(LOWER(subject) LIKE $%[1]d ESCAPE '\' OR LOWER(author) LIKE $%[1]d ESCAPE '\' OR LOWER(notes) LIKE $%[1]d ESCAPE '\')`, len(args)))
	}
	if filter.Publisher != "" {
		args = append(args, filter.Publisher)
		conditions = append(conditions, fmt.Sprintf("publisher = $%d", len(args)))
	}
	if filter.Grade != nil {
		args = append(args, *filter.Grade)
		conditions = append(conditions, fmt.Sprintf("grade = $%d", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}
	if filter.LowStock {
		args = append(args, models.BookLowStockThreshold)
		conditions = append(conditions, fmt.Sprintf("quantity > 0 AND quantity <= $%d", len(args)))
	}
	if filter.OutOfStock {
		conditions = append(conditions, "quantity = 0")
	}

	query := "SELECT " + bookColumns + " FROM books"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY grade, subject"

	var books []models.Book
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// FindByID returns a book by identifier.
func (r *BookRepository) FindByID(ctx context.Context, id string) (*models.Book, error) {
	query := "SELECT " + bookColumns + " FROM books WHERE id = $1"
	var book models.Book
	if err := r.db.GetContext(ctx, &book, query, id); err != nil {
		if isMissingRow(err) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return &book, nil
}

// Create inserts a book, registering its publisher in the same transaction.
func (r *BookRepository) Create(ctx context.Context, book *models.Book) error {
	if book.ID == "" {
		book.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	book.CreatedAt = now
	book.UpdatedAt = now

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if book.Publisher != nil {
			if err := registerName(ctx, tx, models.TaxonomyPublisher, *book.Publisher); err != nil {
				return err
			}
		}
		const query = `INSERT INTO books (` + bookColumns + `)
		VALUES (:id, :type, :subject, :grade, :publisher, :author, :quantity, :notes, :created_at, :updated_at)`
		if _, err := tx.NamedExecContext(ctx, query, book); err != nil {
			return fmt.Errorf("create book: %w", err)
		}
		return nil
	})
}

// Update writes the editable fields of a book and refreshes it from the
// stored row. The quantity column is only written when quantity is non-nil.
func (r *BookRepository) Update(ctx context.Context, book *models.Book, quantity *int) error {
	book.UpdatedAt = time.Now().UTC()

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if book.Publisher != nil {
			if err := registerName(ctx, tx, models.TaxonomyPublisher, *book.Publisher); err != nil {
				return err
			}
		}
		const query = `UPDATE books SET type = $2, subject = $3, grade = $4, publisher = $5,
		author = $6, quantity = COALESCE($7, quantity), notes = $8, updated_at = $9
		WHERE id = $1
		RETURNING ` + bookColumns
		var stored models.Book
		err := tx.GetContext(ctx, &stored, query, book.ID, book.Type, book.Subject, book.Grade, book.Publisher,
			book.Author, quantity, book.Notes, book.UpdatedAt)
		if err != nil {
			if isMissingRow(err) {
				return sql.ErrNoRows
			}
			return fmt.Errorf("update book: %w", err)
		}
		*book = stored
		return nil
	})
}

// Delete removes a book.
func (r *BookRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		if isMissingRow(err) {
			return sql.ErrNoRows
		}
		return fmt.Errorf("delete book: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check book delete rows: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AdjustQuantity applies delta atomically and never lets quantity drop below zero.
func (r *BookRepository) AdjustQuantity(ctx context.Context, id string, delta int) (*models.Book, error) {
	const query = `UPDATE books SET quantity = quantity + $2, updated_at = $3
	WHERE id = $1 AND quantity + $2 >= 0
	RETURNING ` + bookColumns
	var book models.Book
	err := r.db.GetContext(ctx, &book, query, id, delta, time.Now().UTC())
	if err == nil {
		return &book, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		if isMissingRow(err) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("adjust book quantity: %w", err)
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM books WHERE id = $1)`, id); err != nil {
		return nil, fmt.Errorf("check book exists: %w", err)
	}
	if !exists {
		return nil, sql.ErrNoRows
	}
	return nil, ErrInsufficientStock
}

// Stats counts books per stock status, optionally for one book type.
func (r *BookRepository) Stats(ctx context.Context, bookType models.BookType) (*models.StockStats, error) {
	query := `SELECT COUNT(*) AS total,
	COUNT(*) FILTER (WHERE quantity = 0) AS out_of_stock,
	COUNT(*) FILTER (WHERE quantity > 0 AND quantity <= $1) AS low_stock,
	COUNT(*) FILTER (WHERE quantity > $1) AS adequate
	FROM books`
	args := []interface{}{models.BookLowStockThreshold}
	if bookType != "" {
		query += " WHERE type = $2"
		args = append(args, bookType)
	}
	var stats models.StockStats
	if err := r.db.GetContext(ctx, &stats, query, args...); err != nil {
		return nil, fmt.Errorf("book stats: %w", err)
	}
	return &stats, nil
}

// Grades returns the distinct grades that have books.
func (r *BookRepository) Grades(ctx context.Context) ([]int, error) {
	var grades []int
	if err := r.db.SelectContext(ctx, &grades, `SELECT DISTINCT grade FROM books ORDER BY grade`); err != nil {
		return nil, fmt.Errorf("list book grades: %w", err)
	}
	return grades, nil
}

// Publishers returns the distinct non-empty publishers used by books.
func (r *BookRepository) Publishers(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT publisher FROM books WHERE publisher IS NOT NULL AND publisher <> '' ORDER BY publisher`
	var publishers []string
	if err := r.db.SelectContext(ctx, &publishers, query); err != nil {
		return nil, fmt.Errorf("list book publishers: %w", err)
	}
	return publishers, nil
}
