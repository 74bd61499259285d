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

const requestColumns = `id, user_id, material_id, requested_quantity, notes, status, admin_notes, created_at, processed_at, processed_by`

// requestViewSelect joins requester, material and processor. Deleted rows
// leave the joined columns NULL.
const requestViewSelect = `SELECT r.id, r.user_id, r.material_id, r.requested_quantity, r.notes, r.status, r.admin_notes,
	r.created_at, r.processed_at, r.processed_by,
	u.username, u.full_name, m.name AS material_name, m.category AS material_category,
	m.quantity AS current_quantity, p.full_name AS processed_by_name
FROM material_requests r
LEFT JOIN users u ON u.id = r.user_id
LEFT JOIN materials m ON m.id = r.material_id
LEFT JOIN users p ON p.id = r.processed_by`

const requestStatusOrder = `CASE r.status WHEN 'pending' THEN 0 WHEN 'approved' THEN 1 ELSE 2 END`

// RequestRepository persists material requests and their workflow transitions.
type RequestRepository struct {
	db *sqlx.DB
}

// NewRequestRepository constructs the repository.
func NewRequestRepository(db *sqlx.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

// Create inserts a pending request. Requests for a catalog material take a
// key-share lock on the material so a concurrent delete cannot slip between
// the existence check and the insert. It returns ErrMaterialNotFound when the
// material does not exist.
func (r *RequestRepository) Create(ctx context.Context, req *models.MaterialRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	req.Status = models.RequestPending
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if req.MaterialID != nil {
			var id string
			err := tx.GetContext(ctx, &id, `SELECT id FROM materials WHERE id = $1 FOR KEY SHARE`, *req.MaterialID)
			if isMissingRow(err) {
				return ErrMaterialNotFound
			}
			if err != nil {
				return fmt.Errorf("lock requested material: %w", err)
			}
		}

		const query = `INSERT INTO material_requests (` + requestColumns + `)
		VALUES (:id, :user_id, :material_id, :requested_quantity, :notes, :status, :admin_notes, :created_at, :processed_at, :processed_by)`
		if _, err := tx.NamedExecContext(ctx, query, req); err != nil {
			return fmt.Errorf("create material request: %w", err)
		}
		return nil
	})
}

// FindByID returns the joined view of a request.
func (r *RequestRepository) FindByID(ctx context.Context, id string) (*models.MaterialRequestView, error) {
	query := requestViewSelect + ` WHERE r.id = $1`
	var view models.MaterialRequestView
	if err := r.db.GetContext(ctx, &view, query, id); err != nil {
		if isMissingRow(err) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("find material request: %w", err)
	}
	return &view, nil
}

// List returns requests matching filter: pending first, then approved, then
// rejected, newest first within each status.
func (r *RequestRepository) List(ctx context.Context, filter models.RequestFilter) ([]models.MaterialRequestView, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conditions = append(conditions, fmt.Sprintf("r.user_id = $%d", len(args)))
	}
	if filter.MaterialID != "" {
		args = append(args, filter.MaterialID)
		conditions = append(conditions, fmt.Sprintf("r.material_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("r.status = $%d", len(args)))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		conditions = append(conditions, fmt.Sprintf("r.created_at >= $%d", len(args)))
	}
	if filter.DateTo != nil {
		// Whole-day bound: everything before the start of the following day.
		args = append(args, filter.DateTo.AddDate(0, 0, 1))
		conditions = append(conditions, fmt.Sprintf("r.created_at < $%d", len(args)))
	}

	builder := strings.Builder{}
	builder.WriteString(requestViewSelect)
	if len(conditions) > 0 {
		builder.WriteString(" WHERE ")
		builder.WriteString(strings.Join(conditions, " AND "))
	}
	builder.WriteString(" ORDER BY " + requestStatusOrder + ", r.created_at DESC")

	var views []models.MaterialRequestView
	if err := r.db.SelectContext(ctx, &views, builder.String(), args...); err != nil {
		if isMissingRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list material requests: %w", err)
	}
	return views, nil
}

// History returns the approved requests of a user, most recently processed first.
func (r *RequestRepository) History(ctx context.Context, userID string) ([]models.MaterialRequestView, error) {
	query := requestViewSelect + ` WHERE r.user_id = $1 AND r.status = 'approved' ORDER BY r.processed_at DESC`
	var views []models.MaterialRequestView
	if err := r.db.SelectContext(ctx, &views, query, userID); err != nil {
		if isMissingRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list request history: %w", err)
	}
	return views, nil
}

// Stats counts requests per status.
func (r *RequestRepository) Stats(ctx context.Context) (*models.RequestStats, error) {
	const query = `SELECT
	COUNT(*) FILTER (WHERE status = 'pending') AS pending,
	COUNT(*) FILTER (WHERE status = 'approved') AS approved,
	COUNT(*) FILTER (WHERE status = 'rejected') AS rejected,
	COUNT(*) AS total
	FROM material_requests`
	var stats models.RequestStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("material request stats: %w", err)
	}
	return &stats, nil
}

// Process moves a pending request to approved or rejected in one transaction.
// Approving a catalog request deducts the requested quantity from the
// material; when stock is short the transaction rolls back and the request
// stays pending.
func (r *RequestRepository) Process(ctx context.Context, params models.ProcessRequestParams) (*models.MaterialRequest, error) {
	var processed models.MaterialRequest
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var current models.MaterialRequest
		lockQuery := `SELECT ` + requestColumns + ` FROM material_requests WHERE id = $1 FOR UPDATE`
		if err := tx.GetContext(ctx, &current, lockQuery, params.ID); err != nil {
			if isMissingRow(err) {
				return sql.ErrNoRows
			}
			return fmt.Errorf("lock material request: %w", err)
		}
		if current.Status != models.RequestPending {
			return ErrInvalidState
		}

		if params.Status == models.RequestApproved && current.MaterialID != nil {
			if err := deductStock(ctx, tx, *current.MaterialID, current.RequestedQuantity, params.ProcessedAt); err != nil {
				return err
			}
		}

		const update = `UPDATE material_requests SET status = $2, admin_notes = $3, processed_by = $4, processed_at = $5
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + requestColumns
		if err := tx.GetContext(ctx, &processed, update, params.ID, params.Status, params.AdminNotes, params.ProcessedBy, params.ProcessedAt); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrInvalidState
			}
			return fmt.Errorf("update material request status: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &processed, nil
}

func deductStock(ctx context.Context, tx *sqlx.Tx, materialID string, quantity int, at time.Time) error {
	const query = `UPDATE materials SET quantity = quantity - $2, updated_at = $3 WHERE id = $1 AND quantity >= $2 RETURNING quantity`
	var remaining int
	err := tx.GetContext(ctx, &remaining, query, materialID, quantity, at)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("deduct material stock: %w", err)
	}

	var exists bool
	if err := tx.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM materials WHERE id = $1)`, materialID); err != nil {
		return fmt.Errorf("check material exists: %w", err)
	}
	if !exists {
		return ErrMaterialNotFound
	}
	return ErrInsufficientStock
}

// DeletePending removes a request that is still pending. It returns
// ErrInvalidState for processed requests and sql.ErrNoRows for unknown ids.
func (r *RequestRepository) DeletePending(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM material_requests WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		if isMissingRow(err) {
			return sql.ErrNoRows
		}
		return fmt.Errorf("delete material request: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check request delete rows: %w", err)
	}
	if rows > 0 {
		return nil
	}

	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM material_requests WHERE id = $1)`, id); err != nil {
		return fmt.Errorf("check request exists: %w", err)
	}
	if !exists {
		return sql.ErrNoRows
	}
	return ErrInvalidState
}
