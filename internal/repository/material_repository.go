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

const materialColumns = `id, name, category, quantity, min_threshold, max_threshold, notes, created_at, updated_at`

// MaterialRepository persists consumable materials.
type MaterialRepository struct {
	db *sqlx.DB
}

// NewMaterialRepository constructs the repository.
func NewMaterialRepository(db *sqlx.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// List returns materials matching filter ordered by category and name.
func (r *MaterialRepository) List(ctx context.Context, filter models.MaterialFilter) ([]models.Material, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.Search != "" {
		args = append(args, likePattern(filter.Search))
		conditions = append(conditions, fmt.Sprintf(`(LOWER(name) LIKE $%d ESCAPE '\' OR LOWER(notes) LIKE $%d ESCAPE '\')`, len(args), len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.LowStock {
		conditions = append(conditions, "quantity > 0 AND quantity <= min_threshold")
	}
	if filter.OutOfStock {
		conditions = append(conditions, "quantity = 0")
	}

	query := "SELECT " + materialColumns + " FROM materials"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY category, name"

	var materials []models.Material
	if err := r.db.SelectContext(ctx, &materials, query, args...); err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	return materials, nil
}

// FindByID returns a material by identifier.
func (r *MaterialRepository) FindByID(ctx context.Context, id string) (*models.Material, error) {
	query := "SELECT " + materialColumns + " FROM materials WHERE id = $1"
	var material models.Material
	if err := r.db.GetContext(ctx, &material, query, id); err != nil {
		if isMissingRow(err) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("find material: %w", err)
	}
	return &material, nil
}

// Create inserts a material, registering its category in the same transaction.
func (r *MaterialRepository) Create(ctx context.Context, material *models.Material) error {
	if material.ID == "" {
		material.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	material.CreatedAt = now
	material.UpdatedAt = now

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := registerName(ctx, tx, models.TaxonomyCategory, material.Category); err != nil {
			return err
		}
		const query = `INSERT INTO materials (` + materialColumns + `)
		VALUES (:id, :name, :category, :quantity, :min_threshold, :max_threshold, :notes, :created_at, :updated_at)`
		if _, err := tx.NamedExecContext(ctx, query, material); err != nil {
			return fmt.Errorf("create material: %w", err)
		}
		return nil
	})
}

// Update writes the editable fields of a material and refreshes it from the
// stored row. The quantity column is only written when quantity is non-nil,
// so adjustments committed after the caller read the row are kept.
func (r *MaterialRepository) Update(ctx context.Context, material *models.Material, quantity *int) error {
	material.UpdatedAt = time.Now().UTC()

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := registerName(ctx, tx, models.TaxonomyCategory, material.Category); err != nil {
			return err
		}
		const query = `UPDATE materials SET name = $2, category = $3, quantity = COALESCE($4, quantity),
		min_threshold = $5, max_threshold = $6, notes = $7, updated_at = $8
		WHERE id = $1
		RETURNING ` + materialColumns
		var stored models.Material
		err := tx.GetContext(ctx, &stored, query, material.ID, material.Name, material.Category, quantity,
			material.MinThreshold, material.MaxThreshold, material.Notes, material.UpdatedAt)
		if err != nil {
			if isMissingRow(err) {
				return sql.ErrNoRows
			}
			return fmt.Errorf("update material: %w", err)
		}
		*material = stored
		return nil
	})
}

// Delete removes a material unless a pending request still references it.
// Processed requests keep the dangling id.
func (r *MaterialRepository) Delete(ctx context.Context, id string) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var locked string
		if err := tx.GetContext(ctx, &locked, `SELECT id FROM materials WHERE id = $1 FOR UPDATE`, id); err != nil {
			if isMissingRow(err) {
				return sql.ErrNoRows
			}
			return fmt.Errorf("lock material: %w", err)
		}

		var pending int
		const countQuery = `SELECT COUNT(*) FROM material_requests WHERE material_id = $1 AND status = 'pending'`
		if err := tx.GetContext(ctx, &pending, countQuery, id); err != nil {
			return fmt.Errorf("count pending requests: %w", err)
		}
		if pending > 0 {
			return ErrInUse
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM materials WHERE id = $1`, id); err != nil {
			return fmt.Errorf("delete material: %w", err)
		}
		return nil
	})
}

// AdjustQuantity applies delta atomically. The row lock taken by the UPDATE
// serialises concurrent adjustments, and the guard keeps quantity >= 0.
func (r *MaterialRepository) AdjustQuantity(ctx context.Context, id string, delta int) (*models.Material, error) {
	const query = `UPDATE materials SET quantity = quantity + $2, updated_at = $3
	WHERE id = $1 AND quantity + $2 >= 0
	RETURNING ` + materialColumns
	var material models.Material
	err := r.db.GetContext(ctx, &material, query, id, delta, time.Now().UTC())
	if err == nil {
		return &material, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, r.missingOrShort(ctx, id)
	}
	if isMissingRow(err) {
		return nil, sql.ErrNoRows
	}
	return nil, fmt.Errorf("adjust material quantity: %w", err)
}

func (r *MaterialRepository) missingOrShort(ctx context.Context, id string) error {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM materials WHERE id = $1)`, id); err != nil {
		return fmt.Errorf("check material exists: %w", err)
	}
	if !exists {
		return sql.ErrNoRows
	}
	return ErrInsufficientStock
}

// Stats counts materials per stock status.
func (r *MaterialRepository) Stats(ctx context.Context) (*models.StockStats, error) {
	const query = `SELECT COUNT(*) AS total,
	COUNT(*) FILTER (WHERE quantity = 0) AS out_of_stock,
	COUNT(*) FILTER (WHERE quantity > 0 AND quantity <= min_threshold) AS low_stock,
	COUNT(*) FILTER (WHERE quantity > min_threshold) AS adequate
	FROM materials`
	var stats models.StockStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("material stats: %w", err)
	}
	return &stats, nil
}

// likePattern lowercases term and escapes LIKE wildcards for a substring match.
func likePattern(term string) string {
	escaped := likeEscaper.Replace(strings.ToLower(term))
	return "%" + escaped + "%"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// Categories returns the distinct categories currently used by materials.
func (r *MaterialRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := r.db.SelectContext(ctx, &categories, `SELECT DISTINCT category FROM materials ORDER BY category`); err != nil {
		return nil, fmt.Errorf("list material categories: %w", err)
	}
	return categories, nil
}
