package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-inventory-api/internal/models"
)

// taxonomyTables binds a registry table to the item table referencing it.
type taxonomyTables struct {
	registry string
	items    string
	column   string
}

var taxonomyLayout = map[models.TaxonomyKind]taxonomyTables{
	models.TaxonomyCategory:  {registry: "categories", items: "materials", column: "category"},
	models.TaxonomyPublisher: {registry: "publishers", items: "books", column: "publisher"},
}

// TaxonomyRepository manages a category or publisher registry.
type TaxonomyRepository struct {
	db     *sqlx.DB
	kind   models.TaxonomyKind
	tables taxonomyTables
}

// NewTaxonomyRepository constructs a repository for kind.
func NewTaxonomyRepository(db *sqlx.DB, kind models.TaxonomyKind) *TaxonomyRepository {
	tables, ok := taxonomyLayout[kind]
	if !ok {
		panic(fmt.Sprintf("unknown taxonomy kind %q", kind))
	}
	return &TaxonomyRepository{db: db, kind: kind, tables: tables}
}

// Kind returns the taxonomy served by the repository.
func (r *TaxonomyRepository) Kind() models.TaxonomyKind {
	return r.kind
}

// List returns every registered name with its usage count.
func (r *TaxonomyRepository) List(ctx context.Context) ([]models.TaxonomyEntry, error) {
	query := fmt.Sprintf(`SELECT t.name, COUNT(i.id) AS count FROM %s t LEFT JOIN %s i ON i.%s = t.name GROUP BY t.name ORDER BY t.name`,
		r.tables.registry, r.tables.items, r.tables.column)
	var entries []models.TaxonomyEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.tables.registry, err)
	}
	return entries, nil
}

// Create registers name. It returns ErrDuplicate when the name exists.
func (r *TaxonomyRepository) Create(ctx context.Context, name string) error {
	query := fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, r.tables.registry)
	result, err := r.db.ExecContext(ctx, query, name)
	if err != nil {
		return fmt.Errorf("create %s: %w", r.kind, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check %s insert rows: %w", r.kind, err)
	}
	if rows == 0 {
		return ErrDuplicate
	}
	return nil
}

// Rename moves the registry row and every referencing item from oldName to
// newName in one transaction and returns the number of items moved.
func (r *TaxonomyRepository) Rename(ctx context.Context, oldName, newName string) (int64, error) {
	var moved int64
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := r.lock(ctx, tx, oldName); err != nil {
			return err
		}

		insert := fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, r.tables.registry)
		result, err := tx.ExecContext(ctx, insert, newName)
		if err != nil {
			return fmt.Errorf("insert renamed %s: %w", r.kind, err)
		}
		if rows, err := result.RowsAffected(); err != nil {
			return fmt.Errorf("check renamed %s rows: %w", r.kind, err)
		} else if rows == 0 {
			return ErrDuplicate
		}

		update := fmt.Sprintf(`UPDATE %s SET %s = $1, updated_at = NOW() WHERE %s = $2`, r.tables.items, r.tables.column, r.tables.column)
		result, err = tx.ExecContext(ctx, update, newName, oldName)
		if err != nil {
			return fmt.Errorf("move %s items: %w", r.kind, err)
		}
		if moved, err = result.RowsAffected(); err != nil {
			return fmt.Errorf("check moved %s rows: %w", r.kind, err)
		}

		remove := fmt.Sprintf(`DELETE FROM %s WHERE name = $1`, r.tables.registry)
		if _, err := tx.ExecContext(ctx, remove, oldName); err != nil {
			return fmt.Errorf("remove old %s: %w", r.kind, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}

// Delete removes an unused name. It returns ErrInUse while items reference it.
func (r *TaxonomyRepository) Delete(ctx context.Context, name string) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := r.lock(ctx, tx, name); err != nil {
			return err
		}

		count := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`, r.tables.items, r.tables.column)
		var used int
		if err := tx.GetContext(ctx, &used, count, name); err != nil {
			return fmt.Errorf("count %s usage: %w", r.kind, err)
		}
		if used > 0 {
			return ErrInUse
		}

		remove := fmt.Sprintf(`DELETE FROM %s WHERE name = $1`, r.tables.registry)
		if _, err := tx.ExecContext(ctx, remove, name); err != nil {
			if isForeignKeyViolation(err) {
				return ErrInUse
			}
			return fmt.Errorf("delete %s: %w", r.kind, err)
		}
		return nil
	})
}

func (r *TaxonomyRepository) lock(ctx context.Context, tx *sqlx.Tx, name string) error {
	query := fmt.Sprintf(`SELECT name FROM %s WHERE name = $1 FOR UPDATE`, r.tables.registry)
	var locked string
	if err := tx.GetContext(ctx, &locked, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sql.ErrNoRows
		}
		return fmt.Errorf("lock %s: %w", r.kind, err)
	}
	return nil
}

// registerName adds name to the registry of kind inside an item transaction.
func registerName(ctx context.Context, tx *sqlx.Tx, kind models.TaxonomyKind, name string) error {
	query := fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, taxonomyLayout[kind].registry)
	if _, err := tx.ExecContext(ctx, query, name); err != nil {
		return fmt.Errorf("register %s: %w", kind, err)
	}
	return nil
}
