package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/school-inventory-api/internal/models"
)

// SecurityLogRepository stores the append-only authentication audit trail.
type SecurityLogRepository struct {
	db *sqlx.DB
}

// NewSecurityLogRepository constructs the repository.
func NewSecurityLogRepository(db *sqlx.DB) *SecurityLogRepository {
	return &SecurityLogRepository{db: db}
}

// Create appends an entry.
func (r *SecurityLogRepository) Create(ctx context.Context, entry *models.SecurityLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO security_logs (id, event_type, username, ip_address, success, details, user_agent, created_at)
	VALUES (:id, :event_type, :username, :ip_address, :success, :details, :user_agent, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("create security log: %w", err)
	}
	return nil
}

// Query returns the newest entries matching filter together with the total
// number of matches.
func (r *SecurityLogRepository) Query(ctx context.Context, filter models.SecurityLogFilter) ([]models.SecurityLogEntry, int, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.EventType != "" {
		args = append(args, filter.EventType)
		conditions = append(conditions, fmt.Sprintf("event_type = $%d", len(args)))
	}
	if filter.Username != "" {
		args = append(args, filter.Username)
		conditions = append(conditions, fmt.Sprintf("username = $%d", len(args)))
	}
	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = models.DefaultSecurityLogLimit
	}
	if limit > models.MaxSecurityLogLimit {
		limit = models.MaxSecurityLogLimit
	}

	listQuery := fmt.Sprintf(`SELECT id, event_type, username, ip_address, success, details, user_agent, created_at
	FROM security_logs%s ORDER BY created_at DESC LIMIT %d`, where, limit)
	var entries []models.SecurityLogEntry
	if err := r.db.SelectContext(ctx, &entries, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("query security logs: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM security_logs"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count security logs: %w", err)
	}
	return entries, total, nil
}

// CountFailedLogins counts failed login events for username created at or
// after since. A successful login restarts the count.
func (r *SecurityLogRepository) CountFailedLogins(ctx context.Context, username string, since time.Time) (int, error) {
	names := make([]string, len(models.FailedLoginEvents))
	for i, e := range models.FailedLoginEvents {
		names[i] = string(e)
	}
	const query = `SELECT COUNT(*) FROM security_logs
	WHERE username = $1 AND event_type = ANY($2)
	AND created_at >= GREATEST($3, COALESCE(
		(SELECT MAX(created_at) FROM security_logs WHERE username = $1 AND event_type = $4), $3))`
	var count int
	if err := r.db.GetContext(ctx, &count, query, username, pq.Array(names), since, models.EventLoginSuccess); err != nil {
		return 0, fmt.Errorf("count failed logins: %w", err)
	}
	return count, nil
}
