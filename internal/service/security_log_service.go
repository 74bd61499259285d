package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/school-inventory-api/internal/models"
	appErrors "github.com/noah-isme/school-inventory-api/pkg/errors"
)

type securityLogRepository interface {
	Create(ctx context.Context, entry *models.SecurityLogEntry) error
	Query(ctx context.Context, filter models.SecurityLogFilter) ([]models.SecurityLogEntry, int, error)
	CountFailedLogins(ctx context.Context, username string, since time.Time) (int, error)
}

// SecurityLogService appends and queries authentication audit entries.
type SecurityLogService struct {
	repo   securityLogRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewSecurityLogService constructs a SecurityLogService.
func NewSecurityLogService(repo securityLogRepository, logger *zap.Logger) *SecurityLogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SecurityLogService{repo: repo, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Append records an event. Callers treat a failure as a failure of the
// operation being audited.
func (s *SecurityLogService) Append(ctx context.Context, entry models.SecurityLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now()
	}
	if err := s.repo.Create(ctx, &entry); err != nil {
		s.logger.Error("failed to append security log",
			zap.String("event", string(entry.EventType)),
			zap.String("username", entry.Username),
			zap.Error(err))
		return appErrors.Internal(err, "failed to record security event")
	}
	return nil
}

// Query returns matching entries newest first along with the total match count.
func (s *SecurityLogService) Query(ctx context.Context, filter models.SecurityLogFilter) (*models.SecurityLogPage, error) {
	if filter.Limit < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "limit must not be negative")
	}
	if filter.Limit == 0 {
		filter.Limit = models.DefaultSecurityLogLimit
	}
	if filter.Limit > models.MaxSecurityLogLimit {
		filter.Limit = models.MaxSecurityLogLimit
	}
	filter.Username = strings.TrimSpace(filter.Username)
	filter.EventType = models.SecurityEvent(strings.ToUpper(strings.TrimSpace(string(filter.EventType))))

	logs, total, err := s.repo.Query(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to query security logs")
	}
	if logs == nil {
		logs = []models.SecurityLogEntry{}
	}
	return &models.SecurityLogPage{Logs: logs, Total: total}, nil
}

// FailedLoginsSince counts failed attempts for username since the given time,
// ignoring attempts before the latest successful login.
func (s *SecurityLogService) FailedLoginsSince(ctx context.Context, username string, since time.Time) (int, error) {
	count, err := s.repo.CountFailedLogins(ctx, username, since)
	if err != nil {
		return 0, appErrors.Internal(err, "failed to count failed logins")
	}
	return count, nil
}
