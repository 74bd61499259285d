package models

import "time"

// SecurityEvent enumerates audited authentication events.
type SecurityEvent string

const (
	EventLoginSuccess           SecurityEvent = "LOGIN_SUCCESS"
	EventLoginFailed            SecurityEvent = "LOGIN_FAILED"
	EventLoginBlocked           SecurityEvent = "LOGIN_BLOCKED"
	EventLoginAttempt           SecurityEvent = "LOGIN_ATTEMPT"
	EventPasswordChanged        SecurityEvent = "PASSWORD_CHANGED"
	EventPasswordChangedByAdmin SecurityEvent = "PASSWORD_CHANGED_BY_ADMIN"
	EventPasswordChangeFailed   SecurityEvent = "PASSWORD_CHANGE_FAILED"
)

// FailedLoginEvents count towards the login lockout.
var FailedLoginEvents = []SecurityEvent{EventLoginFailed, EventLoginAttempt}

// SecurityLogEntry is an append-only audit record.
type SecurityLogEntry struct {
	ID        string        `db:"id" json:"id"`
	EventType SecurityEvent `db:"event_type" json:"event_type"`
	Username  string        `db:"username" json:"username"`
	IPAddress string        `db:"ip_address" json:"ip_address"`
	Success   bool          `db:"success" json:"success"`
	Details   string        `db:"details" json:"details"`
	UserAgent string        `db:"user_agent" json:"user_agent"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

const (
	DefaultSecurityLogLimit = 100
	MaxSecurityLogLimit     = 10000
)

// SecurityLogFilter narrows security log queries.
type SecurityLogFilter struct {
	EventType SecurityEvent
	Username  string
	Limit     int
}

// SecurityLogPage is the result of a security log query. Total counts every
// matching entry, not only the returned ones.
type SecurityLogPage struct {
	Logs  []SecurityLogEntry `json:"logs"`
	Total int                `json:"total"`
}
