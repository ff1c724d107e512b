package domain

import "time"

// Audit statuses.
const (
	AuditAllowed = "ALLOWED"
	AuditDenied  = "DENIED"
)

// AuditEntry records a security-relevant action: logins, logouts, and
// every authorization decision on ownable resources.
type AuditEntry struct {
	ID            string
	PrincipalID   string
	PrincipalKind PrincipalKind
	Action        string
	ResourceType  *string
	ResourceID    *string
	Status        string // "ALLOWED" or "DENIED"
	CreatedAt     time.Time
}
