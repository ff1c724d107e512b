package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"backoffice/internal/domain"
)

type AuditRepo struct {
	db *sql.DB
}

func NewAuditRepo(db *sql.DB) *AuditRepo {
	return &AuditRepo{db: db}
}

func (r *AuditRepo) Insert(ctx context.Context, e *domain.AuditEntry) error {
	id := e.ID
	if id == "" {
		id = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, principal_id, principal_kind, action, resource_type, resource_id, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, e.PrincipalID, e.PrincipalKind, e.Action, e.ResourceType, e.ResourceID, e.Status, time.Now().UTC())
	return mapDBError(err)
}

func (r *AuditRepo) List(ctx context.Context, page domain.PageRequest) ([]domain.AuditEntry, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_log`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, principal_id, principal_kind, action, resource_type, resource_id, status, created_at
		 FROM audit_log ORDER BY created_at DESC, id LIMIT ? OFFSET ?`,
		page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.ID, &e.PrincipalID, &e.PrincipalKind, &e.Action, &e.ResourceType, &e.ResourceID, &e.Status, &e.CreatedAt); err != nil {
			return nil, 0, err
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

// DeleteOlderThanDays prunes audit entries past the retention window and
// returns the number of rows removed.
func (r *AuditRepo) DeleteOlderThanDays(ctx context.Context, days int) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM audit_log WHERE created_at < datetime('now', '-%d days')`, days))
	if err != nil {
		return 0, mapDBError(err)
	}
	return res.RowsAffected()
}
