package service

import (
	"context"
	"sync"

	"backoffice/internal/domain"
)

// memAudit is an in-memory AuditRepository for tests that don't need SQLite.
type memAudit struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (m *memAudit) Insert(_ context.Context, e *domain.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *e)
	return nil
}

func (m *memAudit) List(_ context.Context, page domain.PageRequest) ([]domain.AuditEntry, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.AuditEntry(nil), m.entries...), int64(len(m.entries)), nil
}

func (m *memAudit) DeleteOlderThanDays(_ context.Context, _ int) (int64, error) {
	return 0, nil
}

func (m *memAudit) denied() []domain.AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.AuditEntry
	for _, e := range m.entries {
		if e.Status == domain.AuditDenied {
			out = append(out, e)
		}
	}
	return out
}

// stubEvaluator returns canned text or a canned error.
type stubEvaluator struct {
	text string
	err  error
}

func (s *stubEvaluator) Evaluate(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

func adminCtx() domain.PrincipalContext {
	return domain.PrincipalContext{ID: "admin-1", Kind: domain.KindAdmin}
}

func customerCtx(id string) domain.PrincipalContext {
	return domain.PrincipalContext{ID: id, Kind: domain.KindCustomer}
}
