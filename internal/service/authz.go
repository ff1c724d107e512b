package service

import (
	"context"

	"backoffice/internal/domain"
)

// AuthorizationService is the single choke point for ownership decisions on
// ownable resources. Every list/read goes through Scope and every direct-id
// mutation through AuthorizeMutation; handlers never issue an unscoped query
// for a customer context. All decisions fail closed.
type AuthorizationService struct {
	audit domain.AuditRepository
}

// NewAuthorizationService creates an AuthorizationService.
func NewAuthorizationService(audit domain.AuditRepository) *AuthorizationService {
	return &AuthorizationService{audit: audit}
}

// Scope narrows q to the rows the principal is entitled to see. Admin
// contexts get the query unchanged (full visibility); customer contexts get
// the query conjoined with their ownership constraint. Any client-supplied
// scope indicator has already been parsed into q; the output of Scope is
// authoritative regardless of what the client asked for.
func (s *AuthorizationService) Scope(pc domain.PrincipalContext, q domain.ResourceQuery) domain.ResourceQuery {
	if pc.IsAdmin() {
		return q
	}
	// Fail closed: anything that is not the operator is constrained to its
	// own rows, including an empty or unknown kind.
	return q.WithOwner(pc.ID)
}

// AuthorizeMutation re-checks ownership before a mutation addressed to a
// specific resource instance. Admin may mutate any instance. A non-owning
// customer is denied with a NotFoundError whose message is byte-identical to
// the storage layer's absent-row message, so the resource's existence is
// observably indistinguishable from it never existing.
func (s *AuthorizationService) AuthorizeMutation(ctx context.Context, pc domain.PrincipalContext, res domain.Ownable, resourceType, resourceID string) error {
	if pc.IsAdmin() {
		return nil
	}
	if pc.Kind == domain.KindCustomer && res.Owner() == pc.ID {
		return nil
	}
	s.logDenied(ctx, pc, "MUTATE", resourceType, resourceID)
	return domain.ErrNotFound("resource not found")
}

// AuthorizeRead applies the same ownership rule to a fetch-by-id. Split from
// AuthorizeMutation only for audit labelling; both lookup paths enforce
// ownership identically.
func (s *AuthorizationService) AuthorizeRead(ctx context.Context, pc domain.PrincipalContext, res domain.Ownable, resourceType, resourceID string) error {
	if pc.IsAdmin() {
		return nil
	}
	if pc.Kind == domain.KindCustomer && res.Owner() == pc.ID {
		return nil
	}
	s.logDenied(ctx, pc, "READ", resourceType, resourceID)
	return domain.ErrNotFound("resource not found")
}

// RequireAdmin rejects non-operator contexts. Used by surfaces that have no
// ownership dimension at all (applications, products, audit log).
func (s *AuthorizationService) RequireAdmin(ctx context.Context, pc domain.PrincipalContext, action string) error {
	if pc.IsAdmin() {
		return nil
	}
	s.logDenied(ctx, pc, action, "", "")
	return domain.ErrAccessDenied("operator access required")
}

func (s *AuthorizationService) logDenied(ctx context.Context, pc domain.PrincipalContext, action, resourceType, resourceID string) {
	e := &domain.AuditEntry{
		PrincipalID:   pc.ID,
		PrincipalKind: pc.Kind,
		Action:        action,
		Status:        domain.AuditDenied,
	}
	if resourceType != "" {
		e.ResourceType = &resourceType
	}
	if resourceID != "" {
		e.ResourceID = &resourceID
	}
	_ = s.audit.Insert(ctx, e)
}
