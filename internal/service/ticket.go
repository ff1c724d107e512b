package service

import (
	"context"
	"fmt"

	"backoffice/internal/domain"
)

// TicketService provides support-ticket operations with ownership scoping.
type TicketService struct {
	tickets   domain.TicketRepository
	authz     *AuthorizationService
	audit     domain.AuditRepository
	evaluator domain.Evaluator // nil when AI is not configured
}

// NewTicketService creates a TicketService. evaluator may be nil.
func NewTicketService(tickets domain.TicketRepository, authz *AuthorizationService, audit domain.AuditRepository, evaluator domain.Evaluator) *TicketService {
	return &TicketService{tickets: tickets, authz: authz, audit: audit, evaluator: evaluator}
}

// List returns tickets visible to the principal, always scoped.
func (s *TicketService) List(ctx context.Context, pc domain.PrincipalContext, q domain.ResourceQuery) ([]domain.Ticket, int64, error) {
	return s.tickets.List(ctx, s.authz.Scope(pc, q))
}

// Get fetches a ticket by id with the ownership re-check applied.
func (s *TicketService) Get(ctx context.Context, pc domain.PrincipalContext, id string) (*domain.Ticket, error) {
	t, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.AuthorizeRead(ctx, pc, t, "ticket", id); err != nil {
		return nil, err
	}
	return t, nil
}

// Create opens a ticket owned by the session principal.
func (s *TicketService) Create(ctx context.Context, pc domain.PrincipalContext, req domain.CreateTicketRequest) (*domain.Ticket, error) {
	if pc.Kind != domain.KindCustomer {
		return nil, domain.ErrAccessDenied("only customers can open tickets")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	t, err := s.tickets.Create(ctx, &domain.Ticket{
		OwnerID: pc.ID,
		Subject: req.Subject,
		Body:    req.Body,
		Status:  domain.TicketOpen,
	})
	if err != nil {
		return nil, err
	}
	s.logAudit(ctx, pc, "CREATE_TICKET", t.ID)
	return t, nil
}

// Answer records the operator's reply and marks the ticket answered.
func (s *TicketService) Answer(ctx context.Context, pc domain.PrincipalContext, id, answer string) (*domain.Ticket, error) {
	if err := s.authz.RequireAdmin(ctx, pc, "ANSWER_TICKET"); err != nil {
		return nil, err
	}
	if answer == "" {
		return nil, domain.ErrValidation("answer is required")
	}

	t, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Answer = &answer
	t.Status = domain.TicketAnswered
	if err := s.tickets.Update(ctx, t); err != nil {
		return nil, err
	}
	s.logAudit(ctx, pc, "ANSWER_TICKET", id)
	return t, nil
}

// Close closes a ticket. The owner or the operator may close it.
func (s *TicketService) Close(ctx context.Context, pc domain.PrincipalContext, id string) (*domain.Ticket, error) {
	t, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authz.AuthorizeMutation(ctx, pc, t, "ticket", id); err != nil {
		return nil, err
	}

	t.Status = domain.TicketClosed
	if err := s.tickets.Update(ctx, t); err != nil {
		return nil, err
	}
	s.logAudit(ctx, pc, "CLOSE_TICKET", id)
	return t, nil
}

// Suggest asks the generative-AI collaborator for a draft solution. The call
// is opaque: the service only depends on receiving text or a failure, which
// surfaces to the caller without retry.
func (s *TicketService) Suggest(ctx context.Context, pc domain.PrincipalContext, id string) (string, error) {
	if err := s.authz.RequireAdmin(ctx, pc, "SUGGEST_TICKET"); err != nil {
		return "", err
	}
	if s.evaluator == nil {
		return "", domain.ErrValidation("AI suggestions are not configured")
	}

	t, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	prompt := fmt.Sprintf(
		"Draft a concise support reply for the following ticket.\nSubject: %s\n\n%s",
		t.Subject, t.Body)
	return s.evaluator.Evaluate(ctx, prompt)
}

func (s *TicketService) logAudit(ctx context.Context, pc domain.PrincipalContext, action, ticketID string) {
	resourceType := "ticket"
	_ = s.audit.Insert(ctx, &domain.AuditEntry{
		PrincipalID:   pc.ID,
		PrincipalKind: pc.Kind,
		Action:        action,
		ResourceType:  &resourceType,
		ResourceID:    &ticketID,
		Status:        domain.AuditAllowed,
	})
}
