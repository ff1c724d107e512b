package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"backoffice/internal/domain"
)

// scoreRe extracts the leading "score: N" line the evaluation prompt asks for.
var scoreRe = regexp.MustCompile(`(?i)score:\s*(\d{1,3})`)

// ApplicationService handles CV intake and AI-assisted evaluation.
type ApplicationService struct {
	apps      domain.ApplicationRepository
	authz     *AuthorizationService
	evaluator domain.Evaluator // nil when AI is not configured
}

// NewApplicationService creates an ApplicationService. evaluator may be nil.
func NewApplicationService(apps domain.ApplicationRepository, authz *AuthorizationService, evaluator domain.Evaluator) *ApplicationService {
	return &ApplicationService{apps: apps, authz: authz, evaluator: evaluator}
}

// Submit stores a CV from the public intake form.
func (s *ApplicationService) Submit(ctx context.Context, req domain.SubmitApplicationRequest) (*domain.Application, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.apps.Create(ctx, &domain.Application{
		CandidateName: req.CandidateName,
		Email:         req.Email,
		Resume:        req.Resume,
	})
}

// List returns applications; operator only.
func (s *ApplicationService) List(ctx context.Context, pc domain.PrincipalContext, page domain.PageRequest) ([]domain.Application, int64, error) {
	if err := s.authz.RequireAdmin(ctx, pc, "LIST_APPLICATIONS"); err != nil {
		return nil, 0, err
	}
	return s.apps.List(ctx, page)
}

// Evaluate scores a CV through the opaque text-generation collaborator and
// persists the result. The evaluator's failure surfaces without retry.
func (s *ApplicationService) Evaluate(ctx context.Context, pc domain.PrincipalContext, id string) (*domain.Application, error) {
	if err := s.authz.RequireAdmin(ctx, pc, "EVALUATE_APPLICATION"); err != nil {
		return nil, err
	}
	if s.evaluator == nil {
		return nil, domain.ErrValidation("AI evaluation is not configured")
	}

	a, err := s.apps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		"Evaluate the following CV for a small-business back-office role. "+
			"Start your reply with a line \"score: N\" where N is 0-100, then a short summary.\n\n"+
			"Candidate: %s\n\n%s",
		a.CandidateName, a.Resume)

	text, err := s.evaluator.Evaluate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	score := parseScore(text)
	if err := s.apps.SetEvaluation(ctx, id, score, text); err != nil {
		return nil, err
	}
	return s.apps.GetByID(ctx, id)
}

// parseScore pulls the numeric score from the evaluation text. Unparseable
// replies score 0; the full text is still kept as the summary.
func parseScore(text string) int64 {
	m := scoreRe.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil || n > 100 {
		return 0
	}
	return n
}
