// Package service implements the application services: authentication,
// authorization scoping, and the back-office resource operations.
package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"backoffice/internal/domain"
	"backoffice/internal/session"
)

// AuthService verifies credentials against the principal store and issues
// session tokens.
type AuthService struct {
	principals domain.PrincipalRepository
	audit      domain.AuditRepository
	codec      *session.Codec
}

// NewAuthService creates an AuthService.
func NewAuthService(principals domain.PrincipalRepository, audit domain.AuditRepository, codec *session.Codec) *AuthService {
	return &AuthService{principals: principals, audit: audit, codec: codec}
}

// Login verifies the identifier/secret pair for the given kind and issues a
// fresh session token. Every failure path — unknown identifier, wrong
// secret, wrong kind — returns ErrInvalidCredentials so the response never
// reveals which part failed. Store failures are returned as-is; they are the
// only class a caller may retry.
func (s *AuthService) Login(ctx context.Context, kind domain.PrincipalKind, email, secret string) (*domain.Principal, string, error) {
	if !kind.Valid() {
		return nil, "", domain.ErrInvalidCredentials
	}

	p, err := s.principals.GetByEmail(ctx, kind, email)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			// Burn a bcrypt comparison anyway so response timing does not
			// distinguish unknown identifiers from wrong secrets.
			_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$0000000000000000000000000000000000000000000000000000"), []byte(secret))
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.SecretHash), []byte(secret)); err != nil {
		s.logAudit(ctx, p, "LOGIN", domain.AuditDenied)
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(p)
	if err != nil {
		return nil, "", err
	}
	s.logAudit(ctx, p, "LOGIN", domain.AuditAllowed)
	return p, token, nil
}

// Introspect returns the principal's public profile fetched fresh from the
// store, so profile edits show without re-login. A missing backing record
// yields (nil, nil), indistinguishable from no session at all.
func (s *AuthService) Introspect(ctx context.Context, pc domain.PrincipalContext) (*domain.PublicProfile, error) {
	p, err := s.principals.GetByID(ctx, pc.ID)
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	profile := p.Profile()
	return &profile, nil
}

// Logout records the logout event. Carrier invalidation happens at the HTTP
// layer; repeated logout is a no-op from the caller's perspective.
func (s *AuthService) Logout(ctx context.Context, pc domain.PrincipalContext) {
	_ = s.audit.Insert(ctx, &domain.AuditEntry{
		PrincipalID:   pc.ID,
		PrincipalKind: pc.Kind,
		Action:        "LOGOUT",
		Status:        domain.AuditAllowed,
	})
}

// Codec exposes the session codec for carrier TTL lookups.
func (s *AuthService) Codec() *session.Codec { return s.codec }

func (s *AuthService) logAudit(ctx context.Context, p *domain.Principal, action, status string) {
	_ = s.audit.Insert(ctx, &domain.AuditEntry{
		PrincipalID:   p.ID,
		PrincipalKind: p.Kind,
		Action:        action,
		Status:        status,
	})
}

// HashSecret hashes a plain secret with bcrypt for storage.
func HashSecret(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
