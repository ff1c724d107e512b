// Package session implements the token codec and the cookie carrier for
// principal sessions.
//
// Tokens are HS256-signed JWTs. Every token carries an integrity tag; any
// bit-level modification fails verification and decodes to nothing rather
// than to a different principal.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"backoffice/internal/domain"
)

// Codec turns a validated principal into a tamper-evident session token and
// back. Decode is a pure function of the token and the clock; it has no side
// effects and never extends a session.
type Codec struct {
	secret      []byte
	adminTTL    time.Duration
	customerTTL time.Duration
	now         func() time.Time
}

type sessionClaims struct {
	Kind domain.PrincipalKind `json:"knd"`
	jwt.RegisteredClaims
}

// NewCodec creates a Codec. TTLs are configuration values, not constants:
// the reference lifetimes are 24h for admin sessions and 7 days for
// customer sessions.
func NewCodec(secret string, adminTTL, customerTTL time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}
	return &Codec{
		secret:      []byte(secret),
		adminTTL:    adminTTL,
		customerTTL: customerTTL,
		now:         time.Now,
	}, nil
}

// WithClock overrides the codec's clock. Intended for tests.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// TTL returns the configured session lifetime for a principal kind.
func (c *Codec) TTL(kind domain.PrincipalKind) time.Duration {
	if kind == domain.KindAdmin {
		return c.adminTTL
	}
	return c.customerTTL
}

// Issue creates a signed session token for the principal, valid from now
// until now + TTL(kind).
func (c *Codec) Issue(p *domain.Principal) (string, error) {
	if !p.Kind.Valid() {
		return "", fmt.Errorf("unknown principal kind %q", p.Kind)
	}
	now := c.now()
	claims := sessionClaims{
		Kind: p.Kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.TTL(p.Kind))),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies the token signature and expiry and returns the embedded
// principal context. Failures map to the session error taxonomy:
// ErrSessionExpired for a stale token, ErrSessionInvalid for anything
// malformed or tampered with.
func (c *Codec) Decode(token string) (domain.PrincipalContext, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.PrincipalContext{}, domain.ErrSessionExpired
		}
		return domain.PrincipalContext{}, domain.ErrSessionInvalid
	}
	if claims.Subject == "" || !claims.Kind.Valid() {
		return domain.PrincipalContext{}, domain.ErrSessionInvalid
	}
	return domain.PrincipalContext{ID: claims.Subject, Kind: claims.Kind}, nil
}
