//go:build integration

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/domain"
)

func TestAuthService_Login_Success(t *testing.T) {
	env := setupEnv(t)
	p := env.createPrincipal(t, domain.KindCustomer, "alice@example.com", "secret-pass")

	got, token, err := env.auth.Login(context.Background(), domain.KindCustomer, "alice@example.com", "secret-pass")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	pc, err := env.codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, p.ID, pc.ID)
	assert.Equal(t, domain.KindCustomer, pc.Kind)
}

// Unknown identifier, wrong secret, and wrong kind all collapse into the
// same error.
func TestAuthService_Login_UniformFailure(t *testing.T) {
	env := setupEnv(t)
	env.createPrincipal(t, domain.KindCustomer, "alice@example.com", "secret-pass")

	cases := []struct {
		name  string
		kind  domain.PrincipalKind
		email string
		pass  string
	}{
		{"unknown email", domain.KindCustomer, "nobody@example.com", "secret-pass"},
		{"wrong password", domain.KindCustomer, "alice@example.com", "wrong"},
		{"wrong kind", domain.KindAdmin, "alice@example.com", "secret-pass"},
		{"invalid kind", "robot", "alice@example.com", "secret-pass"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := env.auth.Login(context.Background(), tc.kind, tc.email, tc.pass)
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		})
	}
}

func TestAuthService_Login_AuditsOutcome(t *testing.T) {
	env := setupEnv(t)
	env.createPrincipal(t, domain.KindCustomer, "alice@example.com", "secret-pass")

	_, _, err := env.auth.Login(context.Background(), domain.KindCustomer, "alice@example.com", "secret-pass")
	require.NoError(t, err)
	_, _, err = env.auth.Login(context.Background(), domain.KindCustomer, "alice@example.com", "wrong")
	require.Error(t, err)

	entries, _, err := env.audit.List(context.Background(), domain.PageRequest{PageSize: 10})
	require.NoError(t, err)

	var allowed, denied int
	for _, e := range entries {
		if e.Action != "LOGIN" {
			continue
		}
		switch e.Status {
		case domain.AuditAllowed:
			allowed++
		case domain.AuditDenied:
			denied++
		}
	}
	assert.Equal(t, 1, allowed)
	assert.Equal(t, 1, denied)
}

func TestAuthService_Introspect(t *testing.T) {
	env := setupEnv(t)
	p := env.createPrincipal(t, domain.KindAdmin, "ops@example.com", "secret-pass")

	profile, err := env.auth.Introspect(context.Background(), domain.PrincipalContext{ID: p.ID, Kind: p.Kind})
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "ops@example.com", profile.Email)

	// A session whose backing record is gone reads as no session.
	profile, err = env.auth.Introspect(context.Background(), domain.PrincipalContext{ID: "gone", Kind: domain.KindAdmin})
	require.NoError(t, err)
	assert.Nil(t, profile)
}

// The same email may exist once per kind; login resolves within the kind.
func TestAuthService_Login_KindNamespaces(t *testing.T) {
	env := setupEnv(t)
	cust := env.createPrincipal(t, domain.KindCustomer, "dual@example.com", "customer-pass")
	admin := env.createPrincipal(t, domain.KindAdmin, "dual@example.com", "admin-pass")

	got, _, err := env.auth.Login(context.Background(), domain.KindCustomer, "dual@example.com", "customer-pass")
	require.NoError(t, err)
	assert.Equal(t, cust.ID, got.ID)

	got, _, err = env.auth.Login(context.Background(), domain.KindAdmin, "dual@example.com", "admin-pass")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)
}
