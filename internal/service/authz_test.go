package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/domain"
)

func TestScope_AdminUnchanged(t *testing.T) {
	authz := NewAuthorizationService(&memAudit{})

	q := domain.ResourceQuery{Status: domain.OrderPending}
	scoped := authz.Scope(adminCtx(), q)

	assert.Nil(t, scoped.OwnerID)
	assert.Equal(t, domain.OrderPending, scoped.Status)
}

func TestScope_CustomerForcedToOwnRows(t *testing.T) {
	authz := NewAuthorizationService(&memAudit{})

	scoped := authz.Scope(customerCtx("cust-1"), domain.ResourceQuery{})
	require.NotNil(t, scoped.OwnerID)
	assert.Equal(t, "cust-1", *scoped.OwnerID)
}

// A customer query that already carries someone else's owner constraint is
// overwritten, not honored.
func TestScope_CustomerCannotWidenOwner(t *testing.T) {
	authz := NewAuthorizationService(&memAudit{})

	other := "cust-other"
	scoped := authz.Scope(customerCtx("cust-1"), domain.ResourceQuery{OwnerID: &other})
	require.NotNil(t, scoped.OwnerID)
	assert.Equal(t, "cust-1", *scoped.OwnerID)
}

// Unknown or empty kinds get the customer treatment, never full visibility.
func TestScope_UnknownKindFailsClosed(t *testing.T) {
	authz := NewAuthorizationService(&memAudit{})

	for _, kind := range []domain.PrincipalKind{"", "robot"} {
		scoped := authz.Scope(domain.PrincipalContext{ID: "p-1", Kind: kind}, domain.ResourceQuery{})
		require.NotNil(t, scoped.OwnerID, "kind %q", kind)
		assert.Equal(t, "p-1", *scoped.OwnerID)
	}
}

func TestAuthorizeRead_OwnershipRules(t *testing.T) {
	audit := &memAudit{}
	authz := NewAuthorizationService(audit)
	order := &domain.Order{ID: "o-1", OwnerID: "cust-1"}

	require.NoError(t, authz.AuthorizeRead(context.Background(), adminCtx(), order, "order", "o-1"))
	require.NoError(t, authz.AuthorizeRead(context.Background(), customerCtx("cust-1"), order, "order", "o-1"))

	err := authz.AuthorizeRead(context.Background(), customerCtx("cust-2"), order, "order", "o-1")
	require.Error(t, err)

	// The denial must be shaped as not-found so existence does not leak.
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
	var accessDenied *domain.AccessDeniedError
	assert.NotErrorAs(t, err, &accessDenied)
}

func TestAuthorizeMutation_DenialIsAudited(t *testing.T) {
	audit := &memAudit{}
	authz := NewAuthorizationService(audit)
	ticket := &domain.Ticket{ID: "t-1", OwnerID: "cust-1"}

	err := authz.AuthorizeMutation(context.Background(), customerCtx("cust-2"), ticket, "ticket", "t-1")
	require.Error(t, err)

	denied := audit.denied()
	require.Len(t, denied, 1)
	assert.Equal(t, "cust-2", denied[0].PrincipalID)
	assert.Equal(t, "MUTATE", denied[0].Action)
	require.NotNil(t, denied[0].ResourceType)
	assert.Equal(t, "ticket", *denied[0].ResourceType)
	require.NotNil(t, denied[0].ResourceID)
	assert.Equal(t, "t-1", *denied[0].ResourceID)
}

func TestRequireAdmin(t *testing.T) {
	audit := &memAudit{}
	authz := NewAuthorizationService(audit)

	require.NoError(t, authz.RequireAdmin(context.Background(), adminCtx(), "LIST_APPLICATIONS"))

	err := authz.RequireAdmin(context.Background(), customerCtx("cust-1"), "LIST_APPLICATIONS")
	require.Error(t, err)
	var accessDenied *domain.AccessDeniedError
	assert.ErrorAs(t, err, &accessDenied)
	assert.Len(t, audit.denied(), 1)
}
