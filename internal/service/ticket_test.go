//go:build integration

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/domain"
)

func setupTicketService(t *testing.T, evaluator domain.Evaluator) (*testEnv, *TicketService) {
	t.Helper()
	env := setupEnv(t)
	return env, NewTicketService(env.tickets, env.authz, env.audit, evaluator)
}

func TestTicketService_CreateAndList_Scoped(t *testing.T) {
	env, svc := setupTicketService(t, nil)
	alice := env.createPrincipal(t, domain.KindCustomer, "alice@example.com", "pw")
	bob := env.createPrincipal(t, domain.KindCustomer, "bob@example.com", "pw")

	_, err := svc.Create(context.Background(), customerCtx(alice.ID), domain.CreateTicketRequest{Subject: "broken", Body: "it broke"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), customerCtx(bob.ID), domain.CreateTicketRequest{Subject: "billing", Body: "refund please"})
	require.NoError(t, err)

	got, total, err := svc.List(context.Background(), customerCtx(alice.ID), domain.ResourceQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, got, 1)
	assert.Equal(t, alice.ID, got[0].OwnerID)

	_, total, err = svc.List(context.Background(), adminCtx(), domain.ResourceQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestTicketService_Answer_OperatorOnly(t *testing.T) {
	env, svc := setupTicketService(t, nil)
	alice := env.createPrincipal(t, domain.KindCustomer, "alice@example.com", "pw")
	ticket, err := svc.Create(context.Background(), customerCtx(alice.ID), domain.CreateTicketRequest{Subject: "broken", Body: "it broke"})
	require.NoError(t, err)

	_, err = svc.Answer(context.Background(), customerCtx(alice.ID), ticket.ID, "restart it")
	var accessDenied *domain.AccessDeniedError
	require.ErrorAs(t, err, &accessDenied)

	answered, err := svc.Answer(context.Background(), adminCtx(), ticket.ID, "restart it")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketAnswered, answered.Status)
	require.NotNil(t, answered.Answer)
	assert.Equal(t, "restart it", *answered.Answer)
}

func TestTicketService_Close_OwnerOrOperator(t *testing.T) {
	env, svc := setupTicketService(t, nil)
	alice := env.createPrincipal(t, domain.KindCustomer, "alice@example.com", "pw")
	bob := env.createPrincipal(t, domain.KindCustomer, "bob@example.com", "pw")
	ticket, err := svc.Create(context.Background(), customerCtx(alice.ID), domain.CreateTicketRequest{Subject: "broken", Body: "it broke"})
	require.NoError(t, err)

	// A stranger gets a not-found shape identical to a missing ticket.
	_, err = svc.Close(context.Background(), customerCtx(bob.ID), ticket.ID)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	_, missingErr := svc.Close(context.Background(), customerCtx(bob.ID), "no-such-ticket")
	require.ErrorAs(t, missingErr, &notFound)
	require.Equal(t, missingErr.Error(), err.Error())

	closed, err := svc.Close(context.Background(), customerCtx(alice.ID), ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketClosed, closed.Status)
}

func TestTicketService_Suggest(t *testing.T) {
	env, svc := setupTicketService(t, &stubEvaluator{text: "Have you tried turning it off and on again?"})
	alice := env.createPrincipal(t, domain.KindCustomer, "alice@example.com", "pw")
	ticket, err := svc.Create(context.Background(), customerCtx(alice.ID), domain.CreateTicketRequest{Subject: "broken", Body: "it broke"})
	require.NoError(t, err)

	_, err = svc.Suggest(context.Background(), customerCtx(alice.ID), ticket.ID)
	var accessDenied *domain.AccessDeniedError
	require.ErrorAs(t, err, &accessDenied)

	draft, err := svc.Suggest(context.Background(), adminCtx(), ticket.ID)
	require.NoError(t, err)
	assert.Contains(t, draft, "turning it off")
}

func TestTicketService_Suggest_NotConfigured(t *testing.T) {
	env, svc := setupTicketService(t, nil)
	alice := env.createPrincipal(t, domain.KindCustomer, "alice@example.com", "pw")
	ticket, err := svc.Create(context.Background(), customerCtx(alice.ID), domain.CreateTicketRequest{Subject: "broken", Body: "it broke"})
	require.NoError(t, err)

	_, err = svc.Suggest(context.Background(), adminCtx(), ticket.ID)
	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
