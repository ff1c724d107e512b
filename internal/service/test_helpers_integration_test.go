//go:build integration

package service

import (
	"context"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	internaldb "backoffice/internal/db"
	"backoffice/internal/db/repository"
	"backoffice/internal/domain"
	"backoffice/internal/session"
)

// testEnv bundles the sqlite-backed repositories and services for
// integration tests.
type testEnv struct {
	principals *repository.PrincipalRepo
	products   *repository.ProductRepo
	orders     *repository.OrderRepo
	tickets    *repository.TicketRepo
	audit      *repository.AuditRepo

	codec *session.Codec

	auth     *AuthService
	authz    *AuthorizationService
	orderSvc *OrderService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, _ := internaldb.OpenTestSQLite(t)

	env := &testEnv{
		principals: repository.NewPrincipalRepo(db),
		products:   repository.NewProductRepo(db),
		orders:     repository.NewOrderRepo(db),
		tickets:    repository.NewTicketRepo(db),
		audit:      repository.NewAuditRepo(db),
	}

	codec, err := session.NewCodec("integration-secret", 24*time.Hour, 7*24*time.Hour)
	require.NoError(t, err)
	env.codec = codec

	env.authz = NewAuthorizationService(env.audit)
	env.auth = NewAuthService(env.principals, env.audit, codec)
	env.orderSvc = NewOrderService(env.orders, env.products, env.authz, env.audit)
	return env
}

func (e *testEnv) createPrincipal(t *testing.T, kind domain.PrincipalKind, email, secret string) *domain.Principal {
	t.Helper()
	hash, err := HashSecret(secret)
	require.NoError(t, err)
	p, err := e.principals.Create(context.Background(), &domain.Principal{
		Kind:        kind,
		DisplayName: email,
		Email:       email,
		SecretHash:  hash,
	})
	require.NoError(t, err)
	return p
}

func (e *testEnv) createProduct(t *testing.T, name string, price float64, stock int64) *domain.Product {
	t.Helper()
	p, err := e.products.Create(context.Background(), &domain.Product{
		Name: name, SKU: name + "-sku", Price: price, Stock: stock,
	})
	require.NoError(t, err)
	return p
}

func (e *testEnv) createOrder(t *testing.T, ownerID, productID string) *domain.Order {
	t.Helper()
	o, err := e.orders.Create(context.Background(), &domain.Order{
		OwnerID: ownerID, ProductID: productID, Quantity: 1, Total: 10,
	})
	require.NoError(t, err)
	return o
}
