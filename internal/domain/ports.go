package domain

import "context"

// PrincipalRepository is the credential store: persisted principal records
// with hashed secrets.
type PrincipalRepository interface {
	Create(ctx context.Context, p *Principal) (*Principal, error)
	GetByID(ctx context.Context, id string) (*Principal, error)
	GetByEmail(ctx context.Context, kind PrincipalKind, email string) (*Principal, error)
	List(ctx context.Context, kind PrincipalKind, page PageRequest) ([]Principal, int64, error)
	Delete(ctx context.Context, id string) error
}

// OrderRepository provides persistence for orders. List and mutation
// callers are expected to pass queries through the authorization scoper
// first; the repository applies whatever owner constraint the query carries.
type OrderRepository interface {
	Create(ctx context.Context, o *Order) (*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	List(ctx context.Context, q ResourceQuery) ([]Order, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// TicketRepository provides persistence for support tickets.
type TicketRepository interface {
	Create(ctx context.Context, t *Ticket) (*Ticket, error)
	GetByID(ctx context.Context, id string) (*Ticket, error)
	List(ctx context.Context, q ResourceQuery) ([]Ticket, int64, error)
	Update(ctx context.Context, t *Ticket) error
}

// ApplicationRepository provides persistence for CV applications.
type ApplicationRepository interface {
	Create(ctx context.Context, a *Application) (*Application, error)
	GetByID(ctx context.Context, id string) (*Application, error)
	List(ctx context.Context, page PageRequest) ([]Application, int64, error)
	SetEvaluation(ctx context.Context, id string, score int64, summary string) error
}

// ProductRepository provides persistence for inventory products.
type ProductRepository interface {
	Create(ctx context.Context, p *Product) (*Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, page PageRequest) ([]Product, int64, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
	// AdjustStock applies delta atomically; a negative delta only applies
	// while enough stock remains. Returns false when the condition fails or
	// the product does not exist.
	AdjustStock(ctx context.Context, id string, delta int64) (bool, error)
}

// AuditRepository records security-relevant events.
type AuditRepository interface {
	Insert(ctx context.Context, e *AuditEntry) error
	List(ctx context.Context, page PageRequest) ([]AuditEntry, int64, error)
	DeleteOlderThanDays(ctx context.Context, days int) (int64, error)
}

// Evaluator is the opaque generative-AI collaborator: it takes a prompt and
// returns text or a failure. The core never depends on its internals.
type Evaluator interface {
	Evaluate(ctx context.Context, prompt string) (string, error)
}

// Forwarder is the opaque workflow-automation collaborator.
type Forwarder interface {
	Forward(ctx context.Context, payload []byte) ([]byte, error)
}
