package domain

// ScopeMode distinguishes read queries from mutations when auditing
// authorization decisions.
type ScopeMode string

const (
	ScopeRead  ScopeMode = "read"
	ScopeWrite ScopeMode = "write"
)

// Scope indicator values accepted on list endpoints. "all" is honoured only
// for admin contexts; the scoper overrides it for customers.
const (
	ScopeMine = "mine"
	ScopeAll  = "all"
)

// ResourceQuery describes a request for ownable resources (orders, tickets).
// OwnerID is the ownership constraint: nil means unscoped (full visibility).
// The authorization scoper is the only component that may decide whether
// OwnerID stays nil.
type ResourceQuery struct {
	OwnerID *string
	Status  string
	Page    PageRequest
}

// WithOwner returns a copy of q constrained to rows owned by ownerID.
func (q ResourceQuery) WithOwner(ownerID string) ResourceQuery {
	q.OwnerID = &ownerID
	return q
}

// Ownable is implemented by resources bound to a customer principal.
type Ownable interface {
	Owner() string
}

// Owner implements Ownable.
func (o *Order) Owner() string { return o.OwnerID }

// Owner implements Ownable.
func (t *Ticket) Owner() string { return t.OwnerID }
