package domain

import "time"

// PrincipalKind distinguishes the two session populations. There is no
// role graph: a principal is either the operator (admin) or a customer.
type PrincipalKind string

const (
	KindAdmin    PrincipalKind = "admin"
	KindCustomer PrincipalKind = "customer"
)

// Valid reports whether k is one of the two known kinds.
func (k PrincipalKind) Valid() bool {
	return k == KindAdmin || k == KindCustomer
}

// Principal represents an authenticated actor: the operator account or a
// customer account. Secrets are stored only as bcrypt hashes.
type Principal struct {
	ID          string
	Kind        PrincipalKind
	DisplayName string
	Email       string
	SecretHash  string
	CreatedAt   time.Time
}

// PublicProfile is the customer-visible projection of a principal.
// It never carries the secret hash.
type PublicProfile struct {
	ID          string        `json:"id"`
	Kind        PrincipalKind `json:"kind"`
	DisplayName string        `json:"display_name"`
	Email       string        `json:"email"`
}

// Profile returns the public projection of p.
func (p *Principal) Profile() PublicProfile {
	return PublicProfile{
		ID:          p.ID,
		Kind:        p.Kind,
		DisplayName: p.DisplayName,
		Email:       p.Email,
	}
}
