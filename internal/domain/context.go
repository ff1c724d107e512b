package domain

import "context"

type principalKey struct{}

// PrincipalContext carries the verified identity through the request context.
// It lives only for the request; it is decoded from the session token and
// never persisted.
type PrincipalContext struct {
	ID   string
	Kind PrincipalKind
}

// IsAdmin reports whether the context belongs to the operator.
func (p PrincipalContext) IsAdmin() bool { return p.Kind == KindAdmin }

// WithPrincipal stores a PrincipalContext in the context.
func WithPrincipal(ctx context.Context, p PrincipalContext) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext extracts the PrincipalContext from the context.
func PrincipalFromContext(ctx context.Context) (PrincipalContext, bool) {
	p, ok := ctx.Value(principalKey{}).(PrincipalContext)
	return p, ok
}
