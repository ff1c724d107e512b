// Package middleware provides HTTP middleware: the authentication gate,
// request IDs, and rate limiting.
package middleware

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"backoffice/internal/domain"
	"backoffice/internal/session"
)

// RouteStyle controls what a denied request receives: page routes redirect
// to the login entry point, API routes get a JSON error. Redirects are a
// navigation concept and are never sent to programmatic callers.
type RouteStyle int

const (
	PageRoute RouteStyle = iota
	APIRoute
)

// Binding pairs a required principal kind with a route style. The router
// declares an explicit ordered list of pattern → Binding entries; there is
// no implicit global interception.
type Binding struct {
	Require domain.PrincipalKind // "" means no session required
	Style   RouteStyle
}

// GateConfig holds the navigation conveniences of the gate: login entry
// points, landing pages, and whether the originally requested path is
// preserved across the login redirect. These are configurable behavior,
// not part of the authorization contract.
type GateConfig struct {
	AdminLoginPath      string
	CustomerLoginPath   string
	AdminLandingPath    string
	CustomerLandingPath string
	PreserveNext        bool
}

// DefaultGateConfig mirrors the reference navigation layout.
func DefaultGateConfig() GateConfig {
	return GateConfig{
		AdminLoginPath:      "/admin/login",
		CustomerLoginPath:   "/login",
		AdminLandingPath:    "/admin",
		CustomerLandingPath: "/account",
		PreserveNext:        true,
	}
}

// Gate is the authentication gate: it intercepts inbound requests, decodes
// the carrier token, and either attaches a principal context or denies.
// It only reads the carrier; checking a session never writes or extends it.
type Gate struct {
	codec   *session.Codec
	carrier *session.Carrier
	cfg     GateConfig
	logger  *slog.Logger
}

// NewGate creates an authentication gate.
func NewGate(codec *session.Codec, carrier *session.Carrier, cfg GateConfig, logger *slog.Logger) *Gate {
	return &Gate{codec: codec, carrier: carrier, cfg: cfg, logger: logger}
}

// Require returns the middleware enforcing a route binding. Requests that
// pass carry a domain.PrincipalContext in their context.
func (g *Gate) Require(b Binding) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if b.Require == "" {
				next.ServeHTTP(w, r)
				return
			}

			pc, err := g.check(r, b.Require)
			if err != nil {
				g.deny(w, r, b, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(domain.WithPrincipal(r.Context(), pc)))
		})
	}
}

// RedirectIfAuthenticated guards a login entry point: a request already
// holding a valid session of the matching kind is sent to the landing page
// instead of the login form (prevents re-login loops).
func (g *Gate) RedirectIfAuthenticated(kind domain.PrincipalKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := g.check(r, kind); err == nil {
				http.Redirect(w, r, g.landingPath(kind), http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// check decodes the carrier value for the required kind. A decodable token
// of the wrong kind — in either carrier slot — is a kind mismatch, which is
// distinct from an absent or invalid session.
func (g *Gate) check(r *http.Request, required domain.PrincipalKind) (domain.PrincipalContext, error) {
	token := g.carrier.Read(r, required)
	if token == "" {
		// The other kind's carrier may still hold a valid session; surface
		// that as a mismatch rather than "not authenticated".
		other := otherKind(required)
		if t := g.carrier.Read(r, other); t != "" {
			if pc, err := g.codec.Decode(t); err == nil && pc.Kind != required {
				return domain.PrincipalContext{}, domain.ErrKindMismatch
			}
		}
		return domain.PrincipalContext{}, domain.ErrSessionInvalid
	}

	pc, err := g.codec.Decode(token)
	if err != nil {
		return domain.PrincipalContext{}, err
	}
	if pc.Kind != required {
		return domain.PrincipalContext{}, domain.ErrKindMismatch
	}
	return pc, nil
}

func (g *Gate) deny(w http.ResponseWriter, r *http.Request, b Binding, err error) {
	if b.Style == PageRoute {
		target := g.loginPath(b.Require)
		if g.cfg.PreserveNext {
			target += "?next=" + url.QueryEscape(r.URL.RequestURI())
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	status := http.StatusUnauthorized
	message := "authentication required"
	switch {
	case errors.Is(err, domain.ErrKindMismatch):
		status = http.StatusForbidden
		message = "session kind mismatch"
	case errors.Is(err, domain.ErrSessionExpired):
		message = "session expired"
	}
	g.logger.Debug("request denied", "path", r.URL.Path, "reason", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"code":    status,
		"message": message,
	})
}

func (g *Gate) loginPath(kind domain.PrincipalKind) string {
	if kind == domain.KindAdmin {
		return g.cfg.AdminLoginPath
	}
	return g.cfg.CustomerLoginPath
}

func (g *Gate) landingPath(kind domain.PrincipalKind) string {
	if kind == domain.KindAdmin {
		return g.cfg.AdminLandingPath
	}
	return g.cfg.CustomerLandingPath
}

func otherKind(kind domain.PrincipalKind) domain.PrincipalKind {
	if kind == domain.KindAdmin {
		return domain.KindCustomer
	}
	return domain.KindAdmin
}
