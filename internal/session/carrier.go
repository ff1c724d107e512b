package session

import (
	"net/http"
	"time"

	"backoffice/internal/domain"
)

// Cookie names for the two independent session kinds.
const (
	AdminCookie    = "admin_session"
	CustomerCookie = "customer_session"
)

// Carrier moves session tokens between requests as HTTP cookies. Cookies are
// HttpOnly and SameSite=Strict; Secure is set in production.
type Carrier struct {
	secure bool
}

// NewCarrier creates a Carrier. secure controls the cookie Secure attribute.
func NewCarrier(secure bool) *Carrier {
	return &Carrier{secure: secure}
}

// CookieName returns the carrier cookie name for a principal kind.
func CookieName(kind domain.PrincipalKind) string {
	if kind == domain.KindAdmin {
		return AdminCookie
	}
	return CustomerCookie
}

// Read returns the token carried for the given kind, or "" when absent.
func (c *Carrier) Read(r *http.Request, kind domain.PrincipalKind) string {
	cookie, err := r.Cookie(CookieName(kind))
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Write sets the carrier cookie for the given kind with the kind's TTL.
func (c *Carrier) Write(w http.ResponseWriter, kind domain.PrincipalKind, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName(kind),
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Clear expires both session cookies. Logout is broad: it invalidates the
// admin and the customer carrier regardless of which kind initiated it.
func (c *Carrier) Clear(w http.ResponseWriter) {
	for _, name := range []string{AdminCookie, CustomerCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   c.secure,
			SameSite: http.SameSiteStrictMode,
		})
	}
}
