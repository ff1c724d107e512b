package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/domain"
	"backoffice/internal/session"
)

func testGate(t *testing.T) (*Gate, *session.Codec, *session.Carrier) {
	t.Helper()
	codec, err := session.NewCodec("gate-test-secret", 24*time.Hour, 7*24*time.Hour)
	require.NoError(t, err)
	carrier := session.NewCarrier(false)
	gate := NewGate(codec, carrier, DefaultGateConfig(), slog.New(slog.DiscardHandler))
	return gate, codec, carrier
}

func issueCookie(t *testing.T, codec *session.Codec, id string, kind domain.PrincipalKind) *http.Cookie {
	t.Helper()
	token, err := codec.Issue(&domain.Principal{ID: id, Kind: kind})
	require.NoError(t, err)
	return &http.Cookie{Name: session.CookieName(kind), Value: token}
}

// okHandler records the principal context it was invoked with.
func okHandler(got *domain.PrincipalContext) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if pc, ok := domain.PrincipalFromContext(r.Context()); ok {
			*got = pc
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestGate_APIRoute_NoSession(t *testing.T) {
	gate, _, _ := testGate(t)
	var pc domain.PrincipalContext
	h := gate.Require(Binding{Require: domain.KindCustomer, Style: APIRoute})(okHandler(&pc))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "authentication required", body["message"])
	assert.Empty(t, pc.ID)
}

func TestGate_APIRoute_ValidSession(t *testing.T) {
	gate, codec, _ := testGate(t)
	var pc domain.PrincipalContext
	h := gate.Require(Binding{Require: domain.KindCustomer, Style: APIRoute})(okHandler(&pc))

	r := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	r.AddCookie(issueCookie(t, codec, "cust-1", domain.KindCustomer))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "cust-1", pc.ID)
	assert.Equal(t, domain.KindCustomer, pc.Kind)
}

func TestGate_APIRoute_ExpiredSession(t *testing.T) {
	gate, codec, _ := testGate(t)
	issued := time.Now().Add(-48 * time.Hour)
	codec.WithClock(func() time.Time { return issued })
	cookie := issueCookie(t, codec, "admin-1", domain.KindAdmin)
	codec.WithClock(time.Now)

	var pc domain.PrincipalContext
	h := gate.Require(Binding{Require: domain.KindAdmin, Style: APIRoute})(okHandler(&pc))

	r := httptest.NewRequest(http.MethodGet, "/admin/api/orders", nil)
	r.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "session expired", body["message"])
}

func TestGate_APIRoute_TamperedSession(t *testing.T) {
	gate, codec, _ := testGate(t)
	cookie := issueCookie(t, codec, "cust-1", domain.KindCustomer)
	cookie.Value = cookie.Value[:len(cookie.Value)-2] + "xx"

	var pc domain.PrincipalContext
	h := gate.Require(Binding{Require: domain.KindCustomer, Style: APIRoute})(okHandler(&pc))

	r := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	r.AddCookie(cookie)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, pc.ID)
}

// A customer session presented to an admin area is forbidden, not merely
// unauthenticated, and vice versa.
func TestGate_APIRoute_KindMismatch(t *testing.T) {
	gate, codec, _ := testGate(t)

	cases := []struct {
		name     string
		have     domain.PrincipalKind
		required domain.PrincipalKind
	}{
		{"customer session on admin area", domain.KindCustomer, domain.KindAdmin},
		{"admin session on customer area", domain.KindAdmin, domain.KindCustomer},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var pc domain.PrincipalContext
			h := gate.Require(Binding{Require: tc.required, Style: APIRoute})(okHandler(&pc))

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.AddCookie(issueCookie(t, codec, "p-1", tc.have))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)

			assert.Equal(t, http.StatusForbidden, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "session kind mismatch", body["message"])
			assert.Empty(t, pc.ID)
		})
	}
}

func TestGate_PageRoute_RedirectsWithNext(t *testing.T) {
	gate, _, _ := testGate(t)
	var pc domain.PrincipalContext
	h := gate.Require(Binding{Require: domain.KindCustomer, Style: PageRoute})(okHandler(&pc))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/account?tab=orders", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?next="+"%2Faccount%3Ftab%3Dorders", rec.Header().Get("Location"))
}

func TestGate_PageRoute_AdminRedirect(t *testing.T) {
	gate, _, _ := testGate(t)
	var pc domain.PrincipalContext
	h := gate.Require(Binding{Require: domain.KindAdmin, Style: PageRoute})(okHandler(&pc))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login?next=%2Fadmin", rec.Header().Get("Location"))
}

func TestGate_PageRoute_NextDisabled(t *testing.T) {
	codec, err := session.NewCodec("gate-test-secret", time.Hour, time.Hour)
	require.NoError(t, err)
	cfg := DefaultGateConfig()
	cfg.PreserveNext = false
	gate := NewGate(codec, session.NewCarrier(false), cfg, slog.New(slog.DiscardHandler))

	h := gate.Require(Binding{Require: domain.KindCustomer, Style: PageRoute})(http.NotFoundHandler())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/account", nil))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestGate_NoRequirementPassesThrough(t *testing.T) {
	gate, _, _ := testGate(t)
	var pc domain.PrincipalContext
	h := gate.Require(Binding{})(okHandler(&pc))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, pc.ID)
}

func TestGate_RedirectIfAuthenticated(t *testing.T) {
	gate, codec, _ := testGate(t)
	h := gate.RedirectIfAuthenticated(domain.KindCustomer)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	// With a valid session the login form redirects to the landing page.
	r := httptest.NewRequest(http.MethodGet, "/login", nil)
	r.AddCookie(issueCookie(t, codec, "cust-1", domain.KindCustomer))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/account", rec.Header().Get("Location"))

	// Without a session the form renders.
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
