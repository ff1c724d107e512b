package api

import (
	"net/http"
	"strings"

	"backoffice/internal/domain"
	"backoffice/internal/ui"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Next     string `json:"-"`
}

// parseLoginRequest accepts both the JSON API shape and the login form.
func parseLoginRequest(r *http.Request) (loginRequest, bool, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req loginRequest
		if err := decodeJSON(r, &req); err != nil {
			return loginRequest{}, true, err
		}
		return req, true, nil
	}
	if err := r.ParseForm(); err != nil {
		return loginRequest{}, false, domain.ErrValidation("invalid form")
	}
	return loginRequest{
		Email:    strings.TrimSpace(r.Form.Get("email")),
		Password: r.Form.Get("password"),
		Next:     r.Form.Get("next"),
	}, false, nil
}

// CustomerLogin authenticates a customer and sets the customer carrier cookie.
func (h *Handler) CustomerLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, domain.KindCustomer)
}

// AdminLogin authenticates the operator and sets the admin carrier cookie.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, domain.KindAdmin)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request, kind domain.PrincipalKind) {
	req, isJSON, err := parseLoginRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	p, token, err := h.auth.Login(r.Context(), kind, req.Email, req.Password)
	if err != nil {
		if isJSON {
			writeError(w, err)
			return
		}
		loginPath := "/login"
		if kind == domain.KindAdmin {
			loginPath = "/admin/login"
		}
		http.Redirect(w, r, loginPath+"?error=invalid+credentials", http.StatusSeeOther)
		return
	}

	h.carrier.Write(w, kind, token, h.auth.Codec().TTL(kind))

	if isJSON {
		writeJSON(w, http.StatusOK, p.Profile())
		return
	}
	target := safeNext(req.Next)
	if target == "" {
		target = "/account"
		if kind == domain.KindAdmin {
			target = "/admin"
		}
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// safeNext only honours relative callback paths, never absolute URLs.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	return next
}

// Logout clears both session carriers. Tokens are bearer values, so
// invalidation happens at the carrier; repeating logout is a no-op.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	for _, kind := range []domain.PrincipalKind{domain.KindAdmin, domain.KindCustomer} {
		if token := h.carrier.Read(r, kind); token != "" {
			if pc, err := h.auth.Codec().Decode(token); err == nil {
				h.auth.Logout(r.Context(), pc)
			}
		}
	}
	h.carrier.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the current customer's public profile fetched fresh from the
// store. Any failure — missing cookie, invalid token, deleted record —
// reports a null principal rather than an error.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	type meResponse struct {
		Principal *domain.PublicProfile `json:"principal"`
	}

	token := h.carrier.Read(r, domain.KindCustomer)
	if token == "" {
		writeJSON(w, http.StatusOK, meResponse{})
		return
	}
	pc, err := h.auth.Codec().Decode(token)
	if err != nil || pc.Kind != domain.KindCustomer {
		writeJSON(w, http.StatusOK, meResponse{})
		return
	}
	profile, err := h.auth.Introspect(r.Context(), pc)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meResponse{Principal: profile})
}

// CustomerLoginPage renders the customer sign-in form.
func (h *Handler) CustomerLoginPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, http.StatusOK, ui.LoginPage(ui.LoginForm{
		Title:  "Customer sign in",
		Action: "/login",
		Next:   safeNext(r.URL.Query().Get("next")),
		Error:  r.URL.Query().Get("error"),
	}))
}

// AdminLoginPage renders the operator sign-in form.
func (h *Handler) AdminLoginPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, http.StatusOK, ui.LoginPage(ui.LoginForm{
		Title:  "Operator sign in",
		Action: "/admin/login",
		Next:   safeNext(r.URL.Query().Get("next")),
		Error:  r.URL.Query().Get("error"),
	}))
}

// AccountPage renders the customer landing page.
func (h *Handler) AccountPage(w http.ResponseWriter, r *http.Request) {
	pc, _ := domain.PrincipalFromContext(r.Context())
	profile, err := h.auth.Introspect(r.Context(), pc)
	if err != nil || profile == nil {
		ui.Render(w, http.StatusOK, ui.LandingPage("Account", "Signed in"))
		return
	}
	ui.Render(w, http.StatusOK, ui.LandingPage("Account", "Signed in as "+profile.DisplayName))
}

// AdminPage renders the operator landing page.
func (h *Handler) AdminPage(w http.ResponseWriter, r *http.Request) {
	pc, _ := domain.PrincipalFromContext(r.Context())
	ui.Render(w, http.StatusOK, ui.LandingPage("Back office", "Operator session "+pc.ID))
}
