package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/domain"
)

type applicationResponse struct {
	ID            string    `json:"id"`
	CandidateName string    `json:"candidate_name"`
	Email         string    `json:"email"`
	Resume        string    `json:"resume"`
	Score         *int64    `json:"score,omitempty"`
	Summary       *string   `json:"summary,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func applicationToAPI(a domain.Application) applicationResponse {
	return applicationResponse{
		ID:            a.ID,
		CandidateName: a.CandidateName,
		Email:         a.Email,
		Resume:        a.Resume,
		Score:         a.Score,
		Summary:       a.Summary,
		CreatedAt:     a.CreatedAt,
	}
}

// SubmitApplication accepts a CV from the public intake form.
func (h *Handler) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmitApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	a, err := h.applications.Submit(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, applicationToAPI(*a))
}

// ListApplications returns submitted CVs; operator only.
func (h *Handler) ListApplications(w http.ResponseWriter, r *http.Request) {
	pc, _ := domain.PrincipalFromContext(r.Context())
	page := pageFromQuery(r)
	apps, total, err := h.applications.List(r.Context(), pc, page)
	if err != nil {
		writeError(w, err)
		return
	}
	items := make([]applicationResponse, 0, len(apps))
	for _, a := range apps {
		items = append(items, applicationToAPI(a))
	}
	writeJSON(w, http.StatusOK, newListResponse(items, total, page))
}

// EvaluateApplication scores a CV through the opaque AI evaluator.
func (h *Handler) EvaluateApplication(w http.ResponseWriter, r *http.Request) {
	pc, _ := domain.PrincipalFromContext(r.Context())
	a, err := h.applications.Evaluate(r.Context(), pc, chi.URLParam(r, "id"))
	if err != nil {
		if httpStatusFromDomainError(err) == http.StatusInternalServerError {
			writeUpstreamError(w, err)
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, applicationToAPI(*a))
}
