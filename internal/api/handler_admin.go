package api

import (
	"io"
	"net/http"
	"time"

	"backoffice/internal/domain"
)

type auditEntryResponse struct {
	ID            string    `json:"id"`
	PrincipalID   string    `json:"principal_id"`
	PrincipalKind string    `json:"principal_kind"`
	Action        string    `json:"action"`
	ResourceType  *string   `json:"resource_type,omitempty"`
	ResourceID    *string   `json:"resource_id,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

type forecastResponse struct {
	ID        string    `json:"id"`
	Narrative string    `json:"narrative"`
	CreatedAt time.Time `json:"created_at"`
}

func forecastToAPI(f domain.Forecast) forecastResponse {
	return forecastResponse{ID: f.ID, Narrative: f.Narrative, CreatedAt: f.CreatedAt}
}

// ListAudit returns the security audit trail, newest first.
func (h *Handler) ListAudit(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	entries, total, err := h.audit.List(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}
	items := make([]auditEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, auditEntryResponse{
			ID:            e.ID,
			PrincipalID:   e.PrincipalID,
			PrincipalKind: string(e.PrincipalKind),
			Action:        e.Action,
			ResourceType:  e.ResourceType,
			ResourceID:    e.ResourceID,
			Status:        e.Status,
			CreatedAt:     e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, newListResponse(items, total, page))
}

// GetForecast returns the most recent generated forecast narrative.
func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	pc, _ := domain.PrincipalFromContext(r.Context())
	f, err := h.forecast.Latest(r.Context(), pc)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, forecastToAPI(*f))
}

// RefreshForecast regenerates the forecast on demand instead of waiting
// for the nightly job.
func (h *Handler) RefreshForecast(w http.ResponseWriter, r *http.Request) {
	f, err := h.forecast.Refresh(r.Context())
	if err != nil {
		if httpStatusFromDomainError(err) == http.StatusInternalServerError {
			writeUpstreamError(w, err)
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, forecastToAPI(*f))
}

// maxForwardBytes caps the payload accepted for workflow forwarding.
const maxForwardBytes = 1 << 20

// ForwardAutomation relays an opaque JSON payload to the configured
// workflow-automation webhook and returns its response verbatim.
func (h *Handler) ForwardAutomation(w http.ResponseWriter, r *http.Request) {
	if h.forwarder == nil {
		writeError(w, domain.ErrValidation("workflow automation is not configured"))
		return
	}

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxForwardBytes))
	if err != nil {
		writeError(w, domain.ErrValidation("unreadable request body"))
		return
	}

	resp, err := h.forwarder.Forward(r.Context(), payload)
	if err != nil {
		writeUpstreamError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(resp)
}
