package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/domain"
)

type ticketResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Status    string    `json:"status"`
	Answer    *string   `json:"answer,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ticketToAPI(t domain.Ticket) ticketResponse {
	return ticketResponse{
		ID:        t.ID,
		OwnerID:   t.OwnerID,
		Subject:   t.Subject,
		Body:      t.Body,
		Status:    t.Status,
		Answer:    t.Answer,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ListTickets serves both the customer and the operator mounts.
func (h *Handler) ListTickets(w http.ResponseWriter, r *http.Request) {
	pc, _ := domain.PrincipalFromContext(r.Context())
	q, err := resourceQueryFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	tickets, total, err := h.tickets.List(r.Context(), pc, q)
	if err != nil {
		writeError(w, err)
		return
	}
	items := make([]ticketResponse, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, ticketToAPI(t))
	}
	writeJSON(w, http.StatusOK, newListResponse(items, total, q.Page))
}

// CreateTicket opens a ticket owned by the session customer.
func (h *Handler) CreateTicket(w http.ResponseWriter, r *http.Request) {
	pc, _ := domain.PrincipalFromContext(r.Context())
	var req domain.CreateTicketRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	t, err := h.tickets.Create(r.Context(), pc, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ticketToAPI(*t))
}

// GetTicket fetches one ticket with the ownership re-check applied.
func (h *Handler) GetTicket(w http.ResponseWriter, r *http.Request) {
	pc, _ := domain.PrincipalFromContext(r.Context())
	t, err := h.tickets.Get(r.Context(), pc, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ticketToAPI(*t))
}

// AnswerTicket records the operator's reply.
func (h *Handler) AnswerTicket(w http.ResponseWriter, r *http.Request) {
	pc, _ := domain.PrincipalFromContext(r.Context())
	var req struct {
		Answer string `json:"answer"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	t, err := h.tickets.Answer(r.Context(), pc, chi.URLParam(r, "id"), req.Answer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ticketToAPI(*t))
}

// SuggestTicket drafts a reply via the opaque AI evaluator.
func (h *Handler) SuggestTicket(w http.ResponseWriter, r *http.Request) {
	pc, _ := domain.PrincipalFromContext(r.Context())
	suggestion, err := h.tickets.Suggest(r.Context(), pc, chi.URLParam(r, "id"))
	if err != nil {
		if httpStatusFromDomainError(err) == http.StatusInternalServerError {
			writeUpstreamError(w, err)
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"suggestion": suggestion})
}

// CloseTicket closes a ticket (owner or operator).
func (h *Handler) CloseTicket(w http.ResponseWriter, r *http.Request) {
	pc, _ := domain.PrincipalFromContext(r.Context())
	t, err := h.tickets.Close(r.Context(), pc, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ticketToAPI(*t))
}
