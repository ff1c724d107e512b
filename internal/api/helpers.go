package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"backoffice/internal/domain"
)

// errorResponse is the JSON shape of every error body.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := httpStatusFromDomainError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		// Do not leak internals; the request ID ties the log line to the response.
		message = "internal server error"
	}
	writeJSON(w, status, errorResponse{Code: status, Message: message})
}

// writeUpstreamError reports a failed call to an opaque external
// collaborator (AI evaluator, automation webhook).
func writeUpstreamError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadGateway, errorResponse{
		Code:    http.StatusBadGateway,
		Message: err.Error(),
	})
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.ErrValidation("invalid request body: %v", err)
	}
	return nil
}

// pageFromQuery extracts pagination parameters from the request.
func pageFromQuery(r *http.Request) domain.PageRequest {
	p := domain.PageRequest{PageToken: r.URL.Query().Get("page_token")}
	if v := r.URL.Query().Get("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.PageSize = n
		}
	}
	return p
}

// resourceQueryFromRequest parses the list parameters for ownable resources.
// The scope indicator is accepted but advisory: the authorization scoper's
// output is authoritative, so a customer sending scope=all still receives
// only its own rows.
func resourceQueryFromRequest(r *http.Request) (domain.ResourceQuery, error) {
	scope := r.URL.Query().Get("scope")
	switch scope {
	case "", domain.ScopeMine, domain.ScopeAll:
	default:
		return domain.ResourceQuery{}, domain.ErrValidation("scope must be %q or %q", domain.ScopeMine, domain.ScopeAll)
	}
	return domain.ResourceQuery{
		Status: r.URL.Query().Get("status"),
		Page:   pageFromQuery(r),
	}, nil
}

// listResponse is the envelope shared by list endpoints.
type listResponse struct {
	Items         interface{} `json:"items"`
	Total         int64       `json:"total"`
	NextPageToken string      `json:"next_page_token,omitempty"`
}

func newListResponse(items interface{}, total int64, page domain.PageRequest) listResponse {
	return listResponse{
		Items:         items,
		Total:         total,
		NextPageToken: domain.NextPageToken(page.Offset(), page.Limit(), total),
	}
}
