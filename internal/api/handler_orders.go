package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/domain"
)

type orderResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	ProductID string    `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	Total     float64   `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func orderToAPI(o domain.Order) orderResponse {
	return orderResponse{
		ID:        o.ID,
		OwnerID:   o.OwnerID,
		ProductID: o.ProductID,
		Quantity:  o.Quantity,
		Total:     o.Total,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

// ListOrders serves both the customer and the operator mounts; the scoper
// decides visibility from the principal context, not from the mount.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	pc, _ := domain.PrincipalFromContext(r.Context())
	q, err := resourceQueryFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	orders, total, err := h.orders.List(r.Context(), pc, q)
	if err != nil {
		writeError(w, err)
		return
	}
	items := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, orderToAPI(o))
	}
	writeJSON(w, http.StatusOK, newListResponse(items, total, q.Page))
}

// CreateOrder places an order owned by the session customer.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	pc, _ := domain.PrincipalFromContext(r.Context())
	var req domain.CreateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	o, err := h.orders.Create(r.Context(), pc, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, orderToAPI(*o))
}

// GetOrder fetches one order with the ownership re-check applied.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	pc, _ := domain.PrincipalFromContext(r.Context())
	o, err := h.orders.Get(r.Context(), pc, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orderToAPI(*o))
}

// UpdateOrderStatus transitions an order's status.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	pc, _ := domain.PrincipalFromContext(r.Context())
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), pc, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orderToAPI(*o))
}
