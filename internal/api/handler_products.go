package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"backoffice/internal/domain"
)

type productResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SKU       string    `json:"sku"`
	Price     float64   `json:"price"`
	Stock     int64     `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func productToAPI(p domain.Product) productResponse {
	return productResponse{
		ID:        p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Price:     p.Price,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ListProducts returns the catalogue.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page := pageFromQuery(r)
	products, total, err := h.products.List(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}
	items := make([]productResponse, 0, len(products))
	for _, p := range products {
		items = append(items, productToAPI(p))
	}
	writeJSON(w, http.StatusOK, newListResponse(items, total, page))
}

// GetProduct returns one product.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productToAPI(*p))
}

// CreateProduct adds a product; operator only.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	pc, _ := domain.PrincipalFromContext(r.Context())
	var req domain.UpsertProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	p, err := h.products.Create(r.Context(), pc, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, productToAPI(*p))
}

// UpdateProduct rewrites a product; operator only.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	pc, _ := domain.PrincipalFromContext(r.Context())
	var req domain.UpsertProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	p, err := h.products.Update(r.Context(), pc, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productToAPI(*p))
}

// DeleteProduct removes a product; operator only.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	pc, _ := domain.PrincipalFromContext(r.Context())
	if err := h.products.Delete(r.Context(), pc, chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
