package httpx

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Afthercaf/Web-Tecnoshop/internal/auth"
	"github.com/Afthercaf/Web-Tecnoshop/internal/catalog"
	"github.com/go-chi/chi/v5"
)

type catalogStore interface {
	Product(ctx context.Context, id string) (*catalog.Product, error)
	Create(ctx context.Context, p *catalog.Product) error
	Update(ctx context.Context, p *catalog.Product) error
	Delete(ctx context.Context, id, storeID string) error
	List(ctx context.Context) ([]catalog.Product, error)
	ListByStore(ctx context.Context, storeID string) ([]catalog.Product, error)
}

// ProductsHandler is the storefront and vendor-side product surface.
// Writes require a vendor token and are scoped to that vendor's store.
type ProductsHandler struct {
	Catalog catalogStore
	Stores  storeDirectory
	Auth    *auth.Manager
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/products", h.listProducts)
	r.Get("/products/{id}", h.getProduct)
	r.Post("/products", h.createProduct)
	r.Put("/products/{id}", h.updateProduct)
	r.Delete("/products/{id}", h.deleteProduct)
	r.Get("/stores", h.listStores)
	r.Get("/stores/{id}/products", h.listStoreProducts)
}

func (h *ProductsHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Catalog.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *ProductsHandler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.Catalog.Product(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type productReq struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PriceCents  int      `json:"price_cents"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
}

func (h *ProductsHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	storeID, err := h.Auth.VerifyStore(cookieValue(r, storeCookie))
	if err != nil {
		writeError(w, err)
		return
	}

	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.Name == "" || req.PriceCents < 0 || req.Stock < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name required; price and stock must not be negative"})
		return
	}

	p := &catalog.Product{
		StoreID:     storeID,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		Images:      req.Images,
	}
	if err := h.Catalog.Create(r.Context(), p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductsHandler) updateProduct(w http.ResponseWriter, r *http.Request) {
	storeID, err := h.Auth.VerifyStore(cookieValue(r, storeCookie))
	if err != nil {
		writeError(w, err)
		return
	}

	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if req.Name == "" || req.PriceCents < 0 || req.Stock < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name required; price and stock must not be negative"})
		return
	}

	p := &catalog.Product{
		ID:          chi.URLParam(r, "id"),
		StoreID:     storeID,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		Stock:       req.Stock,
		Images:      req.Images,
	}
	if err := h.Catalog.Update(r.Context(), p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	storeID, err := h.Auth.VerifyStore(cookieValue(r, storeCookie))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.Catalog.Delete(r.Context(), chi.URLParam(r, "id"), storeID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductsHandler) listStores(w http.ResponseWriter, r *http.Request) {
	ss, err := h.Stores.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ss)
}

func (h *ProductsHandler) listStoreProducts(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Catalog.ListByStore(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}
