package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/cherryapp/cherry/internal/auth"
	"github.com/cherryapp/cherry/internal/model"
	"github.com/cherryapp/cherry/internal/product"
	"github.com/cherryapp/cherry/internal/store"
)

type ProductHandler struct {
	productStore *store.ProductStore
}

func NewProductHandler(ps *store.ProductStore) *ProductHandler {
	return &ProductHandler{productStore: ps}
}

// resolveProduct returns an existing product ID, or creates a product on the
// fly when only a name was given. Returns ok=false if a response was written.
func resolveProduct(w http.ResponseWriter, ps *store.ProductStore, userID int64, productID *int64, name string) (int64, bool) {
	if productID != nil {
		p, err := ps.GetByID(*productID)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get product"})
			return 0, false
		}
		if p == nil || p.UserID != userID {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "product not found"})
			return 0, false
		}
		return p.ID, true
	}

	name = strings.TrimSpace(name)
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "product_id or product_name is required"})
		return 0, false
	}

	p, err := ps.Create(userID, name, product.Categorize(name), 1)
	if err != nil {
		log.Printf("failed to create product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create product"})
		return 0, false
	}
	return p.ID, true
}

type productRequest struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	DefaultQuantity float64 `json:"default_quantity"`
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	// Auto-categorize if no category provided
	if req.Category == "" {
		req.Category = product.Categorize(req.Name)
	}
	if req.DefaultQuantity <= 0 {
		req.DefaultQuantity = 1
	}

	p, err := h.productStore.Create(userID, req.Name, req.Category, req.DefaultQuantity)
	if err != nil {
		log.Printf("failed to create product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create product"})
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	products, err := h.productStore.ListByUser(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list products"})
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	p, err := h.productStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get product"})
		return
	}
	if p == nil || p.UserID != userID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.productStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get product"})
		return
	}
	if existing == nil || existing.UserID != userID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "product not found"})
		return
	}

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if req.Category == "" {
		req.Category = existing.Category
	}
	if req.DefaultQuantity <= 0 {
		req.DefaultQuantity = existing.DefaultQuantity
	}

	p, err := h.productStore.Update(id, req.Name, req.Category, req.DefaultQuantity)
	if err != nil {
		log.Printf("failed to update product: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update product"})
		return
	}

	writeJSON(w, http.StatusOK, p)
}
