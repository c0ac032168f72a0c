package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/cherryapp/cherry/internal/auth"
	"github.com/cherryapp/cherry/internal/model"
	"github.com/cherryapp/cherry/internal/pantry"
	"github.com/cherryapp/cherry/internal/store"
	"github.com/cherryapp/cherry/internal/websocket"
)

type PantryHandler struct {
	pantryStore  *store.PantryStore
	productStore *store.ProductStore
	hub          *websocket.Hub
}

func NewPantryHandler(ps *store.PantryStore, prs *store.ProductStore, hub *websocket.Hub) *PantryHandler {
	return &PantryHandler{pantryStore: ps, productStore: prs, hub: hub}
}

func (h *PantryHandler) notify(userID int64, msg websocket.Message) {
	if h.hub != nil {
		h.hub.Notify(userID, msg)
	}
}

type pantryItemRequest struct {
	ProductID         *int64   `json:"product_id"`
	ProductName       string   `json:"product_name"`
	Quantity          float64  `json:"quantity"`
	Unit              string   `json:"unit"`
	ExpiryDate        *string  `json:"expiry_date"`
	LowStockThreshold *float64 `json:"low_stock_threshold"`
	Notes             string   `json:"notes"`
}

func parseExpiry(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *PantryHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req pantryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	productID, ok := resolveProduct(w, h.productStore, userID, req.ProductID, req.ProductName)
	if !ok {
		return
	}

	existing, err := h.pantryStore.GetByProduct(userID, productID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to check pantry"})
		return
	}
	if existing != nil {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "product is already in the pantry"})
		return
	}

	expiry, err := parseExpiry(req.ExpiryDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid expiry_date"})
		return
	}

	if req.Unit == "" {
		req.Unit = "un"
	}
	threshold := 1.0
	if req.LowStockThreshold != nil && *req.LowStockThreshold >= 0 {
		threshold = *req.LowStockThreshold
	}

	item, err := h.pantryStore.Create(userID, productID, req.Quantity, req.Unit, expiry, threshold, req.Notes)
	if err != nil {
		log.Printf("failed to create pantry item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create pantry item"})
		return
	}

	h.notify(userID, websocket.NewMessage("pantry_item", "created", item.ID))

	writeJSON(w, http.StatusCreated, item)
}

func (h *PantryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	items, err := h.pantryStore.ListByUser(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list pantry items"})
		return
	}

	writeJSON(w, http.StatusOK, pantry.Annotate(items, time.Now().UTC()))
}

// Alerts answers only the items whose stock status needs attention.
func (h *PantryHandler) Alerts(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	items, err := h.pantryStore.ListByUser(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list pantry items"})
		return
	}

	alerts := []pantry.ItemWithStatus{}
	for _, item := range pantry.Annotate(items, time.Now().UTC()) {
		if pantry.NeedsAttention(item.Status) {
			alerts = append(alerts, item)
		}
	}

	writeJSON(w, http.StatusOK, alerts)
}

// getOwnedPantryItem loads the pantry item and answers 404 when it is missing
// or belongs to another user.
func (h *PantryHandler) getOwnedPantryItem(w http.ResponseWriter, userID, id int64) *model.PantryItem {
	item, err := h.pantryStore.GetByID(id)
	if err != nil {
		log.Printf("failed to get pantry item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get pantry item"})
		return nil
	}
	if item == nil || item.UserID != userID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "pantry item not found"})
		return nil
	}
	return item
}

func (h *PantryHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing := h.getOwnedPantryItem(w, userID, id)
	if existing == nil {
		return
	}

	var req pantryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	expiry, err := parseExpiry(req.ExpiryDate)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid expiry_date"})
		return
	}
	if req.ExpiryDate == nil {
		expiry = existing.ExpiryDate
	}

	if req.Unit == "" {
		req.Unit = existing.Unit
	}
	threshold := existing.LowStockThreshold
	if req.LowStockThreshold != nil && *req.LowStockThreshold >= 0 {
		threshold = *req.LowStockThreshold
	}

	item, err := h.pantryStore.Update(id, req.Quantity, req.Unit, expiry, threshold, req.Notes)
	if err != nil {
		log.Printf("failed to update pantry item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update pantry item"})
		return
	}

	h.notify(userID, websocket.NewMessage("pantry_item", "updated", id))

	writeJSON(w, http.StatusOK, item)
}

func (h *PantryHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if item := h.getOwnedPantryItem(w, userID, id); item == nil {
		return
	}

	var req struct {
		Quantity float64 `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.Quantity < 0 {
		req.Quantity = 0
	}

	item, err := h.pantryStore.SetQuantity(id, req.Quantity)
	if err != nil {
		log.Printf("failed to set pantry quantity: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to set quantity"})
		return
	}

	h.notify(userID, websocket.NewMessage("pantry_item", "updated", id))

	writeJSON(w, http.StatusOK, item)
}

func (h *PantryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if item := h.getOwnedPantryItem(w, userID, id); item == nil {
		return
	}

	if err := h.pantryStore.Delete(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete pantry item"})
		return
	}

	h.notify(userID, websocket.NewMessage("pantry_item", "deleted", id))

	w.WriteHeader(http.StatusNoContent)
}
