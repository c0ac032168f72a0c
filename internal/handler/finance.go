package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/cherryapp/cherry/internal/auth"
	"github.com/cherryapp/cherry/internal/finance"
	"github.com/cherryapp/cherry/internal/model"
	"github.com/cherryapp/cherry/internal/store"
	"github.com/cherryapp/cherry/internal/websocket"
)

type FinanceHandler struct {
	purchaseStore *store.PurchaseStore
	hub           *websocket.Hub
}

func NewFinanceHandler(ps *store.PurchaseStore, hub *websocket.Hub) *FinanceHandler {
	return &FinanceHandler{purchaseStore: ps, hub: hub}
}

func (h *FinanceHandler) notify(userID int64, msg websocket.Message) {
	if h.hub != nil {
		h.hub.Notify(userID, msg)
	}
}

type purchaseRequest struct {
	Name         string  `json:"name"`
	TotalAmount  float64 `json:"total_amount"`
	ItemCount    int     `json:"item_count"`
	PurchaseDate string  `json:"purchase_date"`
	Notes        string  `json:"notes"`
}

func (h *FinanceHandler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req purchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if req.TotalAmount < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "total_amount cannot be negative"})
		return
	}
	if req.ItemCount < 0 {
		req.ItemCount = 0
	}

	purchaseDate := time.Now().UTC()
	if req.PurchaseDate != "" {
		d, err := time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			d, err = time.Parse(time.RFC3339, req.PurchaseDate)
		}
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid purchase_date"})
			return
		}
		purchaseDate = d
	}

	purchase, err := h.purchaseStore.Create(userID, req.Name, req.TotalAmount, req.ItemCount, purchaseDate, req.Notes)
	if err != nil {
		log.Printf("failed to create purchase: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create purchase"})
		return
	}

	h.notify(userID, websocket.NewMessage("purchase", "created", purchase.ID))

	writeJSON(w, http.StatusCreated, purchase)
}

func (h *FinanceHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	purchases, err := h.purchaseStore.ListByUser(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list purchases"})
		return
	}
	if purchases == nil {
		purchases = []model.Purchase{}
	}
	writeJSON(w, http.StatusOK, purchases)
}

func (h *FinanceHandler) DeletePurchase(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.purchaseStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get purchase"})
		return
	}
	if existing == nil || existing.UserID != userID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "purchase not found"})
		return
	}

	if err := h.purchaseStore.Delete(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete purchase"})
		return
	}

	h.notify(userID, websocket.NewMessage("purchase", "deleted", id))

	w.WriteHeader(http.StatusNoContent)
}

func (h *FinanceHandler) GetBudget(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	settings, err := h.purchaseStore.GetSettings(userID)
	if err != nil {
		log.Printf("failed to get financial settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get budget"})
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

func (h *FinanceHandler) SetBudget(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req struct {
		MonthlyBudget float64 `json:"monthly_budget"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if req.MonthlyBudget < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "monthly_budget cannot be negative"})
		return
	}

	settings, err := h.purchaseStore.SetBudget(userID, req.MonthlyBudget)
	if err != nil {
		log.Printf("failed to set budget: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to set budget"})
		return
	}

	h.notify(userID, websocket.NewMessage("financial_settings", "updated", settings.ID))

	writeJSON(w, http.StatusOK, settings)
}

// Summary answers the current calendar month's spend against the budget.
func (h *FinanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	from, to := finance.MonthRange(time.Now().UTC())

	spend, err := h.purchaseStore.SumForRange(userID, from, to)
	if err != nil {
		log.Printf("failed to sum purchases: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to build summary"})
		return
	}

	settings, err := h.purchaseStore.GetSettings(userID)
	if err != nil {
		log.Printf("failed to get financial settings: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to build summary"})
		return
	}

	writeJSON(w, http.StatusOK, finance.Summarize(spend, settings.MonthlyBudget))
}
