package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/cherryapp/cherry/internal/auth"
	"github.com/cherryapp/cherry/internal/model"
	"github.com/cherryapp/cherry/internal/store"
	"github.com/cherryapp/cherry/internal/websocket"
)

type ListHandler struct {
	listStore    *store.ListStore
	productStore *store.ProductStore
	hub          *websocket.Hub
}

func NewListHandler(ls *store.ListStore, ps *store.ProductStore, hub *websocket.Hub) *ListHandler {
	return &ListHandler{listStore: ls, productStore: ps, hub: hub}
}

func (h *ListHandler) notify(userID int64, msg websocket.Message) {
	if h.hub != nil {
		h.hub.Notify(userID, msg)
	}
}

// getOwnedList loads the list and answers 404 when it is missing or belongs
// to another user. Returns nil if a response was already written.
func (h *ListHandler) getOwnedList(w http.ResponseWriter, userID, id int64) *model.List {
	list, err := h.listStore.GetByID(id)
	if err != nil {
		log.Printf("failed to get list: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get list"})
		return nil
	}
	if list == nil || list.UserID != userID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "list not found"})
		return nil
	}
	return list
}

type listRequest struct {
	Name      string `json:"name"`
	Notes     string `json:"notes"`
	IsCurrent bool   `json:"is_current"`
}

func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	list, err := h.listStore.Create(userID, req.Name, req.Notes, req.IsCurrent)
	if err != nil {
		log.Printf("failed to create list: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create list"})
		return
	}

	h.notify(userID, websocket.NewMessage("list", "created", list.ID))

	writeJSON(w, http.StatusCreated, list)
}

func (h *ListHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	lists, err := h.listStore.ListSummaries(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list lists"})
		return
	}
	if lists == nil {
		lists = []model.ListSummary{}
	}
	writeJSON(w, http.StatusOK, lists)
}

func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	list := h.getOwnedList(w, userID, id)
	if list == nil {
		return
	}

	items, err := h.listStore.ListItemDetails(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list items"})
		return
	}
	if items == nil {
		items = []model.ListItemDetail{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"list":  list,
		"items": items,
	})
}

func (h *ListHandler) SetCurrent(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	list := h.getOwnedList(w, userID, id)
	if list == nil {
		return
	}

	if err := h.listStore.SetCurrent(userID, id); err != nil {
		log.Printf("failed to set current list: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to set current list"})
		return
	}

	h.notify(userID, websocket.NewMessage("list", "updated", id))

	updated, err := h.listStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get list"})
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ListHandler) Archive(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	list := h.getOwnedList(w, userID, id)
	if list == nil {
		return
	}

	if err := h.listStore.Archive(id); err != nil {
		log.Printf("failed to archive list: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to archive list"})
		return
	}

	h.notify(userID, websocket.NewMessage("list", "updated", id))

	updated, err := h.listStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get list"})
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	list := h.getOwnedList(w, userID, id)
	if list == nil {
		return
	}

	if err := h.listStore.Delete(id); err != nil {
		log.Printf("failed to delete list: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete list"})
		return
	}

	h.notify(userID, websocket.NewMessage("list", "deleted", id))

	w.WriteHeader(http.StatusNoContent)
}

type listItemRequest struct {
	ProductID   *int64  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
	Notes       string  `json:"notes"`
}

func (h *ListHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	listID, err := strconv.ParseInt(r.PathValue("list_id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid list_id"})
		return
	}

	list := h.getOwnedList(w, userID, listID)
	if list == nil {
		return
	}

	var req listItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	productID, ok := resolveProduct(w, h.productStore, userID, req.ProductID, req.ProductName)
	if !ok {
		return
	}

	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	item, err := h.listStore.CreateItem(listID, productID, req.Quantity, req.Notes)
	if err != nil {
		log.Printf("failed to create list item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create item"})
		return
	}

	h.notify(userID, websocket.NewMessage("list_item", "created", item.ID))

	writeJSON(w, http.StatusCreated, item)
}

// getOwnedItem loads a list item and verifies list ownership.
func (h *ListHandler) getOwnedItem(w http.ResponseWriter, userID, id int64) *model.ListItem {
	item, err := h.listStore.GetItemByID(id)
	if err != nil {
		log.Printf("failed to get list item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get item"})
		return nil
	}
	if item == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return nil
	}

	list, err := h.listStore.GetByID(item.ListID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get list"})
		return nil
	}
	if list == nil || list.UserID != userID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
		return nil
	}
	return item
}

func (h *ListHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing := h.getOwnedItem(w, userID, id)
	if existing == nil {
		return
	}

	var req listItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if req.Quantity <= 0 {
		req.Quantity = existing.Quantity
	}

	item, err := h.listStore.UpdateItem(id, req.Quantity, req.Notes)
	if err != nil {
		log.Printf("failed to update list item: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update item"})
		return
	}

	h.notify(userID, websocket.NewMessage("list_item", "updated", id))

	writeJSON(w, http.StatusOK, item)
}

func (h *ListHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing := h.getOwnedItem(w, userID, id)
	if existing == nil {
		return
	}

	if err := h.listStore.DeleteItem(id); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete item"})
		return
	}

	h.notify(userID, websocket.NewMessage("list_item", "deleted", id))

	w.WriteHeader(http.StatusNoContent)
}

func (h *ListHandler) TogglePurchased(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if item := h.getOwnedItem(w, userID, id); item == nil {
		return
	}

	item, err := h.listStore.TogglePurchased(id)
	if err != nil {
		log.Printf("failed to toggle purchased: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to toggle purchased"})
		return
	}

	h.notify(userID, websocket.NewMessage("list_item", "updated", id))

	writeJSON(w, http.StatusOK, item)
}

func (h *ListHandler) SetPrice(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if item := h.getOwnedItem(w, userID, id); item == nil {
		return
	}

	var req struct {
		Price any `json:"price"`
	}
	json.NewDecoder(r.Body).Decode(&req)

	item, err := h.listStore.SetPrice(id, coercePrice(req.Price))
	if err != nil {
		log.Printf("failed to set price: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to set price"})
		return
	}

	h.notify(userID, websocket.NewMessage("list_item", "updated", id))

	writeJSON(w, http.StatusOK, item)
}

// coercePrice accepts a number or a numeric string; anything else is 0.
func coercePrice(v any) float64 {
	switch p := v.(type) {
	case float64:
		if p < 0 {
			return 0
		}
		return p
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || f < 0 {
			return 0
		}
		return f
	default:
		return 0
	}
}
