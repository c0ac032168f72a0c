package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/cherryapp/cherry/internal/auth"
	"github.com/cherryapp/cherry/internal/model"
	"github.com/cherryapp/cherry/internal/pantry"
	"github.com/cherryapp/cherry/internal/shopping"
	"github.com/cherryapp/cherry/internal/websocket"
)

type ShoppingDayHandler struct {
	shopping *shopping.Service
	hub      *websocket.Hub
}

func NewShoppingDayHandler(svc *shopping.Service, hub *websocket.Hub) *ShoppingDayHandler {
	return &ShoppingDayHandler{shopping: svc, hub: hub}
}

func (h *ShoppingDayHandler) notify(userID int64, msg websocket.Message) {
	if h.hub != nil {
		h.hub.Notify(userID, msg)
	}
}

// Day answers the shopping-day view. Optional query params: view
// (current|pantry|both, default both) and status (all|pending|purchased,
// default all).
func (h *ShoppingDayHandler) Day(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	day, err := h.shopping.Day(userID)
	if err != nil {
		log.Printf("failed to build shopping day: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load shopping day"})
		return
	}

	view := shopping.ViewMode(r.URL.Query().Get("view"))
	status := shopping.StatusFilter(r.URL.Query().Get("status"))
	if view == "" {
		view = shopping.ViewBoth
	}
	if status == "" {
		status = shopping.FilterAll
	}

	day.Items = shopping.FilterItems(day.Items, status)
	switch view {
	case shopping.ViewCurrent:
		day.LowStock = nil
	case shopping.ViewPantry:
		day.Items = nil
	}
	if day.Items == nil {
		day.Items = []model.ListItemDetail{}
	}
	if day.LowStock == nil {
		day.LowStock = []pantry.ItemWithStatus{}
	}

	writeJSON(w, http.StatusOK, day)
}

func (h *ShoppingDayHandler) AddPantryItem(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	item, err := h.shopping.AddPantryItem(userID, id)
	if err != nil {
		if errors.Is(err, shopping.ErrNoCurrentList) {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "no current list to add to"})
			return
		}
		log.Printf("failed to add pantry item to list: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "failed to add pantry item to list"})
		return
	}

	h.notify(userID, websocket.NewMessage("list_item", "created", item.ID))

	writeJSON(w, http.StatusCreated, item)
}

func (h *ShoppingDayHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	migrated, err := h.shopping.Complete(userID)
	if err != nil {
		switch {
		case errors.Is(err, shopping.ErrNoCurrentList):
			writeJSON(w, http.StatusConflict, map[string]string{"error": "no current list"})
		case errors.Is(err, shopping.ErrNoPurchasedItems):
			writeJSON(w, http.StatusConflict, map[string]string{"error": "no purchased items to migrate"})
		default:
			log.Printf("failed to complete shopping day: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to complete shopping day"})
		}
		return
	}

	h.notify(userID, websocket.NewMessage("shopping_day", "completed", 0))

	writeJSON(w, http.StatusOK, map[string]int{"migrated": migrated})
}
