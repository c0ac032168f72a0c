package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/cherryapp/cherry/internal/auth"
	"github.com/cherryapp/cherry/internal/store"
	"github.com/cherryapp/cherry/internal/websocket"
)

type ProfileHandler struct {
	profileStore *store.ProfileStore
	hub          *websocket.Hub
}

func NewProfileHandler(ps *store.ProfileStore, hub *websocket.Hub) *ProfileHandler {
	return &ProfileHandler{profileStore: ps, hub: hub}
}

func (h *ProfileHandler) notify(userID int64, msg websocket.Message) {
	if h.hub != nil {
		h.hub.Notify(userID, msg)
	}
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	profile, err := h.profileStore.GetByUserID(userID)
	if err != nil {
		log.Printf("failed to get profile: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get profile"})
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found"})
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

type profileRequest struct {
	Name                string `json:"name"`
	Age                 *int   `json:"age"`
	HouseholdSize       *int   `json:"household_size"`
	OnboardingCompleted bool   `json:"onboarding_completed"`
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	if req.Age != nil && (*req.Age < 0 || *req.Age > 150) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid age"})
		return
	}
	if req.HouseholdSize != nil && *req.HouseholdSize < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid household size"})
		return
	}

	profile, err := h.profileStore.Update(userID, req.Name, req.Age, req.HouseholdSize, req.OnboardingCompleted)
	if err != nil {
		log.Printf("failed to update profile: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update profile"})
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "profile not found"})
		return
	}

	h.notify(userID, websocket.NewMessage("profile", "updated", profile.ID))

	writeJSON(w, http.StatusOK, profile)
}
