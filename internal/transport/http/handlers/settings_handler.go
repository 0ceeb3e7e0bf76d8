package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/vkaran/murmur/internal/service"
	"github.com/vkaran/murmur/internal/transport/http/middleware"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
}

func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) GetAcceptMessages(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	accepting, err := h.settingsService.AcceptingMessages(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		default:
			log.Printf("ERROR get accept-messages: %v", err)
			writeError(w, http.StatusInternalServerError, "Error fetching settings")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":             true,
		"isAcceptingMessages": accepting,
	})
}

type updateAcceptMessagesInput struct {
	IsAcceptingMessages bool `json:"isAcceptingMessages"`
}

func (h *SettingsHandler) UpdateAcceptMessages(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input updateAcceptMessagesInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	accepting, err := h.settingsService.SetAcceptingMessages(r.Context(), userID, input.IsAcceptingMessages)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		default:
			log.Printf("ERROR update accept-messages: %v", err)
			writeError(w, http.StatusInternalServerError, "Error updating settings")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Settings updated successfully",
		"data":    map[string]bool{"isAcceptingMessages": accepting},
	})
}
