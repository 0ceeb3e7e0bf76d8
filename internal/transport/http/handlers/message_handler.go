package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/vkaran/murmur/internal/service"
	"github.com/vkaran/murmur/internal/transport/http/middleware"
)

type MessageHandler struct {
	messageService *service.MessageService
}

func NewMessageHandler(messageService *service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// Submit accepts an anonymous message for a recipient. No auth.
func (h *MessageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var input service.SubmitMessageInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if input.RecipientUsername == "" {
		writeError(w, http.StatusBadRequest, "Recipient username is required")
		return
	}

	_, err := h.messageService.Submit(r.Context(), input)
	if err != nil {
		var vErr *service.ValidationError
		switch {
		case errors.As(err, &vErr):
			writeError(w, http.StatusBadRequest, vErr.Reason)
		case errors.Is(err, service.ErrRecipientNotFound):
			writeError(w, http.StatusNotFound, "Recipient user not found")
		case errors.Is(err, service.ErrNotAcceptingMessages):
			writeError(w, http.StatusForbidden, "Recipient is not accepting messages")
		default:
			log.Printf("ERROR submit message: %v", err)
			writeError(w, http.StatusInternalServerError, "Error sending message")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Message sent successfully")
}

// List returns a user's messages newest first. Public by design: a
// profile link is meant to be shared.
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "Username is required")
		return
	}

	messages, err := h.messageService.List(r.Context(), username)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecipientNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		default:
			log.Printf("ERROR list messages: %v", err)
			writeError(w, http.StatusInternalServerError, "Error fetching messages")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    messages,
	})
}

// Delete removes one of the authenticated owner's messages.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	messageID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid message ID")
		return
	}

	if err := h.messageService.Delete(r.Context(), userID, messageID); err != nil {
		switch {
		case errors.Is(err, service.ErrMessageNotFound):
			writeError(w, http.StatusNotFound, "Message not found")
		default:
			log.Printf("ERROR delete message: %v", err)
			writeError(w, http.StatusInternalServerError, "Error deleting message")
		}
		return
	}

	writeMessage(w, http.StatusOK, "Message deleted")
}
