package handlers

import (
	"log"
	"net/http"

	"github.com/vkaran/murmur/internal/service"
)

type SuggestionHandler struct {
	suggestionService *service.SuggestionService
}

func NewSuggestionHandler(suggestionService *service.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestionService: suggestionService}
}

// Suggest returns ||-delimited candidate messages as plain text.
func (h *SuggestionHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	text, err := h.suggestionService.Suggest(r.Context())
	if err != nil {
		log.Printf("ERROR suggest messages: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Failed to generate suggestions",
		})
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}
