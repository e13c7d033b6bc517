package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mmynk/housemate/internal/api"
)

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("Failed to encode response", "error", err)
	}
}

// WriteError writes a failed envelope.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, api.Envelope[any]{Code: code, Message: message})
}
