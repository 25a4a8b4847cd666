package utils

import (
	"encoding/json"
	"net/http"
)

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

// RespondWithFieldError reports a validation failure keyed by the field
// that caused it, e.g. {"ingredients": "..."}.
func RespondWithFieldError(w http.ResponseWriter, code int, field, msg string) {
	RespondWithJSON(w, code, map[string]string{field: msg})
}

// RespondWithErrors reports relation errors in the {"errors": ...} shape.
func RespondWithErrors(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"errors": msg})
}

// Sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

type M map[string]interface{}
