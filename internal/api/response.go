package api

import (
	"encoding/json"
	"net/http"
)

// respondJSON writes data as JSON with the given status. Nil data writes
// the status and Content-Type only.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondError writes a single-message JSON error.
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondValidationErrors reports the problems found in a submission as
// a 400, one human-readable entry per field, so the form can show them
// next to the inputs.
func respondValidationErrors(w http.ResponseWriter, problems []string) {
	respondJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":   "validation_failed",
		"details": problems,
	})
}
