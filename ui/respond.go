package ui

import (
	"encoding/json"
	"log"
	"net/http"

	"aeon/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[UI] Failed to encode response: %v", err)
	}
}

// writeError maps application error codes to HTTP statuses. Unknown
// errors are masked as a generic 500.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	detail := "internal server error"

	switch errors.GetCode(err) {
	case errors.CodeSessionNotFound:
		status = http.StatusNotFound
		detail = err.Error()
	case errors.CodeSessionExpired, errors.CodeSessionCompleted:
		status = http.StatusForbidden
		detail = err.Error()
	case errors.CodeQuestionNotAsked, errors.CodeInvalidInput:
		status = http.StatusBadRequest
		detail = err.Error()
	default:
		log.Printf("[UI] Internal error: %v", err)
	}

	writeJSON(w, status, map[string]string{"detail": detail})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid JSON body"})
		return false
	}
	return true
}
