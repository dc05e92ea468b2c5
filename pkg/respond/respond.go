// Package respond writes JSON responses and maps service errors to
// HTTP status codes.
package respond

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"saraf-backend/internal/apperr"
)

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[Respond] encode failed: %v", err)
		}
	}
}

// Message writes a {"message": ...} body.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// Error maps the error taxonomy to a status code: validation errors are
// 400, missing records 404, everything else 500 with a generic body.
func Error(w http.ResponseWriter, err error) {
	switch {
	case apperr.IsValidation(err):
		Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		Message(w, http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrEmailTaken):
		Message(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrInvalidCredentials):
		Message(w, http.StatusUnauthorized, err.Error())
	default:
		log.Printf("[Respond] internal error: %v", err)
		Message(w, http.StatusInternalServerError, "Server error")
	}
}
