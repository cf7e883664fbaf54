package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/surveymaster/server/internal/service"
)

func readJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeServiceError maps business errors to client statuses and everything
// else to an opaque 500 so store failures never leak internals or crash the
// handler.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateVote):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidChoice),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("upstream failure: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
