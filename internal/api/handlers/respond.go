package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/deedsapp/deeds-server/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps the domain error taxonomy onto statuses and user-safe
// messages. Anything unrecognized is a storage-layer failure: the detail is
// logged under tag and the caller sees only the fallback message.
func writeError(w http.ResponseWriter, tag string, err error, fallback string) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeMessage(w, http.StatusBadRequest, ve.Message)
	case errors.Is(err, domain.ErrEmailExists):
		writeMessage(w, http.StatusConflict, "An account with this email already exists. Please log in.")
	case errors.Is(err, domain.ErrMemberNotFound):
		writeMessage(w, http.StatusNotFound, "We could not find that account. Please sign up first.")
	case errors.Is(err, domain.ErrIncorrectPassword):
		writeMessage(w, http.StatusUnauthorized, "Incorrect password. Please try again.")
	case errors.Is(err, domain.ErrDeedNotFound):
		writeMessage(w, http.StatusNotFound, "We couldn't find that deed.")
	case errors.Is(err, domain.ErrLoginThrottled):
		writeMessage(w, http.StatusTooManyRequests, "Too many attempts. Please wait a moment and try again.")
	default:
		log.Printf("ERROR [%s] %v", tag, err)
		writeMessage(w, http.StatusInternalServerError, fallback)
	}
}
