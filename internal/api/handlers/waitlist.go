package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/deedsapp/deeds-server/internal/service"
)

type WaitlistHandler struct {
	waitlistService *service.WaitlistService
}

func NewWaitlistHandler(waitlistService *service.WaitlistService) *WaitlistHandler {
	return &WaitlistHandler{waitlistService: waitlistService}
}

type WaitlistRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (h *WaitlistHandler) Join(w http.ResponseWriter, r *http.Request) {
	var req WaitlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}

	if err := h.waitlistService.Join(r.Context(), req.Email, req.Name); err != nil {
		writeError(w, "WaitlistHandler.Join", err, "We had trouble saving that. Please try again in a moment.")
		return
	}

	writeMessage(w, http.StatusCreated, "You're all set! We'll be in touch with updates soon.")
}
