package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/deedsapp/deeds-server/internal/domain"
	"github.com/deedsapp/deeds-server/internal/service"
)

type DeedHandler struct {
	deedService *service.DeedService
}

func NewDeedHandler(deedService *service.DeedService) *DeedHandler {
	return &DeedHandler{deedService: deedService}
}

type SubmitDeedRequest struct {
	UserID      int64  `json:"user_id"`
	Title       string `json:"title"`
	ProofURL    string `json:"proof_url"`
	Description string `json:"description"`
	DeedDate    string `json:"deed_date"`
	Duration    string `json:"duration"`
	Impact      string `json:"impact"`
	Partners    string `json:"partners"`
}

type SubmitDeedResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
	DeedID  int64  `json:"deed_id"`
}

func (h *DeedHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitDeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}

	deed, err := h.deedService.Submit(r.Context(), service.SubmitDeedInput{
		MemberID:    req.UserID,
		Title:       req.Title,
		ProofURL:    req.ProofURL,
		Description: req.Description,
		DeedDate:    req.DeedDate,
		Duration:    req.Duration,
		Impact:      req.Impact,
		Partners:    req.Partners,
	})
	if err != nil {
		writeError(w, "DeedHandler.Submit", err, "We couldn't save your deed right now.")
		return
	}

	writeJSON(w, http.StatusCreated, SubmitDeedResponse{
		Message: "Your deed was submitted. We'll verify it shortly!",
		Success: true,
		DeedID:  deed.ID,
	})
}

// List serves the verification queue as a bare JSON array, the shape the
// review page expects.
func (h *DeedHandler) List(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status != "" && status != string(domain.DeedPending) {
		writeMessage(w, http.StatusBadRequest, "Only the pending queue can be listed.")
		return
	}

	deeds, err := h.deedService.PendingQueue(r.Context())
	if err != nil {
		writeError(w, "DeedHandler.List", err, "We couldn't load the pending queue.")
		return
	}
	if deeds == nil {
		deeds = []*domain.Deed{}
	}

	writeJSON(w, http.StatusOK, deeds)
}

type VerifyDeedRequest struct {
	DeedID int64 `json:"deed_id"`
}

type VerifyDeedResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

func (h *DeedHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req VerifyDeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}
	if req.DeedID <= 0 {
		writeMessage(w, http.StatusBadRequest, "A deed id is required.")
		return
	}

	verified, err := h.deedService.Verify(r.Context(), req.DeedID)
	if err != nil {
		writeError(w, "DeedHandler.Verify", err, "We couldn't verify this deed. Please try again.")
		return
	}

	message := "Deed verified and credits awarded."
	if !verified {
		message = "This deed was already verified."
	}
	writeJSON(w, http.StatusOK, VerifyDeedResponse{
		Message: message,
		Success: true,
	})
}

type LeaderboardResponse struct {
	Message string                    `json:"message"`
	Leaders []domain.LeaderboardEntry `json:"leaders"`
}

func (h *DeedHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	leaders, err := h.deedService.Leaderboard(r.Context(), 0)
	if err != nil {
		writeError(w, "DeedHandler.Leaderboard", err, "We couldn't load the leaderboard.")
		return
	}
	if leaders == nil {
		leaders = []domain.LeaderboardEntry{}
	}

	writeJSON(w, http.StatusOK, LeaderboardResponse{
		Message: "Leaderboard loaded.",
		Leaders: leaders,
	})
}
