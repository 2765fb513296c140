package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/deedsapp/deeds-server/internal/api/middleware"
	"github.com/deedsapp/deeds-server/internal/domain"
	"github.com/deedsapp/deeds-server/internal/service"
)

type AuthHandler struct {
	authService    *service.AuthService
	sessionService *service.SessionService
}

func NewAuthHandler(authService *service.AuthService, sessionService *service.SessionService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		sessionService: sessionService,
	}
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Credits   *int      `json:"credits,omitempty"`
}

type AuthResponse struct {
	Message string          `json:"message"`
	Profile ProfileResponse `json:"profile"`
}

func newProfile(member *domain.Member, withCredits bool) ProfileResponse {
	profile := ProfileResponse{
		ID:        member.ID,
		Name:      member.Name,
		Email:     member.Email,
		CreatedAt: member.CreatedAt,
	}
	if withCredits {
		credits := member.Credits
		profile.Credits = &credits
	}
	return profile
}

func greetingName(member *domain.Member) string {
	if fields := strings.Fields(member.Name); len(fields) > 0 {
		return fields[0]
	}
	return member.Email
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}

	member, err := h.authService.Signup(r.Context(), service.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, "AuthHandler.Signup", err, "We could not create your account. Please try again later.")
		return
	}

	h.issueSession(w, r, member)

	writeJSON(w, http.StatusCreated, AuthResponse{
		Message: fmt.Sprintf("Welcome to Deeds, %s!", greetingName(member)),
		Profile: newProfile(member, false),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid JSON payload.")
		return
	}

	member, err := h.authService.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, "AuthHandler.Login", err, "We could not log you in. Please try again later.")
		return
	}

	h.issueSession(w, r, member)

	writeJSON(w, http.StatusOK, AuthResponse{
		Message: fmt.Sprintf("Welcome back, %s!", greetingName(member)),
		Profile: newProfile(member, true),
	})
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	member, ok := middleware.GetMember(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Please log in to continue.")
		return
	}

	writeJSON(w, http.StatusOK, AuthResponse{
		Message: "Profile loaded.",
		Profile: newProfile(member, true),
	})
}

// Logout destroys the cookie's session if one exists. It always succeeds:
// logging out without a live session is not an error.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.SessionToken(r)
	if err := h.sessionService.Destroy(r.Context(), token); err != nil {
		log.Printf("ERROR [AuthHandler.Logout] destroy failed: %v", err)
	}

	clearSessionCookie(w)
	writeMessage(w, http.StatusOK, "You have been signed out.")
}

// issueSession creates a session for the member and attaches its cookie.
// Failing to persist the session degrades to a cookieless response rather
// than failing the signup or login itself.
func (h *AuthHandler) issueSession(w http.ResponseWriter, r *http.Request, member *domain.Member) {
	session, err := h.sessionService.Create(r.Context(), member.ID)
	if err != nil {
		log.Printf("ERROR [AuthHandler.issueSession] create failed: %v", err)
		return
	}
	setSessionCookie(w, r, session)
}

func setSessionCookie(w http.ResponseWriter, r *http.Request, session *domain.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/",
		MaxAge:   int(time.Until(session.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
