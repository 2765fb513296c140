package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/deedsapp/deeds-server/internal/domain"
	"github.com/deedsapp/deeds-server/internal/service"
)

type contextKey string

const (
	memberKey  contextKey = "member"
	sessionKey contextKey = "session"
)

// SessionCookieName is the cookie carrying the bearer token.
const SessionCookieName = "deeds_session"

// Session resolves the caller's session cookie and rejects the request when
// no active session backs it.
func Session(sessions *service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := SessionToken(r)
			if token == "" {
				unauthorized(w)
				return
			}

			member, session, err := sessions.Resolve(r.Context(), token)
			if err != nil {
				log.Printf("ERROR [middleware.Session] resolve failed: %v", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			if member == nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), memberKey, member)
			ctx = context.WithValue(ctx, sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionToken extracts the raw token from the request cookie, or "".
func SessionToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// GetMember returns the authenticated member stored by the Session middleware.
func GetMember(ctx context.Context) (*domain.Member, bool) {
	member, ok := ctx.Value(memberKey).(*domain.Member)
	return member, ok
}

// GetSession returns the resolved session stored by the Session middleware.
func GetSession(ctx context.Context) (*domain.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*domain.Session)
	return session, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Please log in to continue.",
	})
}
