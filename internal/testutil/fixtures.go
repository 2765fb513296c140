package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/deedsapp/deeds-server/internal/domain"
	"github.com/deedsapp/deeds-server/internal/service"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemberBuilder creates test members with a builder pattern
type MemberBuilder struct {
	name     string
	email    string
	password string
	legacy   bool
	credits  int
}

// NewMemberBuilder creates a new MemberBuilder with default values
func NewMemberBuilder() *MemberBuilder {
	return &MemberBuilder{
		name:     "Test Member",
		email:    fmt.Sprintf("member_%s@example.com", uuid.New().String()[:8]),
		password: "testpassword123",
	}
}

// WithName sets the display name
func (b *MemberBuilder) WithName(name string) *MemberBuilder {
	b.name = name
	return b
}

// WithEmail sets the email
func (b *MemberBuilder) WithEmail(email string) *MemberBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *MemberBuilder) WithPassword(password string) *MemberBuilder {
	b.password = password
	return b
}

// WithLegacyPassword stores the password as plaintext instead of a digest,
// imitating an account created before hashing was introduced.
func (b *MemberBuilder) WithLegacyPassword(password string) *MemberBuilder {
	b.password = password
	b.legacy = true
	return b
}

// WithCredits sets the starting credit balance
func (b *MemberBuilder) WithCredits(credits int) *MemberBuilder {
	b.credits = credits
	return b
}

// Build creates the member in the database and returns it with the raw password
func (b *MemberBuilder) Build(t *testing.T, db *gorm.DB) (*domain.Member, string) {
	t.Helper()

	credential := service.HashPassword(b.password)
	if b.legacy {
		credential = domain.Credential(b.password)
	}

	member := &domain.Member{
		Name:         b.name,
		Email:        b.email,
		PasswordHash: credential,
		Credits:      b.credits,
		CreatedAt:    time.Now(),
	}

	if err := db.Create(member).Error; err != nil {
		t.Fatalf("failed to create member: %v", err)
	}

	return member, b.password
}

// DeedBuilder creates test deeds with a builder pattern
type DeedBuilder struct {
	memberID int64
	title    string
	proofURL string
	status   domain.DeedStatus
}

// NewDeedBuilder creates a new DeedBuilder for the given member
func NewDeedBuilder(memberID int64) *DeedBuilder {
	return &DeedBuilder{
		memberID: memberID,
		title:    "Cleaned up the park",
		proofURL: "https://example.com/proof",
		status:   domain.DeedPending,
	}
}

// WithTitle sets the title
func (b *DeedBuilder) WithTitle(title string) *DeedBuilder {
	b.title = title
	return b
}

// WithStatus sets the deed status
func (b *DeedBuilder) WithStatus(status domain.DeedStatus) *DeedBuilder {
	b.status = status
	return b
}

// Build creates the deed in the database
func (b *DeedBuilder) Build(t *testing.T, db *gorm.DB) *domain.Deed {
	t.Helper()

	deed := &domain.Deed{
		MemberID:  b.memberID,
		Title:     b.title,
		ProofURL:  b.proofURL,
		Status:    b.status,
		CreatedAt: time.Now(),
	}

	if err := db.Create(deed).Error; err != nil {
		t.Fatalf("failed to create deed: %v", err)
	}

	return deed
}

// SessionBuilder creates session rows directly, bypassing the service, so
// tests can plant expired sessions.
type SessionBuilder struct {
	memberID  int64
	token     string
	expiresAt time.Time
}

// NewSessionBuilder creates a new SessionBuilder for the given member
func NewSessionBuilder(memberID int64) *SessionBuilder {
	return &SessionBuilder{
		memberID:  memberID,
		token:     uuid.New().String() + uuid.New().String(),
		expiresAt: time.Now().Add(time.Hour),
	}
}

// ExpiredAt sets the expiry timestamp
func (b *SessionBuilder) ExpiredAt(at time.Time) *SessionBuilder {
	b.expiresAt = at
	return b
}

// Build creates the session in the database
func (b *SessionBuilder) Build(t *testing.T, db *gorm.DB) *domain.Session {
	t.Helper()

	session := &domain.Session{
		Token:     b.token,
		MemberID:  b.memberID,
		CreatedAt: time.Now().Add(-time.Minute),
		ExpiresAt: b.expiresAt,
	}

	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	return session
}

// APIProfile matches the profile payload returned by the auth endpoints
type APIProfile struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	Credits   *int   `json:"credits"`
}

// APIAuthResponse matches the auth endpoint envelope
type APIAuthResponse struct {
	Message string     `json:"message"`
	Profile APIProfile `json:"profile"`
}

// SignupAndLogin registers the builder's member through the API and returns
// the profile plus the session cookie issued at login.
func (b *MemberBuilder) SignupAndLogin(t *testing.T, ts *TestServer) (APIProfile, *http.Cookie) {
	t.Helper()

	signupBody, _ := json.Marshal(map[string]string{
		"name":     b.name,
		"email":    b.email,
		"password": b.password,
	})
	resp, err := http.Post(ts.APIURL("/auth/signup"), "application/json", bytes.NewBuffer(signupBody))
	if err != nil {
		t.Fatalf("failed to sign up: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected signup status: %d", resp.StatusCode)
	}

	loginBody, _ := json.Marshal(map[string]string{
		"email":    b.email,
		"password": b.password,
	})
	resp, err = http.Post(ts.APIURL("/auth/login"), "application/json", bytes.NewBuffer(loginBody))
	if err != nil {
		t.Fatalf("failed to log in: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status: %d", resp.StatusCode)
	}

	var authResp APIAuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}

	var sessionCookie *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "deeds_session" {
			sessionCookie = cookie
		}
	}
	if sessionCookie == nil {
		t.Fatal("login did not set a session cookie")
	}

	return authResp.Profile, sessionCookie
}
