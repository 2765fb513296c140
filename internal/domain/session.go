package domain

import "time"

type Session struct {
	Token     string    `json:"token" gorm:"primaryKey"`
	MemberID  int64     `json:"memberId" gorm:"index;not null"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null"`
}

// Expired reports whether the session has passed its expiry. A session whose
// ExpiresAt equals now is already expired.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
