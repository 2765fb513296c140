package domain

import (
	"regexp"
	"time"
)

// hexDigestPattern matches the fixed shape of a SHA-256 hex digest. Stored
// credentials that do not match are legacy plaintext awaiting migration.
var hexDigestPattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Credential is a stored password record: either a hashed digest or, for
// accounts created before hashing was introduced, the raw password itself.
type Credential string

// Hashed reports whether the stored value is a password digest rather than
// legacy plaintext.
func (c Credential) Hashed() bool {
	return hexDigestPattern.MatchString(string(c))
}

type Member struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash Credential `json:"-" gorm:"not null"`
	Credits      int        `json:"credits" gorm:"not null;default:0"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// LeaderboardEntry is one row of the credits ranking.
type LeaderboardEntry struct {
	Name    string `json:"name"`
	Credits int    `json:"credits"`
}
