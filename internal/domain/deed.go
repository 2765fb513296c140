package domain

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type DeedStatus string

const (
	DeedPending  DeedStatus = "pending"
	DeedVerified DeedStatus = "verified"
)

// Duration is how long a deed took, one of a closed set of values.
type Duration string

const (
	DurationUnder30 Duration = "Under 30 minutes"
	Duration30To60  Duration = "30-60 minutes"
	Duration1To2H   Duration = "1-2 hours"
	DurationHalfDay Duration = "Half day"
)

var durations = []Duration{DurationUnder30, Duration30To60, Duration1To2H, DurationHalfDay}

// ParseDuration matches input case-insensitively against the known values
// and returns the canonical form.
func ParseDuration(s string) (Duration, bool) {
	for _, d := range durations {
		if strings.EqualFold(s, string(d)) {
			return d, true
		}
	}
	return "", false
}

// ImpactArea is the community area a deed served, one of a closed set.
type ImpactArea string

const (
	ImpactFoodAccess    ImpactArea = "Food access"
	ImpactHousing       ImpactArea = "Housing"
	ImpactEducation     ImpactArea = "Education"
	ImpactEnvironment   ImpactArea = "Environment"
	ImpactCommunityCare ImpactArea = "Community care"
)

var impactAreas = []ImpactArea{
	ImpactFoodAccess,
	ImpactHousing,
	ImpactEducation,
	ImpactEnvironment,
	ImpactCommunityCare,
}

// ParseImpactArea matches input case-insensitively against the known values
// and returns the canonical form.
func ParseImpactArea(s string) (ImpactArea, bool) {
	for _, a := range impactAreas {
		if strings.EqualFold(s, string(a)) {
			return a, true
		}
	}
	return "", false
}

type Deed struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	MemberID    int64           `json:"user_id" gorm:"index;not null"`
	Title       string          `json:"title" gorm:"not null"`
	ProofURL    string          `json:"proof_url" gorm:"not null"`
	Description string          `json:"description,omitempty"`
	DeedDate    *datatypes.Date `json:"deed_date,omitempty"`
	Duration    Duration        `json:"duration,omitempty"`
	ImpactArea  ImpactArea      `json:"impact,omitempty"`
	Partners    string          `json:"partners,omitempty"`
	Status      DeedStatus      `json:"status" gorm:"not null;default:pending;index"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NormalizePartners splits free-form partner input on commas, semicolons and
// newlines, trims each entry, drops empties and rejoins with ", ".
func NormalizePartners(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	cleaned := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return strings.Join(cleaned, ", ")
}
