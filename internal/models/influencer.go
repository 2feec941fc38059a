package models

import (
	"time"

	"github.com/google/uuid"
)

// Influencer profile statuses
const (
	ProfileStatusDraft     = "draft"
	ProfileStatusSubmitted = "submitted"
)

func IsValidProfileStatus(s string) bool {
	return s == ProfileStatusDraft || s == ProfileStatusSubmitted
}

// Channel platforms
const (
	PlatformNaver     = "naver"
	PlatformYoutube   = "youtube"
	PlatformInstagram = "instagram"
	PlatformThreads   = "threads"
)

var AllPlatforms = []string{PlatformNaver, PlatformYoutube, PlatformInstagram, PlatformThreads}

func IsValidPlatform(p string) bool {
	for _, v := range AllPlatforms {
		if v == p {
			return true
		}
	}
	return false
}

type InfluencerProfile struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	BirthDate time.Time `json:"birth_date"`
	Status    string    `json:"status"` // draft / submitted
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Channel is a social channel owned by an influencer principal. The
// (UserID, URL) pair is unique; edits reset Status to pending.
type Channel struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Platform  string    `json:"platform"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Status    string    `json:"status"` // pending / verified / failed
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
