package models

import (
	"time"

	"github.com/google/uuid"
)

// Verification statuses, shared by advertiser profiles and influencer channels.
// Assigned by an external review process, never by the owning principal.
const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationFailed   = "failed"
)

func IsValidVerificationStatus(s string) bool {
	return s == VerificationPending || s == VerificationVerified || s == VerificationFailed
}

type AdvertiserProfile struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	CompanyName        string    `json:"company_name"`
	Location           string    `json:"location"`
	Category           string    `json:"category"`
	BusinessNumber     string    `json:"business_number"`
	VerificationStatus string    `json:"verification_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
