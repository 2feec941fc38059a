package models

import (
	"time"

	"github.com/google/uuid"
)

// Principal roles
const (
	RoleAdvertiser = "advertiser"
	RoleInfluencer = "influencer"
)

func IsValidRole(r string) bool {
	return r == RoleAdvertiser || r == RoleInfluencer
}

// Profile is the principal record: one row per authenticated account.
// Role is the single authoritative role field for the whole system.
type Profile struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          string    `json:"role"` // advertiser / influencer
	TermsAgreedAt time.Time `json:"terms_agreed_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
