package models

import (
	"time"

	"github.com/google/uuid"
)

// Campaign statuses
const (
	CampaignStatusRecruiting = "recruiting"
	CampaignStatusClosed     = "closed"
	CampaignStatusCompleted  = "completed"
)

// Valid state transitions: from -> []to. The lifecycle is strictly forward:
// recruiting must pass through closed before completed, and completed is
// terminal.
var ValidCampaignTransitions = map[string][]string{
	CampaignStatusRecruiting: {CampaignStatusClosed},
	CampaignStatusClosed:     {CampaignStatusCompleted},
	CampaignStatusCompleted:  {},
}

func IsValidCampaignTransition(from, to string) bool {
	allowed, ok := ValidCampaignTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

func IsValidCampaignStatus(s string) bool {
	_, ok := ValidCampaignTransitions[s]
	return ok
}

type Campaign struct {
	ID               uuid.UUID `json:"id"`
	AdvertiserID     uuid.UUID `json:"advertiser_id"`
	Title            string    `json:"title"`
	RecruitmentStart time.Time `json:"recruitment_start"` // 00:00:00 of the first day
	RecruitmentEnd   time.Time `json:"recruitment_end"`   // 23:59:59 of the last day
	MaxParticipants  int       `json:"max_participants"`
	Benefits         string    `json:"benefits"`
	StoreInfo        string    `json:"store_info"`
	Mission          string    `json:"mission"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CampaignWithAdvertiser embeds Campaign and adds the advertiser's public
// company info to avoid N+1 queries on list/detail pages.
type CampaignWithAdvertiser struct {
	Campaign
	CompanyName *string `json:"company_name,omitempty"`
	Location    *string `json:"location,omitempty"`
	Category    *string `json:"category,omitempty"`
}
