package models

import (
	"time"

	"github.com/google/uuid"
)

// Application statuses. An application starts pending and is only ever
// mutated by the bulk selection step, never individually.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusSelected = "selected"
	ApplicationStatusRejected = "rejected"
)

func IsValidApplicationStatus(s string) bool {
	return s == ApplicationStatusPending || s == ApplicationStatusSelected || s == ApplicationStatusRejected
}

type Application struct {
	ID         uuid.UUID `json:"id"`
	CampaignID uuid.UUID `json:"campaign_id"`
	UserID     uuid.UUID `json:"user_id"`
	Message    string    `json:"message"`
	VisitDate  time.Time `json:"visit_date"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ApplicationWithCampaign embeds Application and adds a live snapshot of the
// campaign fields shown on the applicant's dashboard.
type ApplicationWithCampaign struct {
	Application
	CampaignTitle    string    `json:"campaign_title"`
	CampaignBenefits string    `json:"campaign_benefits"`
	RecruitmentEnd   time.Time `json:"recruitment_end"`
	CampaignStatus   string    `json:"campaign_status"`
}

// Applicant is an application enriched with the applicant's identity and
// channel list, as shown on the advertiser's management page.
type Applicant struct {
	Application
	UserName  string    `json:"user_name"`
	UserEmail string    `json:"user_email"`
	BirthDate time.Time `json:"birth_date"`
	Channels  []Channel `json:"channels"`
}
