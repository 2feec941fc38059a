package dto

import "github.com/google/uuid"

// ---- Auth ----

type SignupRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Phone       string `json:"phone" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Role        string `json:"role" validate:"required,oneof=advertiser influencer"`
	TermsAgreed bool   `json:"terms_agreed" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ---- Advertiser ----

type AdvertiserProfileRequest struct {
	CompanyName    string `json:"company_name" validate:"required,min=1,max=200"`
	Location       string `json:"location" validate:"required,min=1,max=200"`
	Category       string `json:"category" validate:"required,min=1,max=100"`
	BusinessNumber string `json:"business_number" validate:"required"`
}

// ---- Influencer ----

type ChannelRequest struct {
	Platform string `json:"platform" validate:"required,oneof=naver youtube instagram threads"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	URL      string `json:"url" validate:"required,url"`
}

type InfluencerProfileRequest struct {
	BirthDate string           `json:"birth_date" validate:"required"`
	Status    string           `json:"status" validate:"omitempty,oneof=draft submitted"`
	Channels  []ChannelRequest `json:"channels" validate:"dive"`
}

type ChannelUpdateRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
	URL  string `json:"url" validate:"required,url"`
}

// ---- Campaigns ----

type CreateCampaignRequest struct {
	Title            string `json:"title" validate:"required,min=1,max=200"`
	RecruitmentStart string `json:"recruitment_start" validate:"required"`
	RecruitmentEnd   string `json:"recruitment_end" validate:"required"`
	MaxParticipants  int    `json:"max_participants" validate:"required,min=1"`
	Benefits         string `json:"benefits" validate:"required,max=1000"`
	StoreInfo        string `json:"store_info" validate:"required,max=1000"`
	Mission          string `json:"mission" validate:"required,max=1000"`
}

// UpdateCampaignRequest carries only the fields present in the body.
type UpdateCampaignRequest struct {
	Title            *string `json:"title" validate:"omitempty,min=1,max=200"`
	RecruitmentStart *string `json:"recruitment_start"`
	RecruitmentEnd   *string `json:"recruitment_end"`
	MaxParticipants  *int    `json:"max_participants" validate:"omitempty,min=1"`
	Benefits         *string `json:"benefits" validate:"omitempty,max=1000"`
	StoreInfo        *string `json:"store_info" validate:"omitempty,max=1000"`
	Mission          *string `json:"mission" validate:"omitempty,max=1000"`
}

type UpdateCampaignStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=recruiting closed completed"`
}

type SelectApplicantsRequest struct {
	SelectedIDs []uuid.UUID `json:"selected_ids" validate:"required,min=1"`
}

// ---- Applications ----

type CreateApplicationRequest struct {
	CampaignID uuid.UUID `json:"campaign_id" validate:"required"`
	Message    string    `json:"message" validate:"required,min=1,max=500"`
	VisitDate  string    `json:"visit_date" validate:"required"`
}

// ---- Admin ----

type VerificationRequest struct {
	Status string `json:"status" validate:"required,oneof=pending verified failed"`
}
