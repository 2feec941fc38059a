package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/campmatch/backend/internal/models"
	"github.com/campmatch/backend/internal/repositories"
)

// Store interfaces consumed by the services. The pgx repositories satisfy
// them; tests substitute in-memory fakes.

type ProfileStore interface {
	Create(ctx context.Context, p *models.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
}

type AdvertiserStore interface {
	Upsert(ctx context.Context, p *models.AdvertiserProfile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.AdvertiserProfile, error)
	BusinessNumberTakenByOther(ctx context.Context, businessNumber string, userID uuid.UUID) (bool, error)
	UpdateVerification(ctx context.Context, userID uuid.UUID, status string) (bool, error)
}

type InfluencerStore interface {
	UpsertProfile(ctx context.Context, p *models.InfluencerProfile) error
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.InfluencerProfile, error)
	CreateChannel(ctx context.Context, c *models.Channel) error
	GetChannelByID(ctx context.Context, id uuid.UUID) (*models.Channel, error)
	ListChannelsByUserID(ctx context.Context, userID uuid.UUID) ([]models.Channel, error)
	ListChannelsByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]models.Channel, error)
	UpdateChannel(ctx context.Context, c *models.Channel) error
	DeleteChannel(ctx context.Context, id uuid.UUID) error
	CountChannelsByUserID(ctx context.Context, userID uuid.UUID) (int, error)
	CountVerifiedChannelsByUserID(ctx context.Context, userID uuid.UUID) (int, error)
	ChannelURLTakenByOwner(ctx context.Context, userID uuid.UUID, url string, excludeID *uuid.UUID) (bool, error)
	UpdateChannelVerification(ctx context.Context, id uuid.UUID, status string) (bool, error)
}

type CampaignStore interface {
	Create(ctx context.Context, c *models.Campaign) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
	GetByIDWithAdvertiser(ctx context.Context, id uuid.UUID) (*models.CampaignWithAdvertiser, error)
	Update(ctx context.Context, c *models.Campaign) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	List(ctx context.Context, f repositories.CampaignFilter) ([]models.CampaignWithAdvertiser, error)
	Count(ctx context.Context, f repositories.CampaignFilter) (int, error)
}

type ApplicationStore interface {
	CreateWithCapacityCheck(ctx context.Context, a *models.Application) error
	GetByCampaignAndUser(ctx context.Context, campaignID, userID uuid.UUID) (*models.Application, error)
	CountByCampaign(ctx context.Context, campaignID uuid.UUID) (int, error)
	ListWithCampaign(ctx context.Context, f repositories.ApplicationFilter) ([]models.ApplicationWithCampaign, error)
	Count(ctx context.Context, f repositories.ApplicationFilter) (int, error)
	ListApplicants(ctx context.Context, campaignID uuid.UUID) ([]models.Applicant, error)
	SelectWinners(ctx context.Context, campaignID uuid.UUID, selectedIDs []uuid.UUID) error
}

type AuditStore interface {
	Log(ctx context.Context, entry models.AuditLog) error
}
