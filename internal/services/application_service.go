package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/campmatch/backend/internal/apperr"
	"github.com/campmatch/backend/internal/events"
	"github.com/campmatch/backend/internal/models"
	"github.com/campmatch/backend/internal/repositories"
	"github.com/campmatch/backend/internal/validation"
)

type ApplicationInput struct {
	CampaignID uuid.UUID
	Message    string
	VisitDate  string
}

type ApplicationService struct {
	applications ApplicationStore
	campaigns    CampaignStore
	influencers  InfluencerStore
	auditRepo    AuditStore
	publisher    events.Publisher
	clock        clockwork.Clock
	log          *zap.Logger
}

func NewApplicationService(
	applications ApplicationStore,
	campaigns CampaignStore,
	influencers InfluencerStore,
	auditRepo AuditStore,
	publisher events.Publisher,
	clock clockwork.Clock,
	log *zap.Logger,
) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		campaigns:    campaigns,
		influencers:  influencers,
		auditRepo:    auditRepo,
		publisher:    publisher,
		clock:        clock,
		log:          log,
	}
}

// Apply re-checks every eligibility rule server-side, in a fixed order so
// the caller always sees the same failure for the same state. The final
// insert re-verifies status and capacity under a row lock.
func (s *ApplicationService) Apply(ctx context.Context, userID uuid.UUID, in ApplicationInput) (*models.Application, error) {
	profile, err := s.influencers.GetProfileByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperr.NotFound("INFLUENCER_PROFILE_NOT_FOUND", "influencer profile not found")
		}
		return nil, apperr.Internal("failed to load influencer profile")
	}
	if profile.Status != models.ProfileStatusSubmitted {
		return nil, apperr.Forbidden("INFLUENCER_NOT_VERIFIED", "influencer profile is not submitted")
	}

	verified, err := s.influencers.CountVerifiedChannelsByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to count channels")
	}
	if verified < 1 {
		return nil, apperr.Forbidden("NO_VERIFIED_CHANNELS", "at least one verified channel is required")
	}

	campaign, err := s.campaigns.GetByID(ctx, in.CampaignID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperr.NotFound("CAMPAIGN_NOT_FOUND", "campaign not found")
		}
		return nil, apperr.Internal("failed to load campaign")
	}
	if campaign.Status != models.CampaignStatusRecruiting {
		return nil, apperr.Validation("CAMPAIGN_NOT_RECRUITING", "campaign is not recruiting")
	}

	now := s.clock.Now()
	if !validation.IsRecruitmentWindowOpen(campaign.RecruitmentStart, campaign.RecruitmentEnd, now) {
		return nil, apperr.Validation("RECRUITMENT_PERIOD_ENDED", "recruitment period is not open")
	}

	visit, ok := validation.ParseDate(in.VisitDate)
	if !ok {
		return nil, apperr.Validation("INVALID_VISIT_DATE", "visit_date must be YYYY-MM-DD")
	}
	// The visit happens after recruitment ends, never before today.
	if !visit.After(validation.DateOnly(campaign.RecruitmentEnd)) || !validation.IsFutureOrToday(visit, now) {
		return nil, apperr.Validation("INVALID_VISIT_DATE", "visit_date must be after the recruitment period")
	}

	if _, err := s.applications.GetByCampaignAndUser(ctx, in.CampaignID, userID); err == nil {
		return nil, apperr.Conflict("DUPLICATE_APPLICATION", "already applied to this campaign")
	} else if !repositories.IsNotFound(err) {
		return nil, apperr.Internal("failed to check existing application")
	}

	count, err := s.applications.CountByCampaign(ctx, in.CampaignID)
	if err != nil {
		return nil, apperr.Internal("failed to count applications")
	}
	if count >= campaign.MaxParticipants {
		return nil, apperr.Validation("MAX_PARTICIPANTS_REACHED", "campaign is full")
	}

	application := &models.Application{
		CampaignID: in.CampaignID,
		UserID:     userID,
		Message:    in.Message,
		VisitDate:  visit,
		Status:     models.ApplicationStatusPending,
	}
	if err := s.applications.CreateWithCapacityCheck(ctx, application); err != nil {
		switch {
		case err == repositories.ErrCampaignNotRecruiting:
			return nil, apperr.Validation("CAMPAIGN_NOT_RECRUITING", "campaign is not recruiting")
		case err == repositories.ErrCapacityReached:
			return nil, apperr.Validation("MAX_PARTICIPANTS_REACHED", "campaign is full")
		case repositories.IsUniqueViolation(err, repositories.ConstraintApplication):
			return nil, apperr.Conflict("DUPLICATE_APPLICATION", "already applied to this campaign")
		}
		s.log.Error("application insert failed", zap.Error(err))
		return nil, apperr.Internal("failed to create application")
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "application_submitted",
		EntityType:  "application",
		EntityID:    &application.ID,
		Meta:        map[string]any{"campaign_id": in.CampaignID.String()},
	})

	_ = s.publisher.Publish(ctx, events.StreamCampaigns, events.Event{
		Type: events.EventApplicationSubmitted,
		Payload: map[string]any{
			"application_id": application.ID.String(),
			"campaign_id":    in.CampaignID.String(),
		},
	})

	return application, nil
}

// MyApplications lists the principal's applications newest first, each with
// a live snapshot of its campaign.
func (s *ApplicationService) MyApplications(ctx context.Context, userID uuid.UUID, status string, page, limit int) ([]models.ApplicationWithCampaign, int, error) {
	f := repositories.ApplicationFilter{UserID: &userID}
	if status != "" {
		if !models.IsValidApplicationStatus(status) {
			return nil, 0, apperr.Validation("VALIDATION_ERROR", "unknown status "+status)
		}
		f.Status = &status
	}

	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	f.Limit = limit
	f.Offset = (page - 1) * limit

	apps, err := s.applications.ListWithCampaign(ctx, f)
	if err != nil {
		s.log.Error("application list failed", zap.Error(err))
		return nil, 0, apperr.Internal("failed to list applications")
	}
	total, err := s.applications.Count(ctx, f)
	if err != nil {
		return nil, 0, apperr.Internal("failed to count applications")
	}
	return apps, total, nil
}
