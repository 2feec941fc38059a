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

type CampaignInput struct {
	Title            string
	RecruitmentStart string
	RecruitmentEnd   string
	MaxParticipants  int
	Benefits         string
	StoreInfo        string
	Mission          string
}

type CampaignPatch struct {
	Title            *string
	RecruitmentStart *string
	RecruitmentEnd   *string
	MaxParticipants  *int
	Benefits         *string
	StoreInfo        *string
	Mission          *string
}

type ListCampaignsParams struct {
	Status   string
	Category string
	Region   string
	Sort     string
	Page     int
	Limit    int
}

// CampaignDetail is the public detail view, with viewer-specific fields set
// only for authenticated influencers.
type CampaignDetail struct {
	models.CampaignWithAdvertiser
	ApplicantCount    int     `json:"applicant_count"`
	CanApply          *bool   `json:"canApply,omitempty"`
	HasApplied        *bool   `json:"hasApplied,omitempty"`
	ApplicationStatus *string `json:"applicationStatus,omitempty"`
}

// CampaignManageView is the owner's management page.
type CampaignManageView struct {
	models.Campaign
	Applicants []models.Applicant `json:"applicants"`
}

type CampaignService struct {
	campaigns    CampaignStore
	advertisers  AdvertiserStore
	influencers  InfluencerStore
	applications ApplicationStore
	auditRepo    AuditStore
	publisher    events.Publisher
	clock        clockwork.Clock
	log          *zap.Logger
}

func NewCampaignService(
	campaigns CampaignStore,
	advertisers AdvertiserStore,
	influencers InfluencerStore,
	applications ApplicationStore,
	auditRepo AuditStore,
	publisher events.Publisher,
	clock clockwork.Clock,
	log *zap.Logger,
) *CampaignService {
	return &CampaignService{
		campaigns:    campaigns,
		advertisers:  advertisers,
		influencers:  influencers,
		applications: applications,
		auditRepo:    auditRepo,
		publisher:    publisher,
		clock:        clock,
		log:          log,
	}
}

// CreateCampaign requires a verified advertiser profile. The recruitment
// window is stored as full calendar days.
func (s *CampaignService) CreateCampaign(ctx context.Context, userID uuid.UUID, in CampaignInput) (*models.Campaign, error) {
	advertiser, err := s.advertisers.GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperr.NotFound("ADVERTISER_PROFILE_NOT_FOUND", "advertiser profile not found")
		}
		return nil, apperr.Internal("failed to load advertiser profile")
	}
	if advertiser.VerificationStatus != models.VerificationVerified {
		return nil, apperr.Forbidden("ADVERTISER_NOT_VERIFIED", "advertiser profile is not verified")
	}

	start, ok := validation.ParseDate(in.RecruitmentStart)
	if !ok {
		return nil, apperr.Validation("VALIDATION_ERROR", "recruitment_start must be YYYY-MM-DD")
	}
	end, ok := validation.ParseDate(in.RecruitmentEnd)
	if !ok {
		return nil, apperr.Validation("VALIDATION_ERROR", "recruitment_end must be YYYY-MM-DD")
	}
	if !validation.IsDateRangeValid(start, end) {
		return nil, apperr.Validation("INVALID_DATE_RANGE", "recruitment_start must be before recruitment_end")
	}
	if !validation.IsFutureOrToday(end, s.clock.Now()) {
		return nil, apperr.Validation("INVALID_RECRUITMENT_PERIOD", "recruitment_end must not be in the past")
	}

	campaign := &models.Campaign{
		AdvertiserID:     userID,
		Title:            in.Title,
		RecruitmentStart: validation.StartOfDay(start),
		RecruitmentEnd:   validation.EndOfDay(end),
		MaxParticipants:  in.MaxParticipants,
		Benefits:         in.Benefits,
		StoreInfo:        in.StoreInfo,
		Mission:          in.Mission,
		Status:           models.CampaignStatusRecruiting,
	}
	if err := s.campaigns.Create(ctx, campaign); err != nil {
		s.log.Error("campaign create failed", zap.Error(err))
		return nil, apperr.Internal("failed to create campaign")
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "campaign_created",
		EntityType:  "campaign",
		EntityID:    &campaign.ID,
		Meta:        map[string]any{"title": campaign.Title},
	})

	return campaign, nil
}

// ListCampaigns is the public catalog. An empty status filters to recruiting;
// "all" disables the status filter.
func (s *CampaignService) ListCampaigns(ctx context.Context, p ListCampaignsParams) ([]models.CampaignWithAdvertiser, int, error) {
	f := repositories.CampaignFilter{Sort: p.Sort}

	switch p.Status {
	case "":
		status := models.CampaignStatusRecruiting
		f.Status = &status
	case "all":
	default:
		if !models.IsValidCampaignStatus(p.Status) {
			return nil, 0, apperr.Validation("VALIDATION_ERROR", "unknown status "+p.Status)
		}
		status := p.Status
		f.Status = &status
	}
	if p.Category != "" {
		f.Category = &p.Category
	}
	if p.Region != "" {
		f.Region = &p.Region
	}

	page := p.Page
	if page < 1 {
		page = 1
	}
	limit := p.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	f.Limit = limit
	f.Offset = (page - 1) * limit

	campaigns, err := s.campaigns.List(ctx, f)
	if err != nil {
		s.log.Error("campaign list failed", zap.Error(err))
		return nil, 0, apperr.Internal("failed to list campaigns")
	}
	total, err := s.campaigns.Count(ctx, f)
	if err != nil {
		return nil, 0, apperr.Internal("failed to count campaigns")
	}
	return campaigns, total, nil
}

func (s *CampaignService) MyCampaigns(ctx context.Context, userID uuid.UUID, page, limit int) ([]models.CampaignWithAdvertiser, int, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	f := repositories.CampaignFilter{
		AdvertiserID: &userID,
		Sort:         repositories.SortLatest,
		Limit:        limit,
		Offset:       (page - 1) * limit,
	}

	campaigns, err := s.campaigns.List(ctx, f)
	if err != nil {
		return nil, 0, apperr.Internal("failed to list campaigns")
	}
	total, err := s.campaigns.Count(ctx, f)
	if err != nil {
		return nil, 0, apperr.Internal("failed to count campaigns")
	}
	return campaigns, total, nil
}

// GetCampaign returns the public detail. When the viewer is known, the
// response carries their application state and whether they could apply now.
func (s *CampaignService) GetCampaign(ctx context.Context, id uuid.UUID, viewer *uuid.UUID) (*CampaignDetail, error) {
	campaign, err := s.campaigns.GetByIDWithAdvertiser(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperr.NotFound("CAMPAIGN_NOT_FOUND", "campaign not found")
		}
		return nil, apperr.Internal("failed to load campaign")
	}

	count, err := s.applications.CountByCampaign(ctx, id)
	if err != nil {
		return nil, apperr.Internal("failed to count applications")
	}

	detail := &CampaignDetail{CampaignWithAdvertiser: *campaign, ApplicantCount: count}
	if viewer == nil {
		return detail, nil
	}

	hasApplied := false
	var applicationStatus *string
	if app, err := s.applications.GetByCampaignAndUser(ctx, id, *viewer); err == nil {
		hasApplied = true
		applicationStatus = &app.Status
	} else if !repositories.IsNotFound(err) {
		return nil, apperr.Internal("failed to load application")
	}

	canApply := s.isEligible(ctx, *viewer, &campaign.Campaign, hasApplied, count) == nil
	detail.CanApply = &canApply
	detail.HasApplied = &hasApplied
	detail.ApplicationStatus = applicationStatus
	return detail, nil
}

// isEligible evaluates the application preconditions in their fixed order
// and returns the first failure, nil when the viewer could apply.
func (s *CampaignService) isEligible(ctx context.Context, userID uuid.UUID, campaign *models.Campaign, hasApplied bool, applicantCount int) error {
	profile, err := s.influencers.GetProfileByUserID(ctx, userID)
	if err != nil {
		return apperr.NotFound("INFLUENCER_PROFILE_NOT_FOUND", "influencer profile not found")
	}
	if profile.Status != models.ProfileStatusSubmitted {
		return apperr.Forbidden("INFLUENCER_NOT_VERIFIED", "influencer profile is not submitted")
	}
	verified, err := s.influencers.CountVerifiedChannelsByUserID(ctx, userID)
	if err != nil || verified < 1 {
		return apperr.Forbidden("NO_VERIFIED_CHANNELS", "at least one verified channel is required")
	}
	if campaign.Status != models.CampaignStatusRecruiting {
		return apperr.Validation("CAMPAIGN_NOT_RECRUITING", "campaign is not recruiting")
	}
	if !validation.IsRecruitmentWindowOpen(campaign.RecruitmentStart, campaign.RecruitmentEnd, s.clock.Now()) {
		return apperr.Validation("RECRUITMENT_PERIOD_ENDED", "recruitment period is not open")
	}
	if hasApplied {
		return apperr.Conflict("DUPLICATE_APPLICATION", "already applied to this campaign")
	}
	if applicantCount >= campaign.MaxParticipants {
		return apperr.Validation("MAX_PARTICIPANTS_REACHED", "campaign is full")
	}
	return nil
}

// getOwned loads a campaign for its owner. collapseForbidden hides ownership
// failures behind 404, which the mutation endpoints do.
func (s *CampaignService) getOwned(ctx context.Context, userID, id uuid.UUID, collapseForbidden bool) (*models.Campaign, error) {
	campaign, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperr.NotFound("CAMPAIGN_NOT_FOUND", "campaign not found")
		}
		return nil, apperr.Internal("failed to load campaign")
	}
	if campaign.AdvertiserID != userID {
		if collapseForbidden {
			return nil, apperr.NotFound("CAMPAIGN_NOT_FOUND", "campaign not found")
		}
		return nil, apperr.Forbidden("CAMPAIGN_UNAUTHORIZED_ACCESS", "campaign belongs to another advertiser")
	}
	return campaign, nil
}

func (s *CampaignService) ManageCampaign(ctx context.Context, userID, id uuid.UUID) (*CampaignManageView, error) {
	campaign, err := s.getOwned(ctx, userID, id, false)
	if err != nil {
		return nil, err
	}

	applicants, err := s.ListApplicants(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return &CampaignManageView{Campaign: *campaign, Applicants: applicants}, nil
}

func (s *CampaignService) ListApplicants(ctx context.Context, userID, id uuid.UUID) ([]models.Applicant, error) {
	if _, err := s.getOwned(ctx, userID, id, false); err != nil {
		return nil, err
	}

	applicants, err := s.applications.ListApplicants(ctx, id)
	if err != nil {
		s.log.Error("applicant roster failed", zap.Error(err))
		return nil, apperr.Internal("failed to load applicants")
	}
	if len(applicants) == 0 {
		return applicants, nil
	}

	userIDs := make([]uuid.UUID, 0, len(applicants))
	for _, ap := range applicants {
		userIDs = append(userIDs, ap.UserID)
	}
	byUser, err := s.influencers.ListChannelsByUserIDs(ctx, userIDs)
	if err != nil {
		return nil, apperr.Internal("failed to load applicant channels")
	}
	for i := range applicants {
		applicants[i].Channels = byUser[applicants[i].UserID]
	}
	return applicants, nil
}

func (s *CampaignService) UpdateCampaign(ctx context.Context, userID, id uuid.UUID, patch CampaignPatch) (*models.Campaign, error) {
	campaign, err := s.getOwned(ctx, userID, id, true)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		campaign.Title = *patch.Title
	}
	if patch.MaxParticipants != nil {
		campaign.MaxParticipants = *patch.MaxParticipants
	}
	if patch.Benefits != nil {
		campaign.Benefits = *patch.Benefits
	}
	if patch.StoreInfo != nil {
		campaign.StoreInfo = *patch.StoreInfo
	}
	if patch.Mission != nil {
		campaign.Mission = *patch.Mission
	}
	if patch.RecruitmentStart != nil {
		start, ok := validation.ParseDate(*patch.RecruitmentStart)
		if !ok {
			return nil, apperr.Validation("VALIDATION_ERROR", "recruitment_start must be YYYY-MM-DD")
		}
		campaign.RecruitmentStart = validation.StartOfDay(start)
	}
	if patch.RecruitmentEnd != nil {
		end, ok := validation.ParseDate(*patch.RecruitmentEnd)
		if !ok {
			return nil, apperr.Validation("VALIDATION_ERROR", "recruitment_end must be YYYY-MM-DD")
		}
		campaign.RecruitmentEnd = validation.EndOfDay(end)
	}
	if patch.RecruitmentStart != nil || patch.RecruitmentEnd != nil {
		if !validation.IsDateRangeValid(campaign.RecruitmentStart, campaign.RecruitmentEnd) {
			return nil, apperr.Validation("INVALID_DATE_RANGE", "recruitment_start must be before recruitment_end")
		}
	}

	if err := s.campaigns.Update(ctx, campaign); err != nil {
		s.log.Error("campaign update failed", zap.Error(err))
		return nil, apperr.Internal("failed to update campaign")
	}
	return campaign, nil
}

// UpdateStatus moves the campaign along its lifecycle.
func (s *CampaignService) UpdateStatus(ctx context.Context, userID, id uuid.UUID, newStatus string) (*models.Campaign, error) {
	campaign, err := s.getOwned(ctx, userID, id, true)
	if err != nil {
		return nil, err
	}

	if !models.IsValidCampaignTransition(campaign.Status, newStatus) {
		return nil, apperr.Validation("INVALID_STATUS_TRANSITION", "cannot move from "+campaign.Status+" to "+newStatus)
	}

	oldStatus := campaign.Status
	if err := s.campaigns.UpdateStatus(ctx, id, newStatus); err != nil {
		s.log.Error("campaign status update failed", zap.Error(err))
		return nil, apperr.Internal("failed to update status")
	}
	campaign.Status = newStatus

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "campaign_status_" + oldStatus + "_to_" + newStatus,
		EntityType:  "campaign",
		EntityID:    &campaign.ID,
		Meta:        map[string]any{"old_status": oldStatus, "new_status": newStatus},
	})

	_ = s.publisher.Publish(ctx, events.StreamCampaigns, events.Event{
		Type: events.EventCampaignStatusChanged,
		Payload: map[string]any{
			"campaign_id": campaign.ID.String(),
			"old_status":  oldStatus,
			"new_status":  newStatus,
		},
	})

	return campaign, nil
}

// SelectApplicants finalizes a closed campaign: the chosen applications win,
// the rest are rejected, the campaign completes. The whole outcome is one
// transaction in the store.
func (s *CampaignService) SelectApplicants(ctx context.Context, userID, id uuid.UUID, selectedIDs []uuid.UUID) error {
	campaign, err := s.getOwned(ctx, userID, id, true)
	if err != nil {
		return err
	}

	if campaign.Status != models.CampaignStatusClosed {
		return apperr.Validation("INVALID_STATUS_TRANSITION", "selection requires a closed campaign")
	}
	if len(selectedIDs) < 1 || len(selectedIDs) > campaign.MaxParticipants {
		return apperr.Validation("SELECTION_COUNT_MISMATCH", "selected count must be between 1 and max participants")
	}
	seen := make(map[uuid.UUID]bool, len(selectedIDs))
	for _, sid := range selectedIDs {
		if seen[sid] {
			return apperr.Validation("SELECTION_COUNT_MISMATCH", "duplicate application id in selection")
		}
		seen[sid] = true
	}

	if err := s.applications.SelectWinners(ctx, id, selectedIDs); err != nil {
		if err == repositories.ErrSelectionMismatch {
			return apperr.Validation("SELECTION_COUNT_MISMATCH", "selection contains unknown application ids")
		}
		s.log.Error("selection failed", zap.Error(err))
		return apperr.Internal("failed to apply selection")
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "campaign_selection_completed",
		EntityType:  "campaign",
		EntityID:    &campaign.ID,
		Meta:        map[string]any{"selected": len(selectedIDs)},
	})

	_ = s.publisher.Publish(ctx, events.StreamCampaigns, events.Event{
		Type: events.EventSelectionCompleted,
		Payload: map[string]any{
			"campaign_id": campaign.ID.String(),
			"selected":    len(selectedIDs),
		},
	})

	return nil
}
