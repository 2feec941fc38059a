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

// MinAge is the youngest an influencer may be at submission time.
const MinAge = 14

type ChannelInput struct {
	Platform string
	Name     string
	URL      string
}

type InfluencerProfileInput struct {
	BirthDate string
	Status    string
	Channels  []ChannelInput
}

// InfluencerProfileView is the profile together with its channels.
type InfluencerProfileView struct {
	models.InfluencerProfile
	Channels []models.Channel `json:"channels"`
}

type InfluencerService struct {
	influencers InfluencerStore
	auditRepo   AuditStore
	publisher   events.Publisher
	clock       clockwork.Clock
	log         *zap.Logger
}

func NewInfluencerService(influencers InfluencerStore, auditRepo AuditStore, publisher events.Publisher, clock clockwork.Clock, log *zap.Logger) *InfluencerService {
	return &InfluencerService{
		influencers: influencers,
		auditRepo:   auditRepo,
		publisher:   publisher,
		clock:       clock,
		log:         log,
	}
}

// SubmitProfile upserts the profile and appends the submitted channels, all
// starting at pending verification.
func (s *InfluencerService) SubmitProfile(ctx context.Context, userID uuid.UUID, in InfluencerProfileInput) (*InfluencerProfileView, error) {
	birth, ok := validation.ParseDate(in.BirthDate)
	if !ok {
		return nil, apperr.Validation("VALIDATION_ERROR", "birth_date must be YYYY-MM-DD")
	}
	if validation.Age(birth, s.clock.Now()) < MinAge {
		return nil, apperr.Validation("AGE_RESTRICTION", "influencers must be at least 14 years old")
	}

	status := in.Status
	if status == "" {
		status = models.ProfileStatusDraft
	}
	if !models.IsValidProfileStatus(status) {
		return nil, apperr.Validation("VALIDATION_ERROR", "status must be draft or submitted")
	}

	existing, err := s.influencers.ListChannelsByUserID(ctx, userID)
	if err != nil {
		s.log.Error("list channels failed", zap.Error(err))
		return nil, apperr.Internal("failed to load channels")
	}
	seen := make(map[string]bool, len(existing))
	for _, c := range existing {
		seen[c.URL] = true
	}

	for _, ch := range in.Channels {
		if !models.IsValidPlatform(ch.Platform) {
			return nil, apperr.Validation("VALIDATION_ERROR", "unknown platform "+ch.Platform)
		}
		if !validation.IsChannelURLValid(ch.Platform, ch.URL) {
			return nil, apperr.Validation("INVALID_CHANNEL_URL", "url does not match the "+ch.Platform+" pattern").
				WithDetails(map[string]string{"url": ch.URL})
		}
		if seen[ch.URL] {
			return nil, apperr.Conflict("DUPLICATE_CHANNEL", "channel url already registered")
		}
		seen[ch.URL] = true
	}

	profile := &models.InfluencerProfile{
		UserID:    userID,
		BirthDate: birth,
		Status:    status,
	}
	if err := s.influencers.UpsertProfile(ctx, profile); err != nil {
		s.log.Error("influencer profile upsert failed", zap.Error(err))
		return nil, apperr.Internal("failed to save influencer profile")
	}

	for _, ch := range in.Channels {
		channel := &models.Channel{
			UserID:   userID,
			Platform: ch.Platform,
			Name:     ch.Name,
			URL:      ch.URL,
			Status:   models.VerificationPending,
		}
		if err := s.influencers.CreateChannel(ctx, channel); err != nil {
			if repositories.IsUniqueViolation(err, repositories.ConstraintChannelURL) {
				return nil, apperr.Conflict("DUPLICATE_CHANNEL", "channel url already registered")
			}
			s.log.Error("channel insert failed", zap.Error(err))
			return nil, apperr.Internal("failed to save channel")
		}

		_ = s.publisher.Publish(ctx, events.StreamVerification, events.Event{
			Type: events.EventChannelSubmitted,
			Payload: map[string]any{
				"channel_id": channel.ID.String(),
				"platform":   channel.Platform,
				"url":        channel.URL,
			},
		})
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "influencer_profile_submitted",
		EntityType:  "influencer_profile",
		EntityID:    &profile.ID,
		Meta:        map[string]any{"status": status, "channels_added": len(in.Channels)},
	})

	return s.GetProfile(ctx, userID)
}

func (s *InfluencerService) GetProfile(ctx context.Context, userID uuid.UUID) (*InfluencerProfileView, error) {
	profile, err := s.influencers.GetProfileByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperr.NotFound("PROFILE_NOT_FOUND", "influencer profile not found")
		}
		return nil, apperr.Internal("failed to load influencer profile")
	}

	channels, err := s.influencers.ListChannelsByUserID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("failed to load channels")
	}

	return &InfluencerProfileView{InfluencerProfile: *profile, Channels: channels}, nil
}

// UpdateChannel edits name/url of an owned channel. The platform is fixed at
// creation; any edit resets verification to pending.
func (s *InfluencerService) UpdateChannel(ctx context.Context, userID, channelID uuid.UUID, name, url string) (*models.Channel, error) {
	channel, err := s.influencers.GetChannelByID(ctx, channelID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperr.NotFound("CHANNEL_NOT_FOUND", "channel not found")
		}
		return nil, apperr.Internal("failed to load channel")
	}
	if channel.UserID != userID {
		// Existence is not leaked to non-owners.
		return nil, apperr.NotFound("CHANNEL_NOT_FOUND", "channel not found")
	}

	if !validation.IsChannelURLValid(channel.Platform, url) {
		return nil, apperr.Validation("INVALID_CHANNEL_URL", "url does not match the "+channel.Platform+" pattern").
			WithDetails(map[string]string{"url": url})
	}

	taken, err := s.influencers.ChannelURLTakenByOwner(ctx, userID, url, &channelID)
	if err != nil {
		return nil, apperr.Internal("failed to check channel url")
	}
	if taken {
		return nil, apperr.Conflict("DUPLICATE_CHANNEL", "channel url already registered")
	}

	channel.Name = name
	channel.URL = url
	channel.Status = models.VerificationPending
	if err := s.influencers.UpdateChannel(ctx, channel); err != nil {
		if repositories.IsUniqueViolation(err, repositories.ConstraintChannelURL) {
			return nil, apperr.Conflict("DUPLICATE_CHANNEL", "channel url already registered")
		}
		s.log.Error("channel update failed", zap.Error(err))
		return nil, apperr.Internal("failed to update channel")
	}

	_ = s.publisher.Publish(ctx, events.StreamVerification, events.Event{
		Type: events.EventChannelSubmitted,
		Payload: map[string]any{
			"channel_id": channel.ID.String(),
			"platform":   channel.Platform,
			"url":        channel.URL,
		},
	})

	return channel, nil
}

// DeleteChannel removes an owned channel but never the last one.
func (s *InfluencerService) DeleteChannel(ctx context.Context, userID, channelID uuid.UUID) error {
	channel, err := s.influencers.GetChannelByID(ctx, channelID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return apperr.NotFound("CHANNEL_NOT_FOUND", "channel not found")
		}
		return apperr.Internal("failed to load channel")
	}
	if channel.UserID != userID {
		return apperr.NotFound("CHANNEL_NOT_FOUND", "channel not found")
	}

	count, err := s.influencers.CountChannelsByUserID(ctx, userID)
	if err != nil {
		return apperr.Internal("failed to count channels")
	}
	if count <= 1 {
		return apperr.Validation("MIN_CHANNEL_REQUIRED", "at least one channel must remain")
	}

	if err := s.influencers.DeleteChannel(ctx, channelID); err != nil {
		s.log.Error("channel delete failed", zap.Error(err))
		return apperr.Internal("failed to delete channel")
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "channel_deleted",
		EntityType:  "channel",
		EntityID:    &channelID,
		Meta:        map[string]any{"url": channel.URL},
	})

	return nil
}

// UpdateChannelVerification is the admin decision on a submitted channel.
func (s *InfluencerService) UpdateChannelVerification(ctx context.Context, channelID uuid.UUID, status string) error {
	if !models.IsValidVerificationStatus(status) {
		return apperr.Validation("VALIDATION_ERROR", "status must be pending, verified or failed")
	}

	found, err := s.influencers.UpdateChannelVerification(ctx, channelID, status)
	if err != nil {
		s.log.Error("channel verification update failed", zap.Error(err))
		return apperr.Internal("failed to update verification")
	}
	if !found {
		return apperr.NotFound("CHANNEL_NOT_FOUND", "channel not found")
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorType:  "admin",
		Action:     "channel_verification_" + status,
		EntityType: "channel",
		EntityID:   &channelID,
		Meta:       map[string]any{"status": status},
	})

	_ = s.publisher.Publish(ctx, events.StreamVerification, events.Event{
		Type: events.EventVerificationUpdated,
		Payload: map[string]any{
			"entity":     "channel",
			"channel_id": channelID.String(),
			"status":     status,
		},
	})

	return nil
}
