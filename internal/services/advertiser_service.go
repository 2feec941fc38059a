package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campmatch/backend/internal/apperr"
	"github.com/campmatch/backend/internal/events"
	"github.com/campmatch/backend/internal/models"
	"github.com/campmatch/backend/internal/repositories"
	"github.com/campmatch/backend/internal/validation"
)

type AdvertiserService struct {
	advertisers AdvertiserStore
	auditRepo   AuditStore
	publisher   events.Publisher
	log         *zap.Logger
}

func NewAdvertiserService(advertisers AdvertiserStore, auditRepo AuditStore, publisher events.Publisher, log *zap.Logger) *AdvertiserService {
	return &AdvertiserService{
		advertisers: advertisers,
		auditRepo:   auditRepo,
		publisher:   publisher,
		log:         log,
	}
}

// SubmitProfile creates or replaces the principal's advertiser profile.
// Every submission goes back to pending verification.
func (s *AdvertiserService) SubmitProfile(ctx context.Context, userID uuid.UUID, companyName, location, category, businessNumber string) (*models.AdvertiserProfile, error) {
	if !validation.IsValidBusinessNumber(businessNumber) {
		return nil, apperr.Validation("INVALID_BUSINESS_NUMBER", "business number must match 000-00-00000")
	}

	taken, err := s.advertisers.BusinessNumberTakenByOther(ctx, businessNumber, userID)
	if err != nil {
		s.log.Error("business number lookup failed", zap.Error(err))
		return nil, apperr.Internal("failed to check business number")
	}
	if taken {
		return nil, apperr.Conflict("DUPLICATE_BUSINESS_NUMBER", "business number is already registered")
	}

	profile := &models.AdvertiserProfile{
		UserID:             userID,
		CompanyName:        companyName,
		Location:           location,
		Category:           category,
		BusinessNumber:     businessNumber,
		VerificationStatus: models.VerificationPending,
	}
	if err := s.advertisers.Upsert(ctx, profile); err != nil {
		// Race with a concurrent registration of the same number.
		if repositories.IsUniqueViolation(err, repositories.ConstraintBusinessNumber) {
			return nil, apperr.Conflict("DUPLICATE_BUSINESS_NUMBER", "business number is already registered")
		}
		s.log.Error("advertiser profile upsert failed", zap.Error(err))
		return nil, apperr.Internal("failed to save advertiser profile")
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &userID,
		ActorType:   "user",
		Action:      "advertiser_profile_submitted",
		EntityType:  "advertiser_profile",
		EntityID:    &profile.ID,
		Meta:        map[string]any{"business_number": businessNumber},
	})

	return profile, nil
}

func (s *AdvertiserService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.AdvertiserProfile, error) {
	profile, err := s.advertisers.GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperr.NotFound("ADVERTISER_PROFILE_NOT_FOUND", "advertiser profile not found")
		}
		return nil, apperr.Internal("failed to load advertiser profile")
	}
	return profile, nil
}

// UpdateVerification is the admin decision on a submitted profile.
func (s *AdvertiserService) UpdateVerification(ctx context.Context, userID uuid.UUID, status string) error {
	if !models.IsValidVerificationStatus(status) {
		return apperr.Validation("VALIDATION_ERROR", "status must be pending, verified or failed")
	}

	found, err := s.advertisers.UpdateVerification(ctx, userID, status)
	if err != nil {
		s.log.Error("advertiser verification update failed", zap.Error(err))
		return apperr.Internal("failed to update verification")
	}
	if !found {
		return apperr.NotFound("ADVERTISER_PROFILE_NOT_FOUND", "advertiser profile not found")
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: nil,
		ActorType:   "admin",
		Action:      "advertiser_verification_" + status,
		EntityType:  "advertiser_profile",
		EntityID:    nil,
		Meta:        map[string]any{"user_id": userID.String(), "status": status},
	})

	_ = s.publisher.Publish(ctx, events.StreamVerification, events.Event{
		Type: events.EventVerificationUpdated,
		Payload: map[string]any{
			"entity":  "advertiser_profile",
			"user_id": userID.String(),
			"status":  status,
		},
	})

	return nil
}
