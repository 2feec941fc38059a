package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/campmatch/backend/internal/apperr"
	"github.com/campmatch/backend/internal/auth"
	"github.com/campmatch/backend/internal/models"
	"github.com/campmatch/backend/internal/repositories"
	"github.com/campmatch/backend/internal/validation"
)

type AuthService struct {
	profiles      ProfileStore
	auditRepo     AuditStore
	jwtSecret     string
	jwtExpiration time.Duration
	clock         clockwork.Clock
	log           *zap.Logger
}

func NewAuthService(profiles ProfileStore, auditRepo AuditStore, jwtSecret string, jwtExpiration time.Duration, clock clockwork.Clock, log *zap.Logger) *AuthService {
	return &AuthService{
		profiles:      profiles,
		auditRepo:     auditRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		clock:         clock,
		log:           log,
	}
}

func (s *AuthService) Signup(ctx context.Context, name, phone, email, password, role string) (*models.Profile, string, error) {
	if !validation.IsValidPhone(phone) {
		return nil, "", apperr.Validation("VALIDATION_ERROR", "phone must match 010-0000-0000")
	}
	if len(password) < auth.MinPasswordLength {
		return nil, "", apperr.Validation("VALIDATION_ERROR", "password too short")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", apperr.Internal("failed to hash password")
	}

	profile := &models.Profile{
		Name:          name,
		Phone:         phone,
		Email:         email,
		PasswordHash:  hash,
		Role:          role,
		TermsAgreedAt: s.clock.Now(),
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		if repositories.IsUniqueViolation(err, repositories.ConstraintProfileEmail) {
			return nil, "", apperr.Conflict("EMAIL_ALREADY_EXISTS", "an account with this email already exists")
		}
		s.log.Error("create profile failed", zap.Error(err))
		return nil, "", apperr.Internal("failed to create account")
	}

	token, err := auth.GenerateJWT(s.jwtSecret, profile.ID, profile.Role, s.jwtExpiration)
	if err != nil {
		return nil, "", apperr.Internal("failed to issue token")
	}

	_ = s.auditRepo.Log(ctx, models.AuditLog{
		ActorUserID: &profile.ID,
		ActorType:   "user",
		Action:      "signup",
		EntityType:  "profile",
		EntityID:    &profile.ID,
		Meta:        map[string]any{"role": profile.Role},
	})

	return profile, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.Profile, string, error) {
	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, "", apperr.Unauthorized("INVALID_CREDENTIALS", "invalid email or password")
		}
		s.log.Error("get profile by email failed", zap.Error(err))
		return nil, "", apperr.Internal("login failed")
	}

	if !auth.CheckPassword(profile.PasswordHash, password) {
		return nil, "", apperr.Unauthorized("INVALID_CREDENTIALS", "invalid email or password")
	}

	token, err := auth.GenerateJWT(s.jwtSecret, profile.ID, profile.Role, s.jwtExpiration)
	if err != nil {
		return nil, "", apperr.Internal("failed to issue token")
	}

	return profile, token, nil
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, apperr.NotFound("PROFILE_NOT_FOUND", "profile not found")
		}
		return nil, apperr.Internal("failed to load profile")
	}
	return profile, nil
}
