package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campmatch/backend/internal/events"
	"github.com/campmatch/backend/internal/models"
)

type applicationFixture struct {
	svc          *ApplicationService
	campaigns    *fakeCampaigns
	influencers  *fakeInfluencers
	applications *fakeApplications
	publisher    *fakePublisher
	campaignID   uuid.UUID
}

// newApplicationFixture seeds one recruiting campaign with room for two
// participants, open around the pinned clock.
func newApplicationFixture(t *testing.T) *applicationFixture {
	t.Helper()
	campaigns := newFakeCampaigns()
	influencers := newFakeInfluencers()
	applications := newFakeApplications(campaigns)
	publisher := &fakePublisher{}
	clock := clockwork.NewFakeClockAt(testNow)

	svc := NewApplicationService(applications, campaigns, influencers, &fakeAudit{}, publisher, clock, zap.NewNop())

	campaign := &models.Campaign{
		AdvertiserID:     uuid.New(),
		Title:            "Summer tasting",
		RecruitmentStart: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		RecruitmentEnd:   time.Date(2025, 6, 20, 23, 59, 59, 0, time.UTC),
		MaxParticipants:  2,
		Status:           models.CampaignStatusRecruiting,
	}
	require.NoError(t, campaigns.Create(context.Background(), campaign))

	return &applicationFixture{
		svc:          svc,
		campaigns:    campaigns,
		influencers:  influencers,
		applications: applications,
		publisher:    publisher,
		campaignID:   campaign.ID,
	}
}

// eligibleInfluencer has a submitted profile and a verified channel.
func (f *applicationFixture) eligibleInfluencer(t *testing.T) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	userID := uuid.New()
	require.NoError(t, f.influencers.UpsertProfile(ctx, &models.InfluencerProfile{
		UserID:    userID,
		BirthDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:    models.ProfileStatusSubmitted,
	}))
	require.NoError(t, f.influencers.CreateChannel(ctx, &models.Channel{
		UserID:   userID,
		Platform: models.PlatformInstagram,
		Name:     "feed",
		URL:      "https://www.instagram.com/u" + userID.String()[:8],
		Status:   models.VerificationVerified,
	}))
	return userID
}

func (f *applicationFixture) input() ApplicationInput {
	return ApplicationInput{
		CampaignID: f.campaignID,
		Message:    "would love to visit",
		VisitDate:  "2025-06-25",
	}
}

func TestApply(t *testing.T) {
	f := newApplicationFixture(t)
	userID := f.eligibleInfluencer(t)

	app, err := f.svc.Apply(context.Background(), userID, f.input())
	require.NoError(t, err)
	require.Equal(t, models.ApplicationStatusPending, app.Status)
	require.Equal(t, f.campaignID, app.CampaignID)
	require.Len(t, f.publisher.byType(events.EventApplicationSubmitted), 1)
}

func TestApplyRequiresProfile(t *testing.T) {
	f := newApplicationFixture(t)
	_, err := f.svc.Apply(context.Background(), uuid.New(), f.input())
	requireCode(t, err, "INFLUENCER_PROFILE_NOT_FOUND")
}

func TestApplyRequiresSubmittedProfile(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	require.NoError(t, f.influencers.UpsertProfile(ctx, &models.InfluencerProfile{
		UserID:    userID,
		BirthDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:    models.ProfileStatusDraft,
	}))

	_, err := f.svc.Apply(ctx, userID, f.input())
	requireCode(t, err, "INFLUENCER_NOT_VERIFIED")
}

func TestApplyRequiresVerifiedChannel(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()
	userID := uuid.New()
	require.NoError(t, f.influencers.UpsertProfile(ctx, &models.InfluencerProfile{
		UserID:    userID,
		BirthDate: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:    models.ProfileStatusSubmitted,
	}))
	// A pending channel does not count.
	require.NoError(t, f.influencers.CreateChannel(ctx, &models.Channel{
		UserID:   userID,
		Platform: models.PlatformInstagram,
		URL:      "https://www.instagram.com/pending",
		Status:   models.VerificationPending,
	}))

	_, err := f.svc.Apply(ctx, userID, f.input())
	requireCode(t, err, "NO_VERIFIED_CHANNELS")
}

func TestApplyUnknownCampaign(t *testing.T) {
	f := newApplicationFixture(t)
	userID := f.eligibleInfluencer(t)

	in := f.input()
	in.CampaignID = uuid.New()
	_, err := f.svc.Apply(context.Background(), userID, in)
	requireCode(t, err, "CAMPAIGN_NOT_FOUND")
}

func TestApplyClosedCampaign(t *testing.T) {
	f := newApplicationFixture(t)
	userID := f.eligibleInfluencer(t)
	ctx := context.Background()

	require.NoError(t, f.campaigns.UpdateStatus(ctx, f.campaignID, models.CampaignStatusClosed))
	_, err := f.svc.Apply(ctx, userID, f.input())
	requireCode(t, err, "CAMPAIGN_NOT_RECRUITING")
}

func TestApplyOutsideWindow(t *testing.T) {
	f := newApplicationFixture(t)
	userID := f.eligibleInfluencer(t)
	ctx := context.Background()

	campaign, err := f.campaigns.GetByID(ctx, f.campaignID)
	require.NoError(t, err)
	campaign.RecruitmentStart = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	campaign.RecruitmentEnd = time.Date(2025, 5, 10, 23, 59, 59, 0, time.UTC)
	require.NoError(t, f.campaigns.Update(ctx, campaign))

	_, err = f.svc.Apply(ctx, userID, f.input())
	requireCode(t, err, "RECRUITMENT_PERIOD_ENDED")
}

func TestApplyVisitDateRules(t *testing.T) {
	f := newApplicationFixture(t)
	userID := f.eligibleInfluencer(t)
	ctx := context.Background()

	// Inside the recruitment window.
	in := f.input()
	in.VisitDate = "2025-06-18"
	_, err := f.svc.Apply(ctx, userID, in)
	requireCode(t, err, "INVALID_VISIT_DATE")

	// The last recruitment day itself is not after the window.
	in.VisitDate = "2025-06-20"
	_, err = f.svc.Apply(ctx, userID, in)
	requireCode(t, err, "INVALID_VISIT_DATE")

	// Malformed.
	in.VisitDate = "25-06-2025"
	_, err = f.svc.Apply(ctx, userID, in)
	requireCode(t, err, "INVALID_VISIT_DATE")

	// First day after the window is accepted.
	in.VisitDate = "2025-06-21"
	_, err = f.svc.Apply(ctx, userID, in)
	require.NoError(t, err)
}

func TestApplyDuplicate(t *testing.T) {
	f := newApplicationFixture(t)
	userID := f.eligibleInfluencer(t)
	ctx := context.Background()

	_, err := f.svc.Apply(ctx, userID, f.input())
	require.NoError(t, err)

	_, err = f.svc.Apply(ctx, userID, f.input())
	requireCode(t, err, "DUPLICATE_APPLICATION")
}

func TestApplyCapacity(t *testing.T) {
	f := newApplicationFixture(t)
	ctx := context.Background()

	// Fill both slots.
	_, err := f.svc.Apply(ctx, f.eligibleInfluencer(t), f.input())
	require.NoError(t, err)
	_, err = f.svc.Apply(ctx, f.eligibleInfluencer(t), f.input())
	require.NoError(t, err)

	// N+1 is turned away.
	_, err = f.svc.Apply(ctx, f.eligibleInfluencer(t), f.input())
	requireCode(t, err, "MAX_PARTICIPANTS_REACHED")
}

func TestMyApplications(t *testing.T) {
	f := newApplicationFixture(t)
	userID := f.eligibleInfluencer(t)
	ctx := context.Background()

	_, err := f.svc.Apply(ctx, userID, f.input())
	require.NoError(t, err)

	apps, total, err := f.svc.MyApplications(ctx, userID, "", 1, 20)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, apps, 1)
	require.Equal(t, "Summer tasting", apps[0].CampaignTitle)

	// Status filter.
	_, total, err = f.svc.MyApplications(ctx, userID, models.ApplicationStatusSelected, 1, 20)
	require.NoError(t, err)
	require.Equal(t, 0, total)

	_, _, err = f.svc.MyApplications(ctx, userID, "bogus", 1, 20)
	requireCode(t, err, "VALIDATION_ERROR")
}
