package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campmatch/backend/internal/apperr"
	"github.com/campmatch/backend/internal/events"
	"github.com/campmatch/backend/internal/models"
)

// All temporal assertions pin the clock to this day.
var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type campaignFixture struct {
	svc          *CampaignService
	campaigns    *fakeCampaigns
	advertisers  *fakeAdvertisers
	influencers  *fakeInfluencers
	applications *fakeApplications
	publisher    *fakePublisher
	clock        *clockwork.FakeClock
}

func newCampaignFixture(t *testing.T) *campaignFixture {
	t.Helper()
	campaigns := newFakeCampaigns()
	advertisers := newFakeAdvertisers()
	influencers := newFakeInfluencers()
	applications := newFakeApplications(campaigns)
	publisher := &fakePublisher{}
	clock := clockwork.NewFakeClockAt(testNow)

	svc := NewCampaignService(campaigns, advertisers, influencers, applications, &fakeAudit{}, publisher, clock, zap.NewNop())
	return &campaignFixture{
		svc:          svc,
		campaigns:    campaigns,
		advertisers:  advertisers,
		influencers:  influencers,
		applications: applications,
		publisher:    publisher,
		clock:        clock,
	}
}

func (f *campaignFixture) verifiedAdvertiser(t *testing.T) uuid.UUID {
	t.Helper()
	userID := uuid.New()
	err := f.advertisers.Upsert(context.Background(), &models.AdvertiserProfile{
		UserID:             userID,
		CompanyName:        "Han River Cafe",
		Location:           "Seoul Mapo-gu",
		Category:           "cafe",
		BusinessNumber:     "123-45-67890",
		VerificationStatus: models.VerificationVerified,
	})
	require.NoError(t, err)
	return userID
}

func validInput() CampaignInput {
	return CampaignInput{
		Title:            "Summer tasting",
		RecruitmentStart: "2025-06-10",
		RecruitmentEnd:   "2025-06-20",
		MaxParticipants:  3,
		Benefits:         "Free menu for two",
		StoreInfo:        "Near exit 4",
		Mission:          "Post a review with photos",
	}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	ae := apperr.From(err)
	require.Equal(t, code, ae.Code)
}

func TestCreateCampaign(t *testing.T) {
	f := newCampaignFixture(t)
	userID := f.verifiedAdvertiser(t)

	campaign, err := f.svc.CreateCampaign(context.Background(), userID, validInput())
	require.NoError(t, err)
	require.Equal(t, models.CampaignStatusRecruiting, campaign.Status)
	require.Equal(t, time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), campaign.RecruitmentStart)
	require.Equal(t, time.Date(2025, 6, 20, 23, 59, 59, 0, time.UTC), campaign.RecruitmentEnd)
}

func TestCreateCampaignRequiresProfile(t *testing.T) {
	f := newCampaignFixture(t)
	_, err := f.svc.CreateCampaign(context.Background(), uuid.New(), validInput())
	requireCode(t, err, "ADVERTISER_PROFILE_NOT_FOUND")
}

func TestCreateCampaignRequiresVerification(t *testing.T) {
	f := newCampaignFixture(t)
	userID := uuid.New()
	require.NoError(t, f.advertisers.Upsert(context.Background(), &models.AdvertiserProfile{
		UserID:             userID,
		BusinessNumber:     "123-45-67890",
		VerificationStatus: models.VerificationPending,
	}))

	_, err := f.svc.CreateCampaign(context.Background(), userID, validInput())
	requireCode(t, err, "ADVERTISER_NOT_VERIFIED")
}

func TestCreateCampaignRejectsInvertedDates(t *testing.T) {
	f := newCampaignFixture(t)
	userID := f.verifiedAdvertiser(t)

	in := validInput()
	in.RecruitmentStart = "2025-06-20"
	in.RecruitmentEnd = "2025-06-10"
	_, err := f.svc.CreateCampaign(context.Background(), userID, in)
	requireCode(t, err, "INVALID_DATE_RANGE")

	// Equal days are rejected too.
	in.RecruitmentStart = "2025-06-20"
	in.RecruitmentEnd = "2025-06-20"
	_, err = f.svc.CreateCampaign(context.Background(), userID, in)
	requireCode(t, err, "INVALID_DATE_RANGE")
}

func TestCreateCampaignRejectsPastEnd(t *testing.T) {
	f := newCampaignFixture(t)
	userID := f.verifiedAdvertiser(t)

	in := validInput()
	in.RecruitmentStart = "2025-05-01"
	in.RecruitmentEnd = "2025-06-14"
	_, err := f.svc.CreateCampaign(context.Background(), userID, in)
	requireCode(t, err, "INVALID_RECRUITMENT_PERIOD")

	// Ending today is still fine.
	in.RecruitmentEnd = "2025-06-15"
	_, err = f.svc.CreateCampaign(context.Background(), userID, in)
	require.NoError(t, err)
}

func TestUpdateStatusTransitions(t *testing.T) {
	f := newCampaignFixture(t)
	userID := f.verifiedAdvertiser(t)
	ctx := context.Background()

	campaign, err := f.svc.CreateCampaign(ctx, userID, validInput())
	require.NoError(t, err)

	// recruiting cannot jump to completed
	_, err = f.svc.UpdateStatus(ctx, userID, campaign.ID, models.CampaignStatusCompleted)
	requireCode(t, err, "INVALID_STATUS_TRANSITION")

	updated, err := f.svc.UpdateStatus(ctx, userID, campaign.ID, models.CampaignStatusClosed)
	require.NoError(t, err)
	require.Equal(t, models.CampaignStatusClosed, updated.Status)

	// closed cannot reopen
	_, err = f.svc.UpdateStatus(ctx, userID, campaign.ID, models.CampaignStatusRecruiting)
	requireCode(t, err, "INVALID_STATUS_TRANSITION")

	require.Len(t, f.publisher.byType(events.EventCampaignStatusChanged), 1)
}

func TestUpdateStatusHidesOthersCampaigns(t *testing.T) {
	f := newCampaignFixture(t)
	owner := f.verifiedAdvertiser(t)
	ctx := context.Background()

	campaign, err := f.svc.CreateCampaign(ctx, owner, validInput())
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, uuid.New(), campaign.ID, models.CampaignStatusClosed)
	requireCode(t, err, "CAMPAIGN_NOT_FOUND")
}

func TestManageCampaignOwnership(t *testing.T) {
	f := newCampaignFixture(t)
	owner := f.verifiedAdvertiser(t)
	ctx := context.Background()

	campaign, err := f.svc.CreateCampaign(ctx, owner, validInput())
	require.NoError(t, err)

	_, err = f.svc.ManageCampaign(ctx, uuid.New(), campaign.ID)
	requireCode(t, err, "CAMPAIGN_UNAUTHORIZED_ACCESS")

	_, err = f.svc.ManageCampaign(ctx, owner, uuid.New())
	requireCode(t, err, "CAMPAIGN_NOT_FOUND")

	view, err := f.svc.ManageCampaign(ctx, owner, campaign.ID)
	require.NoError(t, err)
	require.Empty(t, view.Applicants)
}

// submittedInfluencer seeds an influencer with one verified channel and an
// application to the campaign.
func (f *campaignFixture) applicant(t *testing.T, campaignID uuid.UUID) uuid.UUID {
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
		URL:      "https://www.instagram.com/" + userID.String()[:8],
		Status:   models.VerificationVerified,
	}))
	require.NoError(t, f.applications.CreateWithCapacityCheck(ctx, &models.Application{
		CampaignID: campaignID,
		UserID:     userID,
		Message:    "would love to visit",
		VisitDate:  time.Date(2025, 6, 25, 0, 0, 0, 0, time.UTC),
		Status:     models.ApplicationStatusPending,
	}))
	return userID
}

func TestSelectApplicants(t *testing.T) {
	f := newCampaignFixture(t)
	owner := f.verifiedAdvertiser(t)
	ctx := context.Background()

	campaign, err := f.svc.CreateCampaign(ctx, owner, validInput())
	require.NoError(t, err)

	f.applicant(t, campaign.ID)
	f.applicant(t, campaign.ID)
	f.applicant(t, campaign.ID)

	applicants, err := f.applications.ListApplicants(ctx, campaign.ID)
	require.NoError(t, err)
	require.Len(t, applicants, 3)

	// Selection requires a closed campaign.
	err = f.svc.SelectApplicants(ctx, owner, campaign.ID, []uuid.UUID{applicants[0].ID})
	requireCode(t, err, "INVALID_STATUS_TRANSITION")

	_, err = f.svc.UpdateStatus(ctx, owner, campaign.ID, models.CampaignStatusClosed)
	require.NoError(t, err)

	// Too many ids.
	tooMany := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	err = f.svc.SelectApplicants(ctx, owner, campaign.ID, tooMany)
	requireCode(t, err, "SELECTION_COUNT_MISMATCH")

	// Unknown application id.
	err = f.svc.SelectApplicants(ctx, owner, campaign.ID, []uuid.UUID{uuid.New()})
	requireCode(t, err, "SELECTION_COUNT_MISMATCH")

	// Happy path: two selected, one rejected, campaign completed.
	err = f.svc.SelectApplicants(ctx, owner, campaign.ID, []uuid.UUID{applicants[0].ID, applicants[1].ID})
	require.NoError(t, err)

	final, err := f.campaigns.GetByID(ctx, campaign.ID)
	require.NoError(t, err)
	require.Equal(t, models.CampaignStatusCompleted, final.Status)

	roster, err := f.applications.ListApplicants(ctx, campaign.ID)
	require.NoError(t, err)
	statuses := map[uuid.UUID]string{}
	for _, a := range roster {
		statuses[a.ID] = a.Status
	}
	require.Equal(t, models.ApplicationStatusSelected, statuses[applicants[0].ID])
	require.Equal(t, models.ApplicationStatusSelected, statuses[applicants[1].ID])
	require.Equal(t, models.ApplicationStatusRejected, statuses[applicants[2].ID])

	// Completed is terminal: a retry fails on status, not on data corruption.
	err = f.svc.SelectApplicants(ctx, owner, campaign.ID, []uuid.UUID{applicants[0].ID})
	requireCode(t, err, "INVALID_STATUS_TRANSITION")

	require.Len(t, f.publisher.byType(events.EventSelectionCompleted), 1)
}

func TestGetCampaignViewerFields(t *testing.T) {
	f := newCampaignFixture(t)
	owner := f.verifiedAdvertiser(t)
	ctx := context.Background()

	campaign, err := f.svc.CreateCampaign(ctx, owner, validInput())
	require.NoError(t, err)

	// Anonymous view carries no viewer fields.
	detail, err := f.svc.GetCampaign(ctx, campaign.ID, nil)
	require.NoError(t, err)
	require.Nil(t, detail.CanApply)
	require.Nil(t, detail.HasApplied)

	applicantID := f.applicant(t, campaign.ID)

	detail, err = f.svc.GetCampaign(ctx, campaign.ID, &applicantID)
	require.NoError(t, err)
	require.NotNil(t, detail.HasApplied)
	require.True(t, *detail.HasApplied)
	require.NotNil(t, detail.CanApply)
	require.False(t, *detail.CanApply)
	require.Equal(t, models.ApplicationStatusPending, *detail.ApplicationStatus)
	require.Equal(t, 1, detail.ApplicantCount)
}

func TestListCampaignsDefaultsToRecruiting(t *testing.T) {
	f := newCampaignFixture(t)
	owner := f.verifiedAdvertiser(t)
	ctx := context.Background()

	first, err := f.svc.CreateCampaign(ctx, owner, validInput())
	require.NoError(t, err)
	second, err := f.svc.CreateCampaign(ctx, owner, validInput())
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, owner, second.ID, models.CampaignStatusClosed)
	require.NoError(t, err)

	items, total, err := f.svc.ListCampaigns(ctx, ListCampaignsParams{})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, items, 1)
	require.Equal(t, first.ID, items[0].ID)

	_, total, err = f.svc.ListCampaigns(ctx, ListCampaignsParams{Status: "all"})
	require.NoError(t, err)
	require.Equal(t, 2, total)

	_, _, err = f.svc.ListCampaigns(ctx, ListCampaignsParams{Status: "bogus"})
	requireCode(t, err, "VALIDATION_ERROR")
}

func TestUpdateCampaignPartial(t *testing.T) {
	f := newCampaignFixture(t)
	owner := f.verifiedAdvertiser(t)
	ctx := context.Background()

	campaign, err := f.svc.CreateCampaign(ctx, owner, validInput())
	require.NoError(t, err)

	title := "Autumn tasting"
	updated, err := f.svc.UpdateCampaign(ctx, owner, campaign.ID, CampaignPatch{Title: &title})
	require.NoError(t, err)
	require.Equal(t, title, updated.Title)
	require.Equal(t, campaign.RecruitmentEnd, updated.RecruitmentEnd)

	badStart := "2025-07-01"
	badEnd := "2025-06-01"
	_, err = f.svc.UpdateCampaign(ctx, owner, campaign.ID, CampaignPatch{
		RecruitmentStart: &badStart,
		RecruitmentEnd:   &badEnd,
	})
	requireCode(t, err, "INVALID_DATE_RANGE")
}
