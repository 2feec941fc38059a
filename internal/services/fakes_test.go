package services

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/campmatch/backend/internal/events"
	"github.com/campmatch/backend/internal/models"
	"github.com/campmatch/backend/internal/repositories"
)

// In-memory fakes for the store interfaces. They reproduce the constraint
// behavior the real repositories translate: pgx.ErrNoRows for missing rows
// and SQLSTATE 23505 with the constraint name for uniqueness.

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

// ---- profiles ----

type fakeProfiles struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*models.Profile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{rows: make(map[uuid.UUID]*models.Profile)}
}

func (f *fakeProfiles) Create(_ context.Context, p *models.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.Email == p.Email {
			return uniqueViolation(repositories.ConstraintProfileEmail)
		}
	}
	p.ID = uuid.New()
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakeProfiles) GetByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row, ok := f.rows[id]; ok {
		cp := *row
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeProfiles) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.Email == email {
			cp := *row
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

// ---- advertisers ----

type fakeAdvertisers struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*models.AdvertiserProfile // by user id
}

func newFakeAdvertisers() *fakeAdvertisers {
	return &fakeAdvertisers{rows: make(map[uuid.UUID]*models.AdvertiserProfile)}
}

func (f *fakeAdvertisers) Upsert(_ context.Context, p *models.AdvertiserProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for userID, row := range f.rows {
		if userID != p.UserID && row.BusinessNumber == p.BusinessNumber {
			return uniqueViolation(repositories.ConstraintBusinessNumber)
		}
	}
	if existing, ok := f.rows[p.UserID]; ok {
		p.ID = existing.ID
	} else {
		p.ID = uuid.New()
	}
	cp := *p
	f.rows[p.UserID] = &cp
	return nil
}

func (f *fakeAdvertisers) GetByUserID(_ context.Context, userID uuid.UUID) (*models.AdvertiserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row, ok := f.rows[userID]; ok {
		cp := *row
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeAdvertisers) BusinessNumberTakenByOther(_ context.Context, businessNumber string, userID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, row := range f.rows {
		if id != userID && row.BusinessNumber == businessNumber {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAdvertisers) UpdateVerification(_ context.Context, userID uuid.UUID, status string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[userID]
	if !ok {
		return false, nil
	}
	row.VerificationStatus = status
	return true, nil
}

// ---- influencers ----

type fakeInfluencers struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*models.InfluencerProfile // by user id
	channels map[uuid.UUID]*models.Channel           // by channel id
}

func newFakeInfluencers() *fakeInfluencers {
	return &fakeInfluencers{
		profiles: make(map[uuid.UUID]*models.InfluencerProfile),
		channels: make(map[uuid.UUID]*models.Channel),
	}
}

func (f *fakeInfluencers) UpsertProfile(_ context.Context, p *models.InfluencerProfile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.profiles[p.UserID]; ok {
		p.ID = existing.ID
	} else {
		p.ID = uuid.New()
	}
	cp := *p
	f.profiles[p.UserID] = &cp
	return nil
}

func (f *fakeInfluencers) GetProfileByUserID(_ context.Context, userID uuid.UUID) (*models.InfluencerProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row, ok := f.profiles[userID]; ok {
		cp := *row
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeInfluencers) CreateChannel(_ context.Context, c *models.Channel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.channels {
		if row.UserID == c.UserID && row.URL == c.URL {
			return uniqueViolation(repositories.ConstraintChannelURL)
		}
	}
	c.ID = uuid.New()
	cp := *c
	f.channels[c.ID] = &cp
	return nil
}

func (f *fakeInfluencers) GetChannelByID(_ context.Context, id uuid.UUID) (*models.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row, ok := f.channels[id]; ok {
		cp := *row
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeInfluencers) ListChannelsByUserID(_ context.Context, userID uuid.UUID) ([]models.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Channel
	for _, row := range f.channels {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URL < out[j].URL })
	return out, nil
}

func (f *fakeInfluencers) ListChannelsByUserIDs(_ context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]models.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := make(map[uuid.UUID]bool, len(userIDs))
	for _, id := range userIDs {
		want[id] = true
	}
	out := make(map[uuid.UUID][]models.Channel)
	for _, row := range f.channels {
		if want[row.UserID] {
			out[row.UserID] = append(out[row.UserID], *row)
		}
	}
	return out, nil
}

func (f *fakeInfluencers) UpdateChannel(_ context.Context, c *models.Channel) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.channels[c.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	row.Name = c.Name
	row.URL = c.URL
	row.Status = c.Status
	return nil
}

func (f *fakeInfluencers) DeleteChannel(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.channels, id)
	return nil
}

func (f *fakeInfluencers) CountChannelsByUserID(_ context.Context, userID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, row := range f.channels {
		if row.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeInfluencers) CountVerifiedChannelsByUserID(_ context.Context, userID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, row := range f.channels {
		if row.UserID == userID && row.Status == models.VerificationVerified {
			count++
		}
	}
	return count, nil
}

func (f *fakeInfluencers) ChannelURLTakenByOwner(_ context.Context, userID uuid.UUID, url string, excludeID *uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, row := range f.channels {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if row.UserID == userID && row.URL == url {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeInfluencers) UpdateChannelVerification(_ context.Context, id uuid.UUID, status string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.channels[id]
	if !ok {
		return false, nil
	}
	row.Status = status
	return true, nil
}

// ---- campaigns ----

type fakeCampaigns struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*models.Campaign
}

func newFakeCampaigns() *fakeCampaigns {
	return &fakeCampaigns{rows: make(map[uuid.UUID]*models.Campaign)}
}

func (f *fakeCampaigns) Create(_ context.Context, c *models.Campaign) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = uuid.New()
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeCampaigns) GetByID(_ context.Context, id uuid.UUID) (*models.Campaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row, ok := f.rows[id]; ok {
		cp := *row
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeCampaigns) GetByIDWithAdvertiser(ctx context.Context, id uuid.UUID) (*models.CampaignWithAdvertiser, error) {
	c, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.CampaignWithAdvertiser{Campaign: *c}, nil
}

func (f *fakeCampaigns) Update(_ context.Context, c *models.Campaign) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[c.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *c
	f.rows[c.ID] = &cp
	return nil
}

func (f *fakeCampaigns) UpdateStatus(_ context.Context, id uuid.UUID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return pgx.ErrNoRows
	}
	row.Status = status
	return nil
}

func (f *fakeCampaigns) matches(row *models.Campaign, filter repositories.CampaignFilter) bool {
	if filter.AdvertiserID != nil && row.AdvertiserID != *filter.AdvertiserID {
		return false
	}
	if filter.Status != nil && row.Status != *filter.Status {
		return false
	}
	return true
}

func (f *fakeCampaigns) List(_ context.Context, filter repositories.CampaignFilter) ([]models.CampaignWithAdvertiser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.CampaignWithAdvertiser
	for _, row := range f.rows {
		if f.matches(row, filter) {
			out = append(out, models.CampaignWithAdvertiser{Campaign: *row})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeCampaigns) Count(_ context.Context, filter repositories.CampaignFilter) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, row := range f.rows {
		if f.matches(row, filter) {
			count++
		}
	}
	return count, nil
}

// ---- applications ----

type fakeApplications struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]*models.Application
	campaigns *fakeCampaigns
}

func newFakeApplications(campaigns *fakeCampaigns) *fakeApplications {
	return &fakeApplications{rows: make(map[uuid.UUID]*models.Application), campaigns: campaigns}
}

func (f *fakeApplications) CreateWithCapacityCheck(_ context.Context, a *models.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.campaigns.mu.Lock()
	campaign, ok := f.campaigns.rows[a.CampaignID]
	f.campaigns.mu.Unlock()
	if !ok {
		return pgx.ErrNoRows
	}
	if campaign.Status != models.CampaignStatusRecruiting {
		return repositories.ErrCampaignNotRecruiting
	}

	count := 0
	for _, row := range f.rows {
		if row.CampaignID == a.CampaignID {
			if row.UserID == a.UserID {
				return uniqueViolation(repositories.ConstraintApplication)
			}
			count++
		}
	}
	if count >= campaign.MaxParticipants {
		return repositories.ErrCapacityReached
	}

	a.ID = uuid.New()
	cp := *a
	f.rows[a.ID] = &cp
	return nil
}

func (f *fakeApplications) GetByCampaignAndUser(_ context.Context, campaignID, userID uuid.UUID) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.CampaignID == campaignID && row.UserID == userID {
			cp := *row
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeApplications) CountByCampaign(_ context.Context, campaignID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, row := range f.rows {
		if row.CampaignID == campaignID {
			count++
		}
	}
	return count, nil
}

func (f *fakeApplications) ListWithCampaign(ctx context.Context, filter repositories.ApplicationFilter) ([]models.ApplicationWithCampaign, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ApplicationWithCampaign
	for _, row := range f.rows {
		if filter.UserID != nil && row.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && row.Status != *filter.Status {
			continue
		}
		entry := models.ApplicationWithCampaign{Application: *row}
		f.campaigns.mu.Lock()
		if campaign, ok := f.campaigns.rows[row.CampaignID]; ok {
			entry.CampaignTitle = campaign.Title
			entry.CampaignBenefits = campaign.Benefits
			entry.RecruitmentEnd = campaign.RecruitmentEnd
			entry.CampaignStatus = campaign.Status
		}
		f.campaigns.mu.Unlock()
		out = append(out, entry)
	}
	return out, nil
}

func (f *fakeApplications) Count(_ context.Context, filter repositories.ApplicationFilter) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, row := range f.rows {
		if filter.UserID != nil && row.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && row.Status != *filter.Status {
			continue
		}
		count++
	}
	return count, nil
}

func (f *fakeApplications) ListApplicants(_ context.Context, campaignID uuid.UUID) ([]models.Applicant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Applicant
	for _, row := range f.rows {
		if row.CampaignID == campaignID {
			out = append(out, models.Applicant{Application: *row})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeApplications) SelectWinners(_ context.Context, campaignID uuid.UUID, selectedIDs []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	selected := make(map[uuid.UUID]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		row, ok := f.rows[id]
		if !ok || row.CampaignID != campaignID {
			return repositories.ErrSelectionMismatch
		}
		selected[id] = true
	}

	for id, row := range f.rows {
		if row.CampaignID != campaignID {
			continue
		}
		if selected[id] {
			row.Status = models.ApplicationStatusSelected
		} else {
			row.Status = models.ApplicationStatusRejected
		}
	}

	f.campaigns.mu.Lock()
	if campaign, ok := f.campaigns.rows[campaignID]; ok {
		campaign.Status = models.CampaignStatusCompleted
	}
	f.campaigns.mu.Unlock()
	return nil
}

// ---- audit & events ----

type fakeAudit struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (f *fakeAudit) Log(_ context.Context, entry models.AuditLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (f *fakePublisher) Publish(_ context.Context, _ string, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) byType(eventType string) []events.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []events.Event
	for _, e := range f.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}
