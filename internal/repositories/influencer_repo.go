package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campmatch/backend/internal/models"
)

type InfluencerRepo struct {
	pool *pgxpool.Pool
}

func NewInfluencerRepo(pool *pgxpool.Pool) *InfluencerRepo {
	return &InfluencerRepo{pool: pool}
}

func (r *InfluencerRepo) UpsertProfile(ctx context.Context, p *models.InfluencerProfile) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO influencer_profiles (user_id, birth_date, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET
			birth_date = EXCLUDED.birth_date,
			status = EXCLUDED.status,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`, p.UserID, p.BirthDate, p.Status).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *InfluencerRepo) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.InfluencerProfile, error) {
	var p models.InfluencerProfile
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, birth_date, status, created_at, updated_at
		FROM influencer_profiles WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.BirthDate, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ---- Channels ----

func (r *InfluencerRepo) CreateChannel(ctx context.Context, c *models.Channel) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO influencer_channels (user_id, platform, channel_name, channel_url, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, c.UserID, c.Platform, c.Name, c.URL, c.Status).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *InfluencerRepo) GetChannelByID(ctx context.Context, id uuid.UUID) (*models.Channel, error) {
	var c models.Channel
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, platform, channel_name, channel_url, status, created_at, updated_at
		FROM influencer_channels WHERE id = $1
	`, id).Scan(&c.ID, &c.UserID, &c.Platform, &c.Name, &c.URL, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *InfluencerRepo) ListChannelsByUserID(ctx context.Context, userID uuid.UUID) ([]models.Channel, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, platform, channel_name, channel_url, status, created_at, updated_at
		FROM influencer_channels WHERE user_id = $1
		ORDER BY created_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []models.Channel
	for rows.Next() {
		var c models.Channel
		if err := rows.Scan(&c.ID, &c.UserID, &c.Platform, &c.Name, &c.URL, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		channels = append(channels, c)
	}
	return channels, nil
}

// ListChannelsByUserIDs returns channels grouped by owner, used to enrich
// an applicant roster without N+1 queries.
func (r *InfluencerRepo) ListChannelsByUserIDs(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]models.Channel, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, platform, channel_name, channel_url, status, created_at, updated_at
		FROM influencer_channels WHERE user_id = ANY($1)
		ORDER BY created_at ASC
	`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byUser := make(map[uuid.UUID][]models.Channel)
	for rows.Next() {
		var c models.Channel
		if err := rows.Scan(&c.ID, &c.UserID, &c.Platform, &c.Name, &c.URL, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		byUser[c.UserID] = append(byUser[c.UserID], c)
	}
	return byUser, nil
}

// UpdateChannel rewrites the mutable fields and resets status to pending.
func (r *InfluencerRepo) UpdateChannel(ctx context.Context, c *models.Channel) error {
	return r.pool.QueryRow(ctx, `
		UPDATE influencer_channels
		SET channel_name = $1, channel_url = $2, status = $3, updated_at = now()
		WHERE id = $4
		RETURNING updated_at
	`, c.Name, c.URL, c.Status, c.ID).Scan(&c.UpdatedAt)
}

func (r *InfluencerRepo) DeleteChannel(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM influencer_channels WHERE id = $1`, id)
	return err
}

func (r *InfluencerRepo) CountChannelsByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM influencer_channels WHERE user_id = $1
	`, userID).Scan(&count)
	return count, err
}

func (r *InfluencerRepo) CountVerifiedChannelsByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM influencer_channels WHERE user_id = $1 AND status = $2
	`, userID, models.VerificationVerified).Scan(&count)
	return count, err
}

// ChannelURLTakenByOwner reports whether the principal already has this URL
// on another channel. excludeID skips the channel being edited.
func (r *InfluencerRepo) ChannelURLTakenByOwner(ctx context.Context, userID uuid.UUID, url string, excludeID *uuid.UUID) (bool, error) {
	var exists bool
	var err error
	if excludeID != nil {
		err = r.pool.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM influencer_channels WHERE user_id = $1 AND channel_url = $2 AND id <> $3)
		`, userID, url, *excludeID).Scan(&exists)
	} else {
		err = r.pool.QueryRow(ctx, `
			SELECT EXISTS(SELECT 1 FROM influencer_channels WHERE user_id = $1 AND channel_url = $2)
		`, userID, url).Scan(&exists)
	}
	return exists, err
}

func (r *InfluencerRepo) UpdateChannelVerification(ctx context.Context, id uuid.UUID, status string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE influencer_channels SET status = $1, updated_at = now() WHERE id = $2
	`, status, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListPendingChannels feeds the worker's sweep.
func (r *InfluencerRepo) ListPendingChannels(ctx context.Context, limit int) ([]models.Channel, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, platform, channel_name, channel_url, status, created_at, updated_at
		FROM influencer_channels WHERE status = $1
		ORDER BY created_at ASC LIMIT $2
	`, models.VerificationPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []models.Channel
	for rows.Next() {
		var c models.Channel
		if err := rows.Scan(&c.ID, &c.UserID, &c.Platform, &c.Name, &c.URL, &c.Status, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		channels = append(channels, c)
	}
	return channels, nil
}
