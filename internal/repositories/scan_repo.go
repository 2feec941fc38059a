package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campmatch/backend/internal/models"
)

type ScanRepo struct {
	pool *pgxpool.Pool
}

func NewScanRepo(pool *pgxpool.Pool) *ScanRepo {
	return &ScanRepo{pool: pool}
}

func (r *ScanRepo) Create(ctx context.Context, s *models.ChannelScan) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO channel_scans (channel_id, fetched_at, http_status, page_title, reachable)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, s.ChannelID, s.FetchedAt, s.HTTPStatus, s.PageTitle, s.Reachable).Scan(&s.ID)
}

func (r *ScanRepo) ListByChannel(ctx context.Context, channelID uuid.UUID, limit int) ([]models.ChannelScan, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, channel_id, fetched_at, http_status, page_title, reachable
		FROM channel_scans WHERE channel_id = $1
		ORDER BY fetched_at DESC LIMIT $2
	`, channelID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scans []models.ChannelScan
	for rows.Next() {
		var s models.ChannelScan
		if err := rows.Scan(&s.ID, &s.ChannelID, &s.FetchedAt, &s.HTTPStatus, &s.PageTitle, &s.Reachable); err != nil {
			return nil, err
		}
		scans = append(scans, s)
	}
	return scans, nil
}

// LatestByChannel returns the most recent scan, nil when none exists.
func (r *ScanRepo) LatestByChannel(ctx context.Context, channelID uuid.UUID) (*models.ChannelScan, error) {
	var s models.ChannelScan
	err := r.pool.QueryRow(ctx, `
		SELECT id, channel_id, fetched_at, http_status, page_title, reachable
		FROM channel_scans WHERE channel_id = $1
		ORDER BY fetched_at DESC LIMIT 1
	`, channelID).Scan(&s.ID, &s.ChannelID, &s.FetchedAt, &s.HTTPStatus, &s.PageTitle, &s.Reachable)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
