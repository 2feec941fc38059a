package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campmatch/backend/internal/models"
)

type CampaignRepo struct {
	pool *pgxpool.Pool
}

func NewCampaignRepo(pool *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

func (r *CampaignRepo) Create(ctx context.Context, c *models.Campaign) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO campaigns (advertiser_id, title, recruitment_start, recruitment_end, max_participants, benefits, store_info, mission, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, c.AdvertiserID, c.Title, c.RecruitmentStart, c.RecruitmentEnd,
		c.MaxParticipants, c.Benefits, c.StoreInfo, c.Mission, c.Status,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	var c models.Campaign
	err := r.pool.QueryRow(ctx, `
		SELECT id, advertiser_id, title, recruitment_start, recruitment_end,
		       max_participants, benefits, store_info, mission, status, created_at, updated_at
		FROM campaigns WHERE id = $1
	`, id).Scan(&c.ID, &c.AdvertiserID, &c.Title, &c.RecruitmentStart, &c.RecruitmentEnd,
		&c.MaxParticipants, &c.Benefits, &c.StoreInfo, &c.Mission, &c.Status,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepo) GetByIDWithAdvertiser(ctx context.Context, id uuid.UUID) (*models.CampaignWithAdvertiser, error) {
	var c models.CampaignWithAdvertiser
	err := r.pool.QueryRow(ctx, `
		SELECT c.id, c.advertiser_id, c.title, c.recruitment_start, c.recruitment_end,
		       c.max_participants, c.benefits, c.store_info, c.mission, c.status, c.created_at, c.updated_at,
		       ap.company_name, ap.location, ap.category
		FROM campaigns c
		LEFT JOIN advertiser_profiles ap ON ap.user_id = c.advertiser_id
		WHERE c.id = $1
	`, id).Scan(&c.ID, &c.AdvertiserID, &c.Title, &c.RecruitmentStart, &c.RecruitmentEnd,
		&c.MaxParticipants, &c.Benefits, &c.StoreInfo, &c.Mission, &c.Status,
		&c.CreatedAt, &c.UpdatedAt,
		&c.CompanyName, &c.Location, &c.Category)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CampaignRepo) Update(ctx context.Context, c *models.Campaign) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE campaigns SET title = $1, recruitment_start = $2, recruitment_end = $3,
		       max_participants = $4, benefits = $5, store_info = $6, mission = $7, updated_at = now()
		WHERE id = $8
	`, c.Title, c.RecruitmentStart, c.RecruitmentEnd,
		c.MaxParticipants, c.Benefits, c.StoreInfo, c.Mission, c.ID)
	return err
}

func (r *CampaignRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	_, err := r.pool.Exec(ctx, `UPDATE campaigns SET status = $1, updated_at = now() WHERE id = $2`, status, id)
	return err
}

// Sort orders accepted by List.
const (
	SortLatest   = "latest"
	SortDeadline = "deadline"
	SortPopular  = "popular"
)

type CampaignFilter struct {
	AdvertiserID *uuid.UUID
	Status       *string
	Category     *string // exact match on the advertiser's category
	Region       *string // substring match on the advertiser's location
	Sort         string
	Limit        int
	Offset       int
}

func (f CampaignFilter) where(args *[]any) string {
	argIdx := len(*args) + 1
	where := []string{}

	if f.AdvertiserID != nil {
		where = append(where, fmt.Sprintf("c.advertiser_id = $%d", argIdx))
		*args = append(*args, *f.AdvertiserID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("c.status = $%d", argIdx))
		*args = append(*args, *f.Status)
		argIdx++
	}
	if f.Category != nil {
		where = append(where, fmt.Sprintf("ap.category = $%d", argIdx))
		*args = append(*args, *f.Category)
		argIdx++
	}
	if f.Region != nil {
		where = append(where, fmt.Sprintf("ap.location ILIKE $%d", argIdx))
		*args = append(*args, "%"+*f.Region+"%")
		argIdx++
	}

	if len(where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(where, " AND ")
}

func (f CampaignFilter) orderBy() string {
	switch f.Sort {
	case SortDeadline:
		return " ORDER BY c.recruitment_end ASC"
	case SortPopular:
		return " ORDER BY c.created_at DESC"
	default:
		return " ORDER BY c.created_at DESC"
	}
}

func (r *CampaignRepo) List(ctx context.Context, f CampaignFilter) ([]models.CampaignWithAdvertiser, error) {
	query := `
		SELECT c.id, c.advertiser_id, c.title, c.recruitment_start, c.recruitment_end,
		       c.max_participants, c.benefits, c.store_info, c.mission, c.status, c.created_at, c.updated_at,
		       ap.company_name, ap.location, ap.category
		FROM campaigns c
		LEFT JOIN advertiser_profiles ap ON ap.user_id = c.advertiser_id
	`
	args := []any{}
	query += f.where(&args)
	query += f.orderBy()

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.CampaignWithAdvertiser
	for rows.Next() {
		var c models.CampaignWithAdvertiser
		if err := rows.Scan(&c.ID, &c.AdvertiserID, &c.Title, &c.RecruitmentStart, &c.RecruitmentEnd,
			&c.MaxParticipants, &c.Benefits, &c.StoreInfo, &c.Mission, &c.Status,
			&c.CreatedAt, &c.UpdatedAt,
			&c.CompanyName, &c.Location, &c.Category); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, nil
}

func (r *CampaignRepo) Count(ctx context.Context, f CampaignFilter) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM campaigns c
		LEFT JOIN advertiser_profiles ap ON ap.user_id = c.advertiser_id
	`
	args := []any{}
	query += f.where(&args)

	var count int
	err := r.pool.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}
