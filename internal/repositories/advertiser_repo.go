package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campmatch/backend/internal/models"
)

type AdvertiserRepo struct {
	pool *pgxpool.Pool
}

func NewAdvertiserRepo(pool *pgxpool.Pool) *AdvertiserRepo {
	return &AdvertiserRepo{pool: pool}
}

// Upsert creates or replaces the principal's advertiser profile. Every
// submission resets verification back to pending.
func (r *AdvertiserRepo) Upsert(ctx context.Context, p *models.AdvertiserProfile) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO advertiser_profiles (user_id, company_name, location, category, business_number, verification_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			location = EXCLUDED.location,
			category = EXCLUDED.category,
			business_number = EXCLUDED.business_number,
			verification_status = EXCLUDED.verification_status,
			updated_at = now()
		RETURNING id, created_at, updated_at
	`, p.UserID, p.CompanyName, p.Location, p.Category, p.BusinessNumber, p.VerificationStatus,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *AdvertiserRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.AdvertiserProfile, error) {
	var p models.AdvertiserProfile
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, company_name, location, category, business_number, verification_status, created_at, updated_at
		FROM advertiser_profiles WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.CompanyName, &p.Location, &p.Category,
		&p.BusinessNumber, &p.VerificationStatus, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// BusinessNumberTakenByOther reports whether another principal already
// registered this business number. The caller's own row is excluded so
// resubmission stays possible.
func (r *AdvertiserRepo) BusinessNumberTakenByOther(ctx context.Context, businessNumber string, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM advertiser_profiles WHERE business_number = $1 AND user_id <> $2)
	`, businessNumber, userID).Scan(&exists)
	return exists, err
}

func (r *AdvertiserRepo) UpdateVerification(ctx context.Context, userID uuid.UUID, status string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE advertiser_profiles SET verification_status = $1, updated_at = now() WHERE user_id = $2
	`, status, userID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
