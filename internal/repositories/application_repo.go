package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campmatch/backend/internal/models"
)

// Sentinel errors for outcomes only the transaction can decide.
var (
	ErrCampaignNotRecruiting = errors.New("campaign is not recruiting")
	ErrCapacityReached       = errors.New("campaign reached max participants")
	ErrSelectionMismatch     = errors.New("selected ids do not all belong to the campaign")
)

type ApplicationRepo struct {
	pool *pgxpool.Pool
}

func NewApplicationRepo(pool *pgxpool.Pool) *ApplicationRepo {
	return &ApplicationRepo{pool: pool}
}

// CreateWithCapacityCheck inserts an application while holding a lock on the
// campaign row. Status and capacity are re-read inside the transaction so
// two concurrent applicants cannot both take the last slot.
func (r *ApplicationRepo) CreateWithCapacityCheck(ctx context.Context, a *models.Application) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var status string
	var maxParticipants int
	err = tx.QueryRow(ctx, `
		SELECT status, max_participants FROM campaigns WHERE id = $1 FOR UPDATE
	`, a.CampaignID).Scan(&status, &maxParticipants)
	if err != nil {
		return err
	}
	if status != models.CampaignStatusRecruiting {
		return ErrCampaignNotRecruiting
	}

	var count int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM applications WHERE campaign_id = $1
	`, a.CampaignID).Scan(&count)
	if err != nil {
		return err
	}
	if count >= maxParticipants {
		return ErrCapacityReached
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO applications (campaign_id, user_id, message, visit_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, a.CampaignID, a.UserID, a.Message, a.VisitDate, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *ApplicationRepo) GetByCampaignAndUser(ctx context.Context, campaignID, userID uuid.UUID) (*models.Application, error) {
	var a models.Application
	err := r.pool.QueryRow(ctx, `
		SELECT id, campaign_id, user_id, message, visit_date, status, created_at, updated_at
		FROM applications WHERE campaign_id = $1 AND user_id = $2
	`, campaignID, userID).Scan(&a.ID, &a.CampaignID, &a.UserID, &a.Message, &a.VisitDate,
		&a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *ApplicationRepo) CountByCampaign(ctx context.Context, campaignID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM applications WHERE campaign_id = $1
	`, campaignID).Scan(&count)
	return count, err
}

type ApplicationFilter struct {
	UserID *uuid.UUID
	Status *string
	Limit  int
	Offset int
}

// ListWithCampaign returns the applicant's applications enriched with a live
// snapshot of the campaign, newest first.
func (r *ApplicationRepo) ListWithCampaign(ctx context.Context, f ApplicationFilter) ([]models.ApplicationWithCampaign, error) {
	query := `
		SELECT a.id, a.campaign_id, a.user_id, a.message, a.visit_date, a.status, a.created_at, a.updated_at,
		       c.title, c.benefits, c.recruitment_end, c.status
		FROM applications a
		JOIN campaigns c ON c.id = a.campaign_id
	`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.UserID != nil {
		where = append(where, fmt.Sprintf("a.user_id = $%d", argIdx))
		args = append(args, *f.UserID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY a.created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []models.ApplicationWithCampaign
	for rows.Next() {
		var a models.ApplicationWithCampaign
		if err := rows.Scan(&a.ID, &a.CampaignID, &a.UserID, &a.Message, &a.VisitDate, &a.Status,
			&a.CreatedAt, &a.UpdatedAt,
			&a.CampaignTitle, &a.CampaignBenefits, &a.RecruitmentEnd, &a.CampaignStatus); err != nil {
			return nil, err
		}
		apps = append(apps, a)
	}
	return apps, nil
}

func (r *ApplicationRepo) Count(ctx context.Context, f ApplicationFilter) (int, error) {
	query := `SELECT COUNT(*) FROM applications a`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.UserID != nil {
		where = append(where, fmt.Sprintf("a.user_id = $%d", argIdx))
		args = append(args, *f.UserID)
		argIdx++
	}
	if f.Status != nil {
		where = append(where, fmt.Sprintf("a.status = $%d", argIdx))
		args = append(args, *f.Status)
		argIdx++
	}

	if len(where) > 0 {
		query += " WHERE "
		for i, w := range where {
			if i > 0 {
				query += " AND "
			}
			query += w
		}
	}

	var count int
	err := r.pool.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}

// ListApplicants returns the campaign's roster oldest first, each applicant
// enriched with identity. Channels are attached by the service.
func (r *ApplicationRepo) ListApplicants(ctx context.Context, campaignID uuid.UUID) ([]models.Applicant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.campaign_id, a.user_id, a.message, a.visit_date, a.status, a.created_at, a.updated_at,
		       p.name, p.email, ip.birth_date
		FROM applications a
		JOIN profiles p ON p.id = a.user_id
		JOIN influencer_profiles ip ON ip.user_id = a.user_id
		WHERE a.campaign_id = $1
		ORDER BY a.created_at ASC
	`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applicants []models.Applicant
	for rows.Next() {
		var ap models.Applicant
		if err := rows.Scan(&ap.ID, &ap.CampaignID, &ap.UserID, &ap.Message, &ap.VisitDate, &ap.Status,
			&ap.CreatedAt, &ap.UpdatedAt,
			&ap.UserName, &ap.UserEmail, &ap.BirthDate); err != nil {
			return nil, err
		}
		applicants = append(applicants, ap)
	}
	return applicants, rows.Err()
}

// SelectWinners applies the selection outcome atomically: the chosen
// applications become selected, every other application of the campaign is
// rejected, and the campaign is completed. A crash before commit leaves the
// campaign closed and the call retryable.
func (r *ApplicationRepo) SelectWinners(ctx context.Context, campaignID uuid.UUID, selectedIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE applications SET status = $1, updated_at = now()
		WHERE campaign_id = $2 AND id = ANY($3)
	`, models.ApplicationStatusSelected, campaignID, selectedIDs)
	if err != nil {
		return err
	}
	if int(tag.RowsAffected()) != len(selectedIDs) {
		return ErrSelectionMismatch
	}

	_, err = tx.Exec(ctx, `
		UPDATE applications SET status = $1, updated_at = now()
		WHERE campaign_id = $2 AND NOT (id = ANY($3))
	`, models.ApplicationStatusRejected, campaignID, selectedIDs)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE campaigns SET status = $1, updated_at = now() WHERE id = $2
	`, models.CampaignStatusCompleted, campaignID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}
