package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campmatch/backend/internal/models"
)

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) Create(ctx context.Context, p *models.Profile) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO profiles (name, phone, email, password_hash, role, terms_agreed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, p.Name, p.Phone, p.Email, p.PasswordHash, p.Role, p.TermsAgreedAt,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var p models.Profile
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, phone, email, password_hash, role, terms_agreed_at, created_at, updated_at
		FROM profiles WHERE id = $1
	`, id).Scan(&p.ID, &p.Name, &p.Phone, &p.Email, &p.PasswordHash, &p.Role,
		&p.TermsAgreedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var p models.Profile
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, phone, email, password_hash, role, terms_agreed_at, created_at, updated_at
		FROM profiles WHERE email = $1
	`, email).Scan(&p.ID, &p.Name, &p.Phone, &p.Email, &p.PasswordHash, &p.Role,
		&p.TermsAgreedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
