package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Unique constraint names from the migrations. Repositories translate
// SQLSTATE 23505 on these into the matching sentinel error so services
// never parse driver errors.
const (
	ConstraintProfileEmail   = "profiles_email_key"
	ConstraintBusinessNumber = "advertiser_profiles_business_number_key"
	ConstraintChannelURL     = "influencer_channels_user_id_channel_url_key"
	ConstraintApplication    = "applications_campaign_id_user_id_key"
)

func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != "23505" {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
