package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("profile not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, userID int) (*Profile, error) {
	query := `
		SELECT user_id, email, full_name, plan_name, plan_expires_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var p Profile
	err := r.db.GetContext(ctx, &p, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// UpdatePlanMirror copies the active plan onto the profile. A missing profile
// is not an error.
func (r *repository) UpdatePlanMirror(ctx context.Context, userID int, planName string, expiresAt time.Time) error {
	query := `
		UPDATE profiles
		SET plan_name = $2,
		    plan_expires_at = $3,
		    updated_at = NOW()
		WHERE user_id = $1
	`

	_, err := r.db.ExecContext(ctx, query, userID, planName, expiresAt)
	return err
}
