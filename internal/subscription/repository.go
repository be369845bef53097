package subscription

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("subscription not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, q sqlx.QueryerContext, sub *Subscription) error {
	if q == nil {
		q = r.db
	}
	return q.QueryRowxContext(ctx, `
		INSERT INTO subscriptions (user_id, plan_name, status, expires_at, transaction_ref)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, sub.UserID, sub.PlanName, sub.Status, sub.ExpiresAt, sub.TransactionRef).Scan(&sub.ID, &sub.CreatedAt)
}

// Latest returns the most recently created subscription row for the user.
func (r *repository) Latest(ctx context.Context, userID int) (*Subscription, error) {
	sub := &Subscription{}
	err := r.db.GetContext(ctx, sub, `
		SELECT id, user_id, plan_name, status, expires_at, transaction_ref, created_at
		FROM subscriptions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}
