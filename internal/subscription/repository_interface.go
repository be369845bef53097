package subscription

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	// Insert writes sub through q, which may be a transaction.
	Insert(ctx context.Context, q sqlx.QueryerContext, sub *Subscription) error
	Latest(ctx context.Context, userID int) (*Subscription, error)
}
