package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("transaction not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, tx *Transaction) error {
	if tx.Status == "" {
		tx.Status = StatusPending
	}
	return r.db.QueryRowxContext(ctx, `
		INSERT INTO transactions (user_id, plan, amount, status, external_ref, gateway, payment_method)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, tx.UserID, tx.Plan, tx.Amount, tx.Status, tx.ExternalRef, tx.Gateway, tx.PaymentMethod).
		Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
}

func (r *repository) GetByExternalRef(ctx context.Context, externalRef string) (*Transaction, error) {
	tx := &Transaction{}
	err := r.db.GetContext(ctx, tx, `
		SELECT id, user_id, plan, amount, status, external_ref, gateway, gateway_reference,
		       payment_method, paid_at, created_at, updated_at
		FROM transactions
		WHERE external_ref = $1
	`, externalRef)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (r *repository) SetGatewayReference(ctx context.Context, externalRef, reference string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET gateway_reference = $2,
		    updated_at = NOW()
		WHERE external_ref = $1
	`, externalRef, reference)
	return err
}

func (r *repository) MarkStatus(ctx context.Context, q sqlx.ExecerContext, externalRef string, status Status, paidAt *time.Time) (bool, error) {
	if status == StatusPending {
		return false, nil
	}
	if q == nil {
		q = r.db
	}

	res, err := q.ExecContext(ctx, `
		UPDATE transactions
		SET status = $2,
		    paid_at = $3,
		    updated_at = NOW()
		WHERE external_ref = $1
		  AND status = 'PENDING'
	`, externalRef, status, paidAt)
	if err != nil {
		return false, fmt.Errorf("update transaction status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return n == 1, nil
}
