package wallet

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/api"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/db"
)

var (
	ErrInsufficientCredits = api.ErrInsufficientCredits
	ErrIdempotencyConflict = api.ErrIdempotencyConflict
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetWallet(ctx context.Context, userID int) (*Wallet, error) {
	w := &Wallet{}
	err := r.db.GetContext(ctx, w,
		`SELECT user_id, balance, created_at, updated_at FROM credits_wallet WHERE user_id = $1`,
		userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return &Wallet{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Apply adds delta to the user's balance and appends the ledger entry in one
// transaction. The wallet row is locked for the duration, so concurrent calls
// for the same user are serialised while other users proceed independently.
// A referenceID that was already applied returns the recorded result untouched
// when delta and reason match it, and ErrIdempotencyConflict otherwise.
func (r *repository) Apply(ctx context.Context, userID int, delta int64, reason Reason, referenceID string) (*Result, error) {
	var res *Result

	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		w, err := lockWallet(ctx, tx, userID, delta > 0)
		if errors.Is(err, sql.ErrNoRows) {
			// no wallet means a zero balance, which cannot cover a debit
			return ErrInsufficientCredits
		}
		if err != nil {
			return fmt.Errorf("lock wallet: %w", err)
		}

		var existing LedgerEntry
		err = tx.GetContext(ctx, &existing,
			`SELECT id, user_id, delta, reason, reference_id, balance_after, created_at
			 FROM ledger
			 WHERE user_id = $1 AND reference_id = $2`,
			userID, referenceID,
		)
		if err == nil {
			if existing.Delta != delta || existing.Reason != reason {
				return fmt.Errorf("%w: %s recorded %s %d", ErrIdempotencyConflict, referenceID, existing.Reason, existing.Delta)
			}
			res = &Result{NewBalance: existing.BalanceAfter, LedgerEntry: existing, Replayed: true}
			return nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("lookup ledger entry: %w", err)
		}

		newBalance := w.Balance + delta
		if newBalance < 0 {
			return ErrInsufficientCredits
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE credits_wallet
			 SET balance = $1, updated_at = NOW()
			 WHERE user_id = $2`,
			newBalance, userID,
		)
		if err != nil {
			return fmt.Errorf("update balance: %w", err)
		}

		entry := LedgerEntry{
			ID:           uuid.New(),
			UserID:       userID,
			Delta:        delta,
			Reason:       reason,
			ReferenceID:  referenceID,
			BalanceAfter: newBalance,
		}
		err = tx.QueryRowxContext(ctx,
			`INSERT INTO ledger (id, user_id, delta, reason, reference_id, balance_after)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING created_at`,
			entry.ID, entry.UserID, entry.Delta, entry.Reason, entry.ReferenceID, entry.BalanceAfter,
		).Scan(&entry.CreatedAt)
		if err != nil {
			return fmt.Errorf("append ledger entry: %w", err)
		}

		res = &Result{NewBalance: newBalance, LedgerEntry: entry}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func lockWallet(ctx context.Context, tx *sqlx.Tx, userID int, create bool) (*Wallet, error) {
	if create {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO credits_wallet (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`,
			userID,
		)
		if err != nil {
			return nil, err
		}
	}

	var w Wallet
	err := tx.QueryRowxContext(ctx,
		`SELECT user_id, balance, created_at, updated_at
		 FROM credits_wallet
		 WHERE user_id = $1
		 FOR UPDATE`,
		userID,
	).StructScan(&w)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repository) ListEntries(ctx context.Context, userID int, limit, offset int) ([]LedgerEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	entries := []LedgerEntry{}
	err := r.db.SelectContext(ctx, &entries, `
		SELECT id, user_id, delta, reason, reference_id, balance_after, created_at
		FROM ledger
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
