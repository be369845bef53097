package wallet

import (
	"context"
	"errors"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/api"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/logger"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/metrics"
)

const maxIdempotencyKeyLen = 128

type Service interface {
	Deduct(ctx context.Context, userID int, amount int64, reason Reason, idempotencyKey string) (*Result, error)
	Grant(ctx context.Context, userID int, amount int64, idempotencyKey string) (*Result, error)
	Balance(ctx context.Context, userID int) (*Wallet, error)
	History(ctx context.Context, userID int, limit, offset int) ([]LedgerEntry, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Deduct debits amount credits from the user's wallet. Retrying with the same
// idempotency key returns the original result without a second debit.
func (s *service) Deduct(ctx context.Context, userID int, amount int64, reason Reason, idempotencyKey string) (*Result, error) {
	if reason == "" {
		reason = ReasonDeduction
	}
	if err := validate(userID, amount, reason, idempotencyKey); err != nil {
		return nil, err
	}
	if reason == ReasonGrant {
		return nil, api.Invalid("reason", "grant is not a debit reason")
	}

	res, err := s.repo.Apply(ctx, userID, -amount, reason, idempotencyKey)
	if err != nil {
		if errors.Is(err, ErrInsufficientCredits) {
			metrics.RecordDeduction("insufficient", 0)
			return nil, err
		}
		if errors.Is(err, ErrIdempotencyConflict) {
			metrics.RecordDeduction("conflict", 0)
			logger.Warn("idempotency key reused for a different debit",
				"user_id", userID,
				"amount", amount,
				"reason", reason,
				"idempotency_key", idempotencyKey,
			)
			return nil, err
		}
		metrics.RecordDeduction("error", 0)
		logger.Error("credit deduction failed",
			"user_id", userID,
			"amount", amount,
			"idempotency_key", idempotencyKey,
			"error", err,
		)
		return nil, err
	}

	if res.Replayed {
		metrics.RecordDeduction("replayed", 0)
	} else {
		metrics.RecordDeduction("ok", amount)
	}
	metrics.RecordBalanceAfterDebit(res.NewBalance)

	return res, nil
}

func (s *service) Grant(ctx context.Context, userID int, amount int64, idempotencyKey string) (*Result, error) {
	if err := validate(userID, amount, ReasonGrant, idempotencyKey); err != nil {
		return nil, err
	}

	res, err := s.repo.Apply(ctx, userID, amount, ReasonGrant, idempotencyKey)
	if err != nil {
		return nil, err
	}

	if !res.Replayed {
		logger.Info("credits granted", "user_id", userID, "amount", amount, "balance", res.NewBalance)
		metrics.RecordCreditGrant(amount)
	}
	return res, nil
}

func (s *service) Balance(ctx context.Context, userID int) (*Wallet, error) {
	return s.repo.GetWallet(ctx, userID)
}

func (s *service) History(ctx context.Context, userID int, limit, offset int) ([]LedgerEntry, error) {
	return s.repo.ListEntries(ctx, userID, limit, offset)
}

func validate(userID int, amount int64, reason Reason, key string) error {
	switch {
	case userID <= 0:
		return api.Invalid("user_id", "must be positive")
	case amount <= 0:
		return api.Invalid("amount", "must be positive")
	case key == "":
		return api.Invalid("idempotencyKey", "is required")
	case len(key) > maxIdempotencyKeyLen:
		return api.Invalid("idempotencyKey", "must be at most %d characters", maxIdempotencyKeyLen)
	case !reason.Valid():
		return api.Invalid("reason", "unknown reason %q", reason)
	}
	return nil
}
