package wallet

import "context"

type Repository interface {
	GetWallet(ctx context.Context, userID int) (*Wallet, error)
	Apply(ctx context.Context, userID int, delta int64, reason Reason, referenceID string) (*Result, error)
	ListEntries(ctx context.Context, userID int, limit, offset int) ([]LedgerEntry, error)
}
