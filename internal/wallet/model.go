package wallet

import (
	"time"

	"github.com/google/uuid"
)

// Wallet is the per-user credit balance. Balance always equals the sum of the
// user's ledger deltas and never drops below zero.
type Wallet struct {
	UserID    int       `db:"user_id" json:"user_id"`
	Balance   int64     `db:"balance" json:"balance"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Reason string

const (
	ReasonGeneration Reason = "generation"
	ReasonCaption    Reason = "caption"
	ReasonImageEdit  Reason = "image_edit"
	ReasonDeduction  Reason = "deduction"
	ReasonGrant      Reason = "grant"
)

func (r Reason) Valid() bool {
	switch r {
	case ReasonGeneration, ReasonCaption, ReasonImageEdit, ReasonDeduction, ReasonGrant:
		return true
	}
	return false
}

// LedgerEntry is an append-only balance change. ReferenceID is the caller's
// idempotency key and is unique per user.
type LedgerEntry struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       int       `db:"user_id" json:"user_id"`
	Delta        int64     `db:"delta" json:"delta"`
	Reason       Reason    `db:"reason" json:"reason"`
	ReferenceID  string    `db:"reference_id" json:"reference_id"`
	BalanceAfter int64     `db:"balance_after" json:"balance_after"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type Result struct {
	NewBalance  int64       `json:"newBalance"`
	LedgerEntry LedgerEntry `json:"ledgerEntry"`
	// Replayed is set when the idempotency key had already been applied.
	Replayed bool `json:"replayed"`
}
