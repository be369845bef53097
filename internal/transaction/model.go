package transaction

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPending Status = "PENDING"
	StatusPaid    Status = "PAID"
	StatusExpired Status = "EXPIRED"
)

// Terminal reports whether no further transition is allowed from s.
func (s Status) Terminal() bool {
	return s == StatusPaid || s == StatusExpired
}

// Normalize maps gateway status vocabulary onto the internal states.
// Unrecognised values are treated as still pending.
func Normalize(raw string) Status {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "PAID", "SUCCESS":
		return StatusPaid
	case "EXPIRED":
		return StatusExpired
	default:
		return StatusPending
	}
}

type Transaction struct {
	ID               int        `db:"id" json:"id"`
	UserID           int        `db:"user_id" json:"userId"`
	Plan             string     `db:"plan" json:"plan"`
	Amount           int64      `db:"amount" json:"amount"`
	Status           Status     `db:"status" json:"status"`
	ExternalRef      string     `db:"external_ref" json:"externalRef"`
	Gateway          string     `db:"gateway" json:"gateway"`
	GatewayReference *string    `db:"gateway_reference" json:"gatewayReference,omitempty"`
	PaymentMethod    *string    `db:"payment_method" json:"paymentMethod,omitempty"`
	PaidAt           *time.Time `db:"paid_at" json:"paidAt,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updatedAt"`
}
