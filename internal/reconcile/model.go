package reconcile

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/api"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/subscription"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/transaction"
)

// Notification is an inbound gateway callback. TotalAmount is the field the
// gateway currently sends; Amount is accepted from older payloads.
type Notification struct {
	Reference     string `json:"reference" validate:"required_without=MerchantRef"`
	MerchantRef   string `json:"merchant_ref" validate:"required_without=Reference"`
	PaymentMethod string `json:"payment_method"`
	TotalAmount   *int64 `json:"total_amount"`
	Amount        *int64 `json:"amount"`
	Status        string `json:"status" validate:"required"`
	PaidAt        *int64 `json:"paid_at"`
	Signature     string `json:"signature"`
}

func (n *Notification) ClaimedAmount() int64 {
	if n.TotalAmount != nil {
		return *n.TotalAmount
	}
	if n.Amount != nil {
		return *n.Amount
	}
	return 0
}

// ParseNotification decodes and validates a callback body.
func ParseNotification(body []byte) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, api.Invalid("body", "malformed notification payload")
	}

	n.Reference = strings.TrimSpace(n.Reference)
	n.MerchantRef = strings.TrimSpace(n.MerchantRef)
	n.Status = strings.TrimSpace(n.Status)

	if err := api.AsValidationError(api.ValidateStruct(&n)); err != nil {
		return nil, err
	}
	return &n, nil
}

type Outcome string

const (
	OutcomePaid             Outcome = "paid"
	OutcomeExpired          Outcome = "expired"
	OutcomePending          Outcome = "pending"
	OutcomeReplayed         Outcome = "replayed"
	OutcomeUnknownReference Outcome = "unknown_reference"
	OutcomeStoreError       Outcome = "store_error"
	OutcomeRejected         Outcome = "rejected"
)

const (
	VerifiedBySignature = "signature"
	VerifiedByGateway   = "gateway_query"
	VerifiedByOperator  = "operator"
)

type Result struct {
	Outcome      Outcome                    `json:"outcome"`
	MerchantRef  string                     `json:"merchantRef"`
	Status       transaction.Status         `json:"status"`
	VerifiedBy   string                     `json:"verifiedBy"`
	Strategy     string                     `json:"strategy,omitempty"`
	PaidAt       *time.Time                 `json:"paidAt,omitempty"`
	Subscription *subscription.Subscription `json:"subscription,omitempty"`
	// Err holds a persistence failure that was acknowledged to the gateway.
	Err error `json:"-"`
}
