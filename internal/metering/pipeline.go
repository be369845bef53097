package metering

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/api"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/metrics"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/wallet"
)

type Action string

const (
	ActionGenerateDescription Action = "generate_description"
	ActionGenerateCaption     Action = "generate_caption"
	ActionEditImage           Action = "edit_image"
)

// Credential says whose provider key pays for the action.
type Credential string

const (
	CredentialSystem Credential = "system"
	CredentialUser   Credential = "user"
)

type price struct {
	cost   int64
	reason wallet.Reason
}

var prices = map[Action]price{
	ActionGenerateDescription: {cost: 1, reason: wallet.ReasonGeneration},
	ActionGenerateCaption:     {cost: 1, reason: wallet.ReasonCaption},
	ActionEditImage:           {cost: 3, reason: wallet.ReasonImageEdit},
}

// Cost returns the credit price of an action.
func Cost(a Action) (int64, bool) {
	p, ok := prices[a]
	return p.cost, ok
}

// Actions lists the metered actions in name order.
func Actions() []Action {
	out := make([]Action, 0, len(prices))
	for a := range prices {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

type Request struct {
	UserID         int
	Action         Action
	Credential     Credential
	IdempotencyKey string
}

type Result struct {
	Action            Action     `json:"action"`
	Credential        Credential `json:"credential"`
	Metered           bool       `json:"metered"`
	Charged           int64      `json:"charged"`
	NewBalance        *int64     `json:"newBalance,omitempty"`
	Replayed          bool       `json:"replayed,omitempty"`
	FallbackAvailable bool       `json:"fallbackAvailable,omitempty"`
}

type Authorizer interface {
	Authorize(ctx context.Context, req Request) (*Result, error)
}

// Pipeline gates every metered action through one path. System-credential
// actions are debited from the wallet; user-credential actions pass through.
type Pipeline struct {
	ledger wallet.Service
}

func NewPipeline(ledger wallet.Service) *Pipeline {
	return &Pipeline{ledger: ledger}
}

func (p *Pipeline) Authorize(ctx context.Context, req Request) (*Result, error) {
	action := Action(strings.ToLower(strings.TrimSpace(string(req.Action))))
	pr, ok := prices[action]
	if !ok {
		return nil, api.Invalid("action", "unknown action %q", req.Action)
	}

	cred := req.Credential
	if cred == "" {
		cred = CredentialSystem
	}

	res := &Result{Action: action, Credential: cred}

	switch cred {
	case CredentialUser:
		metrics.RecordMeteredAction(string(action), string(cred), "bypassed")
		return res, nil
	case CredentialSystem:
	default:
		return nil, api.Invalid("credential", "unknown credential source %q", req.Credential)
	}

	debit, err := p.ledger.Deduct(ctx, req.UserID, pr.cost, pr.reason, req.IdempotencyKey)
	if err != nil {
		if errors.Is(err, wallet.ErrInsufficientCredits) {
			metrics.RecordMeteredAction(string(action), string(cred), "insufficient")
			res.FallbackAvailable = true
			return res, err
		}
		if errors.Is(err, wallet.ErrIdempotencyConflict) {
			metrics.RecordMeteredAction(string(action), string(cred), "conflict")
			return nil, err
		}
		metrics.RecordMeteredAction(string(action), string(cred), "error")
		return nil, err
	}

	res.Metered = true
	// a replay reports what the recorded debit actually charged
	res.Charged = -debit.LedgerEntry.Delta
	res.Replayed = debit.Replayed
	balance := debit.NewBalance
	res.NewBalance = &balance

	metrics.RecordMeteredAction(string(action), string(cred), "charged")
	return res, nil
}
