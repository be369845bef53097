package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/api"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/config"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/db"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/gateway"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/logger"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/metrics"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/notify"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/subscription"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/transaction"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/user"
)

const defaultVerifyTimeout = 8 * time.Second

type Service interface {
	// HandleNotification authenticates and applies a gateway callback. A
	// non-nil error means the notification was rejected, except for
	// api.ErrUnknownReference which is acknowledged without mutation.
	HandleNotification(ctx context.Context, body []byte, signature string) (*Result, error)
	// ReconcileRef re-applies the gateway's authoritative status for one
	// transaction.
	ReconcileRef(ctx context.Context, merchantRef string) (*Result, error)
}

type service struct {
	db            *sqlx.DB
	gw            gateway.API
	transactions  transaction.Repository
	subscriptions subscription.Repository
	profiles      user.Repository
	notifier      notify.Notifier
	cfg           config.GatewayConfig
	now           func() time.Time
}

func NewService(
	conn *sqlx.DB,
	gw gateway.API,
	transactions transaction.Repository,
	subscriptions subscription.Repository,
	profiles user.Repository,
	notifier notify.Notifier,
	cfg config.GatewayConfig,
) Service {
	return &service{
		db:            conn,
		gw:            gw,
		transactions:  transactions,
		subscriptions: subscriptions,
		profiles:      profiles,
		notifier:      notifier,
		cfg:           cfg,
		now:           time.Now,
	}
}

func (s *service) HandleNotification(ctx context.Context, body []byte, signature string) (*Result, error) {
	n, err := ParseNotification(body)
	if err != nil {
		metrics.RecordWebhook("none", "invalid")
		return nil, err
	}

	signature = strings.TrimSpace(signature)
	if signature == "" {
		signature = n.Signature
	}

	claimed := n.ClaimedAmount()
	payload := gateway.Payload{
		MerchantCode: s.cfg.MerchantCode,
		MerchantRef:  n.MerchantRef,
		Reference:    n.Reference,
		Amount:       claimed,
		Status:       n.Status,
		Body:         body,
	}

	var (
		verifiedBy string
		strategy   string
		gatewayRef string
		status     = n.Status
		paidAtUnix *int64
	)
	if st, ok := gateway.Match(s.cfg.PrivateKey, payload, signature); ok {
		verifiedBy, strategy = VerifiedBySignature, st.Name
		// Only the raw body signature covers paid_at.
		if st.Name == gateway.StrategyRawBody {
			paidAtUnix = n.PaidAt
		}
		// merchant_ref is unsigned on reference-keyed schemes.
		if st.ByReference {
			gatewayRef = n.Reference
		}
	} else if remote, ok := s.verifyRemote(ctx, n, claimed); ok {
		verifiedBy = VerifiedByGateway
		status = remote.Status
		paidAtUnix = remote.PaidAt
	} else {
		metrics.RecordWebhook("none", string(OutcomeRejected))
		logger.Warn("notification failed authentication",
			"merchant_ref", n.MerchantRef,
			"reference", n.Reference,
			"amount", claimed,
		)
		return nil, api.ErrSignatureInvalid
	}

	res := s.apply(ctx, n.MerchantRef, gatewayRef, status, s.paidAt(paidAtUnix))
	res.VerifiedBy = verifiedBy
	res.Strategy = strategy
	metrics.RecordWebhook(verifiedBy, string(res.Outcome))

	if res.Outcome == OutcomeRejected {
		return nil, api.ErrSignatureInvalid
	}

	if res.Outcome == OutcomeUnknownReference {
		return res, fmt.Errorf("%w: %s", api.ErrUnknownReference, n.MerchantRef)
	}
	return res, nil
}

func (s *service) ReconcileRef(ctx context.Context, merchantRef string) (*Result, error) {
	merchantRef = strings.TrimSpace(merchantRef)
	if merchantRef == "" {
		return nil, api.Invalid("merchantRef", "is required")
	}

	txn, err := s.transactions.GetByExternalRef(ctx, merchantRef)
	if errors.Is(err, transaction.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", api.ErrUnknownReference, merchantRef)
	}
	if err != nil {
		return nil, fmt.Errorf("load transaction: %w", err)
	}

	id := merchantRef
	if txn.GatewayReference != nil && *txn.GatewayReference != "" {
		id = *txn.GatewayReference
	}

	remote, err := s.gw.TransactionDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if remote.MerchantRef != merchantRef {
		return nil, api.Invalid("merchantRef", "gateway returned %q for %q", remote.MerchantRef, merchantRef)
	}

	res := s.apply(ctx, merchantRef, "", remote.Status, s.paidAt(remote.PaidAt))
	res.VerifiedBy = VerifiedByOperator
	metrics.RecordWebhook(VerifiedByOperator, string(res.Outcome))
	return res, res.Err
}

// verifyRemote accepts a notification when the gateway's own record agrees
// with the claimed merchant reference and amount. Any error fails closed.
func (s *service) verifyRemote(ctx context.Context, n *Notification, claimed int64) (*gateway.Transaction, bool) {
	if n.MerchantRef == "" {
		return nil, false
	}

	id := n.Reference
	if id == "" {
		id = n.MerchantRef
	}

	timeout := s.cfg.VerifyTimeout
	if timeout <= 0 {
		timeout = defaultVerifyTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	remote, err := s.gw.TransactionDetail(ctx, id)
	if err != nil {
		logger.Warn("fallback verification failed", "merchant_ref", n.MerchantRef, "error", err)
		return nil, false
	}
	if remote.Amount != claimed || remote.MerchantRef != n.MerchantRef {
		logger.Warn("fallback verification mismatch",
			"merchant_ref", n.MerchantRef,
			"remote_merchant_ref", remote.MerchantRef,
			"amount", claimed,
			"remote_amount", remote.Amount,
		)
		return nil, false
	}
	return remote, true
}

// apply moves the transaction out of PENDING at most once and activates the
// plan on a fresh PAID transition. A non-empty gatewayRef must equal the
// gateway reference recorded at checkout.
func (s *service) apply(ctx context.Context, merchantRef, gatewayRef, rawStatus string, paidAt time.Time) *Result {
	res := &Result{MerchantRef: merchantRef, Status: transaction.Normalize(rawStatus)}

	txn, err := s.transactions.GetByExternalRef(ctx, merchantRef)
	if errors.Is(err, transaction.ErrNotFound) {
		logger.Warn("notification for unknown reference acknowledged", "merchant_ref", merchantRef, "status", rawStatus)
		res.Outcome = OutcomeUnknownReference
		return res
	}
	if err != nil {
		return s.storeFailure(ctx, res, fmt.Errorf("load transaction: %w", err))
	}

	if gatewayRef != "" && (txn.GatewayReference == nil || *txn.GatewayReference != gatewayRef) {
		logger.Warn("notification reference does not match transaction",
			"merchant_ref", merchantRef,
			"reference", gatewayRef,
		)
		res.Outcome = OutcomeRejected
		return res
	}

	if res.Status == transaction.StatusPending {
		logger.Info("notification left transaction pending", "merchant_ref", merchantRef, "status", rawStatus)
		res.Outcome = OutcomePending
		return res
	}

	var paid *time.Time
	if res.Status == transaction.StatusPaid {
		paid = &paidAt
		res.PaidAt = paid
	}

	var (
		fresh     bool
		activated *subscription.Subscription
	)
	err = db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		ok, err := s.transactions.MarkStatus(ctx, tx, merchantRef, res.Status, paid)
		if err != nil {
			return err
		}
		fresh = ok
		if !fresh || res.Status != transaction.StatusPaid {
			return nil
		}

		sub := subscription.Activate(txn.Plan, paidAt)
		sub.UserID = txn.UserID
		ref := merchantRef
		sub.TransactionRef = &ref
		if err := s.subscriptions.Insert(ctx, tx, &sub); err != nil {
			return fmt.Errorf("insert subscription: %w", err)
		}
		activated = &sub
		return nil
	})
	if err != nil {
		return s.storeFailure(ctx, res, err)
	}

	if !fresh {
		logger.Info("notification replay ignored", "merchant_ref", merchantRef, "status", res.Status)
		res.Outcome = OutcomeReplayed
		return res
	}

	if res.Status == transaction.StatusExpired {
		logger.Info("transaction expired", "merchant_ref", merchantRef)
		res.Outcome = OutcomeExpired
		return res
	}

	res.Outcome = OutcomePaid
	res.Subscription = activated
	metrics.RecordSubscription(activated.PlanName)
	logger.Info("subscription activated",
		"merchant_ref", merchantRef,
		"user_id", txn.UserID,
		"plan", activated.PlanName,
		"expires_at", activated.ExpiresAt,
	)

	s.afterActivation(ctx, txn, activated)
	return res
}

func (s *service) afterActivation(ctx context.Context, txn *transaction.Transaction, sub *subscription.Subscription) {
	if err := s.profiles.UpdatePlanMirror(ctx, txn.UserID, sub.PlanName, sub.ExpiresAt); err != nil {
		logger.Error("failed to mirror plan onto profile", "user_id", txn.UserID, "merchant_ref", txn.ExternalRef, "error", err)
		s.alert(ctx, "profile plan mirror failed", fmt.Sprintf("user_id=%d merchant_ref=%s plan=%s: %v", txn.UserID, txn.ExternalRef, sub.PlanName, err))
	}

	profile, err := s.profiles.FindByID(ctx, txn.UserID)
	if err != nil {
		logger.Warn("payment receipt skipped, profile unavailable", "user_id", txn.UserID, "error", err)
		return
	}

	err = s.notifier.PaymentReceipt(ctx, notify.Receipt{
		To:          profile.Email,
		Name:        profile.DisplayName(),
		Plan:        sub.PlanName,
		Amount:      txn.Amount,
		MerchantRef: txn.ExternalRef,
		ExpiresAt:   sub.ExpiresAt,
	})
	if err != nil {
		logger.Warn("failed to queue payment receipt", "user_id", txn.UserID, "error", err)
	}
}

func (s *service) storeFailure(ctx context.Context, res *Result, err error) *Result {
	logger.Error("reconciliation persistence failed",
		"merchant_ref", res.MerchantRef,
		"status", res.Status,
		"error", err,
	)
	s.alert(ctx, "payment reconciliation failed", fmt.Sprintf("merchant_ref=%s status=%s: %v", res.MerchantRef, res.Status, err))

	res.Outcome = OutcomeStoreError
	res.Err = err
	return res
}

func (s *service) alert(ctx context.Context, subject, detail string) {
	if err := s.notifier.OperatorAlert(ctx, subject, detail); err != nil {
		logger.Error("failed to queue operator alert", "subject", subject, "error", err)
	}
}

// paidAt never returns a time later than now.
func (s *service) paidAt(unix *int64) time.Time {
	now := s.now().UTC()
	if unix == nil || *unix <= 0 {
		return now
	}
	t := time.Unix(*unix, 0).UTC()
	if t.After(now) {
		return now
	}
	return t
}
