package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/api"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/config"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/gateway"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/logger"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/metrics"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/subscription"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/transaction"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/user"
)

const gatewayName = "tripay"

var ErrGatewayNotConfigured = &api.ValidationError{Message: "payment gateway is not configured"}

type Request struct {
	UserID int
	Email  string
	Plan   string
	Method string
}

type Result struct {
	PaymentURL  string
	MerchantRef string
}

// ChannelChecker reports whether a payment method is currently offered.
type ChannelChecker interface {
	IsActive(ctx context.Context, code string) (bool, error)
}

type Service interface {
	CreateCheckout(ctx context.Context, req Request) (*Result, error)
}

type service struct {
	gw           gateway.API
	channels     ChannelChecker
	transactions transaction.Repository
	profiles     user.Repository
	gwCfg        config.GatewayConfig
	cfg          config.CheckoutConfig
	now          func() time.Time
}

func NewService(
	gw gateway.API,
	channels ChannelChecker,
	transactions transaction.Repository,
	profiles user.Repository,
	gwCfg config.GatewayConfig,
	cfg config.CheckoutConfig,
) Service {
	return &service{
		gw:           gw,
		channels:     channels,
		transactions: transactions,
		profiles:     profiles,
		gwCfg:        gwCfg,
		cfg:          cfg,
		now:          time.Now,
	}
}

func (s *service) CreateCheckout(ctx context.Context, req Request) (*Result, error) {
	if req.UserID <= 0 {
		return nil, api.ErrUnauthenticated
	}

	plan, ok := subscription.FindPlan(req.Plan)
	if !ok {
		return nil, api.Invalid("plan", "unknown plan %q", req.Plan)
	}

	if plan.Free() {
		metrics.RecordCheckout(plan.Name, "free")
		return &Result{PaymentURL: s.cfg.SuccessURL}, nil
	}

	if !s.gwCfg.Configured() {
		metrics.RecordCheckout(plan.Name, "not_configured")
		return nil, ErrGatewayNotConfigured
	}

	method, err := s.resolveMethod(ctx, req.Method)
	if err != nil {
		metrics.RecordCheckout(plan.Name, "invalid_method")
		return nil, err
	}

	now := s.now()
	merchantRef := fmt.Sprintf("%s-%d-%d", s.cfg.RefPrefix, req.UserID, now.UnixMilli())
	name, email := s.customer(ctx, req)

	recorded := true
	pending := &transaction.Transaction{
		UserID:        req.UserID,
		Plan:          plan.Name,
		Amount:        plan.Price,
		Status:        transaction.StatusPending,
		ExternalRef:   merchantRef,
		Gateway:       gatewayName,
		PaymentMethod: &method,
	}
	if err := s.transactions.Create(ctx, pending); err != nil {
		recorded = false
		logger.Error("failed to record pending transaction", "merchant_ref", merchantRef, "user_id", req.UserID, "error", err)
	}

	gwReq := gateway.CreateRequest{
		Method:        method,
		MerchantRef:   merchantRef,
		Amount:        plan.Price,
		CustomerName:  name,
		CustomerEmail: email,
		OrderItems: []gateway.OrderItem{{
			SKU:      "PLAN-" + strings.ToUpper(plan.Name),
			Name:     "UMKM Kit Studio " + plan.Name,
			Price:    plan.Price,
			Quantity: 1,
		}},
		ReturnURL:   s.cfg.ReturnURL,
		CallbackURL: s.cfg.CallbackURL,
		ExpiredTime: now.Add(s.expiry()).Unix(),
		Signature:   gateway.CheckoutSignature(s.gwCfg.PrivateKey, s.gwCfg.MerchantCode, merchantRef, plan.Price),
	}

	remote, err := s.gw.CreateTransaction(ctx, gwReq)
	if err != nil {
		metrics.RecordCheckout(plan.Name, "gateway_error")
		logger.Error("gateway rejected checkout", "merchant_ref", merchantRef, "error", err)

		var gerr *api.GatewayError
		if errors.As(err, &gerr) {
			return nil, err
		}
		return nil, &api.GatewayError{Op: "create_transaction", Message: "request failed", Err: err}
	}
	if remote.CheckoutURL == "" {
		metrics.RecordCheckout(plan.Name, "gateway_error")
		return nil, &api.GatewayError{Op: "create_transaction", Message: "no checkout url returned"}
	}

	if recorded && remote.Reference != "" {
		if err := s.transactions.SetGatewayReference(ctx, merchantRef, remote.Reference); err != nil {
			logger.Warn("failed to record gateway reference", "merchant_ref", merchantRef, "error", err)
		}
	}

	metrics.RecordCheckout(plan.Name, "created")
	logger.Info("checkout created", "merchant_ref", merchantRef, "plan", plan.Name, "amount", plan.Price, "method", method)

	return &Result{PaymentURL: remote.CheckoutURL, MerchantRef: merchantRef}, nil
}

// resolveMethod applies the default channel and rejects inactive ones. The
// check is skipped when the channel list is unavailable.
func (s *service) resolveMethod(ctx context.Context, method string) (string, error) {
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		return s.cfg.DefaultMethod, nil
	}
	if s.channels == nil {
		return method, nil
	}

	active, err := s.channels.IsActive(ctx, method)
	if err != nil {
		logger.Warn("payment channel list unavailable, skipping method check", "method", method, "error", err)
		return method, nil
	}
	if !active {
		return "", api.Invalid("method", "payment method %s is not available", method)
	}
	return method, nil
}

func (s *service) customer(ctx context.Context, req Request) (string, string) {
	name, email := "", req.Email

	if s.profiles != nil {
		p, err := s.profiles.FindByID(ctx, req.UserID)
		switch {
		case err == nil:
			if p.Email != "" {
				email = p.Email
			}
			name = p.FullName
		case !errors.Is(err, user.ErrNotFound):
			logger.Warn("failed to load profile for checkout", "user_id", req.UserID, "error", err)
		}
	}

	if name == "" {
		name = email
	}
	if name == "" {
		name = "Customer"
	}
	return name, email
}

func (s *service) expiry() time.Duration {
	if s.cfg.Expiry > 0 {
		return s.cfg.Expiry
	}
	return 24 * time.Hour
}
