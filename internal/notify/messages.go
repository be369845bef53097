package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/logger"
)

type Receipt struct {
	To          string
	Name        string
	Plan        string
	Amount      int64
	MerchantRef string
	ExpiresAt   time.Time
}

func (s *Service) PaymentReceipt(ctx context.Context, r Receipt) error {
	if r.To == "" {
		logger.Warn("payment receipt skipped, no recipient", "merchant_ref", r.MerchantRef)
		return nil
	}

	subject := "Payment received - " + r.Plan
	body := fmt.Sprintf(`Hi %s,

We received your payment.

Plan: %s
Amount: IDR %d
Invoice: %s
Active until: %s

Thank you for using UMKM Kit Studio.`, r.Name, r.Plan, r.Amount, r.MerchantRef, r.ExpiresAt.Format("Jan 2, 2006"))

	return s.enqueue(ctx, Job{Kind: KindReceipt, To: r.To, Name: r.Name, Subject: subject, Body: body})
}

// OperatorAlert queues a message for the operator mailbox. Without a
// configured mailbox the alert is only logged.
func (s *Service) OperatorAlert(ctx context.Context, subject, detail string) error {
	if s.cfg.OperatorEmail == "" {
		logger.Warn("operator alert", "subject", subject, "detail", detail)
		return nil
	}

	body := fmt.Sprintf("%s\n\n%s\n\nRaised at %s", subject, detail, time.Now().UTC().Format(time.RFC3339))
	return s.enqueue(ctx, Job{
		Kind:    KindOperatorAlert,
		To:      s.cfg.OperatorEmail,
		Name:    "Operator",
		Subject: "[billing] " + subject,
		Body:    body,
	})
}
