package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/credits/deduct", "200", 0.1)
	RecordHTTPRequest("POST", "/credits/deduct", "200", 0.2)
	RecordHTTPRequest("POST", "/credits/deduct", "402", 0.05)

	assert.Equal(t, float64(2), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/credits/deduct", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/credits/deduct", "402")))
}

func TestRecordCheckout(t *testing.T) {
	CheckoutsTotal.Reset()

	RecordCheckout("Basic", "created")
	RecordCheckout("Free", "free")

	assert.Equal(t, float64(1), testutil.ToFloat64(CheckoutsTotal.WithLabelValues("Basic", "created")))
	assert.Equal(t, float64(1), testutil.ToFloat64(CheckoutsTotal.WithLabelValues("Free", "free")))
}

func TestRecordWebhook(t *testing.T) {
	WebhooksTotal.Reset()

	RecordWebhook("signature", "paid")
	RecordWebhook("signature", "paid")
	RecordWebhook("none", "rejected")

	assert.Equal(t, float64(2), testutil.ToFloat64(WebhooksTotal.WithLabelValues("signature", "paid")))
	assert.Equal(t, float64(1), testutil.ToFloat64(WebhooksTotal.WithLabelValues("none", "rejected")))
}

func TestRecordDeduction(t *testing.T) {
	DeductionsTotal.Reset()
	before := testutil.ToFloat64(CreditsDeducted)

	RecordDeduction("ok", 6)
	RecordDeduction("insufficient", 0)

	assert.Equal(t, float64(1), testutil.ToFloat64(DeductionsTotal.WithLabelValues("ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(DeductionsTotal.WithLabelValues("insufficient")))
	assert.Equal(t, before+6, testutil.ToFloat64(CreditsDeducted))
}

func TestRecordCreditGrant_IgnoresNonPositive(t *testing.T) {
	before := testutil.ToFloat64(CreditsGranted)

	RecordCreditGrant(0)
	RecordCreditGrant(25)

	assert.Equal(t, before+25, testutil.ToFloat64(CreditsGranted))
}

func TestRecordMeteredAction(t *testing.T) {
	MeteredActionsTotal.Reset()

	RecordMeteredAction("edit_image", "user", "bypassed")

	assert.Equal(t, float64(1), testutil.ToFloat64(MeteredActionsTotal.WithLabelValues("edit_image", "user", "bypassed")))
}

func TestRecordSubscription(t *testing.T) {
	SubscriptionsActivatedTotal.Reset()

	RecordSubscription("Basic")
	RecordSubscription("Basic")
	RecordSubscription("Pro")

	assert.Equal(t, float64(2), testutil.ToFloat64(SubscriptionsActivatedTotal.WithLabelValues("Basic")))
	assert.Equal(t, float64(1), testutil.ToFloat64(SubscriptionsActivatedTotal.WithLabelValues("Pro")))
}

func TestRecordNotification(t *testing.T) {
	NotificationsTotal.Reset()

	RecordNotification("operator_alert", "queued")

	assert.Equal(t, float64(1), testutil.ToFloat64(NotificationsTotal.WithLabelValues("operator_alert", "queued")))
}

func TestRecordBalanceAfterDebit_IsOneSeries(t *testing.T) {
	RecordBalanceAfterDebit(4)
	RecordBalanceAfterDebit(900)

	assert.Equal(t, 1, testutil.CollectAndCount(WalletBalanceAfterDebit))
}
