package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "billing_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	CheckoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_checkouts_total",
			Help: "Checkout attempts by plan and outcome",
		},
		[]string{"plan", "outcome"},
	)

	GatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "billing_gateway_request_duration_seconds",
			Help:    "Outbound payment gateway call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op", "outcome"},
	)

	WebhooksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_webhooks_total",
			Help: "Payment notifications by verification method and outcome",
		},
		[]string{"verified_by", "outcome"},
	)

	DeductionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_credit_deductions_total",
			Help: "Credit deductions by outcome",
		},
		[]string{"outcome"},
	)

	CreditsDeducted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "billing_credits_deducted_total",
			Help: "Total credits debited from wallets",
		},
	)

	CreditsGranted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "billing_credits_granted_total",
			Help: "Total credits granted to wallets",
		},
	)

	// Balances are bucketed, never labelled by user.
	WalletBalanceAfterDebit = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "billing_wallet_balance_after_debit_credits",
			Help:    "Wallet balance left after a successful debit",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	MeteredActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_metered_actions_total",
			Help: "Metered action authorizations by action, credential source and outcome",
		},
		[]string{"action", "credential", "outcome"},
	)

	SubscriptionsActivatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_subscriptions_activated_total",
			Help: "Subscriptions activated by plan",
		},
		[]string{"plan"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "billing_notifications_total",
			Help: "Outbound notifications by kind and status",
		},
		[]string{"kind", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "billing_notification_queue_length",
			Help: "Current length of the notification queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordCheckout(plan, outcome string) {
	CheckoutsTotal.WithLabelValues(plan, outcome).Inc()
}

func RecordGatewayCall(op, outcome string, duration float64) {
	GatewayRequestDuration.WithLabelValues(op, outcome).Observe(duration)
}

func RecordWebhook(verifiedBy, outcome string) {
	WebhooksTotal.WithLabelValues(verifiedBy, outcome).Inc()
}

func RecordDeduction(outcome string, credits int64) {
	DeductionsTotal.WithLabelValues(outcome).Inc()
	if credits > 0 {
		CreditsDeducted.Add(float64(credits))
	}
}

func RecordBalanceAfterDebit(balance int64) {
	WalletBalanceAfterDebit.Observe(float64(balance))
}

func RecordCreditGrant(credits int64) {
	if credits > 0 {
		CreditsGranted.Add(float64(credits))
	}
}

func RecordMeteredAction(action, credential, outcome string) {
	MeteredActionsTotal.WithLabelValues(action, credential, outcome).Inc()
}

func RecordSubscription(plan string) {
	SubscriptionsActivatedTotal.WithLabelValues(plan).Inc()
}

func RecordNotification(kind, status string) {
	NotificationsTotal.WithLabelValues(kind, status).Inc()
}
