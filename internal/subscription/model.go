package subscription

import (
	"strings"
	"time"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusExpired Status = "expired"

	// Period is how long one paid plan stays active.
	Period = 30 * 24 * time.Hour
)

type Plan struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

// Free reports whether the plan is activated without a payment.
func (p Plan) Free() bool {
	return p.Price == 0
}

var plans = []Plan{
	{Name: "Free", Price: 0, Currency: "IDR", Description: "Starter catalog with pay-per-use credits"},
	{Name: "Basic", Price: 49900, Currency: "IDR", Description: "Monthly plan for a single storefront"},
	{Name: "Pro", Price: 99900, Currency: "IDR", Description: "Monthly plan with priority generation"},
	{Name: "Business", Price: 199900, Currency: "IDR", Description: "Monthly plan for teams and multiple storefronts"},
}

func Plans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

// FindPlan returns the canonical plan matching name, ignoring case.
func FindPlan(name string) (Plan, bool) {
	name = strings.TrimSpace(name)
	for _, p := range plans {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Plan{}, false
}

type Subscription struct {
	ID             int       `db:"id" json:"id"`
	UserID         int       `db:"user_id" json:"userId"`
	PlanName       string    `db:"plan_name" json:"planName"`
	Status         Status    `db:"status" json:"status"`
	ExpiresAt      time.Time `db:"expires_at" json:"expiresAt"`
	TransactionRef *string   `db:"transaction_ref" json:"transactionRef,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// Activate builds the subscription granted by a payment settled at paidAt.
func Activate(plan string, paidAt time.Time) Subscription {
	return Subscription{
		PlanName:  plan,
		Status:    StatusActive,
		ExpiresAt: paidAt.Add(Period),
	}
}

// Active reports whether the subscription still grants its plan at t.
func (s *Subscription) Active(t time.Time) bool {
	return s.Status == StatusActive && t.Before(s.ExpiresAt)
}
