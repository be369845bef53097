package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFindPlan(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
		found bool
	}{
		{"Free", "Free", 0, true},
		{"Basic", "Basic", 49900, true},
		{"Pro lowercase", "pro", 99900, true},
		{"Business padded", " Business ", 199900, true},
		{"Unknown", "Enterprise", 0, false},
		{"Empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := FindPlan(tt.input)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, p.Price)
		})
	}
}

func TestPlans_ReturnsCopy(t *testing.T) {
	got := Plans()
	got[1].Price = 1

	p, _ := FindPlan("Basic")
	assert.Equal(t, int64(49900), p.Price)
	assert.True(t, got[0].Free())
}

func TestActivate(t *testing.T) {
	paidAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	sub := Activate("Basic", paidAt)

	assert.Equal(t, "Basic", sub.PlanName)
	assert.Equal(t, StatusActive, sub.Status)
	assert.Equal(t, paidAt.Add(30*24*time.Hour), sub.ExpiresAt)
	assert.True(t, sub.Active(paidAt.Add(29*24*time.Hour)))
	assert.False(t, sub.Active(sub.ExpiresAt))
}
