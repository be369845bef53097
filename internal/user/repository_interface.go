package user

import (
	"context"
	"time"
)

type Repository interface {
	FindByID(ctx context.Context, userID int) (*Profile, error)
	UpdatePlanMirror(ctx context.Context, userID int, planName string, expiresAt time.Time) error
}
