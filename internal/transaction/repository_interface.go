package transaction

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	Create(ctx context.Context, tx *Transaction) error
	GetByExternalRef(ctx context.Context, externalRef string) (*Transaction, error)
	SetGatewayReference(ctx context.Context, externalRef, reference string) error
	// MarkStatus moves a PENDING transaction to status through q and reports
	// whether this call performed the transition.
	MarkStatus(ctx context.Context, q sqlx.ExecerContext, externalRef string, status Status, paidAt *time.Time) (bool, error)
}
