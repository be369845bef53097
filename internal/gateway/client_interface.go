package gateway

import "context"

// API is the outbound surface of the payment gateway used by checkout and
// reconciliation.
type API interface {
	CreateTransaction(ctx context.Context, req CreateRequest) (*Transaction, error)
	TransactionDetail(ctx context.Context, reference string) (*Transaction, error)
	PaymentChannels(ctx context.Context) ([]Channel, error)
}
