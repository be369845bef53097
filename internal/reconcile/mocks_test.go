package reconcile

import (
	"context"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/gateway"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/notify"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/subscription"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/transaction"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/user"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateTransaction(ctx context.Context, req gateway.CreateRequest) (*gateway.Transaction, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Transaction), args.Error(1)
}

func (m *MockGateway) TransactionDetail(ctx context.Context, reference string) (*gateway.Transaction, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.Transaction), args.Error(1)
}

func (m *MockGateway) PaymentChannels(ctx context.Context) ([]gateway.Channel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]gateway.Channel), args.Error(1)
}

type MockTransactions struct {
	mock.Mock
}

func (m *MockTransactions) Create(ctx context.Context, tx *transaction.Transaction) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactions) GetByExternalRef(ctx context.Context, externalRef string) (*transaction.Transaction, error) {
	args := m.Called(ctx, externalRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockTransactions) SetGatewayReference(ctx context.Context, externalRef, reference string) error {
	return m.Called(ctx, externalRef, reference).Error(0)
}

func (m *MockTransactions) MarkStatus(ctx context.Context, q sqlx.ExecerContext, externalRef string, status transaction.Status, paidAt *time.Time) (bool, error) {
	args := m.Called(ctx, q, externalRef, status, paidAt)
	return args.Bool(0), args.Error(1)
}

type MockSubscriptions struct {
	mock.Mock
}

func (m *MockSubscriptions) Insert(ctx context.Context, q sqlx.QueryerContext, sub *subscription.Subscription) error {
	return m.Called(ctx, q, sub).Error(0)
}

func (m *MockSubscriptions) Latest(ctx context.Context, userID int) (*subscription.Subscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

type MockProfiles struct {
	mock.Mock
}

func (m *MockProfiles) FindByID(ctx context.Context, userID int) (*user.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.Profile), args.Error(1)
}

func (m *MockProfiles) UpdatePlanMirror(ctx context.Context, userID int, planName string, expiresAt time.Time) error {
	return m.Called(ctx, userID, planName, expiresAt).Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) PaymentReceipt(ctx context.Context, r notify.Receipt) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockNotifier) OperatorAlert(ctx context.Context, subject, detail string) error {
	return m.Called(ctx, subject, detail).Error(0)
}

// memTransactions keeps transaction rows in memory and applies the same
// conditional status write as the Postgres repository.
type memTransactions struct {
	mu   sync.Mutex
	rows map[string]*transaction.Transaction
}

func newMemTransactions(rows ...*transaction.Transaction) *memTransactions {
	m := &memTransactions{rows: map[string]*transaction.Transaction{}}
	for _, r := range rows {
		m.rows[r.ExternalRef] = r
	}
	return m
}

func (m *memTransactions) Create(ctx context.Context, tx *transaction.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[tx.ExternalRef] = tx
	return nil
}

func (m *memTransactions) GetByExternalRef(ctx context.Context, externalRef string) (*transaction.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[externalRef]
	if !ok {
		return nil, transaction.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (m *memTransactions) SetGatewayReference(ctx context.Context, externalRef, reference string) error {
	return nil
}

func (m *memTransactions) MarkStatus(ctx context.Context, q sqlx.ExecerContext, externalRef string, status transaction.Status, paidAt *time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[externalRef]
	if !ok || status == transaction.StatusPending || row.Status != transaction.StatusPending {
		return false, nil
	}
	row.Status = status
	row.PaidAt = paidAt
	return true, nil
}

func (m *memTransactions) status(ref string) transaction.Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows[ref].Status
}
