package checkout

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/mock"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/gateway"
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
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactions) GetByExternalRef(ctx context.Context, externalRef string) (*transaction.Transaction, error) {
	args := m.Called(ctx, externalRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockTransactions) SetGatewayReference(ctx context.Context, externalRef, reference string) error {
	args := m.Called(ctx, externalRef, reference)
	return args.Error(0)
}

func (m *MockTransactions) MarkStatus(ctx context.Context, q sqlx.ExecerContext, externalRef string, status transaction.Status, paidAt *time.Time) (bool, error) {
	args := m.Called(ctx, q, externalRef, status, paidAt)
	return args.Bool(0), args.Error(1)
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
	args := m.Called(ctx, userID, planName, expiresAt)
	return args.Error(0)
}

type MockChannels struct {
	mock.Mock
}

func (m *MockChannels) IsActive(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}
