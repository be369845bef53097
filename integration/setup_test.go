package integration_test

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/require"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/db"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/logger"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/notify"
)

// setupTestDB connects to TEST_DSN, applies the migrations and empties every
// table. Tests are skipped when TEST_DSN is unset.
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test")
	}
	dsn := os.Getenv("TEST_DSN")
	if dsn == "" {
		t.Skip("Skipping integration test: TEST_DSN not set")
	}

	database, err := db.Connect(dsn)
	if err != nil {
		t.Skipf("Skipping integration test: cannot connect to test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database, "../migrations"))

	_, err = database.Exec(`TRUNCATE ledger, credits_wallet, subscriptions, transactions, profiles RESTART IDENTITY CASCADE`)
	require.NoError(t, err)

	prev := logger.Get()
	logger.Set(slogt.New(t))
	t.Cleanup(func() { logger.Set(prev) })

	return database
}

type nopNotifier struct{}

func (nopNotifier) PaymentReceipt(ctx context.Context, r notify.Receipt) error { return nil }

func (nopNotifier) OperatorAlert(ctx context.Context, subject, detail string) error { return nil }
