package integration_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/wallet"
)

func TestConcurrentDeductions_Integration(t *testing.T) {
	database := setupTestDB(t)
	svc := wallet.NewService(wallet.NewRepository(database))
	ctx := context.Background()

	_, err := svc.Grant(ctx, 1, 10, "seed")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Deduct(ctx, 1, 6, wallet.ReasonGeneration, fmt.Sprintf("job-%d", i))
		}(i)
	}
	wg.Wait()

	succeeded, insufficient := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, wallet.ErrInsufficientCredits):
			insufficient++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, insufficient)

	w, err := svc.Balance(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(4), w.Balance)

	entries, err := svc.History(ctx, 1, 10, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestDeductReplay_Integration(t *testing.T) {
	database := setupTestDB(t)
	svc := wallet.NewService(wallet.NewRepository(database))
	ctx := context.Background()

	_, err := svc.Grant(ctx, 2, 10, "seed")
	require.NoError(t, err)

	first, err := svc.Deduct(ctx, 2, 3, wallet.ReasonImageEdit, "edit-1")
	require.NoError(t, err)
	second, err := svc.Deduct(ctx, 2, 3, wallet.ReasonImageEdit, "edit-1")
	require.NoError(t, err)

	assert.Equal(t, int64(7), first.NewBalance)
	assert.Equal(t, first.NewBalance, second.NewBalance)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.LedgerEntry.ID, second.LedgerEntry.ID)

	var count int
	require.NoError(t, database.Get(&count, `SELECT COUNT(*) FROM ledger WHERE user_id = 2`))
	assert.Equal(t, 2, count)
}

func TestReusedKeyForDifferentRequest_Integration(t *testing.T) {
	database := setupTestDB(t)
	svc := wallet.NewService(wallet.NewRepository(database))
	ctx := context.Background()

	_, err := svc.Grant(ctx, 4, 10, "seed")
	require.NoError(t, err)
	_, err = svc.Deduct(ctx, 4, 1, wallet.ReasonCaption, "job-1")
	require.NoError(t, err)

	_, err = svc.Deduct(ctx, 4, 3, wallet.ReasonImageEdit, "job-1")
	require.ErrorIs(t, err, wallet.ErrIdempotencyConflict)
	_, err = svc.Grant(ctx, 4, 100, "job-1")
	require.ErrorIs(t, err, wallet.ErrIdempotencyConflict)

	w, err := svc.Balance(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(9), w.Balance)
}

func TestDeductWithoutWallet_Integration(t *testing.T) {
	database := setupTestDB(t)
	svc := wallet.NewService(wallet.NewRepository(database))

	_, err := svc.Deduct(context.Background(), 3, 1, wallet.ReasonCaption, "caption-1")
	require.ErrorIs(t, err, wallet.ErrInsufficientCredits)

	w, err := svc.Balance(context.Background(), 3)
	require.NoError(t, err)
	assert.Zero(t, w.Balance)
}
