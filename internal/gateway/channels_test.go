package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	calls    int
	channels []Channel
	err      error
}

func (s *stubSource) PaymentChannels(ctx context.Context) ([]Channel, error) {
	s.calls++
	return s.channels, s.err
}

func TestChannelCache_CachesUntilExpiry(t *testing.T) {
	src := &stubSource{channels: []Channel{{Code: "QRIS", Active: true}}}
	cache := NewChannelCache(src, time.Minute)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	_, err := cache.Get(context.Background())
	require.NoError(t, err)
	_, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)

	now = now.Add(2 * time.Minute)
	_, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestChannelCache_ErrorNotCached(t *testing.T) {
	src := &stubSource{err: errors.New("down")}
	cache := NewChannelCache(src, time.Minute)

	_, err := cache.Get(context.Background())
	require.Error(t, err)

	src.err = nil
	src.channels = []Channel{{Code: "BRIVA", Active: true}}
	got, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, 2, src.calls)
}

func TestChannelCache_IsActive(t *testing.T) {
	src := &stubSource{channels: []Channel{
		{Code: "QRIS", Active: true},
		{Code: "MANDIRIVA", Active: false},
	}}
	cache := NewChannelCache(src, time.Minute)

	ok, err := cache.IsActive(context.Background(), "qris")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cache.IsActive(context.Background(), "MANDIRIVA")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = cache.IsActive(context.Background(), "UNKNOWN")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestChannelCache_Invalidate(t *testing.T) {
	src := &stubSource{channels: []Channel{{Code: "QRIS", Active: true}}}
	cache := NewChannelCache(src, time.Hour)

	_, _ = cache.Get(context.Background())
	cache.Invalidate()
	_, _ = cache.Get(context.Background())

	assert.Equal(t, 2, src.calls)
}
