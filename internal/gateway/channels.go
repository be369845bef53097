package gateway

import (
	"context"
	"strings"
	"sync"
	"time"
)

type ChannelSource interface {
	PaymentChannels(ctx context.Context) ([]Channel, error)
}

// ChannelCache holds the last fetched payment-channel list until expiresAt.
type ChannelCache struct {
	source ChannelSource
	ttl    time.Duration
	now    func() time.Time

	mu        sync.Mutex
	payload   []Channel
	expiresAt time.Time
}

func NewChannelCache(source ChannelSource, ttl time.Duration) *ChannelCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &ChannelCache{source: source, ttl: ttl, now: time.Now}
}

// Get returns the cached list, refreshing it from the source once expired.
func (c *ChannelCache) Get(ctx context.Context) ([]Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.payload != nil && c.now().Before(c.expiresAt) {
		return c.payload, nil
	}

	channels, err := c.source.PaymentChannels(ctx)
	if err != nil {
		return nil, err
	}
	if channels == nil {
		channels = []Channel{}
	}
	c.payload = channels
	c.expiresAt = c.now().Add(c.ttl)
	return channels, nil
}

// IsActive reports whether code names an active channel.
func (c *ChannelCache) IsActive(ctx context.Context, code string) (bool, error) {
	channels, err := c.Get(ctx)
	if err != nil {
		return false, err
	}
	for _, ch := range channels {
		if strings.EqualFold(ch.Code, code) {
			return ch.Active, nil
		}
	}
	return false, nil
}

func (c *ChannelCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payload = nil
	c.expiresAt = time.Time{}
}
