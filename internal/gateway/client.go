package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/api"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/config"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/logger"
	"github.com/hendrianz14/UMKM-KIT-STUDIO-sub001/internal/metrics"
)

const (
	opCreate   = "create_transaction"
	opDetail   = "transaction_detail"
	opChannels = "payment_channels"

	maxResponseBytes = 1 << 20
)

// secret fields never copied into an error detail
var redactedKeys = []string{"signature", "private_key", "api_key", "authorization"}

type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *http.Client
}

func NewClient(cfg config.GatewayConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
	}
}

// CreateTransaction opens a remote payment session. It is never retried.
func (c *Client) CreateTransaction(ctx context.Context, req CreateRequest) (*Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var tx Transaction
	if err := c.do(ctx, opCreate, http.MethodPost, "/transaction/create", nil, req, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (c *Client) TransactionDetail(ctx context.Context, reference string) (*Transaction, error) {
	if reference == "" {
		return nil, &api.GatewayError{Op: opDetail, Message: "reference is required"}
	}

	var tx Transaction
	query := url.Values{"reference": []string{reference}}
	if err := c.getWithRetry(ctx, opDetail, "/transaction/detail", query, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (c *Client) PaymentChannels(ctx context.Context) ([]Channel, error) {
	var channels []Channel
	if err := c.getWithRetry(ctx, opChannels, "/merchant/payment-channel", nil, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}

func (c *Client) getWithRetry(ctx context.Context, op, path string, query url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	b := backoff.WithContext(backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(200*time.Millisecond),
		backoff.WithMaxElapsedTime(c.timeout),
	), ctx)

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		err := c.do(ctx, op, http.MethodGet, path, query, nil, out)
		var gerr *api.GatewayError
		if errors.As(err, &gerr) && gerr.StatusCode > 0 && gerr.StatusCode < http.StatusInternalServerError {
			return backoff.Permanent(err)
		}
		if err != nil {
			logger.Warn("gateway call failed, retrying", "op", op, "attempt", attempt, "error", err)
		}
		return err
	}, b)
	if err == nil {
		return nil
	}

	var gerr *api.GatewayError
	if errors.As(err, &gerr) {
		return err
	}
	return &api.GatewayError{Op: op, Message: "request aborted", Err: err}
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body any, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		metrics.RecordGatewayCall(op, outcome, time.Since(start).Seconds())
	}()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(buf)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &api.GatewayError{Op: op, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &api.GatewayError{Op: op, StatusCode: resp.StatusCode, Message: "read response", Err: err}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &api.GatewayError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Message:    "unreadable response",
			Detail:     sanitizeDetail(raw),
		}
	}

	if resp.StatusCode >= http.StatusMultipleChoices || !env.Success {
		status := resp.StatusCode
		if status < http.StatusMultipleChoices {
			status = http.StatusBadRequest
		}
		return &api.GatewayError{
			Op:         op,
			StatusCode: status,
			Message:    env.Message,
			Detail:     sanitizeDetail(raw),
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &api.GatewayError{Op: op, StatusCode: resp.StatusCode, Message: "unexpected data shape", Err: err}
		}
	}
	return nil
}

func sanitizeDetail(raw []byte) any {
	var detail any
	if err := json.Unmarshal(raw, &detail); err != nil {
		s := strings.TrimSpace(string(raw))
		if len(s) > 512 {
			s = s[:512]
		}
		return s
	}
	redact(detail)
	return detail
}

func redact(v any) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			for _, key := range redactedKeys {
				if strings.EqualFold(k, key) {
					delete(t, k)
					child = nil
					break
				}
			}
			if child != nil {
				redact(child)
			}
		}
	case []any:
		for _, child := range t {
			redact(child)
		}
	}
}
