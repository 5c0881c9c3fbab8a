// Package identity looks up the backend identity record of a wallet address.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/chainsafe/land-registry-session/internal/metrics"
	"github.com/chainsafe/land-registry-session/pkg/config"
	"github.com/chainsafe/land-registry-session/pkg/retry"
)

const (
	connectWalletPath = "/connect-wallet"

	// Limit error-body reads so we don't slurp huge responses.
	maxErrBodyBytes = 4096
)

var (
	// ErrBackendUnreachable is returned when every attempt failed at the transport or server level
	ErrBackendUnreachable = errors.New("identity backend unreachable")
	// ErrBackendRejected is returned for well-formed but unsuccessful or malformed responses
	ErrBackendRejected = errors.New("identity backend rejected the request")
)

// Client calls the backend identity endpoint
type Client struct {
	cfg        *config.BackendConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new identity Client. A nil httpClient uses a default client.
func NewClient(cfg *config.BackendConfig, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		cfg:        cfg,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Connect looks up the backend record for address. A missing record is a valid
// outcome reported as Exists=false with no error.
func (c *Client) Connect(ctx context.Context, address common.Address) (*Result, error) {
	wallet := strings.ToLower(address.Hex())

	policy := retry.Fixed(c.cfg.MaxAttempts-1, c.cfg.RetryDelay)
	policy.OnRetry = func(attempt int, err error, next time.Duration) {
		c.logger.Warn("Backend connect-wallet failed, retrying",
			zap.String("wallet_address", wallet),
			zap.Int("attempt", attempt),
			zap.Duration("next_attempt_in", next),
			zap.Error(err))
	}

	var result *Result
	err := retry.Do(ctx, policy, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()

		res, err := c.connect(attemptCtx, wallet)
		if err != nil {
			if errors.Is(err, ErrBackendRejected) {
				return retry.Permanent(err)
			}
			if ctx.Err() != nil {
				return retry.Permanent(ctx.Err())
			}
			return err
		}
		result = res
		return nil
	})

	switch {
	case err == nil:
		metrics.BackendRequests.WithLabelValues(outcome(result)).Inc()
		return result, nil
	case errors.Is(err, ErrBackendRejected):
		metrics.BackendRequests.WithLabelValues("rejected").Inc()
		return nil, err
	case ctx.Err() != nil:
		return nil, err
	default:
		metrics.BackendRequests.WithLabelValues("unreachable").Inc()
		return nil, fmt.Errorf("%w: %v", ErrBackendUnreachable, err)
	}
}

func (c *Client) connect(ctx context.Context, wallet string) (*Result, error) {
	body, err := json.Marshal(connectRequest{WalletAddress: wallet})
	if err != nil {
		return nil, fmt.Errorf("marshal connect request: %w", err)
	}

	url := strings.TrimRight(c.cfg.BaseURL, "/") + connectWalletPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %v", ErrBackendRejected, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call connect-wallet: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &Result{}, nil
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return nil, readHTTPError(resp)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: %v", ErrBackendRejected, readHTTPError(resp))
	}

	var cr connectResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrBackendRejected, err)
	}
	if !cr.Success {
		msg := cr.Message
		if msg == "" {
			msg = "unsuccessful response"
		}
		return nil, fmt.Errorf("%w: %s", ErrBackendRejected, msg)
	}
	if !cr.UserExists {
		return &Result{}, nil
	}
	if cr.Data == nil {
		return nil, fmt.Errorf("%w: user exists but no data returned", ErrBackendRejected)
	}
	cr.Data.WalletAddress = strings.ToLower(cr.Data.WalletAddress)

	return &Result{Exists: true, User: cr.Data}, nil
}

func readHTTPError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrBodyBytes))
	msg := strings.TrimSpace(string(b))
	if msg == "" {
		return fmt.Errorf("http %d", resp.StatusCode)
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode, msg)
}

func outcome(r *Result) string {
	if r.Exists {
		return "found"
	}
	return "not_found"
}
