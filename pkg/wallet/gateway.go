// Package wallet isolates every interaction with the user's wallet provider:
// account discovery, permission prompts, unlock detection and change events.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/event"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/chainsafe/land-registry-session/internal/metrics"
	"github.com/chainsafe/land-registry-session/pkg/config"
	"github.com/chainsafe/land-registry-session/pkg/retry"
)

// CodeUserRejected is the EIP-1193 provider error code for a request the user declined.
const CodeUserRejected = 4001

var (
	ErrWalletUnavailable = errors.New("wallet provider not available")
	ErrUserRejected      = errors.New("user rejected the request")
	ErrTimeout           = errors.New("wallet did not respond in time")
)

// Provider is the JSON-RPC connection to the wallet. *rpc.Client satisfies it.
type Provider interface {
	CallContext(ctx context.Context, result interface{}, method string, args ...interface{}) error
}

// Gateway wraps a wallet Provider. A Gateway without a provider reports the wallet
// as unavailable and fails every request with ErrWalletUnavailable.
type Gateway struct {
	provider Provider
	client   *rpc.Client
	cfg      config.WalletConfig
	logger   *zap.Logger

	accountsFeed event.Feed
	chainFeed    event.Feed
	scope        event.SubscriptionScope

	closeOnce sync.Once
}

// NewGateway creates a Gateway over provider. provider may be nil.
func NewGateway(provider Provider, cfg config.WalletConfig, logger *zap.Logger) *Gateway {
	return &Gateway{
		provider: provider,
		cfg:      cfg,
		logger:   logger,
	}
}

// Dial connects to the wallet endpoint from cfg. An empty URL or a failed dial
// produces an unavailable Gateway rather than an error.
func Dial(ctx context.Context, cfg config.WalletConfig, logger *zap.Logger) *Gateway {
	if cfg.RPCURL == "" {
		logger.Info("No wallet provider configured")
		return NewGateway(nil, cfg, logger)
	}

	client, err := rpc.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		logger.Warn("Failed to connect to wallet provider", zap.String("rpc_url", cfg.RPCURL), zap.Error(err))
		return NewGateway(nil, cfg, logger)
	}

	logger.Info("Connected to wallet provider", zap.String("rpc_url", cfg.RPCURL))
	g := NewGateway(client, cfg, logger)
	g.client = client
	return g
}

// RPCClient returns the underlying RPC client when the gateway was dialed, or nil.
func (g *Gateway) RPCClient() *rpc.Client {
	return g.client
}

// IsAvailable reports whether a wallet provider is attached. It performs no I/O.
func (g *Gateway) IsAvailable() bool {
	return g.provider != nil
}

// RequestAccounts asks the user to authorize accounts (eth_requestAccounts).
// Each attempt is bounded by the prompt timeout. A user rejection is returned
// immediately; other failures are retried with backoff up to maxRetries times.
func (g *Gateway) RequestAccounts(ctx context.Context, maxRetries int) ([]common.Address, error) {
	if !g.IsAvailable() {
		return nil, ErrWalletUnavailable
	}

	policy := retry.Exponential(maxRetries, g.cfg.RetryDelay)
	policy.OnRetry = func(attempt int, err error, next time.Duration) {
		g.logger.Warn("Wallet permission request failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("next_attempt_in", next),
			zap.Error(err))
	}

	var accounts []common.Address
	err := retry.Do(ctx, policy, func(ctx context.Context) error {
		attemptCtx, cancel := context.WithTimeout(ctx, g.cfg.PromptTimeout)
		defer cancel()

		var result []common.Address
		err := g.call(attemptCtx, &result, "eth_requestAccounts")
		if err == nil {
			accounts = result
			return nil
		}

		switch {
		case isUserRejection(err):
			return retry.Permanent(fmt.Errorf("%w: %v", ErrUserRejected, err))
		case ctx.Err() != nil:
			return retry.Permanent(ctx.Err())
		case errors.Is(attemptCtx.Err(), context.DeadlineExceeded):
			return fmt.Errorf("%w: no answer to permission request within %s", ErrTimeout, g.cfg.PromptTimeout)
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

// ListAccounts returns the accounts already authorized for this client (eth_accounts)
// without prompting the user.
func (g *Gateway) ListAccounts(ctx context.Context) ([]common.Address, error) {
	if !g.IsAvailable() {
		return nil, ErrWalletUnavailable
	}

	var accounts []common.Address
	if err := g.call(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// ChainID returns the chain the wallet is currently connected to (eth_chainId).
func (g *Gateway) ChainID(ctx context.Context) (*big.Int, error) {
	if !g.IsAvailable() {
		return nil, ErrWalletUnavailable
	}

	var id hexutil.Big
	if err := g.call(ctx, &id, "eth_chainId"); err != nil {
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	return id.ToInt(), nil
}

// WaitUntilUnlocked polls the authorized accounts until at least one is visible
// or timeout elapses. It reports whether the wallet was seen unlocked.
func (g *Gateway) WaitUntilUnlocked(ctx context.Context, timeout time.Duration) bool {
	if !g.IsAvailable() {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(g.cfg.UnlockPollInterval)
	defer ticker.Stop()

	for {
		accounts, err := g.ListAccounts(ctx)
		if err == nil && len(accounts) > 0 {
			return true
		}

		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}
	}
}

// OnAccountsChanged registers handler for account changes. The registration is
// released by Unsubscribe or when the gateway is closed.
func (g *Gateway) OnAccountsChanged(handler func([]common.Address)) event.Subscription {
	ch := make(chan []common.Address, 1)
	sub := g.scope.Track(g.accountsFeed.Subscribe(ch))
	go dispatch(ch, sub, handler)
	return sub
}

// OnChainChanged registers handler for network changes. The registration is
// released by Unsubscribe or when the gateway is closed.
func (g *Gateway) OnChainChanged(handler func(*big.Int)) event.Subscription {
	ch := make(chan *big.Int, 1)
	sub := g.scope.Track(g.chainFeed.Subscribe(ch))
	go dispatch(ch, sub, handler)
	return sub
}

func dispatch[T any](ch <-chan T, sub event.Subscription, handler func(T)) {
	for {
		select {
		case v := <-ch:
			handler(v)
		case <-sub.Err():
			return
		}
	}
}

// Watch polls the wallet for account and network changes and notifies the
// registered handlers. The first observation only records a baseline.
// Watch blocks until ctx is done.
func (g *Gateway) Watch(ctx context.Context) error {
	if !g.IsAvailable() {
		return ErrWalletUnavailable
	}

	g.logger.Info("Starting wallet change watcher", zap.Duration("interval", g.cfg.WatchInterval))

	var (
		lastAccounts []common.Address
		lastChain    *big.Int
		seenAccounts bool
	)

	ticker := time.NewTicker(g.cfg.WatchInterval)
	defer ticker.Stop()

	for {
		if accounts, err := g.ListAccounts(ctx); err != nil {
			g.logger.Debug("Wallet watcher failed to list accounts", zap.Error(err))
		} else {
			if seenAccounts && !sameAccounts(lastAccounts, accounts) {
				g.logger.Info("Wallet accounts changed", zap.Strings("accounts", Normalize(accounts...)))
				metrics.WalletEvents.WithLabelValues("accountsChanged").Inc()
				g.accountsFeed.Send(accounts)
			}
			lastAccounts, seenAccounts = accounts, true
		}

		if chainID, err := g.ChainID(ctx); err != nil {
			g.logger.Debug("Wallet watcher failed to read chain id", zap.Error(err))
		} else {
			if lastChain != nil && lastChain.Cmp(chainID) != 0 {
				g.logger.Info("Wallet network changed",
					zap.String("from", lastChain.String()),
					zap.String("to", chainID.String()))
				metrics.WalletEvents.WithLabelValues("chainChanged").Inc()
				g.chainFeed.Send(chainID)
			}
			lastChain = chainID
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Close releases every handler registration. It does not close the provider.
func (g *Gateway) Close() {
	g.closeOnce.Do(func() {
		g.scope.Close()
		if g.client != nil {
			g.client.Close()
		}
	})
}

func (g *Gateway) call(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	err := g.provider.CallContext(ctx, result, method, args...)
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.WalletRequests.WithLabelValues(method, status).Inc()
	return err
}

func isUserRejection(err error) bool {
	var rpcErr rpc.Error
	return errors.As(err, &rpcErr) && rpcErr.ErrorCode() == CodeUserRejected
}

func sameAccounts(a, b []common.Address) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Normalize returns the lowercase 0x-prefixed form of each address.
func Normalize(addrs ...common.Address) []string {
	out := make([]string, len(addrs))
	for i, addr := range addrs {
		out[i] = strings.ToLower(addr.Hex())
	}
	return out
}
