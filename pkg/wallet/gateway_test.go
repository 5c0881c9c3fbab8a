package wallet

import (
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chainsafe/land-registry-session/pkg/config"
	"github.com/chainsafe/land-registry-session/pkg/ethrpc"
)

var (
	alice = common.HexToAddress("0xAbCdEf0123456789aBcDeF0123456789AbCdEf01")
	bob   = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func testWalletConfig() config.WalletConfig {
	return config.WalletConfig{
		PromptTimeout:      time.Second,
		PromptMaxRetries:   3,
		RetryDelay:         time.Millisecond,
		UnlockTimeout:      200 * time.Millisecond,
		UnlockPollInterval: 5 * time.Millisecond,
		WatchInterval:      5 * time.Millisecond,
	}
}

func newTestGateway(t *testing.T, cfg config.WalletConfig) (*Gateway, *ethrpc.Server) {
	t.Helper()
	node, err := ethrpc.NewServer(&config.DevWalletConfig{
		ChainID:  31337,
		Accounts: []string{alice.Hex()},
	}, zap.NewNop())
	require.NoError(t, err)

	client := node.Client()
	g := NewGateway(client, cfg, zap.NewNop())
	t.Cleanup(func() {
		g.Close()
		client.Close()
		node.Stop()
	})
	return g, node
}

func TestUnavailableGateway(t *testing.T) {
	g := NewGateway(nil, testWalletConfig(), zap.NewNop())
	ctx := context.Background()

	assert.False(t, g.IsAvailable())

	_, err := g.RequestAccounts(ctx, 3)
	assert.ErrorIs(t, err, ErrWalletUnavailable)

	_, err = g.ListAccounts(ctx)
	assert.ErrorIs(t, err, ErrWalletUnavailable)

	_, err = g.ChainID(ctx)
	assert.ErrorIs(t, err, ErrWalletUnavailable)

	assert.False(t, g.WaitUntilUnlocked(ctx, time.Second))
	assert.ErrorIs(t, g.Watch(ctx), ErrWalletUnavailable)
}

func TestDial_EmptyURLIsUnavailable(t *testing.T) {
	g := Dial(context.Background(), config.WalletConfig{}, zap.NewNop())
	defer g.Close()

	assert.False(t, g.IsAvailable())
	assert.Nil(t, g.RPCClient())
}

func TestRequestAccounts_Approved(t *testing.T) {
	g, node := newTestGateway(t, testWalletConfig())

	accounts, err := g.RequestAccounts(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{alice}, accounts)
	assert.Equal(t, 1, node.Prompts())
}

func TestRequestAccounts_RejectionIsNotRetried(t *testing.T) {
	g, node := newTestGateway(t, testWalletConfig())
	node.RejectPrompts(5)

	_, err := g.RequestAccounts(context.Background(), 3)
	require.ErrorIs(t, err, ErrUserRejected)
	assert.Equal(t, 1, node.Prompts())
}

func TestRequestAccounts_TimeoutIsRetried(t *testing.T) {
	cfg := testWalletConfig()
	cfg.PromptTimeout = 20 * time.Millisecond
	g, node := newTestGateway(t, cfg)
	node.SetPromptDelay(time.Second)

	_, err := g.RequestAccounts(context.Background(), 1)
	require.ErrorIs(t, err, ErrTimeout)
	assert.Equal(t, 2, node.Prompts())
}

func TestRequestAccounts_CancelledContext(t *testing.T) {
	g, node := newTestGateway(t, testWalletConfig())
	node.SetPromptDelay(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := g.RequestAccounts(ctx, 3)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestListAccountsAndChainID(t *testing.T) {
	g, node := newTestGateway(t, testWalletConfig())
	ctx := context.Background()

	accounts, err := g.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)

	node.SetAuthorized(true)
	accounts, err = g.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []common.Address{alice}, accounts)

	id, err := g.ChainID(ctx)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(31337), id)
}

func TestWaitUntilUnlocked(t *testing.T) {
	g, node := newTestGateway(t, testWalletConfig())
	node.SetAuthorized(true)
	node.SetLocked(true)

	assert.False(t, g.WaitUntilUnlocked(context.Background(), 30*time.Millisecond))

	go func() {
		time.Sleep(20 * time.Millisecond)
		node.SetLocked(false)
	}()
	assert.True(t, g.WaitUntilUnlocked(context.Background(), time.Second))
}

func TestWatch_NotifiesHandlers(t *testing.T) {
	g, node := newTestGateway(t, testWalletConfig())
	node.SetAuthorized(true)

	var (
		mu       sync.Mutex
		accounts [][]common.Address
		chains   []*big.Int
	)
	accSub := g.OnAccountsChanged(func(a []common.Address) {
		mu.Lock()
		defer mu.Unlock()
		accounts = append(accounts, a)
	})
	defer accSub.Unsubscribe()
	chainSub := g.OnChainChanged(func(id *big.Int) {
		mu.Lock()
		defer mu.Unlock()
		chains = append(chains, id)
	})
	defer chainSub.Unsubscribe()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- g.Watch(ctx) }()

	// let the watcher record its baseline
	time.Sleep(50 * time.Millisecond)
	node.SetAccounts(bob)
	node.SetChainID(1)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(accounts) == 1 && len(chains) == 1
	}, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	assert.Equal(t, []common.Address{bob}, accounts[0])
	assert.Equal(t, int64(1), chains[0].Int64())
	mu.Unlock()

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestClose_ReleasesHandlers(t *testing.T) {
	g, _ := newTestGateway(t, testWalletConfig())

	sub := g.OnAccountsChanged(func([]common.Address) {})
	g.Close()

	select {
	case <-sub.Err():
	case <-time.After(time.Second):
		t.Fatal("subscription not released on close")
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t,
		[]string{"0xabcdef0123456789abcdef0123456789abcdef01"},
		Normalize(alice))
}
