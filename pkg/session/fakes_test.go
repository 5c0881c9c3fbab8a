package session

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"

	"github.com/chainsafe/land-registry-session/pkg/ethereum"
	"github.com/chainsafe/land-registry-session/pkg/ethereum/contracts"
	"github.com/chainsafe/land-registry-session/pkg/identity"
	"github.com/chainsafe/land-registry-session/pkg/role"
)

var (
	alice    = common.HexToAddress("0xABC0000000000000000000000000000000000001")
	bob      = common.HexToAddress("0x00000000000000000000000000000000000B0B02")
	registry = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
)

type fakeWallet struct {
	available         bool
	requestAccounts   func(ctx context.Context, maxRetries int) ([]common.Address, error)
	listAccounts      func(ctx context.Context) ([]common.Address, error)
	waitUntilUnlocked func(ctx context.Context, timeout time.Duration) bool

	accountsFeed event.Feed
	chainFeed    event.Feed

	mu    sync.Mutex
	calls map[string]int
}

func (w *fakeWallet) record(method string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.calls == nil {
		w.calls = make(map[string]int)
	}
	w.calls[method]++
}

func (w *fakeWallet) Calls(method string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.calls[method]
}

func (w *fakeWallet) IsAvailable() bool { return w.available }

func (w *fakeWallet) RequestAccounts(ctx context.Context, maxRetries int) ([]common.Address, error) {
	w.record("RequestAccounts")
	return w.requestAccounts(ctx, maxRetries)
}

func (w *fakeWallet) ListAccounts(ctx context.Context) ([]common.Address, error) {
	w.record("ListAccounts")
	return w.listAccounts(ctx)
}

func (w *fakeWallet) WaitUntilUnlocked(ctx context.Context, timeout time.Duration) bool {
	w.record("WaitUntilUnlocked")
	if w.waitUntilUnlocked == nil {
		return true
	}
	return w.waitUntilUnlocked(ctx, timeout)
}

func (w *fakeWallet) OnAccountsChanged(handler func([]common.Address)) event.Subscription {
	ch := make(chan []common.Address, 1)
	sub := w.accountsFeed.Subscribe(ch)
	go func() {
		for {
			select {
			case v := <-ch:
				handler(v)
			case <-sub.Err():
				return
			}
		}
	}()
	return sub
}

func (w *fakeWallet) OnChainChanged(handler func(*big.Int)) event.Subscription {
	ch := make(chan *big.Int, 1)
	sub := w.chainFeed.Subscribe(ch)
	go func() {
		for {
			select {
			case v := <-ch:
				handler(v)
			case <-sub.Err():
				return
			}
		}
	}()
	return sub
}

func (w *fakeWallet) Watch(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

type fakeConnector struct {
	connect func(ctx context.Context, account *common.Address) (*ethereum.ChainHandle, error)
	mu      sync.Mutex
	calls   []*common.Address
}

func (c *fakeConnector) Connect(ctx context.Context, account *common.Address) (*ethereum.ChainHandle, error) {
	c.mu.Lock()
	c.calls = append(c.calls, account)
	c.mu.Unlock()
	if c.connect != nil {
		return c.connect(ctx, account)
	}
	return deployedHandle(account), nil
}

func (c *fakeConnector) Calls() []*common.Address {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*common.Address(nil), c.calls...)
}

// deployedHandle mimics a connector on a network where the registry is deployed
func deployedHandle(account *common.Address) *ethereum.ChainHandle {
	h := &ethereum.ChainHandle{
		ChainID:         big.NewInt(31337),
		ContractAddress: registry,
		Account:         account,
	}
	if account != nil {
		h.Contract = &contracts.LandRegistryCaller{}
	}
	return h
}

type fakeResolver struct {
	resolve func(ctx context.Context, contract role.Contract, account common.Address) (role.Role, error)
	mu      sync.Mutex
	calls   int
	opts    *bind.CallOpts
}

func (r *fakeResolver) Resolve(opts *bind.CallOpts, contract role.Contract, account common.Address) (role.Role, error) {
	r.mu.Lock()
	r.calls++
	r.opts = opts
	r.mu.Unlock()
	return r.resolve(opts.Context, contract, account)
}

func (r *fakeResolver) LastOpts() *bind.CallOpts {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.opts
}

func (r *fakeResolver) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type fakeIdentity struct {
	connect func(ctx context.Context, address common.Address) (*identity.Result, error)
	mu      sync.Mutex
	calls   int
}

func (f *fakeIdentity) Connect(ctx context.Context, address common.Address) (*identity.Result, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.connect(ctx, address)
}

func (f *fakeIdentity) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
