// Package session owns the wallet session: who is using the client, with what
// on-chain authority, and whether that view is still fresh. The Machine drives the
// wallet, the registry contract and the identity backend through probe, connect,
// reload and disconnect, and publishes a single consistent Snapshot.
package session

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/event"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/chainsafe/land-registry-session/internal/metrics"
	"github.com/chainsafe/land-registry-session/pkg/config"
	"github.com/chainsafe/land-registry-session/pkg/ethereum"
	"github.com/chainsafe/land-registry-session/pkg/identity"
	"github.com/chainsafe/land-registry-session/pkg/retry"
	"github.com/chainsafe/land-registry-session/pkg/role"
	"github.com/chainsafe/land-registry-session/pkg/wallet"
)

const (
	triggerProbe   = "probe"
	triggerConnect = "connect"
	triggerReload  = "reload"
)

// User-visible error messages published on the snapshot
const (
	MsgNotInstalled    = "MetaMask is not installed. Please install MetaMask to continue."
	MsgRejected        = "Connection request was rejected. Please approve the request in MetaMask to continue."
	MsgTimeout         = "MetaMask did not respond in time. Please try again."
	MsgNoAccounts      = "No accounts found. Please unlock MetaMask and try again."
	MsgBackendRejected = "Failed to verify your wallet with the server. Please try again."
	MsgConnectFailed   = "Failed to connect wallet. Please try again."
)

var (
	ErrWalletNotInstalled  = errors.New("wallet not installed")
	ErrOperationInProgress = errors.New("session operation already in progress")
	ErrSuperseded          = errors.New("session operation superseded")
	ErrNoAccounts          = errors.New("wallet returned no accounts")
)

// Wallet is the wallet provider gateway used by the machine
type Wallet interface {
	IsAvailable() bool
	RequestAccounts(ctx context.Context, maxRetries int) ([]common.Address, error)
	ListAccounts(ctx context.Context) ([]common.Address, error)
	WaitUntilUnlocked(ctx context.Context, timeout time.Duration) bool
	OnAccountsChanged(handler func([]common.Address)) event.Subscription
	OnChainChanged(handler func(*big.Int)) event.Subscription
	Watch(ctx context.Context) error
}

// ChainConnector builds chain handles
type ChainConnector interface {
	Connect(ctx context.Context, account *common.Address) (*ethereum.ChainHandle, error)
}

// RoleResolver resolves the on-chain role of an account
type RoleResolver interface {
	Resolve(opts *bind.CallOpts, contract role.Contract, account common.Address) (role.Role, error)
}

// IdentityClient looks up the backend identity record of an account
type IdentityClient interface {
	Connect(ctx context.Context, address common.Address) (*identity.Result, error)
}

// Settings tunes the machine
type Settings struct {
	PromptMaxRetries   int
	UnlockTimeout      time.Duration
	ContractRetryDelay time.Duration
	ProbeOnStart       bool
}

// SettingsFromConfig extracts the machine settings from the agent configuration
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		PromptMaxRetries:   cfg.Wallet.PromptMaxRetries,
		UnlockTimeout:      cfg.Wallet.UnlockTimeout,
		ContractRetryDelay: cfg.Session.ContractRetryDelay,
		ProbeOnStart:       cfg.Session.ProbeOnStart,
	}
}

// Machine is the session state machine. It is the only writer of the session
// snapshot and the only owner of the chain handle.
type Machine struct {
	wallet   Wallet
	chain    ChainConnector
	resolver RoleResolver
	identity IdentityClient
	settings Settings
	logger   *zap.Logger

	mu         sync.RWMutex
	snapshot   Snapshot
	handle     *ethereum.ChainHandle
	generation uint64
	inflight   string
	// active is the account being reconciled or connected, zero when none
	active    common.Address
	prompting bool

	// sendMu keeps feed deliveries in publish order
	sendMu sync.Mutex
	feed   event.Feed
	scope  event.SubscriptionScope

	lifecycle   sync.Mutex
	cancel      context.CancelFunc
	watcherDone chan struct{}
	walletSubs  []event.Subscription
}

// NewMachine creates a session machine in the initial state
func NewMachine(
	w Wallet,
	chain ChainConnector,
	resolver RoleResolver,
	identityClient IdentityClient,
	settings Settings,
	logger *zap.Logger,
) *Machine {
	m := &Machine{
		wallet:   w,
		chain:    chain,
		resolver: resolver,
		identity: identityClient,
		settings: settings,
		logger:   logger,
		snapshot: Initial(),
	}
	setStateGauge(StateIdle)
	return m
}

// Start registers the wallet event handlers, starts the wallet watcher and runs
// the silent probe when enabled. Wallet events reload the session until Close.
func (m *Machine) Start(ctx context.Context) error {
	m.lifecycle.Lock()
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	if m.wallet.IsAvailable() {
		m.walletSubs = append(m.walletSubs,
			m.wallet.OnAccountsChanged(func(accounts []common.Address) {
				if m.ownsAccounts(accounts) {
					m.logger.Debug("Wallet reported the session's own account, no reload",
						zap.Strings("accounts", wallet.Normalize(accounts...)))
					return
				}
				m.onWalletEvent(runCtx, "accountsChanged")
			}),
			m.wallet.OnChainChanged(func(chainID *big.Int) {
				m.onWalletEvent(runCtx, "chainChanged")
			}),
		)

		m.watcherDone = make(chan struct{})
		go func(done chan struct{}) {
			defer close(done)
			if err := m.wallet.Watch(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				m.logger.Warn("Wallet watcher stopped", zap.Error(err))
			}
		}(m.watcherDone)
	}
	m.lifecycle.Unlock()

	if !m.settings.ProbeOnStart {
		return nil
	}
	return m.Probe(ctx)
}

// ownsAccounts reports whether an accountsChanged event only reflects the account
// this session is already prompting for, reconciling or connected to.
func (m *Machine) ownsAccounts(accounts []common.Address) bool {
	if len(accounts) == 0 {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.prompting {
		return true
	}
	return m.active != (common.Address{}) && accounts[0] == m.active
}

func (m *Machine) onWalletEvent(ctx context.Context, name string) {
	m.logger.Info("Wallet changed, reloading session", zap.String("event", name))
	if err := m.Reload(ctx); err != nil && !errors.Is(err, context.Canceled) {
		m.logger.Warn("Session reload failed", zap.String("event", name), zap.Error(err))
	}
}

// Close stops the watcher, releases every wallet registration and subscriber,
// and drops the chain handle.
func (m *Machine) Close() {
	m.lifecycle.Lock()
	if m.cancel != nil {
		m.cancel()
	}
	done := m.watcherDone
	subs := m.walletSubs
	m.walletSubs = nil
	m.lifecycle.Unlock()

	if done != nil {
		<-done
	}
	for _, sub := range subs {
		sub.Unsubscribe()
	}
	m.scope.Close()

	m.mu.Lock()
	m.generation++
	m.inflight = ""
	m.active = common.Address{}
	handle := m.handle
	m.handle = nil
	m.mu.Unlock()
	handle.Close()
}

// Snapshot returns the current session snapshot
func (m *Machine) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshot
}

// IsWalletInstalled reports whether a wallet provider is available
func (m *Machine) IsWalletInstalled() bool {
	return m.wallet.IsAvailable()
}

// Subscribe delivers every published snapshot to ch. The subscriber must keep
// draining ch; publishing waits for delivery.
func (m *Machine) Subscribe(ch chan<- Snapshot) event.Subscription {
	return m.scope.Track(m.feed.Subscribe(ch))
}

// Probe is the silent reconnection path. It never prompts the user: with no
// authorized account the session settles in Disconnected, otherwise the first
// account is reconciled.
func (m *Machine) Probe(ctx context.Context) error {
	token, gen, err := m.begin()
	if err != nil {
		return err
	}
	defer m.end(token)

	start := time.Now()
	prior := m.Snapshot()
	m.publish(gen, func(s *Snapshot) {
		*s = Initial()
		s.State = StateProbing
		s.IsLoading = true
	})

	if !m.wallet.IsAvailable() {
		m.logger.Debug("No wallet provider, session disconnected")
		m.publishWithHandle(gen, nil, m.disconnected(""))
		metrics.ConnectAttempts.WithLabelValues(triggerProbe, "disconnected").Inc()
		return nil
	}

	accounts, err := m.wallet.ListAccounts(ctx)
	if err != nil {
		m.logger.Warn("Failed to list authorized accounts", zap.Error(err))
		metrics.ErrorsTotal.WithLabelValues("wallet", "list_accounts").Inc()
	}

	if len(accounts) == 0 {
		handle, err := m.chain.Connect(ctx, nil)
		if err != nil {
			m.logger.Warn("Failed to set up chain handle without signer", zap.Error(err))
		}
		m.publishWithHandle(gen, handle, func(s *Snapshot) {
			m.disconnected("")(s)
			s.Web3State.Provider = providerName(handle)
		})
		metrics.ConnectAttempts.WithLabelValues(triggerProbe, "disconnected").Inc()
		return nil
	}

	_, err = m.reconcile(ctx, gen, prior, accounts[0], triggerProbe, start)
	return err
}

// Connect is the explicit, user-initiated connection. It prompts the wallet for
// permission and reconciles the first returned account. A wallet that is not
// installed fails fast without any network call.
func (m *Machine) Connect(ctx context.Context) (*ConnectResult, error) {
	token, gen, err := m.begin()
	if err != nil {
		return nil, err
	}
	defer m.end(token)

	if !m.wallet.IsAvailable() {
		m.publish(gen, func(s *Snapshot) {
			s.State = StateDisconnected
			s.IsLoading = false
			s.Error = MsgNotInstalled
		})
		metrics.ConnectAttempts.WithLabelValues(triggerConnect, "not_installed").Inc()
		return nil, ErrWalletNotInstalled
	}

	start := time.Now()
	prior := m.Snapshot()
	m.publish(gen, func(s *Snapshot) {
		s.IsLoading = true
		s.Error = ""
	})

	m.setPrompting(true)
	accounts, err := m.wallet.RequestAccounts(ctx, m.settings.PromptMaxRetries)
	if err == nil && len(accounts) == 0 {
		err = ErrNoAccounts
	}
	if err != nil {
		m.setPrompting(false)
		m.logger.Warn("Wallet connection failed", zap.Error(err))
		metrics.ConnectAttempts.WithLabelValues(triggerConnect, "failed").Inc()
		metrics.ErrorsTotal.WithLabelValues("wallet", errorType(err)).Inc()
		if !m.fail(gen, prior, "", connectErrorMessage(err)) {
			return nil, ErrSuperseded
		}
		return nil, err
	}
	m.track(gen, accounts[0])

	if !m.wallet.WaitUntilUnlocked(ctx, m.settings.UnlockTimeout) {
		m.logger.Warn("Wallet did not report unlocked accounts in time, continuing",
			zap.Duration("timeout", m.settings.UnlockTimeout))
	}

	return m.reconcile(ctx, gen, prior, accounts[0], triggerConnect, start)
}

// Disconnect drops the chain handle and resets the session. Any operation in
// flight is superseded and its late result dropped.
func (m *Machine) Disconnect() Snapshot {
	m.mu.Lock()
	m.generation++
	m.inflight = ""
	m.active = common.Address{}
	handle := m.handle
	m.handle = nil
	m.snapshot = Initial()
	m.snapshot.State = StateDisconnected
	snap := m.snapshot
	m.sendMu.Lock()
	m.mu.Unlock()

	setStateGauge(snap.State)
	m.feed.Send(snap)
	m.sendMu.Unlock()

	handle.Close()
	m.logger.Info("Session disconnected")
	return snap
}

// Reload resets the session, replaces the chain handle and re-runs the silent
// probe. It supersedes any operation in flight.
func (m *Machine) Reload(ctx context.Context) error {
	m.mu.Lock()
	m.generation++
	m.inflight = ""
	m.active = common.Address{}
	handle := m.handle
	m.handle = nil
	m.snapshot = Initial()
	snap := m.snapshot
	m.sendMu.Lock()
	m.mu.Unlock()

	setStateGauge(snap.State)
	m.feed.Send(snap)
	m.sendMu.Unlock()

	handle.Close()
	metrics.ConnectAttempts.WithLabelValues(triggerReload, "reset").Inc()
	return m.Probe(ctx)
}

type reconciliation struct {
	role   role.Role
	result *identity.Result
}

// reconcile builds the chain handle for account, then resolves the role and the
// backend identity concurrently. Nothing is published until both settle, and
// nothing but the failure is published when ctx ends first.
func (m *Machine) reconcile(ctx context.Context, gen uint64, prior Snapshot, account common.Address, trigger string, start time.Time) (*ConnectResult, error) {
	address := strings.ToLower(account.Hex())
	logger := m.logger.With(zap.String("wallet_address", address), zap.String("trigger", trigger))
	m.track(gen, account)

	handle, err := m.chain.Connect(ctx, &account)
	if err != nil {
		logger.Warn("Failed to set up chain handle, role will be NONE", zap.Error(err))
		metrics.ErrorsTotal.WithLabelValues("chain", "setup").Inc()
	}

	if !m.publish(gen, func(s *Snapshot) {
		s.State = StateReconciling
		s.IsLoading = true
		s.Error = ""
	}) {
		handle.Close()
		return nil, ErrSuperseded
	}

	var rec reconciliation
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rec.role = m.resolveRole(gctx, handle, account, logger)
		return nil
	})
	g.Go(func() error {
		res, err := m.identity.Connect(gctx, account)
		switch {
		case errors.Is(err, identity.ErrBackendUnreachable):
			logger.Warn("Backend identity lookup failed, treating wallet as new user", zap.Error(err))
			metrics.ErrorsTotal.WithLabelValues("identity", "unreachable").Inc()
			res = &identity.Result{}
		case err != nil:
			return err
		}
		rec.result = res
		return nil
	})
	err = g.Wait()
	metrics.ReconcileDuration.WithLabelValues(trigger).Observe(time.Since(start).Seconds())

	if ctxErr := ctx.Err(); ctxErr != nil {
		logger.Warn("Reconciliation abandoned", zap.Error(ctxErr))
		metrics.ConnectAttempts.WithLabelValues(trigger, "abandoned").Inc()
		handle.Close()
		if !m.fail(gen, prior, address, connectErrorMessage(ctxErr)) {
			return nil, ErrSuperseded
		}
		return nil, ctxErr
	}

	if err != nil {
		msg := MsgConnectFailed
		if errors.Is(err, identity.ErrBackendRejected) {
			msg = MsgBackendRejected
			metrics.ErrorsTotal.WithLabelValues("identity", "rejected").Inc()
		} else {
			metrics.ErrorsTotal.WithLabelValues("identity", "failed").Inc()
		}
		logger.Warn("Backend identity lookup failed the attempt", zap.Error(err))
		metrics.ConnectAttempts.WithLabelValues(trigger, "failed").Inc()
		handle.Close()
		if !m.publishWithHandle(gen, nil, m.disconnected(msg)) {
			return nil, ErrSuperseded
		}
		return nil, err
	}

	if !m.publishWithHandle(gen, handle, func(s *Snapshot) {
		*s = Snapshot{
			State:         StateConnected,
			IsConnected:   true,
			WalletAddress: address,
			User:          rec.result.User,
			Web3State: Web3State{
				Account:  address,
				Role:     rec.role,
				Provider: providerName(handle),
				Contract: contractName(handle),
			},
		}
	}) {
		logger.Debug("Dropping superseded reconciliation result")
		metrics.ConnectAttempts.WithLabelValues(trigger, "superseded").Inc()
		return nil, ErrSuperseded
	}

	metrics.ConnectAttempts.WithLabelValues(trigger, "connected").Inc()
	metrics.RoleResolutions.WithLabelValues(rec.role.String()).Inc()
	logger.Info("Session connected",
		zap.Stringer("role", rec.role),
		zap.Bool("user_exists", rec.result.Exists),
		zap.Duration("duration", time.Since(start)))

	return &ConnectResult{
		WalletAddress: address,
		UserExists:    rec.result.Exists,
		UserData:      rec.result.User,
	}, nil
}

// resolveRole retries a failed contract read exactly once, since a freshly
// authorized signer may not be ready right after the unlock wait.
func (m *Machine) resolveRole(ctx context.Context, handle *ethereum.ChainHandle, account common.Address, logger *zap.Logger) role.Role {
	var contract role.Contract
	if handle.HasContract() {
		contract = handle.Contract
	}

	var resolved role.Role
	policy := retry.Fixed(1, m.settings.ContractRetryDelay)
	policy.OnRetry = func(attempt int, err error, next time.Duration) {
		logger.Debug("Role resolution failed, retrying once", zap.Duration("next_attempt_in", next), zap.Error(err))
	}
	err := retry.Do(ctx, policy, func(ctx context.Context) error {
		r, err := m.resolver.Resolve(handle.CallOpts(ctx), contract, account)
		if err != nil && contract == nil {
			return retry.Permanent(err)
		}
		resolved = r
		return err
	})
	if err != nil {
		logger.Warn("Failed to resolve on-chain role, defaulting to NONE", zap.Error(err))
		metrics.ErrorsTotal.WithLabelValues("role", "unreachable").Inc()
		return role.None
	}
	return resolved
}

// track records account as the session's own once the attempt owning gen has it
func (m *Machine) track(gen uint64, account common.Address) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompting = false
	if gen == m.generation {
		m.active = account
	}
}

func (m *Machine) setPrompting(v bool) {
	m.mu.Lock()
	m.prompting = v
	m.mu.Unlock()
}

// begin takes the in-flight token
func (m *Machine) begin() (string, uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inflight != "" {
		return "", 0, ErrOperationInProgress
	}
	m.inflight = uuid.NewString()
	return m.inflight, m.generation, nil
}

// end releases the in-flight token unless it was superseded meanwhile
func (m *Machine) end(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.inflight == token {
		m.inflight = ""
	}
}

// publish applies update to the snapshot and fans it out, unless gen is stale
func (m *Machine) publish(gen uint64, update func(*Snapshot)) bool {
	m.mu.Lock()
	if gen != m.generation {
		m.mu.Unlock()
		return false
	}
	update(&m.snapshot)
	snap := m.snapshot
	m.sendMu.Lock()
	m.mu.Unlock()

	setStateGauge(snap.State)
	m.feed.Send(snap)
	m.sendMu.Unlock()
	return true
}

// publishWithHandle is publish that also replaces the chain handle. A stale
// publish closes handle instead.
func (m *Machine) publishWithHandle(gen uint64, handle *ethereum.ChainHandle, update func(*Snapshot)) bool {
	var old *ethereum.ChainHandle
	ok := m.publish(gen, func(s *Snapshot) {
		old = m.handle
		m.handle = handle
		update(s)
	})
	if !ok {
		handle.Close()
		return false
	}
	if old != handle {
		old.Close()
	}
	return true
}

// disconnected resets the snapshot. The returned update runs under mu.
func (m *Machine) disconnected(msg string) func(*Snapshot) {
	return func(s *Snapshot) {
		m.active = common.Address{}
		*s = Initial()
		s.State = StateDisconnected
		s.Error = msg
	}
}

// fail publishes a failed attempt. A session that was connected to address, or to
// any account when address is empty, keeps its snapshot and handle and only carries
// msg; anything else settles in Disconnected.
func (m *Machine) fail(gen uint64, prior Snapshot, address, msg string) bool {
	if prior.State == StateConnected && (address == "" || prior.WalletAddress == address) {
		return m.publish(gen, func(s *Snapshot) {
			*s = prior
			s.IsLoading = false
			s.Error = msg
		})
	}
	return m.publishWithHandle(gen, nil, m.disconnected(msg))
}

func providerName(h *ethereum.ChainHandle) string {
	if h == nil || h.ChainID == nil {
		return ""
	}
	return "eip155:" + h.ChainID.String()
}

func contractName(h *ethereum.ChainHandle) string {
	if !h.HasContract() {
		return ""
	}
	return strings.ToLower(h.ContractAddress.Hex())
}

func connectErrorMessage(err error) string {
	switch {
	case errors.Is(err, wallet.ErrWalletUnavailable):
		return MsgNotInstalled
	case errors.Is(err, wallet.ErrUserRejected):
		return MsgRejected
	case errors.Is(err, wallet.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return MsgTimeout
	case errors.Is(err, ErrNoAccounts):
		return MsgNoAccounts
	default:
		return MsgConnectFailed
	}
}

func errorType(err error) string {
	switch {
	case errors.Is(err, wallet.ErrUserRejected):
		return "rejected"
	case errors.Is(err, wallet.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrNoAccounts):
		return "no_accounts"
	default:
		return "request_accounts"
	}
}

func setStateGauge(current State) {
	for _, st := range States {
		v := 0.0
		if st == current {
			v = 1
		}
		metrics.SessionState.WithLabelValues(string(st)).Set(v)
	}
}
