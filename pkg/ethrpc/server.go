// Package ethrpc implements a development wallet node. It answers the EIP-1193
// account methods a browser wallet exposes together with the read-only chain
// methods needed to query the land registry contract, so the session agent can
// run end to end without a browser.
package ethrpc

import (
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/chainsafe/land-registry-session/pkg/config"
	"github.com/chainsafe/land-registry-session/pkg/ethereum/contracts"
)

// registryCode is returned by eth_getCode for the configured registry address.
var registryCode = []byte{0x60, 0x80, 0x60, 0x40}

// Server handles wallet and chain JSON-RPC requests
type Server struct {
	logger    *zap.Logger
	registry  abi.ABI
	rpcServer *rpc.Server

	mu           sync.Mutex
	chainID      *big.Int
	accounts     []common.Address
	authorized   bool
	locked       bool
	rejectPrompt int
	promptDelay  time.Duration
	prompts      int
	revert       bool
	contract     common.Address
	grants       map[common.Address]map[common.Hash]bool
}

// NewServer creates a development wallet node from cfg
func NewServer(cfg *config.DevWalletConfig, logger *zap.Logger) (*Server, error) {
	parsedABI, err := contracts.LandRegistryMetaData.GetAbi()
	if err != nil {
		return nil, fmt.Errorf("failed to parse registry ABI: %w", err)
	}

	s := &Server{
		logger:     logger,
		registry:   *parsedABI,
		rpcServer:  rpc.NewServer(),
		chainID:    big.NewInt(cfg.ChainID),
		authorized: cfg.Authorized,
		grants:     make(map[common.Address]map[common.Hash]bool),
	}
	for _, a := range cfg.Accounts {
		s.accounts = append(s.accounts, common.HexToAddress(a))
	}
	if cfg.RegistryContract != "" {
		s.contract = common.HexToAddress(cfg.RegistryContract)
	}
	for account, roles := range cfg.Grants {
		for _, name := range roles {
			s.Grant(common.HexToAddress(account), name)
		}
	}

	apis := map[string]interface{}{
		"eth":  NewEthAPI(s),
		"net":  NewNetAPI(s),
		"web3": NewWeb3API(),
		"dev":  NewDevAPI(s),
	}
	for namespace, api := range apis {
		if err := s.rpcServer.RegisterName(namespace, api); err != nil {
			return nil, fmt.Errorf("failed to register %s API: %w", namespace, err)
		}
	}

	logger.Info("Development wallet initialized",
		zap.Int64("chain_id", cfg.ChainID),
		zap.Int("accounts", len(s.accounts)),
		zap.Bool("authorized", cfg.Authorized),
		zap.String("registry_contract", cfg.RegistryContract))

	return s, nil
}

// ServeHTTP handles HTTP requests
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	s.rpcServer.ServeHTTP(w, r)
}

// Client returns an in-process RPC client attached to this node
func (s *Server) Client() *rpc.Client {
	return rpc.DialInProc(s.rpcServer)
}

// Stop shuts down the RPC server and closes in-process connections
func (s *Server) Stop() {
	s.rpcServer.Stop()
}

// SetAccounts replaces the wallet's accounts
func (s *Server) SetAccounts(accounts ...common.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append([]common.Address(nil), accounts...)
}

// SetAuthorized sets whether the accounts are already shared with the client
func (s *Server) SetAuthorized(authorized bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authorized = authorized
}

// SetLocked locks or unlocks the wallet. A locked wallet reports no accounts.
func (s *Server) SetLocked(locked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = locked
}

// RejectPrompts makes the next n permission prompts fail with a user rejection
func (s *Server) RejectPrompts(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectPrompt = n
}

// SetPromptDelay delays every permission prompt answer by d
func (s *Server) SetPromptDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.promptDelay = d
}

// Prompts returns how many permission prompts were shown
func (s *Server) Prompts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prompts
}

// SetChainID switches the wallet to another network
func (s *Server) SetChainID(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chainID = big.NewInt(id)
}

// SetRegistry sets the address where the registry contract is deployed.
// The zero address removes the deployment.
func (s *Server) SetRegistry(addr common.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contract = addr
}

// SetRevert makes every registry call revert
func (s *Server) SetRevert(revert bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revert = revert
}

// Grant gives account the named registry role (ADMIN, REGISTRAR, COURT or TAX_AUTHORITY)
func (s *Server) Grant(account common.Address, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.grants[account] == nil {
		s.grants[account] = make(map[common.Hash]bool)
	}
	s.grants[account][RoleID(name)] = true
}

// Revoke removes the named registry role from account
func (s *Server) Revoke(account common.Address, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.grants[account], RoleID(name))
}

// RoleID returns the on-chain identifier of a registry role name.
// ADMIN maps to the zero default admin role.
func RoleID(name string) common.Hash {
	name = strings.ToUpper(name)
	if name == "ADMIN" || name == "DEFAULT_ADMIN_ROLE" {
		return common.Hash{}
	}
	if !strings.HasSuffix(name, "_ROLE") {
		name += "_ROLE"
	}
	return crypto.Keccak256Hash([]byte(name))
}
