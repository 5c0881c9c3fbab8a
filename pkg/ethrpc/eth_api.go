package ethrpc

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
)

// EthAPI implements the eth_* JSON-RPC namespace
type EthAPI struct {
	server *Server
}

// NewEthAPI creates a new EthAPI instance
func NewEthAPI(server *Server) *EthAPI {
	return &EthAPI{server: server}
}

// ChainId returns the chain ID (EIP-155)
func (api *EthAPI) ChainId() *hexutil.Big {
	api.server.mu.Lock()
	defer api.server.mu.Unlock()
	return (*hexutil.Big)(new(big.Int).Set(api.server.chainID))
}

// BlockNumber returns the latest block number
func (api *EthAPI) BlockNumber() hexutil.Uint64 {
	return 1
}

// Accounts returns the accounts shared with the client. A locked or
// unauthorized wallet returns an empty list.
func (api *EthAPI) Accounts() []common.Address {
	s := api.server
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.locked || !s.authorized {
		return []common.Address{}
	}
	return append([]common.Address{}, s.accounts...)
}

// RequestAccounts shows the permission prompt (EIP-1102). Approving it unlocks
// the wallet and authorizes the client.
func (api *EthAPI) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	s := api.server
	s.mu.Lock()
	s.prompts++
	if s.rejectPrompt > 0 {
		s.rejectPrompt--
		s.mu.Unlock()
		s.logger.Info("Permission prompt rejected")
		return nil, userRejectedError{}
	}
	delay := s.promptDelay
	s.mu.Unlock()

	if delay > 0 {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.authorized = true
	s.locked = false

	s.logger.Info("Permission prompt approved", zap.Int("accounts", len(s.accounts)))
	return append([]common.Address{}, s.accounts...), nil
}

// GetCode returns the code at an address. Only the registry address has code.
func (api *EthAPI) GetCode(ctx context.Context, address common.Address, blockNrOrHash rpc.BlockNumberOrHash) (hexutil.Bytes, error) {
	s := api.server
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.contract != (common.Address{}) && address == s.contract {
		return registryCode, nil
	}
	return hexutil.Bytes{}, nil
}

// Call executes a read-only registry call
func (api *EthAPI) Call(ctx context.Context, args CallArgs, blockNrOrHash *rpc.BlockNumberOrHash) (hexutil.Bytes, error) {
	s := api.server
	s.mu.Lock()
	defer s.mu.Unlock()

	if args.To == nil || s.contract == (common.Address{}) || *args.To != s.contract {
		// Calls to accounts without code succeed with empty output
		return hexutil.Bytes{}, nil
	}
	if s.revert {
		return nil, &revertError{reason: "registry unavailable"}
	}

	input := args.GetData()
	if len(input) < 4 {
		return nil, fmt.Errorf("missing function selector")
	}

	method, err := s.registry.MethodById(input[:4])
	if err != nil {
		return nil, fmt.Errorf("unknown method")
	}

	switch method.Name {
	case "DEFAULT_ADMIN_ROLE":
		return method.Outputs.Pack([32]byte(RoleID("ADMIN")))
	case "REGISTRAR_ROLE":
		return method.Outputs.Pack([32]byte(RoleID("REGISTRAR")))
	case "COURT_ROLE":
		return method.Outputs.Pack([32]byte(RoleID("COURT")))
	case "TAX_AUTHORITY_ROLE":
		return method.Outputs.Pack([32]byte(RoleID("TAX_AUTHORITY")))
	case "getRoleAdmin":
		return method.Outputs.Pack([32]byte(RoleID("ADMIN")))
	case "hasRole":
		values, err := method.Inputs.Unpack(input[4:])
		if err != nil {
			return nil, fmt.Errorf("failed to decode hasRole args: %w", err)
		}
		roleID, ok := values[0].([32]byte)
		if !ok {
			return nil, fmt.Errorf("invalid role")
		}
		account, ok := values[1].(common.Address)
		if !ok {
			return nil, fmt.Errorf("invalid account address")
		}
		return method.Outputs.Pack(s.grants[account][common.Hash(roleID)])
	default:
		return nil, fmt.Errorf("unsupported method: %s", method.Name)
	}
}
