package ethereum

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/chainsafe/land-registry-session/pkg/ethereum/contracts"
)

// ChainHandle bundles the network connection, the registry binding and the active
// account. A handle is never mutated after Connect returns it; reconnecting
// produces a new handle.
type ChainHandle struct {
	ChainID         *big.Int
	ContractAddress common.Address
	// Contract is nil until both an account and a deployed registry are available
	Contract *contracts.LandRegistryCaller
	// Account is nil when the handle was set up without a signer
	Account *common.Address

	client *ethclient.Client
	owned  bool
}

// CallOpts returns call options bound to ctx with the active account as sender.
// It is safe on a nil handle.
func (h *ChainHandle) CallOpts(ctx context.Context) *bind.CallOpts {
	opts := &bind.CallOpts{Context: ctx}
	if h != nil && h.Account != nil {
		opts.From = *h.Account
	}
	return opts
}

// HasContract reports whether the registry binding is available
func (h *ChainHandle) HasContract() bool {
	return h != nil && h.Contract != nil
}

// Close releases the RPC connection when the handle dialed its own
func (h *ChainHandle) Close() {
	if h != nil && h.owned && h.client != nil {
		h.client.Close()
	}
}
