package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"

	"github.com/chainsafe/land-registry-session/pkg/config"
	"github.com/chainsafe/land-registry-session/pkg/ethereum/contracts"
	"github.com/chainsafe/land-registry-session/pkg/retry"
)

// ErrNoBackend is returned when neither a chain RPC URL nor a wallet connection is available
var ErrNoBackend = errors.New("no chain backend available")

// Connector builds chain handles. Handles use the configured RPC URL or, when it
// is empty, the wallet's own RPC connection.
type Connector struct {
	config *config.EthereumConfig
	wallet *rpc.Client
	logger *zap.Logger
}

// NewConnector creates a new Connector. wallet may be nil.
func NewConnector(cfg *config.EthereumConfig, wallet *rpc.Client, logger *zap.Logger) *Connector {
	return &Connector{
		config: cfg,
		wallet: wallet,
		logger: logger,
	}
}

// Connect sets up a chain handle for account. A nil account produces a handle
// without signer and without contract binding. Setup calls are retried up to
// ethereum.setup_max_retries times. A registry address without code leaves the
// contract binding nil rather than failing.
func (c *Connector) Connect(ctx context.Context, account *common.Address) (*ChainHandle, error) {
	client, owned, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}

	handle := &ChainHandle{
		Account: account,
		client:  client,
		owned:   owned,
	}
	if c.config.RegistryContract != "" {
		handle.ContractAddress = common.HexToAddress(c.config.RegistryContract)
	}

	var deployed bool
	policy := retry.Fixed(c.config.SetupMaxRetries, c.config.SetupRetryDelay)
	policy.OnRetry = func(attempt int, err error, next time.Duration) {
		c.logger.Warn("Chain setup failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("next_attempt_in", next),
			zap.Error(err))
	}
	err = retry.Do(ctx, policy, func(ctx context.Context) error {
		callCtx, cancel := context.WithTimeout(ctx, c.config.CallTimeout)
		defer cancel()

		chainID, err := client.ChainID(callCtx)
		if err != nil {
			return fmt.Errorf("failed to get chain id: %w", err)
		}
		handle.ChainID = chainID

		if handle.ContractAddress == (common.Address{}) {
			return nil
		}
		code, err := client.CodeAt(callCtx, handle.ContractAddress, nil)
		if err != nil {
			return fmt.Errorf("failed to get registry code: %w", err)
		}
		deployed = len(code) > 0
		return nil
	})
	if err != nil {
		handle.Close()
		return nil, err
	}

	if c.config.ChainID != 0 && handle.ChainID.Cmp(big.NewInt(c.config.ChainID)) != 0 {
		c.logger.Warn("Wallet is connected to an unexpected network",
			zap.String("chain_id", handle.ChainID.String()),
			zap.Int64("expected_chain_id", c.config.ChainID))
	}

	switch {
	case account == nil:
	case handle.ContractAddress == (common.Address{}):
		c.logger.Warn("No registry contract configured")
	case !deployed:
		c.logger.Warn("Registry contract not deployed on the active network",
			zap.String("chain_id", handle.ChainID.String()),
			zap.String("registry_contract", handle.ContractAddress.Hex()))
	default:
		registry, err := contracts.NewLandRegistryCaller(handle.ContractAddress, client)
		if err != nil {
			handle.Close()
			return nil, fmt.Errorf("failed to load registry contract: %w", err)
		}
		handle.Contract = registry
	}

	c.logger.Debug("Chain handle ready",
		zap.String("chain_id", handle.ChainID.String()),
		zap.Bool("signer", account != nil),
		zap.Bool("contract", handle.Contract != nil))

	return handle, nil
}

func (c *Connector) dial(ctx context.Context) (*ethclient.Client, bool, error) {
	if c.config.RPCURL != "" {
		client, err := ethclient.DialContext(ctx, c.config.RPCURL)
		if err != nil {
			return nil, false, fmt.Errorf("failed to connect to Ethereum RPC: %w", err)
		}
		return client, true, nil
	}
	if c.wallet != nil {
		return ethclient.NewClient(c.wallet), false, nil
	}
	return nil, false, ErrNoBackend
}
