package ethereum

import (
	"context"
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
	account  = common.HexToAddress("0x1111111111111111111111111111111111111111")
	registry = common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
)

func newTestNode(t *testing.T) *ethrpc.Server {
	t.Helper()
	node, err := ethrpc.NewServer(&config.DevWalletConfig{
		ChainID:          31337,
		Accounts:         []string{account.Hex()},
		RegistryContract: registry.Hex(),
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(node.Stop)
	return node
}

func testEthereumConfig() *config.EthereumConfig {
	return &config.EthereumConfig{
		RegistryContract: registry.Hex(),
		SetupMaxRetries:  1,
		SetupRetryDelay:  time.Millisecond,
		CallTimeout:      time.Second,
	}
}

func TestConnect_WithAccountBindsContract(t *testing.T) {
	node := newTestNode(t)
	client := node.Client()
	defer client.Close()

	c := NewConnector(testEthereumConfig(), client, zap.NewNop())
	handle, err := c.Connect(context.Background(), &account)
	require.NoError(t, err)
	defer handle.Close()

	assert.Equal(t, int64(31337), handle.ChainID.Int64())
	assert.Equal(t, registry, handle.ContractAddress)
	assert.True(t, handle.HasContract())
	assert.Equal(t, account, handle.CallOpts(context.Background()).From)

	node.Grant(account, "COURT")
	courtRole, err := handle.Contract.COURTROLE(handle.CallOpts(context.Background()))
	require.NoError(t, err)
	ok, err := handle.Contract.HasRole(handle.CallOpts(context.Background()), courtRole, account)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestConnect_WithoutAccountHasNoContract(t *testing.T) {
	node := newTestNode(t)
	client := node.Client()
	defer client.Close()

	handle, err := NewConnector(testEthereumConfig(), client, zap.NewNop()).Connect(context.Background(), nil)
	require.NoError(t, err)

	assert.False(t, handle.HasContract())
	assert.Nil(t, handle.Account)
	assert.Equal(t, common.Address{}, handle.CallOpts(context.Background()).From)
}

func TestConnect_RegistryNotDeployed(t *testing.T) {
	node := newTestNode(t)
	node.SetRegistry(common.Address{})
	client := node.Client()
	defer client.Close()

	handle, err := NewConnector(testEthereumConfig(), client, zap.NewNop()).Connect(context.Background(), &account)
	require.NoError(t, err)

	assert.False(t, handle.HasContract())
	assert.Equal(t, int64(31337), handle.ChainID.Int64())
}

func TestConnect_NoBackend(t *testing.T) {
	_, err := NewConnector(testEthereumConfig(), nil, zap.NewNop()).Connect(context.Background(), &account)
	require.ErrorIs(t, err, ErrNoBackend)
}

func TestConnect_SetupFailureIsRetriedThenSurfaced(t *testing.T) {
	node := newTestNode(t)
	client := node.Client()
	client.Close()

	_, err := NewConnector(testEthereumConfig(), client, zap.NewNop()).Connect(context.Background(), &account)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get chain id")
}

func TestChainHandle_NilSafe(t *testing.T) {
	var h *ChainHandle
	assert.False(t, h.HasContract())
	h.Close()
}
