package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
backend:
  base_url: http://localhost:5000/api/users
`))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Wallet.PromptTimeout)
	assert.Equal(t, 3, cfg.Wallet.PromptMaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.Wallet.UnlockPollInterval)
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, 3, cfg.Backend.MaxAttempts)
	assert.Equal(t, 1500*time.Millisecond, cfg.Session.ContractRetryDelay)
	assert.True(t, cfg.Session.ProbeOnStart)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Wallet.RPCURL)
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
wallet:
  rpc_url: http://127.0.0.1:8545
  prompt_timeout: 90s
ethereum:
  registry_contract: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
backend:
  base_url: https://registry.example.com/api/users
  max_attempts: 5
session:
  probe_on_start: false
`))
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8545", cfg.Wallet.RPCURL)
	assert.Equal(t, 90*time.Second, cfg.Wallet.PromptTimeout)
	assert.Equal(t, 5, cfg.Backend.MaxAttempts)
	assert.False(t, cfg.Session.ProbeOnStart)
}

func TestParse_ValidationFailures(t *testing.T) {
	tests := map[string]string{
		"missing backend": `logging: {level: info}`,
		"bad contract": `
backend: {base_url: "http://localhost"}
ethereum: {registry_contract: "not-an-address"}`,
		"bad level": `
backend: {base_url: "http://localhost"}
logging: {level: verbose}`,
		"zero attempts": `
backend: {base_url: "http://localhost", max_attempts: 0}`,
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			require.Error(t, err)
		})
	}
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend:\n  base_url: http://localhost:5000\n"), 0o600))

	t.Setenv(EnvBackendAPIKey, "secret")
	t.Setenv(EnvWalletRPCURL, "http://127.0.0.1:9545")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.Backend.APIKey)
	assert.Equal(t, "http://127.0.0.1:9545", cfg.Wallet.RPCURL)
}

func TestLoadDevWallet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devwallet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
accounts:
  - "0xabc0000000000000000000000000000000000001"
authorized: true
registry_contract: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
grants:
  "0xabc0000000000000000000000000000000000001": [REGISTRAR]
`), 0o600))

	cfg, err := LoadDevWallet(path)
	require.NoError(t, err)
	assert.Equal(t, int64(31337), cfg.ChainID)
	assert.True(t, cfg.Authorized)
	assert.Equal(t, []string{"REGISTRAR"}, cfg.Grants["0xabc0000000000000000000000000000000000001"])
}
