package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Environment variables that override secrets from the config file.
const (
	EnvBackendAPIKey = "BACKEND_API_KEY"
	EnvWalletRPCURL  = "WALLET_RPC_URL"
)

// Config represents the session agent configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Wallet     WalletConfig     `yaml:"wallet"`
	Ethereum   EthereumConfig   `yaml:"ethereum"`
	Backend    BackendConfig    `yaml:"backend"`
	Session    SessionConfig    `yaml:"session"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host" default:"0.0.0.0"`
	Port            int           `yaml:"port" default:"8080" validate:"gt=0,lte=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" default:"6m"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"30s"`
}

// WalletConfig contains the wallet provider connection and prompt settings.
// An empty RPCURL means no wallet is installed.
type WalletConfig struct {
	RPCURL             string        `yaml:"rpc_url" validate:"omitempty,url"`
	PromptTimeout      time.Duration `yaml:"prompt_timeout" default:"5m" validate:"gt=0"`
	PromptMaxRetries   int           `yaml:"prompt_max_retries" default:"3" validate:"gte=0"`
	RetryDelay         time.Duration `yaml:"retry_delay" default:"1s" validate:"gt=0"`
	UnlockTimeout      time.Duration `yaml:"unlock_timeout" default:"10s" validate:"gt=0"`
	UnlockPollInterval time.Duration `yaml:"unlock_poll_interval" default:"500ms" validate:"gt=0"`
	WatchInterval      time.Duration `yaml:"watch_interval" default:"2s" validate:"gt=0"`
}

// EthereumConfig contains the chain connection used for registry contract reads.
// An empty RPCURL reuses the wallet's connection.
type EthereumConfig struct {
	RPCURL           string        `yaml:"rpc_url" validate:"omitempty,url"`
	RegistryContract string        `yaml:"registry_contract" validate:"omitempty,eth_addr"`
	ChainID          int64         `yaml:"chain_id" validate:"gte=0"`
	SetupMaxRetries  int           `yaml:"setup_max_retries" default:"2" validate:"gte=0"`
	SetupRetryDelay  time.Duration `yaml:"setup_retry_delay" default:"1s" validate:"gt=0"`
	CallTimeout      time.Duration `yaml:"call_timeout" default:"15s" validate:"gt=0"`
}

// BackendConfig contains the backend identity endpoint settings
type BackendConfig struct {
	BaseURL     string        `yaml:"base_url" validate:"required,url"`
	APIKey      string        `yaml:"api_key"`
	Timeout     time.Duration `yaml:"timeout" default:"10s" validate:"gt=0"`
	MaxAttempts int           `yaml:"max_attempts" default:"3" validate:"gte=1"`
	RetryDelay  time.Duration `yaml:"retry_delay" default:"2s" validate:"gt=0"`
}

// SessionConfig contains session state machine settings
type SessionConfig struct {
	ContractRetryDelay time.Duration `yaml:"contract_retry_delay" default:"1500ms" validate:"gt=0"`
	ProbeOnStart       bool          `yaml:"probe_on_start" default:"true"`
}

// MonitoringConfig contains monitoring and metrics settings
type MonitoringConfig struct {
	Enabled     bool `yaml:"enabled" default:"true"`
	MetricsPort int  `yaml:"metrics_port" default:"9090" validate:"gt=0,lte=65535"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
	Format     string `yaml:"format" default:"json" validate:"oneof=json console"`
	OutputPath string `yaml:"output_path" default:"stdout"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	var cfg Config
	if err := load(configPath, &cfg); err != nil {
		return nil, err
	}

	if v := os.Getenv(EnvBackendAPIKey); v != "" {
		cfg.Backend.APIKey = v
	}
	if v := os.Getenv(EnvWalletRPCURL); v != "" {
		cfg.Wallet.RPCURL = v
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Parse builds a Config from raw YAML without touching the environment.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := decode(data, &cfg); err != nil {
		return nil, err
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func load(configPath string, out any) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return decode(data, out)
}

func decode(data []byte, out any) error {
	if err := defaults.Set(out); err != nil {
		return fmt.Errorf("failed to apply config defaults: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

func validate(cfg any) error {
	return validator.New(validator.WithRequiredStructEnabled()).Struct(cfg)
}
