package config

import "fmt"

// DevWalletConfig configures the development wallet node used for local runs
// of the session agent without a browser wallet.
type DevWalletConfig struct {
	Server           ServerConfig        `yaml:"server"`
	ChainID          int64               `yaml:"chain_id" default:"31337" validate:"gt=0"`
	Accounts         []string            `yaml:"accounts" validate:"dive,eth_addr"`
	Authorized       bool                `yaml:"authorized"`
	RegistryContract string              `yaml:"registry_contract" validate:"omitempty,eth_addr"`
	Grants           map[string][]string `yaml:"grants" validate:"dive,keys,eth_addr,endkeys,dive,oneof=ADMIN REGISTRAR COURT TAX_AUTHORITY"`
	Logging          LoggingConfig       `yaml:"logging"`
}

// LoadDevWallet loads the development wallet configuration from file
func LoadDevWallet(configPath string) (*DevWalletConfig, error) {
	var cfg DevWalletConfig
	if err := load(configPath, &cfg); err != nil {
		return nil, err
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}
