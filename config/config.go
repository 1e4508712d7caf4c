package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

const (
	configSubdir   = "config"
	configFileName = "lotteryd_config.json"
)

//go:embed default_config.json
var defaultConfigJSON []byte

func validateConfig(cfg *Config) error {
	// Validate log level
	if cfg.LogLevel < 0 || cfg.LogLevel > 5 {
		return fmt.Errorf("log level must be between 0 and 5")
	}

	// Validate log format
	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return fmt.Errorf("log format must be 'json' or 'console'")
	}

	if cfg.DBBackend == "" {
		cfg.DBBackend = BackendGoLevelDB
	}
	switch cfg.DBBackend {
	case BackendGoLevelDB, BackendPebbleDB, BackendMemDB:
	default:
		return fmt.Errorf("db backend must be one of %s, %s or %s", BackendGoLevelDB, BackendPebbleDB, BackendMemDB)
	}

	// Set defaults for the API server
	if cfg.APIPort == 0 {
		cfg.APIPort = 8545
	}
	if cfg.APIPort < 0 || cfg.APIPort > 65535 {
		return fmt.Errorf("api port %d out of range", cfg.APIPort)
	}

	// Set defaults for receipt cleanup
	if cfg.Indexer.RetentionPeriodSeconds == 0 {
		cfg.Indexer.RetentionPeriodSeconds = 7 * 24 * 3600
	}
	if cfg.Indexer.CleanupIntervalSeconds == 0 {
		cfg.Indexer.CleanupIntervalSeconds = 3600
	}
	if cfg.Indexer.RetentionPeriodSeconds < 0 || cfg.Indexer.CleanupIntervalSeconds < 0 {
		return fmt.Errorf("indexer intervals cannot be negative")
	}

	return validateGenesis(&cfg.Genesis)
}

func validateGenesis(g *GenesisConfig) error {
	// Fill the lottery schedule from the embedded defaults
	if g.PurchaseDurationSeconds == 0 || g.RevealDurationSeconds == 0 || g.TicketPrice == "" || g.TokenSymbol == "" {
		var defaultCfg Config
		if err := json.Unmarshal(defaultConfigJSON, &defaultCfg); err != nil {
			return fmt.Errorf("failed to unmarshal default config: %w", err)
		}
		d := defaultCfg.Genesis
		if g.RoundZeroStart == 0 {
			g.RoundZeroStart = d.RoundZeroStart
		}
		if g.PurchaseDurationSeconds == 0 {
			g.PurchaseDurationSeconds = d.PurchaseDurationSeconds
		}
		if g.RevealDurationSeconds == 0 {
			g.RevealDurationSeconds = d.RevealDurationSeconds
		}
		if g.TicketPrice == "" {
			g.TicketPrice = d.TicketPrice
		}
		if g.TokenSymbol == "" {
			g.TokenName, g.TokenSymbol, g.TokenDecimals = d.TokenName, d.TokenSymbol, d.TokenDecimals
		}
	}

	if g.PurchaseDurationSeconds < 0 || g.RevealDurationSeconds < 0 {
		return fmt.Errorf("phase durations must be positive")
	}
	if p, ok := new(big.Int).SetString(g.TicketPrice, 10); !ok || p.Sign() <= 0 {
		return fmt.Errorf("ticket price %q must be a positive integer", g.TicketPrice)
	}
	for _, acc := range g.Accounts {
		if acc.Address == "" {
			return fmt.Errorf("genesis account without address")
		}
		if a, ok := new(big.Int).SetString(acc.Amount, 10); !ok || a.Sign() < 0 {
			return fmt.Errorf("genesis account %s has invalid amount %q", acc.Address, acc.Amount)
		}
	}
	return nil
}

// Save writes the given config to <NodeDir>/config/lotteryd_config.json.
func Save(cfg *Config, basePath string) error {
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	configDir := filepath.Join(basePath, configSubdir)
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configDir, configFileName)
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Load reads, validates and returns the config from
// <BasePath>/config/lotteryd_config.json.
func Load(basePath string) (Config, error) {
	configFile := filepath.Join(basePath, configSubdir, configFileName)
	data, err := os.ReadFile(filepath.Clean(configFile))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadDefaultConfig loads the default configuration from embedded JSON
func LoadDefaultConfig() (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(defaultConfigJSON, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal default config: %w", err)
	}
	return &cfg, nil
}

// Path returns the config file location under basePath.
func Path(basePath string) string {
	return filepath.Join(basePath, configSubdir, configFileName)
}
