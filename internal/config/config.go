// Package config loads the guardian daemon's configuration: which
// Dogecoin network to settle against, where to reach the chain indexer,
// and how to reach the committee signer.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/klingon-exchange/klingon-v2/internal/dogecoin"
)

// Config holds all configuration for the guardian settlement daemon.
type Config struct {
	// Network selects the Dogecoin network profile: "mainnet", "testnet",
	// or "regtest".
	Network string `yaml:"network"`

	// Indexer holds the Esplora-compatible chain indexer settings.
	Indexer IndexerConfig `yaml:"indexer"`

	// Signer holds the local single-key signer settings. A production
	// deployment would instead point this at a threshold-signature
	// coordinator endpoint; the shape of that config is intentionally
	// left for that integration to define.
	Signer SignerConfig `yaml:"signer"`

	// Logging holds logging settings.
	Logging LoggingConfig `yaml:"logging"`
}

// IndexerConfig holds chain indexer connection settings.
type IndexerConfig struct {
	// BaseURL is the Esplora-compatible indexer's API root, e.g.
	// "https://dogechain.example/api".
	BaseURL string `yaml:"base_url"`
}

// SignerConfig holds local signer settings.
type SignerConfig struct {
	// PrivateKeyFile is the path, relative to the data directory, of a
	// file holding the local Memory signer's 32-byte secp256k1 private key
	// as 64 hex characters.
	PrivateKeyFile string `yaml:"private_key_file"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Network: "mainnet",
		Indexer: IndexerConfig{
			BaseURL: "https://dogechain.info/api/v2",
		},
		Signer: SignerConfig{
			PrivateKeyFile: "guardian.key",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// NetworkProfile resolves c.Network to a dogecoin.NetworkProfile.
func (c *Config) NetworkProfile() (dogecoin.NetworkProfile, error) {
	profile, ok := dogecoin.NetworkProfileByName(c.Network)
	if !ok {
		return dogecoin.NetworkProfile{}, fmt.Errorf("config: unknown network %q", c.Network)
	}
	return profile, nil
}

// ConfigFileName is the default config file name.
const ConfigFileName = "guardiand.yaml"

// Load reads configuration from <dataDir>/guardiand.yaml, creating it
// with default values on first run.
func Load(dataDir string) (*Config, error) {
	expanded := expandPath(dataDir)
	configPath := filepath.Join(expanded, ConfigFileName)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.Save(configPath); err != nil {
			return nil, fmt.Errorf("config: creating default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file, creating its parent
// directory if necessary.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("config: creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshaling config: %w", err)
	}

	header := []byte("# Guardian settlement daemon configuration\n# Generated automatically on first run\n\n")
	data = append(header, data...)

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("config: writing config file: %w", err)
	}
	return nil
}

// ConfigPath returns the full path to the config file for dataDir.
func ConfigPath(dataDir string) string {
	return filepath.Join(expandPath(dataDir), ConfigFileName)
}

func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
