package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Chain struct {
		RPCURL             string `yaml:"rpc_url" env:"CHAIN_RPC_URL"`
		ChainID            int64  `yaml:"chain_id" env:"CHAIN_ID"`
		RegistrarAddress   string `yaml:"registrar_address" env:"CHAIN_REGISTRAR_ADDRESS"`
		CatalogAddress     string `yaml:"catalog_address" env:"CHAIN_CATALOG_ADDRESS"`
		CertificateAddress string `yaml:"certificate_address" env:"CHAIN_CERTIFICATE_ADDRESS"`
		KeystoreDir        string `yaml:"keystore_dir" env:"CHAIN_KEYSTORE_DIR"`
		SnapshotMaxAge     string `yaml:"snapshot_max_age" env:"CHAIN_SNAPSHOT_MAX_AGE"`
	} `yaml:"chain"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
		NonceTTL              string `yaml:"nonce_ttl" env:"JWT_NONCE_TTL"`
	} `yaml:"jwt"`

	Metrics struct {
		Enabled   bool   `yaml:"enabled" env:"METRICS_ENABLED"`
		Namespace string `yaml:"namespace" env:"METRICS_NAMESPACE"`
	} `yaml:"metrics"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Config file is optional; env vars alone can carry a full config
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	err := loadFromEnv(config)
	if err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	// Chain defaults (Sepolia deployment of the university contracts)
	config.Chain.RPCURL = "https://rpc.sepolia.org"
	config.Chain.ChainID = 11155111
	config.Chain.RegistrarAddress = "0x85B7e058d1eDaeBaF9b64fd1AE9F0c515230030E"
	config.Chain.CatalogAddress = "0xD75e722E3579148eC6C2B1306C7629C4Fe0eB737"
	config.Chain.CertificateAddress = "0xFE1d94CCe73d50C6370ce3Bb61Da4648837b1e66"
	config.Chain.KeystoreDir = "keystore"
	config.Chain.SnapshotMaxAge = "15s"

	// JWT defaults
	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.Issuer = "unireg.gateway"
	config.JWT.NonceTTL = "5m"

	// Metrics defaults
	config.Metrics.Enabled = false
	config.Metrics.Namespace = "unireg"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Chain.RPCURL == "" {
		return fmt.Errorf("chain RPC URL is required")
	}

	for name, addr := range map[string]string{
		"registrar":   config.Chain.RegistrarAddress,
		"catalog":     config.Chain.CatalogAddress,
		"certificate": config.Chain.CertificateAddress,
	} {
		if !common.IsHexAddress(addr) {
			return fmt.Errorf("invalid %s contract address: %q", name, addr)
		}
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	for name, value := range map[string]string{
		"JWT access token expiration": config.JWT.AccessTokenExpiration,
		"JWT nonce TTL":               config.JWT.NonceTTL,
		"chain snapshot max age":      config.Chain.SnapshotMaxAge,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	return nil
}

// RegistrarAddress returns the parsed student-records contract address
func (c *Config) RegistrarAddress() common.Address {
	return common.HexToAddress(c.Chain.RegistrarAddress)
}

// CatalogAddress returns the parsed faculty/major catalog contract address
func (c *Config) CatalogAddress() common.Address {
	return common.HexToAddress(c.Chain.CatalogAddress)
}

// CertificateAddress returns the parsed certificate contract address
func (c *Config) CertificateAddress() common.Address {
	return common.HexToAddress(c.Chain.CertificateAddress)
}

// SnapshotMaxAge returns the parsed snapshot cache lifetime
func (c *Config) SnapshotMaxAge() time.Duration {
	d, err := time.ParseDuration(c.Chain.SnapshotMaxAge)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// GetEnvAsBool gets an environment variable as a boolean or returns a default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	valueLower := strings.ToLower(valueStr)
	if valueLower == "true" || valueLower == "1" || valueLower == "yes" {
		return true
	}
	if valueLower == "false" || valueLower == "0" || valueLower == "no" {
		return false
	}

	return defaultValue
}
