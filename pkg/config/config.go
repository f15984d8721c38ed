package config

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/crypto"
	"gopkg.in/yaml.v3"

	"github.com/Klaudioz/PolyAnalyzer/clob/types"
)

// PrivateKeyEnv is the environment variable holding the wallet private key.
const PrivateKeyEnv = "PK"

// ErrMissingPrivateKey is returned when PK is not set.
var ErrMissingPrivateKey = errors.New("environment variable 'PK' cannot be found")

// Config is the immutable runtime configuration. The defaults are the fixed
// production endpoints; a YAML file may override hosts for testnets.
type Config struct {
	Host         string      `yaml:"host"`
	ChainID      types.Chain `yaml:"chain_id"`
	RPCURL       string      `yaml:"rpc_url"`
	ERC20ABIPath string      `yaml:"erc20_abi_path"`
	LogLevel     string      `yaml:"log_level"`
	LogFile      string      `yaml:"log_file"`
}

// Default returns the production configuration: Polymarket CLOB on Polygon
// mainnet via the public RPC endpoint.
func Default() *Config {
	return &Config{
		Host:         "https://clob.polymarket.com",
		ChainID:      types.ChainPolygon,
		RPCURL:       "https://polygon-rpc.com",
		ERC20ABIPath: "erc20ABI.json",
		LogLevel:     "info",
	}
}

// Load reads a YAML config file over the defaults. A missing file is not an
// error; the defaults stand.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// PrivateKeyFromEnv reads and parses the wallet key from the environment.
// The key is read fresh on every call and is never cached or logged.
func PrivateKeyFromEnv() (*ecdsa.PrivateKey, error) {
	raw := os.Getenv(PrivateKeyEnv)
	if raw == "" {
		return nil, ErrMissingPrivateKey
	}
	key, err := crypto.HexToECDSA(trimHexPrefix(raw))
	if err != nil {
		// The raw value must never appear in logs or error chains.
		return nil, fmt.Errorf("environment variable 'PK' is not a valid private key")
	}
	return key, nil
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return s[2:]
	}
	return s
}
