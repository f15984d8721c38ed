package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/Klaudioz/PolyAnalyzer/clob/types"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, "https://clob.polymarket.com", cfg.Host)
	require.Equal(t, types.ChainPolygon, cfg.ChainID)
	require.Equal(t, "https://polygon-rpc.com", cfg.RPCURL)
	require.Equal(t, "erc20ABI.json", cfg.ERC20ABIPath)
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "host: https://clob-staging.polymarket.com\nchain_id: 80002\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://clob-staging.polymarket.com", cfg.Host)
	require.Equal(t, types.ChainAmoy, cfg.ChainID)
	require.Equal(t, "debug", cfg.LogLevel)
	// Untouched fields keep their defaults.
	require.Equal(t, "https://polygon-rpc.com", cfg.RPCURL)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("host: [unclosed"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestPrivateKeyFromEnv(t *testing.T) {
	const hexKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

	t.Run("missing", func(t *testing.T) {
		t.Setenv(PrivateKeyEnv, "")
		_, err := PrivateKeyFromEnv()
		require.ErrorIs(t, err, ErrMissingPrivateKey)
	})

	t.Run("plain hex", func(t *testing.T) {
		t.Setenv(PrivateKeyEnv, hexKey)
		key, err := PrivateKeyFromEnv()
		require.NoError(t, err)
		require.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", crypto.PubkeyToAddress(key.PublicKey).Hex())
	})

	t.Run("0x prefix accepted", func(t *testing.T) {
		t.Setenv(PrivateKeyEnv, "0x"+hexKey)
		key, err := PrivateKeyFromEnv()
		require.NoError(t, err)
		require.Equal(t, "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266", crypto.PubkeyToAddress(key.PublicKey).Hex())
	})

	t.Run("invalid key never echoed", func(t *testing.T) {
		t.Setenv(PrivateKeyEnv, "super-secret-but-not-hex")
		_, err := PrivateKeyFromEnv()
		require.Error(t, err)
		require.NotContains(t, err.Error(), "super-secret")
	})
}
