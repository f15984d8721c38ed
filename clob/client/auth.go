package client

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/Klaudioz/PolyAnalyzer/clob/types"
)

// AuthConfig holds the signing material for L1 and L2 auth.
type AuthConfig struct {
	PrivateKey *ecdsa.PrivateKey
	ChainID    types.Chain
	Creds      *types.ApiKeyCreds
}

// CanL1Auth reports whether wallet-signature auth is possible.
func (c *Client) CanL1Auth() error {
	if c.authConfig == nil || c.authConfig.PrivateKey == nil {
		return fmt.Errorf("L1 auth unavailable: private key not configured")
	}
	return nil
}

// CanL2Auth reports whether API-key auth is possible.
func (c *Client) CanL2Auth() error {
	if c.authConfig == nil || c.authConfig.Creds == nil {
		return fmt.Errorf("L2 auth unavailable: api credentials not configured")
	}
	return nil
}
