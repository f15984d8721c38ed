package client

import (
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/Klaudioz/PolyAnalyzer/clob/signing"
	"github.com/Klaudioz/PolyAnalyzer/clob/types"
)

// Client is a CLOB REST client bound to one wallet.
type Client struct {
	host       string
	chainID    types.Chain
	authConfig *AuthConfig
	httpClient *httpClient
}

// NewClient builds a client for host and chain. creds may be nil; derive them
// with CreateOrDeriveAPIKey and bind with SetApiCreds before L2 calls.
func NewClient(
	host string,
	chainID types.Chain,
	privateKey *ecdsa.PrivateKey,
	creds *types.ApiKeyCreds,
) *Client {
	return &Client{
		host:    strings.TrimSuffix(host, "/"),
		chainID: chainID,
		authConfig: &AuthConfig{
			PrivateKey: privateKey,
			ChainID:    chainID,
			Creds:      creds,
		},
		httpClient: newHTTPClient(host),
	}
}

// GetHost returns the exchange host.
func (c *Client) GetHost() string {
	return c.host
}

// GetChainID returns the chain id the client signs for.
func (c *Client) GetChainID() types.Chain {
	return c.chainID
}

// SetApiCreds binds derived API credentials for L2 auth.
func (c *Client) SetApiCreds(creds *types.ApiKeyCreds) {
	c.authConfig.Creds = creds
}

// GetAddress returns the wallet address derived from the private key.
func (c *Client) GetAddress() (common.Address, error) {
	if err := c.CanL1Auth(); err != nil {
		return common.Address{}, err
	}
	return signing.GetAddressFromPrivateKey(c.authConfig.PrivateKey), nil
}
