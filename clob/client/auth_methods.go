package client

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/Klaudioz/PolyAnalyzer/clob/signing"
	"github.com/Klaudioz/PolyAnalyzer/clob/types"
)

// CreateOrDeriveAPIKey obtains API credentials for the wallet (L1 auth).
// It first tries to derive an existing key; a 400 means none exists yet, in
// which case a new one is created.
func (c *Client) CreateOrDeriveAPIKey(ctx context.Context, nonce *int64) (*types.ApiKeyCreds, error) {
	if err := c.CanL1Auth(); err != nil {
		return nil, err
	}

	var n int64
	if nonce != nil {
		n = *nonce
	}

	headers, err := signing.CreateL1Headers(c.authConfig.PrivateKey, c.authConfig.ChainID, &n, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create L1 headers")
	}
	headerMap := l1HeaderMap(headers)

	resp, err := c.httpClient.get(ctx, EndpointDeriveAPIKey, headerMap, nil)
	if err == nil && resp.StatusCode() == http.StatusOK {
		var raw types.ApiKeyRaw
		if err := parseResponse(resp, &raw); err != nil {
			return nil, errors.Wrap(err, "decode derived api key")
		}
		return &types.ApiKeyCreds{Key: raw.ApiKey, Secret: raw.Secret, Passphrase: raw.Passphrase}, nil
	}
	if err == nil && resp.StatusCode() != http.StatusBadRequest {
		return nil, errors.Errorf("derive api key: HTTP %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	// No existing key (or derive unreachable): create one.
	resp, err = c.httpClient.post(ctx, EndpointCreateAPIKey, headerMap, map[string]interface{}{})
	if err != nil {
		return nil, errors.Wrap(err, "create api key")
	}

	var raw types.ApiKeyRaw
	if err := parseResponse(resp, &raw); err != nil {
		return nil, errors.Wrap(err, "decode created api key")
	}
	return &types.ApiKeyCreds{Key: raw.ApiKey, Secret: raw.Secret, Passphrase: raw.Passphrase}, nil
}

func l1HeaderMap(h *types.L1PolyHeader) map[string]string {
	return map[string]string{
		"POLY_ADDRESS":   h.PolyAddress,
		"POLY_SIGNATURE": h.PolySignature,
		"POLY_TIMESTAMP": h.PolyTimestamp,
		"POLY_NONCE":     h.PolyNonce,
	}
}

func l2HeaderMap(h *types.L2PolyHeader) map[string]string {
	return map[string]string{
		"POLY_ADDRESS":    h.PolyAddress,
		"POLY_SIGNATURE":  h.PolySignature,
		"POLY_TIMESTAMP":  h.PolyTimestamp,
		"POLY_API_KEY":    h.PolyAPIKey,
		"POLY_PASSPHRASE": h.PolyPassphrase,
	}
}
