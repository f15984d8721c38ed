package client

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/Klaudioz/PolyAnalyzer/clob/signing"
	"github.com/Klaudioz/PolyAnalyzer/clob/types"
)

// GetOrderBook fetches the aggregated book for a token.
func (c *Client) GetOrderBook(ctx context.Context, tokenID string) (*types.OrderBookSummary, error) {
	resp, err := c.httpClient.get(ctx, EndpointGetOrderBook, nil, map[string]string{"token_id": tokenID})
	if err != nil {
		return nil, errors.Wrap(err, "get order book")
	}

	var book types.OrderBookSummary
	if err := parseResponse(resp, &book); err != nil {
		return nil, errors.Wrap(err, "decode order book")
	}
	return &book, nil
}

// GetBalanceAllowance reads the wallet's balance and allowance for an asset
// (L2 auth). For conditional tokens, pass the token id.
func (c *Client) GetBalanceAllowance(ctx context.Context, params *types.BalanceAllowanceParams) (*types.BalanceAllowanceResponse, error) {
	if err := c.CanL2Auth(); err != nil {
		return nil, err
	}

	queryParams := map[string]string{
		"asset_type": string(params.AssetType),
	}
	if params.TokenID != nil {
		queryParams["token_id"] = *params.TokenID
	}
	if params.SignatureType != nil {
		queryParams["signature_type"] = fmt.Sprintf("%d", int(*params.SignatureType))
	}

	headers, err := signing.CreateL2Headers(
		c.authConfig.PrivateKey,
		c.authConfig.Creds,
		&types.L2HeaderArgs{Method: "GET", RequestPath: EndpointGetBalanceAllowance},
		nil,
	)
	if err != nil {
		return nil, errors.Wrap(err, "create L2 headers")
	}

	resp, err := c.httpClient.get(ctx, EndpointGetBalanceAllowance, l2HeaderMap(headers), queryParams)
	if err != nil {
		return nil, errors.Wrap(err, "get balance allowance")
	}

	var balance types.BalanceAllowanceResponse
	if err := parseResponse(resp, &balance); err != nil {
		return nil, errors.Wrap(err, "decode balance allowance")
	}
	return &balance, nil
}
