package client

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/Klaudioz/PolyAnalyzer/clob/signing"
	"github.com/Klaudioz/PolyAnalyzer/clob/types"
)

// CreateOrder builds and signs an order from a user intent.
func (c *Client) CreateOrder(ctx context.Context, req *types.UserOrder, options *types.CreateOrderOptions) (*types.SignedOrder, error) {
	if err := c.CanL1Auth(); err != nil {
		return nil, err
	}
	builder := NewOrderBuilder(c, types.SignatureTypeEOA, "")
	return builder.BuildOrder(ctx, req, options)
}

// PostOrder submits a signed order (L2 auth).
func (c *Client) PostOrder(ctx context.Context, order *types.SignedOrder, orderType types.OrderType) (*types.OrderResponse, error) {
	if err := c.CanL2Auth(); err != nil {
		return nil, err
	}

	payload := types.NewOrder{
		Order:     *order,
		Owner:     c.authConfig.Creds.Key,
		OrderType: orderType,
	}

	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshal order payload")
	}
	bodyStr := string(bodyBytes)

	headers, err := signing.CreateL2Headers(
		c.authConfig.PrivateKey,
		c.authConfig.Creds,
		&types.L2HeaderArgs{Method: "POST", RequestPath: EndpointPostOrder, Body: &bodyStr},
		nil,
	)
	if err != nil {
		return nil, errors.Wrap(err, "create L2 headers")
	}

	resp, err := c.httpClient.post(ctx, EndpointPostOrder, l2HeaderMap(headers), payload)
	if err != nil {
		return nil, errors.Wrap(err, "post order")
	}

	var orderResp types.OrderResponse
	if err := parseResponse(resp, &orderResp); err != nil {
		return nil, errors.Wrap(err, "decode order response")
	}
	if !orderResp.Success && orderResp.ErrorMsg != "" {
		return &orderResp, errors.Errorf("order rejected: %s", orderResp.ErrorMsg)
	}
	return &orderResp, nil
}

// CancelOrder cancels an open order by id (L2 auth).
func (c *Client) CancelOrder(ctx context.Context, orderID string) (*types.OrderResponse, error) {
	if err := c.CanL2Auth(); err != nil {
		return nil, err
	}

	headers, err := signing.CreateL2Headers(
		c.authConfig.PrivateKey,
		c.authConfig.Creds,
		&types.L2HeaderArgs{Method: "DELETE", RequestPath: EndpointCancelOrder},
		nil,
	)
	if err != nil {
		return nil, errors.Wrap(err, "create L2 headers")
	}

	resp, err := c.httpClient.delete(ctx, EndpointCancelOrder, l2HeaderMap(headers), map[string]string{"orderID": orderID})
	if err != nil {
		return nil, errors.Wrapf(err, "cancel order %s", orderID)
	}

	var orderResp types.OrderResponse
	if err := parseResponse(resp, &orderResp); err != nil {
		return nil, errors.Wrapf(err, "decode cancel response (orderID=%s)", orderID)
	}
	return &orderResp, nil
}
