package client

// CLOB API endpoints.
const (
	EndpointTime = "/time"

	EndpointCreateAPIKey = "/auth/api-key"
	EndpointDeriveAPIKey = "/auth/derive-api-key"

	EndpointGetOrderBook = "/book"
	EndpointGetPrice     = "/price"

	EndpointPostOrder   = "/order"
	EndpointCancelOrder = "/order"

	EndpointGetBalanceAllowance = "/balance-allowance"
)
