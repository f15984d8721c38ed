package types

// UserOrder is an order intent before building and signing.
type UserOrder struct {
	// TokenID is the conditional-token asset id.
	TokenID string

	// Price is the limit price as a fractional probability.
	Price float64

	// Size is the quantity of conditional tokens.
	Size float64

	Side Side

	// FeeRateBps is the fee rate in basis points, optional.
	FeeRateBps *int

	// Nonce is the on-chain cancellation nonce, optional.
	Nonce *int

	// Expiration is a unix timestamp in seconds, optional.
	Expiration *int64

	// Taker restricts the order to one counterparty; zero address means public.
	Taker *string
}

// SignedOrder is a built and EIP-712 signed order, in the exchange wire format.
type SignedOrder struct {
	Salt          int64  `json:"salt"`
	Maker         string `json:"maker"`
	Signer        string `json:"signer"`
	Taker         string `json:"taker"`
	TokenID       string `json:"tokenId"`
	MakerAmount   string `json:"makerAmount"`
	TakerAmount   string `json:"takerAmount"`
	Expiration    string `json:"expiration"`
	Nonce         string `json:"nonce"`
	FeeRateBps    string `json:"feeRateBps"`
	Side          Side   `json:"side"`
	SignatureType int    `json:"signatureType"`
	Signature     string `json:"signature"`
}

// NewOrder is the submission envelope for a signed order.
type NewOrder struct {
	Order     SignedOrder `json:"order"`
	Owner     string      `json:"owner"`
	OrderType OrderType   `json:"orderType"`
}

// OrderResponse is the exchange's reply to an order submission or cancel.
type OrderResponse struct {
	Success           bool     `json:"success"`
	ErrorMsg          string   `json:"errorMsg"`
	OrderID           string   `json:"orderID"`
	TransactionHashes []string `json:"transactionsHashes"`
	Status            string   `json:"status"`
	TakingAmount      string   `json:"takingAmount"`
	MakingAmount      string   `json:"makingAmount"`
}

// CreateOrderOptions carries per-market build parameters.
type CreateOrderOptions struct {
	TickSize TickSize
	NegRisk  *bool
}
