package types

// OrderBookSummary is the aggregated book for one token.
// Bids are returned by the exchange in ascending price order, asks descending.
type OrderBookSummary struct {
	Market       string         `json:"market"`
	AssetID      string         `json:"asset_id"`
	Timestamp    string         `json:"timestamp"`
	Bids         []OrderSummary `json:"bids"`
	Asks         []OrderSummary `json:"asks"`
	MinOrderSize string         `json:"min_order_size"`
	TickSize     string         `json:"tick_size"`
	NegRisk      bool           `json:"neg_risk"`
	Hash         string         `json:"hash"`
}

// OrderSummary is one aggregated price level.
type OrderSummary struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

// BalanceAllowanceParams selects the asset a balance query targets.
type BalanceAllowanceParams struct {
	AssetType     AssetType
	TokenID       *string
	SignatureType *SignatureType
}

// BalanceAllowanceResponse reports balance and allowance in 6-decimal units.
type BalanceAllowanceResponse struct {
	Balance    string            `json:"balance"`
	Allowance  string            `json:"allowance"`
	Allowances map[string]string `json:"allowances,omitempty"`
}
