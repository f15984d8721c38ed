package client

import (
	"context"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Klaudioz/PolyAnalyzer/clob/signing"
	"github.com/Klaudioz/PolyAnalyzer/clob/types"
)

// RoundConfig is the decimal budget per field for one tick size.
type RoundConfig struct {
	Price  int
	Size   int
	Amount int
}

// RoundingConfig maps tick size to the exchange's rounding rules.
var RoundingConfig = map[types.TickSize]RoundConfig{
	types.TickSize01:    {Price: 1, Size: 2, Amount: 3},
	types.TickSize001:   {Price: 2, Size: 2, Amount: 4},
	types.TickSize0001:  {Price: 3, Size: 2, Amount: 5},
	types.TickSize00001: {Price: 4, Size: 2, Amount: 6},
}

// OrderBuilder turns user intents into signed orders.
type OrderBuilder struct {
	client        *Client
	signatureType types.SignatureType
	funderAddress string
}

// NewOrderBuilder creates a builder. funderAddress overrides the maker when
// the wallet trades through a proxy; empty means the signer funds itself.
func NewOrderBuilder(client *Client, signatureType types.SignatureType, funderAddress string) *OrderBuilder {
	return &OrderBuilder{
		client:        client,
		signatureType: signatureType,
		funderAddress: funderAddress,
	}
}

// BuildOrder rounds the intent per tick size, derives maker/taker amounts and
// signs the order for the correct exchange contract.
func (ob *OrderBuilder) BuildOrder(ctx context.Context, userOrder *types.UserOrder, options *types.CreateOrderOptions) (*types.SignedOrder, error) {
	contractConfig, err := GetContractConfig(ob.client.GetChainID())
	if err != nil {
		return nil, fmt.Errorf("get contract config: %w", err)
	}

	tickSize := types.TickSize001
	if options != nil && options.TickSize != "" {
		tickSize = options.TickSize
	}
	roundConfig, ok := RoundingConfig[tickSize]
	if !ok {
		return nil, fmt.Errorf("unsupported tick size: %s", tickSize)
	}

	signerAddress := crypto.PubkeyToAddress(ob.client.authConfig.PrivateKey.PublicKey)
	maker := signerAddress.Hex()
	if ob.funderAddress != "" {
		maker = ob.funderAddress
	}

	rawMakerAmt, rawTakerAmt := getOrderRawAmounts(userOrder.Side, userOrder.Size, userOrder.Price, roundConfig)
	makerAmount := parseUnits(rawMakerAmt, CollateralTokenDecimals)
	takerAmount := parseUnits(rawTakerAmt, CollateralTokenDecimals)

	taker := "0x0000000000000000000000000000000000000000"
	if userOrder.Taker != nil && *userOrder.Taker != "" {
		taker = *userOrder.Taker
	}

	feeRateBps := big.NewInt(0)
	if userOrder.FeeRateBps != nil {
		feeRateBps = big.NewInt(int64(*userOrder.FeeRateBps))
	}

	nonce := big.NewInt(0)
	if userOrder.Nonce != nil {
		nonce = big.NewInt(int64(*userOrder.Nonce))
	}

	expiration := big.NewInt(0)
	if userOrder.Expiration != nil {
		expiration = big.NewInt(*userOrder.Expiration)
	}

	salt := time.Now().UnixNano()

	tokenID, ok := new(big.Int).SetString(userOrder.TokenID, 10)
	if !ok {
		return nil, fmt.Errorf("invalid tokenID: %s", userOrder.TokenID)
	}

	// Neg-risk markets verify against a different exchange contract.
	exchangeAddress := contractConfig.Exchange
	if options != nil && options.NegRisk != nil && *options.NegRisk {
		exchangeAddress = contractConfig.NegRiskExchange
	}

	orderData := &signing.OrderData{
		Salt:          salt,
		Maker:         maker,
		Signer:        signerAddress.Hex(),
		Taker:         taker,
		TokenID:       tokenID,
		MakerAmount:   makerAmount,
		TakerAmount:   takerAmount,
		Expiration:    expiration,
		Nonce:         nonce,
		FeeRateBps:    feeRateBps,
		Side:          userOrder.Side,
		SignatureType: ob.signatureType,
	}

	signature, err := signing.BuildOrderSignature(
		ob.client.authConfig.PrivateKey,
		ob.client.GetChainID(),
		exchangeAddress,
		orderData,
	)
	if err != nil {
		return nil, fmt.Errorf("sign order: %w", err)
	}

	return &types.SignedOrder{
		Salt:          salt,
		Maker:         maker,
		Signer:        signerAddress.Hex(),
		Taker:         taker,
		TokenID:       userOrder.TokenID,
		MakerAmount:   makerAmount.String(),
		TakerAmount:   takerAmount.String(),
		Expiration:    expiration.String(),
		Nonce:         nonce.String(),
		FeeRateBps:    feeRateBps.String(),
		Side:          userOrder.Side,
		SignatureType: int(ob.signatureType),
		Signature:     signature,
	}, nil
}

func decimalPlaces(num float64) int {
	if num == math.Trunc(num) {
		return 0
	}
	str := strconv.FormatFloat(num, 'f', -1, 64)
	parts := strings.Split(str, ".")
	if len(parts) < 2 {
		return 0
	}
	return len(parts[1])
}

func roundNormal(num float64, decimals int) float64 {
	if decimalPlaces(num) <= decimals {
		return num
	}
	multiplier := math.Pow(10, float64(decimals))
	return math.Round(num*multiplier) / multiplier
}

func roundDown(num float64, decimals int) float64 {
	if decimalPlaces(num) <= decimals {
		return num
	}
	multiplier := math.Pow(10, float64(decimals))
	return math.Floor(num*multiplier) / multiplier
}

func roundUp(num float64, decimals int) float64 {
	if decimalPlaces(num) <= decimals {
		return num
	}
	multiplier := math.Pow(10, float64(decimals))
	return math.Ceil(num*multiplier) / multiplier
}

// getOrderRawAmounts derives maker/taker amounts from side, size and price.
// BUY: maker pays USDC, taker amount is tokens. SELL: the reverse, with a
// tighter decimal budget on the token side.
func getOrderRawAmounts(side types.Side, size, price float64, roundConfig RoundConfig) (rawMakerAmt, rawTakerAmt float64) {
	rawPrice := roundNormal(price, roundConfig.Price)

	if side == types.SideBuy {
		rawTakerAmt = roundDown(size, roundConfig.Size)
		rawMakerAmt = rawTakerAmt * rawPrice
		if decimalPlaces(rawMakerAmt) > roundConfig.Amount {
			rawMakerAmt = roundUp(rawMakerAmt, roundConfig.Amount+4)
			if decimalPlaces(rawMakerAmt) > roundConfig.Amount {
				rawMakerAmt = roundDown(rawMakerAmt, roundConfig.Amount)
			}
		}
		return rawMakerAmt, rawTakerAmt
	}

	rawMakerAmt = roundDown(size, roundConfig.Size)
	rawTakerAmt = rawMakerAmt * rawPrice
	if decimalPlaces(rawTakerAmt) > roundConfig.Amount {
		rawTakerAmt = roundUp(rawTakerAmt, roundConfig.Amount+4)
		if decimalPlaces(rawTakerAmt) > roundConfig.Amount {
			rawTakerAmt = roundDown(rawTakerAmt, roundConfig.Amount)
		}
	}
	return rawMakerAmt, rawTakerAmt
}

// parseUnits converts a decimal amount to integer base units.
func parseUnits(value float64, decimals int) *big.Int {
	multiplier := new(big.Float).SetFloat64(math.Pow(10, float64(decimals)))
	valueBig := new(big.Float).SetFloat64(value)
	result, _ := new(big.Float).Mul(valueBig, multiplier).Int(nil)
	return result
}
