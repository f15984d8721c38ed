package trading

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Klaudioz/PolyAnalyzer/clob/client"
	"github.com/Klaudioz/PolyAnalyzer/clob/types"
	"github.com/Klaudioz/PolyAnalyzer/pkg/config"
	"github.com/Klaudioz/PolyAnalyzer/pkg/logger"
)

var (
	// ErrMissingCredential is returned when the PK environment variable is
	// not set; no network call is made in that case.
	ErrMissingCredential = config.ErrMissingPrivateKey

	// ErrNoBids is returned when a position is valued against an order book
	// with an empty bids side.
	ErrNoBids = errors.New("order book has no bids")
)

// microUnits is the 6-decimal fixed-point divisor for balances.
var microUnits = decimal.NewFromInt(1_000_000)

// Session is an authenticated exchange handle. Each operation creates its
// own session and discards it on return; sessions are not pooled.
type Session interface {
	CreateOrder(ctx context.Context, req *types.UserOrder, options *types.CreateOrderOptions) (*types.SignedOrder, error)
	PostOrder(ctx context.Context, order *types.SignedOrder, orderType types.OrderType) (*types.OrderResponse, error)
	CancelOrder(ctx context.Context, orderID string) (*types.OrderResponse, error)
	GetBalanceAllowance(ctx context.Context, params *types.BalanceAllowanceParams) (*types.BalanceAllowanceResponse, error)
	GetOrderBook(ctx context.Context, tokenID string) (*types.OrderBookSummary, error)
}

// Service exposes the trading operations: order placement and position reads.
type Service struct {
	cfg     *config.Config
	connect func(ctx context.Context) (Session, error)
	log     *logrus.Entry
}

// NewService builds a trading service for the given configuration.
func NewService(cfg *config.Config) *Service {
	s := &Service{
		cfg: cfg,
		log: logger.WithField("component", "trading"),
	}
	s.connect = s.dialSession
	return s
}

// Connect creates and authenticates a fresh exchange session. The private
// key is read from the environment on every call and held only for the
// duration of the handshake.
func (s *Service) Connect(ctx context.Context) (Session, error) {
	return s.connect(ctx)
}

func (s *Service) dialSession(ctx context.Context) (Session, error) {
	key, err := config.PrivateKeyFromEnv()
	if err != nil {
		return nil, err
	}

	c := client.NewClient(s.cfg.Host, s.cfg.ChainID, key, nil)
	creds, err := c.CreateOrDeriveAPIKey(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("derive api credentials: %w", err)
	}
	c.SetApiCreds(creds)
	return c, nil
}

// PlaceOrder signs and submits a GTC limit order and returns the
// exchange-assigned order id. The order is signed under one session and
// posted under a second fresh one, each with its own authentication
// round-trip.
func (s *Service) PlaceOrder(ctx context.Context, tokenID string, side types.Side, price, size float64) (string, error) {
	signSession, err := s.connect(ctx)
	if err != nil {
		return "", err
	}

	userOrder := &types.UserOrder{
		TokenID: tokenID,
		Side:    side,
		Price:   price,
		Size:    size,
	}
	signedOrder, err := signSession.CreateOrder(ctx, userOrder, &types.CreateOrderOptions{TickSize: types.TickSize001})
	if err != nil {
		return "", fmt.Errorf("create order: %w", err)
	}

	postSession, err := s.connect(ctx)
	if err != nil {
		return "", err
	}
	resp, err := postSession.PostOrder(ctx, signedOrder, types.OrderTypeGTC)
	if err != nil {
		return "", fmt.Errorf("post order: %w", err)
	}

	orderID := resp.OrderID
	if orderID == "" {
		orderID = "N/A"
	}
	s.log.Infof("Order posted successfully: %s", orderID)
	return resp.OrderID, nil
}

// CancelOrder cancels an open order by id.
func (s *Service) CancelOrder(ctx context.Context, orderID string) error {
	session, err := s.connect(ctx)
	if err != nil {
		return err
	}
	if _, err := session.CancelOrder(ctx, orderID); err != nil {
		return fmt.Errorf("cancel order: %w", err)
	}
	s.log.Infof("Order cancelled: %s", orderID)
	return nil
}

// GetPosition values the wallet's holding in one market: conditional-token
// balance times the price of the last bids entry, balance in 6-decimal
// units. Recomputed fresh on every call, never cached.
func (s *Service) GetPosition(ctx context.Context, tokenID string) (float64, error) {
	session, err := s.connect(ctx)
	if err != nil {
		return 0, err
	}

	balanceResp, err := session.GetBalanceAllowance(ctx, &types.BalanceAllowanceParams{
		AssetType: types.AssetTypeConditional,
		TokenID:   &tokenID,
	})
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}

	book, err := session.GetOrderBook(ctx, tokenID)
	if err != nil {
		return 0, fmt.Errorf("get order book: %w", err)
	}
	if len(book.Bids) == 0 {
		return 0, ErrNoBids
	}

	// Bids arrive in ascending price order; the last entry is the best bid.
	price, err := decimal.NewFromString(book.Bids[len(book.Bids)-1].Price)
	if err != nil {
		return 0, fmt.Errorf("parse bid price: %w", err)
	}
	balance, err := decimal.NewFromString(balanceResp.Balance)
	if err != nil {
		return 0, fmt.Errorf("parse balance: %w", err)
	}

	value := balance.Div(microUnits).Mul(price)
	return value.InexactFloat64(), nil
}
