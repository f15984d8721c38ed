package trading

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Klaudioz/PolyAnalyzer/clob/types"
	"github.com/Klaudioz/PolyAnalyzer/pkg/config"
	"github.com/Klaudioz/PolyAnalyzer/pkg/logger"
)

// mockSession records calls and replays canned responses.
type mockSession struct {
	createdOrders []*types.UserOrder
	signedOrder   *types.SignedOrder
	postedOrders  []*types.SignedOrder
	postResp      *types.OrderResponse
	postErr       error

	balanceResp *types.BalanceAllowanceResponse
	book        *types.OrderBookSummary
}

func (m *mockSession) CreateOrder(_ context.Context, req *types.UserOrder, _ *types.CreateOrderOptions) (*types.SignedOrder, error) {
	m.createdOrders = append(m.createdOrders, req)
	if m.signedOrder == nil {
		m.signedOrder = &types.SignedOrder{TokenID: req.TokenID, Side: req.Side}
	}
	return m.signedOrder, nil
}

func (m *mockSession) PostOrder(_ context.Context, order *types.SignedOrder, _ types.OrderType) (*types.OrderResponse, error) {
	m.postedOrders = append(m.postedOrders, order)
	if m.postErr != nil {
		return nil, m.postErr
	}
	return m.postResp, nil
}

func (m *mockSession) CancelOrder(_ context.Context, orderID string) (*types.OrderResponse, error) {
	return &types.OrderResponse{Success: true, OrderID: orderID}, nil
}

func (m *mockSession) GetBalanceAllowance(_ context.Context, _ *types.BalanceAllowanceParams) (*types.BalanceAllowanceResponse, error) {
	return m.balanceResp, nil
}

func (m *mockSession) GetOrderBook(_ context.Context, _ string) (*types.OrderBookSummary, error) {
	return m.book, nil
}

func newMockedService(session *mockSession) (*Service, *int) {
	svc := NewService(config.Default())
	connects := 0
	svc.connect = func(ctx context.Context) (Session, error) {
		connects++
		return session, nil
	}
	return svc, &connects
}

func TestPlaceOrder_PassesIntentThroughAndReportsOrderID(t *testing.T) {
	session := &mockSession{
		postResp: &types.OrderResponse{Success: true, OrderID: "abc"},
	}
	svc, connects := newMockedService(session)

	orderID, err := svc.PlaceOrder(context.Background(), "T1", types.SideBuy, 0.55, 100)
	require.NoError(t, err)
	require.Equal(t, "abc", orderID)

	require.Len(t, session.createdOrders, 1)
	intent := session.createdOrders[0]
	require.Equal(t, "T1", intent.TokenID)
	require.Equal(t, types.SideBuy, intent.Side)
	require.Equal(t, 0.55, intent.Price)
	require.Equal(t, float64(100), intent.Size)

	// The signed order goes out unchanged.
	require.Len(t, session.postedOrders, 1)
	require.Same(t, session.signedOrder, session.postedOrders[0])

	// Signing and posting each use their own session.
	require.Equal(t, 2, *connects)
}

func TestPlaceOrder_SubmissionFailureSurfaces(t *testing.T) {
	session := &mockSession{postErr: errors.New("order rejected: not enough balance")}
	svc, _ := newMockedService(session)

	_, err := svc.PlaceOrder(context.Background(), "T1", types.SideBuy, 0.55, 100)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not enough balance")
}

func TestGetPosition_ValuesAgainstLastBid(t *testing.T) {
	session := &mockSession{
		balanceResp: &types.BalanceAllowanceResponse{Balance: "2500000"},
		book: &types.OrderBookSummary{
			Bids: []types.OrderSummary{{Price: "0.40"}, {Price: "0.30"}},
		},
	}
	svc, _ := newMockedService(session)

	// 2.5 tokens priced at the last bids entry (0.30), not the maximum.
	value, err := svc.GetPosition(context.Background(), "T1")
	require.NoError(t, err)
	require.InDelta(t, 0.75, value, 1e-9)
}

func TestGetPosition_EmptyBids(t *testing.T) {
	session := &mockSession{
		balanceResp: &types.BalanceAllowanceResponse{Balance: "2500000"},
		book:        &types.OrderBookSummary{},
	}
	svc, _ := newMockedService(session)

	_, err := svc.GetPosition(context.Background(), "T1")
	require.ErrorIs(t, err, ErrNoBids)
}

func TestConnect_MissingCredentialMakesNoNetworkCall(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	t.Setenv("PK", "")
	cfg := config.Default()
	cfg.Host = server.URL
	svc := NewService(cfg)

	_, err := svc.Connect(context.Background())
	require.ErrorIs(t, err, ErrMissingCredential)
	require.Zero(t, requests.Load())

	_, err = svc.PlaceOrder(context.Background(), "T1", types.SideBuy, 0.55, 100)
	require.ErrorIs(t, err, ErrMissingCredential)

	_, err = svc.GetPosition(context.Background(), "T1")
	require.ErrorIs(t, err, ErrMissingCredential)

	require.Zero(t, requests.Load())
}

func TestOperations_NeverEchoPrivateKey(t *testing.T) {
	const secret = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	t.Setenv("PK", secret)

	var buf bytes.Buffer
	prev := logger.Logger.Out
	logger.Logger.SetOutput(&buf)
	defer logger.Logger.SetOutput(prev)

	session := &mockSession{
		postResp:    &types.OrderResponse{Success: true, OrderID: "abc"},
		balanceResp: &types.BalanceAllowanceResponse{Balance: "1000000"},
		book:        &types.OrderBookSummary{Bids: []types.OrderSummary{{Price: "0.50"}}},
	}
	svc, _ := newMockedService(session)

	_, err := svc.PlaceOrder(context.Background(), "T1", types.SideBuy, 0.55, 100)
	require.NoError(t, err)
	_, err = svc.GetPosition(context.Background(), "T1")
	require.NoError(t, err)

	require.NotContains(t, buf.String(), secret)
}
