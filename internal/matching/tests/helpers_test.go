package matching

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/nickthelegend/molfi-sub001/internal/matching"
	"github.com/nickthelegend/molfi-sub001/internal/types"
)

const testPair = "BTC-USDT"

// d parses a decimal literal for test fixtures
func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// newTestEngine builds an engine over two pairs with the default drop policy
func newTestEngine() *matching.Engine {
	return matching.NewEngine(matching.Config{
		Pairs: []string{testPair, "ETH-USDT"},
	})
}

// submitLimit places a limit order and fails the test on a validation error
func submitLimit(t *testing.T, e *matching.Engine, pair string, side types.SideType, price, size string) (*types.Order, []*types.Trade) {
	t.Helper()
	order, trades, err := e.Submit(matching.SubmitRequest{
		Trader:    "trader-1",
		Agent:     "agent-1",
		Pair:      pair,
		OrderType: matching.LimitOrder,
		Side:      side,
		Price:     d(price),
		Size:      d(size),
	})
	if err != nil {
		t.Fatalf("limit submit failed: %v", err)
	}
	return order, trades
}

// submitMarket places a market order and fails the test on a validation error
func submitMarket(t *testing.T, e *matching.Engine, pair string, side types.SideType, size string) (*types.Order, []*types.Trade) {
	t.Helper()
	order, trades, err := e.Submit(matching.SubmitRequest{
		Trader:    "trader-1",
		Agent:     "agent-1",
		Pair:      pair,
		OrderType: matching.MarketOrder,
		Side:      side,
		Size:      d(size),
	})
	if err != nil {
		t.Fatalf("market submit failed: %v", err)
	}
	return order, trades
}
