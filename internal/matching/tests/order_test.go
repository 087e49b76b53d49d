package matching

import (
	"testing"
	"time"

	"github.com/nickthelegend/molfi-sub001/internal/matching"
	"github.com/nickthelegend/molfi-sub001/internal/types"
)

// TestNewOrderDefaults tests the order constructor
func TestNewOrderDefaults(t *testing.T) {
	ts := time.Now()
	order := matching.NewOrder(7, "trader-1", "agent-1", testPair,
		matching.LimitOrder, matching.Buy, d("100"), d("5"), ts)

	if order.ID != 7 {
		t.Errorf("Expected ID 7, got %d", order.ID)
	}
	if order.Status != matching.StatusPending {
		t.Errorf("Expected pending status, got %s", order.Status)
	}
	if !order.Filled.IsZero() {
		t.Errorf("Expected zero filled, got %s", order.Filled)
	}
	if !order.Remaining().Equal(d("5")) {
		t.Errorf("Expected remaining 5, got %s", order.Remaining())
	}
	if !order.TimeStamp.Equal(ts) {
		t.Errorf("Expected timestamp %v, got %v", ts, order.TimeStamp)
	}
}

// TestApplyFillTransitions tests fill accounting and status transitions
func TestApplyFillTransitions(t *testing.T) {
	order := matching.NewOrder(1, "trader-1", "agent-1", testPair,
		matching.LimitOrder, matching.Sell, d("100"), d("10"), time.Now())

	order.ApplyFill(d("4"))
	if order.Status != matching.StatusPartial {
		t.Errorf("Expected partial after first fill, got %s", order.Status)
	}
	if !order.Remaining().Equal(d("6")) {
		t.Errorf("Expected remaining 6, got %s", order.Remaining())
	}

	order.ApplyFill(d("6"))
	if order.Status != matching.StatusFilled {
		t.Errorf("Expected filled after exact fill, got %s", order.Status)
	}
	if !order.Remaining().IsZero() {
		t.Errorf("Expected zero remaining, got %s", order.Remaining())
	}
}

// TestApplyFillExactDecimalConvergence tests that fractional fills converge
// to exactly the order size
func TestApplyFillExactDecimalConvergence(t *testing.T) {
	order := matching.NewOrder(1, "trader-1", "agent-1", testPair,
		matching.LimitOrder, matching.Sell, d("100"), d("0.3"), time.Now())

	order.ApplyFill(d("0.1"))
	order.ApplyFill(d("0.1"))
	order.ApplyFill(d("0.1"))

	if !order.Filled.Equal(d("0.3")) {
		t.Errorf("Expected filled exactly 0.3, got %s", order.Filled)
	}
	if order.Status != matching.StatusFilled {
		t.Errorf("Expected filled status, got %s", order.Status)
	}
}

// TestIsTerminal tests terminal status detection
func TestIsTerminal(t *testing.T) {
	order := matching.NewOrder(1, "trader-1", "agent-1", testPair,
		matching.LimitOrder, matching.Buy, d("100"), d("5"), time.Now())

	if order.IsTerminal() {
		t.Error("Pending order should not be terminal")
	}

	order.ApplyFill(d("2"))
	if order.IsTerminal() {
		t.Error("Partial order should not be terminal")
	}

	order.ApplyFill(d("3"))
	if !order.IsTerminal() {
		t.Error("Filled order should be terminal")
	}

	cancelled := matching.NewOrder(2, "trader-1", "agent-1", testPair,
		matching.LimitOrder, matching.Buy, d("100"), d("5"), time.Now())
	cancelled.Status = matching.StatusCancelled
	if !cancelled.IsTerminal() {
		t.Error("Cancelled order should be terminal")
	}
}

// TestSideOpposite tests side inversion
func TestSideOpposite(t *testing.T) {
	if matching.Buy.Opposite() != matching.Sell {
		t.Error("Expected opposite of buy to be sell")
	}
	if matching.Sell.Opposite() != matching.Buy {
		t.Error("Expected opposite of sell to be buy")
	}
}

// TestEnumStrings tests the string forms used in API responses
func TestEnumStrings(t *testing.T) {
	cases := []struct {
		got  string
		want string
	}{
		{matching.MarketOrder.String(), "market"},
		{matching.LimitOrder.String(), "limit"},
		{matching.Buy.String(), "buy"},
		{matching.Sell.String(), "sell"},
		{matching.StatusPending.String(), "pending"},
		{matching.StatusPartial.String(), "partial"},
		{matching.StatusFilled.String(), "filled"},
		{matching.StatusCancelled.String(), "cancelled"},
	}

	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("Expected %q, got %q", tc.want, tc.got)
		}
	}
}

// TestTradeTapeEviction tests the bounded tape directly
func TestTradeTapeEviction(t *testing.T) {
	tape := matching.NewTradeTape(3)

	for i := 1; i <= 5; i++ {
		tape.Append(&types.Trade{TradeID: uint64(i), Pair: testPair, Price: d("100"), Size: d("1")})
	}

	if tape.Len() != 3 {
		t.Fatalf("Expected tape length 3, got %d", tape.Len())
	}

	recent := tape.Recent(0)
	if len(recent) != 3 {
		t.Fatalf("Expected 3 trades, got %d", len(recent))
	}

	// Newest first, oldest evicted
	if recent[0].TradeID != 5 || recent[1].TradeID != 4 || recent[2].TradeID != 3 {
		t.Errorf("Expected IDs 5, 4, 3; got %d, %d, %d",
			recent[0].TradeID, recent[1].TradeID, recent[2].TradeID)
	}
}

// TestTradeTapeRecentLimit tests limited reads
func TestTradeTapeRecentLimit(t *testing.T) {
	tape := matching.NewTradeTape(10)

	tape.Append(&types.Trade{TradeID: 1, Pair: testPair, Price: d("100"), Size: d("1")})
	tape.Append(&types.Trade{TradeID: 2, Pair: testPair, Price: d("101"), Size: d("1")})

	recent := tape.Recent(1)
	if len(recent) != 1 || recent[0].TradeID != 2 {
		t.Errorf("Expected only newest trade, got %+v", recent)
	}

	// Limit above length returns everything
	recent = tape.Recent(100)
	if len(recent) != 2 {
		t.Errorf("Expected 2 trades, got %d", len(recent))
	}
}
