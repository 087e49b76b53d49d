package matching

import (
	"testing"
	"time"

	"github.com/nickthelegend/molfi-sub001/internal/matching"
	"github.com/nickthelegend/molfi-sub001/internal/types"
)

// newTestBook builds a standalone book with its own trade sequence
func newTestBook() *matching.Book {
	var seq matching.Sequence
	return matching.NewBook(testPair, &seq, time.Now)
}

// limitOrder builds a limit order fixture for direct book tests
func limitOrder(id uint64, side types.SideType, price, size string) *types.Order {
	return matching.NewOrder(id, "trader-1", "agent-1", testPair,
		matching.LimitOrder, side, d(price), d(size), time.Now())
}

// marketOrder builds a market order fixture for direct book tests
func marketOrder(id uint64, side types.SideType, size string) *types.Order {
	return matching.NewOrder(id, "trader-1", "agent-1", testPair,
		matching.MarketOrder, side, d("0"), d(size), time.Now())
}

// TestBookRestsSortedLevels tests sorted level insertion on both sides
func TestBookRestsSortedLevels(t *testing.T) {
	book := newTestBook()

	// Insert bids out of order
	book.ExecuteLimit(limitOrder(1, matching.Buy, "99", "1"))
	book.ExecuteLimit(limitOrder(2, matching.Buy, "100", "1"))
	book.ExecuteLimit(limitOrder(3, matching.Buy, "98", "1"))

	bids, _ := book.Depth(0)
	if len(bids) != 3 {
		t.Fatalf("Expected 3 bid levels, got %d", len(bids))
	}
	if !bids[0].Price.Equal(d("100")) || !bids[1].Price.Equal(d("99")) || !bids[2].Price.Equal(d("98")) {
		t.Errorf("Expected bids descending 100, 99, 98; got %s, %s, %s",
			bids[0].Price, bids[1].Price, bids[2].Price)
	}

	// Insert asks out of order
	book.ExecuteLimit(limitOrder(4, matching.Sell, "103", "1"))
	book.ExecuteLimit(limitOrder(5, matching.Sell, "101", "1"))
	book.ExecuteLimit(limitOrder(6, matching.Sell, "102", "1"))

	_, asks := book.Depth(0)
	if len(asks) != 3 {
		t.Fatalf("Expected 3 ask levels, got %d", len(asks))
	}
	if !asks[0].Price.Equal(d("101")) || !asks[1].Price.Equal(d("102")) || !asks[2].Price.Equal(d("103")) {
		t.Errorf("Expected asks ascending 101, 102, 103; got %s, %s, %s",
			asks[0].Price, asks[1].Price, asks[2].Price)
	}
}

// TestBookSamePriceAggregation tests level aggregation of same-price orders
func TestBookSamePriceAggregation(t *testing.T) {
	book := newTestBook()

	book.ExecuteLimit(limitOrder(1, matching.Buy, "100", "3"))
	book.ExecuteLimit(limitOrder(2, matching.Buy, "100", "7"))

	bids, _ := book.Depth(0)
	if len(bids) != 1 {
		t.Fatalf("Expected 1 aggregated level, got %d", len(bids))
	}
	if !bids[0].Size.Equal(d("10")) || bids[0].OrderCount != 2 {
		t.Errorf("Expected 10 across 2 orders, got %s across %d", bids[0].Size, bids[0].OrderCount)
	}
}

// TestBookDepthReflectsPartialFills tests that depth shows remaining size
func TestBookDepthReflectsPartialFills(t *testing.T) {
	book := newTestBook()

	book.ExecuteLimit(limitOrder(1, matching.Sell, "101", "10"))
	book.ExecuteMarket(marketOrder(2, matching.Buy, "4"))

	_, asks := book.Depth(0)
	if len(asks) != 1 {
		t.Fatalf("Expected 1 ask level, got %d", len(asks))
	}
	if !asks[0].Size.Equal(d("6")) {
		t.Errorf("Expected remaining size 6 at level, got %s", asks[0].Size)
	}
}

// TestBookBestQuotes tests BestBid and BestAsk
func TestBookBestQuotes(t *testing.T) {
	book := newTestBook()

	if book.BestBid() != nil || book.BestAsk() != nil {
		t.Error("Expected nil quotes on empty book")
	}

	book.ExecuteLimit(limitOrder(1, matching.Buy, "99", "5"))
	book.ExecuteLimit(limitOrder(2, matching.Buy, "100", "3"))
	book.ExecuteLimit(limitOrder(3, matching.Sell, "102", "4"))

	bestBid := book.BestBid()
	if bestBid == nil || !bestBid.Price.Equal(d("100")) || !bestBid.Size.Equal(d("3")) {
		t.Errorf("Expected best bid 3@100, got %+v", bestBid)
	}

	bestAsk := book.BestAsk()
	if bestAsk == nil || !bestAsk.Price.Equal(d("102")) {
		t.Errorf("Expected best ask at 102, got %+v", bestAsk)
	}
}

// TestBookRemove tests removal of resting orders
func TestBookRemove(t *testing.T) {
	book := newTestBook()

	order1 := limitOrder(1, matching.Buy, "100", "5")
	order2 := limitOrder(2, matching.Buy, "100", "5")
	book.ExecuteLimit(order1)
	book.ExecuteLimit(order2)

	if !book.Remove(order1) {
		t.Error("Expected successful removal")
	}

	// Level survives with the other order
	bids, _ := book.Depth(0)
	if len(bids) != 1 || bids[0].OrderCount != 1 {
		t.Fatalf("Expected 1 level with 1 order, got %+v", bids)
	}

	// Removing again fails
	if book.Remove(order1) {
		t.Error("Expected removal of absent order to fail")
	}

	// Removing the last order prunes the level
	if !book.Remove(order2) {
		t.Error("Expected successful removal")
	}
	bids, _ = book.Depth(0)
	if len(bids) != 0 {
		t.Errorf("Expected empty bid side, got %d levels", len(bids))
	}
}

// TestBookLiquidity tests per-side liquidity sums
func TestBookLiquidity(t *testing.T) {
	book := newTestBook()

	book.ExecuteLimit(limitOrder(1, matching.Sell, "101", "5"))
	book.ExecuteLimit(limitOrder(2, matching.Sell, "102", "8"))
	book.ExecuteLimit(limitOrder(3, matching.Buy, "99", "2"))

	if !book.Liquidity(matching.Sell).Equal(d("13")) {
		t.Errorf("Expected ask liquidity 13, got %s", book.Liquidity(matching.Sell))
	}
	if !book.Liquidity(matching.Buy).Equal(d("2")) {
		t.Errorf("Expected bid liquidity 2, got %s", book.Liquidity(matching.Buy))
	}

	// Partial fills shrink liquidity by the filled amount
	book.ExecuteMarket(marketOrder(4, matching.Buy, "6"))
	if !book.Liquidity(matching.Sell).Equal(d("7")) {
		t.Errorf("Expected ask liquidity 7 after fill, got %s", book.Liquidity(matching.Sell))
	}
}

// TestBookEmptiedLevelPruned tests that fully consumed levels disappear
func TestBookEmptiedLevelPruned(t *testing.T) {
	book := newTestBook()

	book.ExecuteLimit(limitOrder(1, matching.Sell, "101", "5"))
	book.ExecuteLimit(limitOrder(2, matching.Sell, "102", "5"))

	book.ExecuteMarket(marketOrder(3, matching.Buy, "5"))

	_, asks := book.Depth(0)
	if len(asks) != 1 {
		t.Fatalf("Expected consumed level pruned, got %d levels", len(asks))
	}
	if !asks[0].Price.Equal(d("102")) {
		t.Errorf("Expected surviving level at 102, got %s", asks[0].Price)
	}
}

// TestBookLimitDoesNotCrossItself tests that a resting limit never matches
// its own side
func TestBookLimitDoesNotCrossItself(t *testing.T) {
	book := newTestBook()

	book.ExecuteLimit(limitOrder(1, matching.Buy, "100", "5"))
	trades := book.ExecuteLimit(limitOrder(2, matching.Buy, "101", "5"))

	if len(trades) != 0 {
		t.Errorf("Expected no trades between same-side orders, got %d", len(trades))
	}

	bids, _ := book.Depth(0)
	if len(bids) != 2 {
		t.Errorf("Expected both bids resting, got %d levels", len(bids))
	}
}
