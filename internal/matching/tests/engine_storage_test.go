package matching

import (
	"testing"

	"github.com/nickthelegend/molfi-sub001/internal/matching"
	"github.com/nickthelegend/molfi-sub001/internal/storage"
	"github.com/nickthelegend/molfi-sub001/internal/storage/memory"
)

// newStoredEngine builds an engine mirroring into in-memory stores
func newStoredEngine() (*matching.Engine, storage.OrderStore, storage.TradeStore) {
	orderStore := memory.NewInMemoryOrderStore(1000)
	tradeStore := memory.NewInMemoryTradeStore(1000)
	engine := matching.NewEngineWithStores(matching.Config{
		Pairs: []string{testPair},
	}, orderStore, tradeStore)
	return engine, orderStore, tradeStore
}

// TestEngineMirrorsOrdersToStore tests write-behind order persistence
func TestEngineMirrorsOrdersToStore(t *testing.T) {
	engine, orderStore, _ := newStoredEngine()
	defer engine.Close()

	ask, _ := submitLimit(t, engine, testPair, matching.Sell, "101", "10")
	taker, _ := submitMarket(t, engine, testPair, matching.Buy, "4")

	// Both taker and touched maker reach the store with current fill state
	stored, err := orderStore.Get(taker.ID)
	if err != nil {
		t.Fatalf("Get taker failed: %v", err)
	}
	if !stored.Filled.Equal(d("4")) {
		t.Errorf("Expected stored taker filled 4, got %s", stored.Filled)
	}

	maker, err := orderStore.Get(ask.ID)
	if err != nil {
		t.Fatalf("Get maker failed: %v", err)
	}
	if maker.Status != matching.StatusPartial {
		t.Errorf("Expected stored maker partial, got %s", maker.Status)
	}
}

// TestEngineMirrorsTradesToStore tests write-behind trade persistence
func TestEngineMirrorsTradesToStore(t *testing.T) {
	engine, _, tradeStore := newStoredEngine()
	defer engine.Close()

	submitLimit(t, engine, testPair, matching.Sell, "101", "5")
	submitLimit(t, engine, testPair, matching.Sell, "102", "5")
	submitMarket(t, engine, testPair, matching.Buy, "10")

	trades, err := tradeStore.GetRecent(testPair, 10)
	if err != nil {
		t.Fatalf("GetRecent failed: %v", err)
	}
	if len(trades) != 2 {
		t.Fatalf("Expected 2 stored trades, got %d", len(trades))
	}
	if !trades[0].Price.Equal(d("102")) {
		t.Errorf("Expected newest stored trade at 102, got %s", trades[0].Price)
	}
}

// TestEngineMirrorsCancellations tests that cancels reach the store
func TestEngineMirrorsCancellations(t *testing.T) {
	engine, orderStore, _ := newStoredEngine()
	defer engine.Close()

	bid, _ := submitLimit(t, engine, testPair, matching.Buy, "99", "10")
	if !engine.Cancel(bid.ID) {
		t.Fatal("Expected successful cancel")
	}

	stored, err := orderStore.Get(bid.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if stored.Status != matching.StatusCancelled {
		t.Errorf("Expected stored status cancelled, got %s", stored.Status)
	}
}
