package matching

import "github.com/nickthelegend/molfi-sub001/internal/types"

// TradeTape is a bounded, append-only ring of one pair's executed trades.
// Once capacity is exceeded the oldest entries are evicted. Not safe for
// concurrent use on its own; the engine guards it with the pair lock.
type TradeTape struct {
	trades   []*types.Trade
	capacity int
}

func NewTradeTape(capacity int) *TradeTape {
	return &TradeTape{
		trades:   make([]*types.Trade, 0, capacity),
		capacity: capacity,
	}
}

// Append records a trade, evicting the oldest entry once the cap is exceeded
func (t *TradeTape) Append(trade *types.Trade) {
	t.trades = append(t.trades, trade)
	if len(t.trades) > t.capacity {
		t.trades = t.trades[len(t.trades)-t.capacity:]
	}
}

// Recent returns up to limit trades, newest first, in exact execution order.
// limit <= 0 returns everything retained.
func (t *TradeTape) Recent(limit int) []*types.Trade {
	if limit <= 0 || limit > len(t.trades) {
		limit = len(t.trades)
	}

	result := make([]*types.Trade, limit)
	for i := 0; i < limit; i++ {
		result[i] = t.trades[len(t.trades)-1-i]
	}
	return result
}

// Len reports how many trades are currently retained
func (t *TradeTape) Len() int {
	return len(t.trades)
}
