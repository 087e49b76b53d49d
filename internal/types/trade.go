package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade represents a single execution between a taker and a maker order.
// Immutable once created. Side is the resting (maker) order's side and labels
// the trade direction; Price is always the maker's price.
type Trade struct {
	TradeID      uint64          `json:"trade_id"`
	Pair         string          `json:"pair"`
	Price        decimal.Decimal `json:"price"`
	Size         decimal.Decimal `json:"size"`
	Side         SideType        `json:"side"`
	TakerOrderID uint64          `json:"taker_order_id"`
	MakerOrderID uint64          `json:"maker_order_id"`
	Timestamp    time.Time       `json:"timestamp"`
}
