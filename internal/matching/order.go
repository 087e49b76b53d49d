package matching

import "github.com/nickthelegend/molfi-sub001/internal/types"

// Re-export the order/trade model so engine callers work against a single package
type (
	OrderType  = types.OrderType
	SideType   = types.SideType
	StatusType = types.StatusType
	Order      = types.Order
	Trade      = types.Trade
)

// Re-export constants
const (
	NoActionOrder = types.NoActionOrder
	MarketOrder   = types.MarketOrder
	LimitOrder    = types.LimitOrder

	NoActionSide = types.NoActionSide
	Buy          = types.Buy
	Sell         = types.Sell

	StatusPending   = types.StatusPending
	StatusPartial   = types.StatusPartial
	StatusFilled    = types.StatusFilled
	StatusCancelled = types.StatusCancelled
)

// Re-export constructor
var NewOrder = types.NewOrder
