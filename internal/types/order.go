package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderType identifies how an order executes
type OrderType int

const (
	NoActionOrder OrderType = iota
	MarketOrder
	LimitOrder
)

func (t OrderType) String() string {
	switch t {
	case MarketOrder:
		return "market"
	case LimitOrder:
		return "limit"
	default:
		return "unknown"
	}
}

// SideType identifies which side of the book an order belongs to
type SideType int

const (
	NoActionSide SideType = iota
	Buy
	Sell
)

func (s SideType) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// Opposite returns the counter side used when matching
func (s SideType) Opposite() SideType {
	switch s {
	case Buy:
		return Sell
	case Sell:
		return Buy
	default:
		return NoActionSide
	}
}

// StatusType tracks an order's lifecycle. Pending and Partial orders rest in
// the book; Filled and Cancelled are terminal and never transition again.
type StatusType int

const (
	StatusPending StatusType = iota
	StatusPartial
	StatusFilled
	StatusCancelled
)

func (st StatusType) String() string {
	switch st {
	case StatusPending:
		return "pending"
	case StatusPartial:
		return "partial"
	case StatusFilled:
		return "filled"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Order is the atomic unit of book state: an immutable submission intent plus
// mutable fill-progress fields. Price and size use decimal arithmetic so
// cumulative fills converge exactly to the requested size.
type Order struct {
	ID        uint64          `json:"order_id"`
	TraderID  string          `json:"trader_id"`
	AgentID   string          `json:"agent_id"`
	Pair      string          `json:"pair"`
	OrderType OrderType       `json:"order_type"`
	Side      SideType        `json:"side"`
	Price     decimal.Decimal `json:"price"` // ignored for market orders
	Size      decimal.Decimal `json:"size"`
	Filled    decimal.Decimal `json:"filled"`
	Status    StatusType      `json:"status"`
	TimeStamp time.Time       `json:"timestamp"`
}

// NewOrder creates a pending order with no fill progress
func NewOrder(id uint64, trader, agent, pair string, orderType OrderType, side SideType, price, size decimal.Decimal, ts time.Time) *Order {
	return &Order{
		ID:        id,
		TraderID:  trader,
		AgentID:   agent,
		Pair:      pair,
		OrderType: orderType,
		Side:      side,
		Price:     price,
		Size:      size,
		Filled:    decimal.Zero,
		Status:    StatusPending,
		TimeStamp: ts,
	}
}

// Remaining returns the unfilled portion of the order
func (o *Order) Remaining() decimal.Decimal {
	return o.Size.Sub(o.Filled)
}

// ApplyFill records an execution against the order and advances its status.
// The caller guarantees fillSize <= Remaining().
func (o *Order) ApplyFill(fillSize decimal.Decimal) {
	o.Filled = o.Filled.Add(fillSize)
	if o.Filled.Equal(o.Size) {
		o.Status = StatusFilled
	} else {
		o.Status = StatusPartial
	}
}

// IsTerminal reports whether the order can never match again
func (o *Order) IsTerminal() bool {
	return o.Status == StatusFilled || o.Status == StatusCancelled
}
