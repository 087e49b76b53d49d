package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nickthelegend/molfi-sub001/internal/matching"
	"github.com/nickthelegend/molfi-sub001/internal/types"
)

// BaseResponse is the base structure for all API responses
type BaseResponse struct {
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message,omitempty"`
	Error     *APIError `json:"error,omitempty"`
}

// TradeDTO represents a trade in API responses
type TradeDTO struct {
	TradeID      uint64          `json:"trade_id"`
	Pair         string          `json:"pair"`
	Price        decimal.Decimal `json:"price"`
	Size         decimal.Decimal `json:"size"`
	Side         string          `json:"side"`
	TakerOrderID uint64          `json:"taker_order_id"`
	MakerOrderID uint64          `json:"maker_order_id"`
	Timestamp    time.Time       `json:"timestamp"`
}

// TradeToDTO converts an engine trade to its API representation
func TradeToDTO(t *types.Trade) TradeDTO {
	return TradeDTO{
		TradeID:      t.TradeID,
		Pair:         t.Pair,
		Price:        t.Price,
		Size:         t.Size,
		Side:         t.Side.String(),
		TakerOrderID: t.TakerOrderID,
		MakerOrderID: t.MakerOrderID,
		Timestamp:    t.Timestamp,
	}
}

// TradesToDTO converts a slice of engine trades
func TradesToDTO(trades []*types.Trade) []TradeDTO {
	dtos := make([]TradeDTO, 0, len(trades))
	for _, t := range trades {
		dtos = append(dtos, TradeToDTO(t))
	}
	return dtos
}

// SubmitOrderResponse represents the response for order submission
type SubmitOrderResponse struct {
	BaseResponse
	Order  *OrderDTO  `json:"order,omitempty"`
	Trades []TradeDTO `json:"trades,omitempty"`
}

// BatchOrderResult represents a single order result in batch submission
type BatchOrderResult struct {
	Index   int        `json:"index"`
	Success bool       `json:"success"`
	Order   *OrderDTO  `json:"order,omitempty"`
	Trades  []TradeDTO `json:"trades,omitempty"`
	Error   *APIError  `json:"error,omitempty"`
}

// BatchOrderSummary provides summary statistics for batch submission
type BatchOrderSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// BatchOrderResponse represents the response for batch order submission
type BatchOrderResponse struct {
	BaseResponse
	Results []BatchOrderResult `json:"results"`
	Summary BatchOrderSummary  `json:"summary"`
}

// CancelOrderResponse represents the response for order cancellation
type CancelOrderResponse struct {
	BaseResponse
	OrderID uint64 `json:"order_id,omitempty"`
}

// OrderDTO represents an order in API responses
type OrderDTO struct {
	OrderID   uint64          `json:"order_id"`
	TraderID  string          `json:"trader_id"`
	AgentID   string          `json:"agent_id"`
	Pair      string          `json:"pair"`
	OrderType string          `json:"order_type"`
	Side      string          `json:"side"`
	Price     decimal.Decimal `json:"price"`
	Size      decimal.Decimal `json:"size"`
	Filled    decimal.Decimal `json:"filled"`
	Remaining decimal.Decimal `json:"remaining"`
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
}

// OrderToDTO converts an engine order to its API representation
func OrderToDTO(o *types.Order) *OrderDTO {
	return &OrderDTO{
		OrderID:   o.ID,
		TraderID:  o.TraderID,
		AgentID:   o.AgentID,
		Pair:      o.Pair,
		OrderType: o.OrderType.String(),
		Side:      o.Side.String(),
		Price:     o.Price,
		Size:      o.Size,
		Filled:    o.Filled,
		Remaining: o.Remaining(),
		Status:    o.Status.String(),
		Timestamp: o.TimeStamp,
	}
}

// OrdersToDTO converts a slice of engine orders
func OrdersToDTO(orders []*types.Order) []OrderDTO {
	dtos := make([]OrderDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, *OrderToDTO(o))
	}
	return dtos
}

// GetOrderResponse represents the response for getting a single order
type GetOrderResponse struct {
	BaseResponse
	Order *OrderDTO `json:"order,omitempty"`
}

// GetOrdersResponse represents the response for getting multiple orders
type GetOrdersResponse struct {
	BaseResponse
	Orders []OrderDTO `json:"orders"`
	Count  int        `json:"count"`
}

// OrderBookResponse represents the order book depth for a pair
type OrderBookResponse struct {
	BaseResponse
	Pair           string                `json:"pair"`
	Bids           []matching.PriceLevel `json:"bids"`
	Asks           []matching.PriceLevel `json:"asks"`
	LastTradePrice *decimal.Decimal      `json:"last_trade_price"`
}

// BestQuote represents the best bid or ask
type BestQuote struct {
	Price decimal.Decimal `json:"price"`
	Size  decimal.Decimal `json:"size"`
}

// TopOfBookResponse represents the best bid and ask
type TopOfBookResponse struct {
	BaseResponse
	Pair    string     `json:"pair"`
	BestBid *BestQuote `json:"best_bid,omitempty"`
	BestAsk *BestQuote `json:"best_ask,omitempty"`
}

// GetTradesResponse represents the response for getting trades
type GetTradesResponse struct {
	BaseResponse
	Pair   string     `json:"pair"`
	Trades []TradeDTO `json:"trades"`
	Count  int        `json:"count"`
}

// PairsResponse lists the trading pairs the engine supports
type PairsResponse struct {
	BaseResponse
	Pairs []string `json:"pairs"`
	Count int      `json:"count"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	Version       string    `json:"version"`
}
