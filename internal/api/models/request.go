package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SubmitOrderRequest represents a single order submission
type SubmitOrderRequest struct {
	TraderID  string          `json:"trader_id"`
	AgentID   string          `json:"agent_id"`
	Pair      string          `json:"pair"`
	OrderType string          `json:"order_type"` // "market" | "limit"
	Side      string          `json:"side"`       // "buy" | "sell"
	Price     decimal.Decimal `json:"price"`
	Size      decimal.Decimal `json:"size"`
}

// Validate validates the order request
func (r *SubmitOrderRequest) Validate() *HTTPError {
	// Validate trader_id
	if strings.TrimSpace(r.TraderID) == "" {
		return ErrBadRequest("trader_id cannot be empty", map[string]interface{}{"field": "trader_id"})
	}

	// Validate agent_id
	if strings.TrimSpace(r.AgentID) == "" {
		return ErrBadRequest("agent_id cannot be empty", map[string]interface{}{"field": "agent_id"})
	}

	// Validate pair
	if strings.TrimSpace(r.Pair) == "" {
		return ErrBadRequest("pair cannot be empty", map[string]interface{}{"field": "pair"})
	}

	// Validate order_type
	orderType := strings.ToLower(strings.TrimSpace(r.OrderType))
	if orderType != "market" && orderType != "limit" {
		return ErrInvalidOrderTypeError(r.OrderType)
	}

	// Validate side
	side := strings.ToLower(strings.TrimSpace(r.Side))
	if side != "buy" && side != "sell" {
		return ErrInvalidSideError(r.Side)
	}

	// Validate size
	if r.Size.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidSizeError(r.Size.String())
	}

	// Validate price for limit orders
	if orderType == "limit" {
		if r.Price.LessThanOrEqual(decimal.Zero) {
			return ErrInvalidPriceError(r.Price.String())
		}
	}

	return nil
}

// BatchOrderRequest represents a batch order submission
type BatchOrderRequest struct {
	Orders []SubmitOrderRequest `json:"orders"`
}

// Validate validates the batch request
func (r *BatchOrderRequest) Validate() *HTTPError {
	if len(r.Orders) == 0 {
		return ErrBadRequest("orders array cannot be empty", map[string]interface{}{"field": "orders"})
	}

	if len(r.Orders) > 1000 {
		return ErrBadRequest("batch size cannot exceed 1000 orders",
			map[string]interface{}{"field": "orders", "max_size": 1000, "provided_size": len(r.Orders)})
	}

	return nil
}
