package testutils

import (
	"github.com/shopspring/decimal"

	"github.com/nickthelegend/molfi-sub001/internal/api/models"
)

// OrderRequest builders for common test cases

// NewMarketBuyOrder creates a market buy order request
func NewMarketBuyOrder(agentID, pair, size string) models.SubmitOrderRequest {
	return models.SubmitOrderRequest{
		TraderID:  "trader-" + agentID,
		AgentID:   agentID,
		Pair:      pair,
		OrderType: "market",
		Side:      "buy",
		Size:      decimal.RequireFromString(size),
	}
}

// NewMarketSellOrder creates a market sell order request
func NewMarketSellOrder(agentID, pair, size string) models.SubmitOrderRequest {
	return models.SubmitOrderRequest{
		TraderID:  "trader-" + agentID,
		AgentID:   agentID,
		Pair:      pair,
		OrderType: "market",
		Side:      "sell",
		Size:      decimal.RequireFromString(size),
	}
}

// NewLimitBuyOrder creates a limit buy order request
func NewLimitBuyOrder(agentID, pair, price, size string) models.SubmitOrderRequest {
	return models.SubmitOrderRequest{
		TraderID:  "trader-" + agentID,
		AgentID:   agentID,
		Pair:      pair,
		OrderType: "limit",
		Side:      "buy",
		Price:     decimal.RequireFromString(price),
		Size:      decimal.RequireFromString(size),
	}
}

// NewLimitSellOrder creates a limit sell order request
func NewLimitSellOrder(agentID, pair, price, size string) models.SubmitOrderRequest {
	return models.SubmitOrderRequest{
		TraderID:  "trader-" + agentID,
		AgentID:   agentID,
		Pair:      pair,
		OrderType: "limit",
		Side:      "sell",
		Price:     decimal.RequireFromString(price),
		Size:      decimal.RequireFromString(size),
	}
}

// NewBatchRequest creates a batch order request
func NewBatchRequest(orders ...models.SubmitOrderRequest) models.BatchOrderRequest {
	return models.BatchOrderRequest{
		Orders: orders,
	}
}
