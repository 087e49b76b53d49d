package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nickthelegend/molfi-sub001/internal/api/logger"
	"github.com/nickthelegend/molfi-sub001/internal/api/models"
	"github.com/nickthelegend/molfi-sub001/internal/matching"
	"github.com/nickthelegend/molfi-sub001/internal/types"
)

// EngineHolder wraps the matching engine for dependency injection
type EngineHolder struct {
	Engine *matching.Engine
}

// NewEngineHolder creates a new engine holder
func NewEngineHolder(engine *matching.Engine) *EngineHolder {
	return &EngineHolder{Engine: engine}
}

// writeErrorResponse writes an error response
func writeErrorResponse(w http.ResponseWriter, httpErr *models.HTTPError) {
	logger.Warn("Request failed", map[string]interface{}{
		"error_code": httpErr.Error.Code,
		"status":     httpErr.StatusCode,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpErr.StatusCode)

	response := models.BaseResponse{
		Success:   false,
		Timestamp: time.Now().UTC(),
		Message:   httpErr.Error.Message,
		Error:     &httpErr.Error,
	}

	json.NewEncoder(w).Encode(response)
}

// writeJSON writes a successful JSON response
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// convertOrderType converts string to OrderType
func convertOrderType(orderType string) types.OrderType {
	switch strings.ToLower(strings.TrimSpace(orderType)) {
	case "market":
		return matching.MarketOrder
	case "limit":
		return matching.LimitOrder
	default:
		return matching.NoActionOrder
	}
}

// convertSide converts string to SideType
func convertSide(side string) types.SideType {
	switch strings.ToLower(strings.TrimSpace(side)) {
	case "buy":
		return matching.Buy
	case "sell":
		return matching.Sell
	default:
		return matching.NoActionSide
	}
}

// mapSubmitError maps an engine submission error to an HTTP error. The DTO
// has already been validated, so a size complaint here means the reject
// policy could not fill a market order.
func mapSubmitError(err error, req *models.SubmitOrderRequest) *models.HTTPError {
	var ve *matching.ValidationError
	if errors.As(err, &ve) {
		switch ve.Field {
		case "pair":
			return models.ErrUnknownPairError(req.Pair)
		case "size":
			return models.ErrUnfillableError(req.Pair)
		default:
			return models.ErrBadRequest(ve.Reason, map[string]interface{}{"field": ve.Field})
		}
	}
	return models.ErrInternal(err.Error())
}

// submitOne runs one validated submission through the engine
func (eh *EngineHolder) submitOne(req *models.SubmitOrderRequest) (*models.OrderDTO, []models.TradeDTO, *models.HTTPError) {
	order, trades, err := eh.Engine.Submit(matching.SubmitRequest{
		Trader:    req.TraderID,
		Agent:     req.AgentID,
		Pair:      req.Pair,
		OrderType: convertOrderType(req.OrderType),
		Side:      convertSide(req.Side),
		Price:     req.Price,
		Size:      req.Size,
	})
	if err != nil {
		return nil, nil, mapSubmitError(err, req)
	}
	return models.OrderToDTO(order), models.TradesToDTO(trades), nil
}

// SubmitOrderHandler handles single order submission
func (eh *EngineHolder) SubmitOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitOrderRequest

	// Parse request body
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, models.ErrBadRequest("Invalid JSON format", map[string]interface{}{"error": err.Error()}))
		return
	}

	// Validate request
	if httpErr := req.Validate(); httpErr != nil {
		writeErrorResponse(w, httpErr)
		return
	}

	orderDTO, tradeDTOs, httpErr := eh.submitOne(&req)
	if httpErr != nil {
		writeErrorResponse(w, httpErr)
		return
	}

	logger.Info("Order submitted successfully", map[string]interface{}{
		"order_id": orderDTO.OrderID,
		"agent_id": req.AgentID,
		"pair":     req.Pair,
		"type":     req.OrderType,
		"side":     req.Side,
		"trades":   len(tradeDTOs),
	})

	// Return response
	response := models.SubmitOrderResponse{
		BaseResponse: models.BaseResponse{
			Success:   true,
			Timestamp: time.Now().UTC(),
			Message:   "Order submitted successfully",
		},
		Order:  orderDTO,
		Trades: tradeDTOs,
	}

	writeJSON(w, http.StatusOK, response)
}

// BatchOrderHandler handles batch order submission
func (eh *EngineHolder) BatchOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req models.BatchOrderRequest

	// Parse request body
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, models.ErrBadRequest("Invalid JSON format", map[string]interface{}{"error": err.Error()}))
		return
	}

	// Validate batch request
	if httpErr := req.Validate(); httpErr != nil {
		writeErrorResponse(w, httpErr)
		return
	}

	// Process each order
	results := make([]models.BatchOrderResult, len(req.Orders))
	successful := 0
	failed := 0

	for i := range req.Orders {
		orderReq := &req.Orders[i]
		result := models.BatchOrderResult{
			Index: i,
		}

		httpErr := orderReq.Validate()
		if httpErr == nil {
			result.Order, result.Trades, httpErr = eh.submitOne(orderReq)
		}

		if httpErr != nil {
			result.Success = false
			result.Error = &httpErr.Error
			failed++
		} else {
			result.Success = true
			successful++
		}

		results[i] = result
	}

	logger.Info("Batch order processed", map[string]interface{}{
		"total":      len(req.Orders),
		"successful": successful,
		"failed":     failed,
	})

	// Return response
	response := models.BatchOrderResponse{
		BaseResponse: models.BaseResponse{
			Success:   true,
			Timestamp: time.Now().UTC(),
		},
		Results: results,
		Summary: models.BatchOrderSummary{
			Total:      len(req.Orders),
			Successful: successful,
			Failed:     failed,
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// parseOrderIDFromPath extracts the trailing order ID path segment
func parseOrderIDFromPath(r *http.Request) (uint64, *models.HTTPError) {
	pathParts := strings.Split(r.URL.Path, "/")
	if len(pathParts) < 5 {
		return 0, models.ErrBadRequest("Invalid order ID", nil)
	}

	orderIDStr := pathParts[len(pathParts)-1]
	orderID, err := strconv.ParseUint(orderIDStr, 10, 64)
	if err != nil {
		return 0, models.ErrBadRequest("Invalid order ID format", map[string]interface{}{"provided_value": orderIDStr})
	}
	return orderID, nil
}

// CancelOrderHandler handles order cancellation
func (eh *EngineHolder) CancelOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID, httpErr := parseOrderIDFromPath(r)
	if httpErr != nil {
		writeErrorResponse(w, httpErr)
		return
	}

	// Cancel order
	cancelled := eh.Engine.Cancel(orderID)

	if !cancelled {
		writeErrorResponse(w, models.ErrOrderNotFoundError(orderID))
		return
	}

	logger.Info("Order cancelled", map[string]interface{}{
		"order_id": orderID,
	})

	// Return response
	response := models.CancelOrderResponse{
		BaseResponse: models.BaseResponse{
			Success:   true,
			Timestamp: time.Now().UTC(),
			Message:   "Order cancelled successfully",
		},
		OrderID: orderID,
	}

	writeJSON(w, http.StatusOK, response)
}

// GetOrderHandler handles retrieving a single order
func (eh *EngineHolder) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID, httpErr := parseOrderIDFromPath(r)
	if httpErr != nil {
		writeErrorResponse(w, httpErr)
		return
	}

	// Get order from engine
	order := eh.Engine.GetOrder(orderID)

	if order == nil {
		writeErrorResponse(w, models.ErrOrderNotFoundError(orderID))
		return
	}

	// Return response
	response := models.GetOrderResponse{
		BaseResponse: models.BaseResponse{
			Success:   true,
			Timestamp: time.Now().UTC(),
		},
		Order: models.OrderToDTO(order),
	}

	writeJSON(w, http.StatusOK, response)
}

// GetAllOrdersHandler handles retrieving tracked orders with optional filters
func (eh *EngineHolder) GetAllOrdersHandler(w http.ResponseWriter, r *http.Request) {
	// Parse query parameters
	agentID := r.URL.Query().Get("agent_id")
	traderID := r.URL.Query().Get("trader_id")
	pair := r.URL.Query().Get("pair")
	sideStr := r.URL.Query().Get("side")
	limitStr := r.URL.Query().Get("limit")

	// Default limit
	limit := 100
	if limitStr != "" {
		parsedLimit, err := strconv.Atoi(limitStr)
		if err == nil && parsedLimit > 0 {
			limit = parsedLimit
			if limit > 1000 {
				limit = 1000
			}
		}
	}

	// Get orders from engine
	var orders []*types.Order

	switch {
	case agentID != "":
		orders = eh.Engine.GetOrdersForAgent(agentID, pair)
	case traderID != "":
		orders = eh.Engine.GetOrdersByTrader(traderID)
	case sideStr != "":
		side := convertSide(sideStr)
		if side != matching.NoActionSide {
			orders = eh.Engine.GetOrdersBySide(side)
		} else {
			orders = eh.Engine.GetAllOrders()
		}
	default:
		orders = eh.Engine.GetAllOrders()
	}

	// Apply limit
	if len(orders) > limit {
		orders = orders[:limit]
	}

	orderDTOs := models.OrdersToDTO(orders)

	logger.Info("Retrieved orders", map[string]interface{}{
		"count": len(orderDTOs),
	})

	// Return response
	response := models.GetOrdersResponse{
		BaseResponse: models.BaseResponse{
			Success:   true,
			Timestamp: time.Now().UTC(),
		},
		Orders: orderDTOs,
		Count:  len(orderDTOs),
	}

	writeJSON(w, http.StatusOK, response)
}
