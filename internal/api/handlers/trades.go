package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/nickthelegend/molfi-sub001/internal/api/logger"
	"github.com/nickthelegend/molfi-sub001/internal/api/models"
	"github.com/nickthelegend/molfi-sub001/internal/matching"
)

// GetTradesHandler handles retrieving recent trades for a pair
func (eh *EngineHolder) GetTradesHandler(w http.ResponseWriter, r *http.Request) {
	pair := eh.requirePair(r)
	limitStr := r.URL.Query().Get("limit")

	// Default limit: 100, max: 1000
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

	// Get recent trades from engine, newest first
	trades, err := eh.Engine.GetRecentTrades(pair, limit)
	if err != nil {
		if matching.IsUnknownPair(err) {
			writeErrorResponse(w, models.ErrUnknownPairError(pair))
			return
		}
		writeErrorResponse(w, models.ErrInternal(err.Error()))
		return
	}

	tradeDTOs := models.TradesToDTO(trades)

	logger.Info("Retrieved trades", map[string]interface{}{
		"pair":  pair,
		"count": len(tradeDTOs),
		"limit": limit,
	})

	// Return response
	response := models.GetTradesResponse{
		BaseResponse: models.BaseResponse{
			Success:   true,
			Timestamp: time.Now().UTC(),
		},
		Pair:   pair,
		Trades: tradeDTOs,
		Count:  len(tradeDTOs),
	}

	writeJSON(w, http.StatusOK, response)
}

// GetPairsHandler lists the trading pairs the engine supports
func (eh *EngineHolder) GetPairsHandler(w http.ResponseWriter, r *http.Request) {
	pairs := eh.Engine.Pairs()

	response := models.PairsResponse{
		BaseResponse: models.BaseResponse{
			Success:   true,
			Timestamp: time.Now().UTC(),
		},
		Pairs: pairs,
		Count: len(pairs),
	}

	writeJSON(w, http.StatusOK, response)
}
