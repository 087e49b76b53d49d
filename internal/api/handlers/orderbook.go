package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/nickthelegend/molfi-sub001/internal/api/logger"
	"github.com/nickthelegend/molfi-sub001/internal/api/models"
	"github.com/nickthelegend/molfi-sub001/internal/matching"
)

// requirePair reads the pair query parameter, defaulting to the engine's
// first configured pair so single-pair deployments can omit it.
func (eh *EngineHolder) requirePair(r *http.Request) string {
	pair := r.URL.Query().Get("pair")
	if pair == "" {
		pairs := eh.Engine.Pairs()
		if len(pairs) > 0 {
			pair = pairs[0]
		}
	}
	return pair
}

// GetOrderBookHandler handles order book depth snapshot requests
func (eh *EngineHolder) GetOrderBookHandler(w http.ResponseWriter, r *http.Request) {
	pair := eh.requirePair(r)
	depthStr := r.URL.Query().Get("depth")

	// Default depth: 10, max: 100; 0 means all levels
	depth := 10
	if depthStr != "" {
		parsedDepth, err := strconv.Atoi(depthStr)
		if err == nil && parsedDepth >= 0 {
			depth = parsedDepth
			if depth > 100 {
				depth = 100
			}
		}
	}

	snapshot, err := eh.Engine.GetDepth(pair, depth)
	if err != nil {
		if matching.IsUnknownPair(err) {
			writeErrorResponse(w, models.ErrUnknownPairError(pair))
			return
		}
		writeErrorResponse(w, models.ErrInternal(err.Error()))
		return
	}

	logger.Info("Order book snapshot retrieved", map[string]interface{}{
		"pair":       pair,
		"bid_levels": len(snapshot.Bids),
		"ask_levels": len(snapshot.Asks),
	})

	// Return response
	response := models.OrderBookResponse{
		BaseResponse: models.BaseResponse{
			Success:   true,
			Timestamp: time.Now().UTC(),
		},
		Pair:           pair,
		Bids:           snapshot.Bids,
		Asks:           snapshot.Asks,
		LastTradePrice: snapshot.LastTradePrice,
	}

	writeJSON(w, http.StatusOK, response)
}

// GetTopOfBookHandler handles best bid/ask requests
func (eh *EngineHolder) GetTopOfBookHandler(w http.ResponseWriter, r *http.Request) {
	pair := eh.requirePair(r)

	bestBidLevel, bestAskLevel, err := eh.Engine.TopOfBook(pair)
	if err != nil {
		if matching.IsUnknownPair(err) {
			writeErrorResponse(w, models.ErrUnknownPairError(pair))
			return
		}
		writeErrorResponse(w, models.ErrInternal(err.Error()))
		return
	}

	var bestBid, bestAsk *models.BestQuote
	if bestBidLevel != nil {
		bestBid = &models.BestQuote{Price: bestBidLevel.Price, Size: bestBidLevel.Size}
	}
	if bestAskLevel != nil {
		bestAsk = &models.BestQuote{Price: bestAskLevel.Price, Size: bestAskLevel.Size}
	}

	logger.Info("Top of book retrieved", map[string]interface{}{
		"pair": pair,
	})

	// Return response
	response := models.TopOfBookResponse{
		BaseResponse: models.BaseResponse{
			Success:   true,
			Timestamp: time.Now().UTC(),
		},
		Pair:    pair,
		BestBid: bestBid,
		BestAsk: bestAsk,
	}

	writeJSON(w, http.StatusOK, response)
}
