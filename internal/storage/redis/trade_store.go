package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nickthelegend/molfi-sub001/internal/types"
)

const tradesKeyPrefix = "trades:" // one sorted set per pair

// RedisTradeStore implements TradeStore using one Redis sorted set per pair
// with FIFO eviction
type RedisTradeStore struct {
	client    *redis.Client
	maxTrades int
}

// NewRedisTradeStore creates a new Redis-backed trade store
func NewRedisTradeStore(cfg RedisConfig) (*RedisTradeStore, error) {
	client, err := NewRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &RedisTradeStore{
		client:    client,
		maxTrades: cfg.MaxTrades,
	}, nil
}

func tradesKey(pair string) string {
	return tradesKeyPrefix + pair
}

func (s *RedisTradeStore) Save(trade *types.Trade) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	// Serialize trade to JSON
	data, err := json.Marshal(trade)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()

	// Add to the pair's sorted set (score = trade ID, execution order)
	pipe.ZAdd(ctx, tradesKey(trade.Pair), redis.Z{
		Score:  float64(trade.TradeID),
		Member: data,
	})

	// Trim to keep only last N trades
	pipe.ZRemRangeByRank(ctx, tradesKey(trade.Pair), 0, int64(-s.maxTrades-1))

	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisTradeStore) SaveBatch(trades []*types.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pipe := s.client.Pipeline()

	touched := make(map[string]bool, 1)
	for _, trade := range trades {
		data, err := json.Marshal(trade)
		if err != nil {
			continue
		}

		pipe.ZAdd(ctx, tradesKey(trade.Pair), redis.Z{
			Score:  float64(trade.TradeID),
			Member: data,
		})
		touched[trade.Pair] = true
	}

	// Trim every pair we wrote to
	for pair := range touched {
		pipe.ZRemRangeByRank(ctx, tradesKey(pair), 0, int64(-s.maxTrades-1))
	}

	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisTradeStore) GetRecent(pair string, limit int) ([]*types.Trade, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 100
	}

	// Get last N trades (descending score = newest first)
	results, err := s.client.ZRevRange(ctx, tradesKey(pair), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read trades for %s: %w", pair, err)
	}

	trades := make([]*types.Trade, 0, len(results))
	for _, data := range results {
		var trade types.Trade
		if err := json.Unmarshal([]byte(data), &trade); err != nil {
			continue
		}
		trades = append(trades, &trade)
	}

	return trades, nil
}

func (s *RedisTradeStore) Close() error {
	return s.client.Close()
}
