package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nickthelegend/molfi-sub001/internal/types"
)

// PostgresTradeStore implements TradeStore using PostgreSQL
type PostgresTradeStore struct {
	pool *pgxpool.Pool
}

// NewPostgresTradeStore creates a new PostgreSQL-backed trade store
func NewPostgresTradeStore(cfg PostgresConfig) (*PostgresTradeStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := NewPostgresPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &PostgresTradeStore{pool: pool}, nil
}

const insertTrade = `
	INSERT INTO trades (trade_id, pair, price, size, side, taker_order_id, maker_order_id, executed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (trade_id) DO NOTHING
`

func (s *PostgresTradeStore) Save(trade *types.Trade) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.pool.Exec(ctx, insertTrade,
		trade.TradeID, trade.Pair, trade.Price, trade.Size, int(trade.Side),
		trade.TakerOrderID, trade.MakerOrderID, trade.Timestamp,
	)

	return err
}

func (s *PostgresTradeStore) SaveBatch(trades []*types.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Use pgx batch for efficient batch inserts
	batch := &pgx.Batch{}
	for _, trade := range trades {
		batch.Queue(insertTrade,
			trade.TradeID, trade.Pair, trade.Price, trade.Size, int(trade.Side),
			trade.TakerOrderID, trade.MakerOrderID, trade.Timestamp,
		)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	// Execute all batched queries
	for i := 0; i < len(trades); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("batch insert failed at index %d: %w", i, err)
		}
	}

	return nil
}

func (s *PostgresTradeStore) GetRecent(pair string, limit int) ([]*types.Trade, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 100
	}

	// trade_id is the execution sequence, so it is the ordering key
	query := `
		SELECT trade_id, pair, price, size, side, taker_order_id, maker_order_id, executed_at
		FROM trades
		WHERE pair = $1
		ORDER BY trade_id DESC
		LIMIT $2
	`

	rows, err := s.pool.Query(ctx, query, pair, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trades []*types.Trade
	for rows.Next() {
		var trade types.Trade
		var side int
		err := rows.Scan(
			&trade.TradeID, &trade.Pair, &trade.Price, &trade.Size, &side,
			&trade.TakerOrderID, &trade.MakerOrderID, &trade.Timestamp,
		)
		if err != nil {
			continue
		}
		trade.Side = types.SideType(side)
		trades = append(trades, &trade)
	}

	return trades, nil
}

func (s *PostgresTradeStore) Close() error {
	s.pool.Close()
	return nil
}
