package storage

import "github.com/nickthelegend/molfi-sub001/internal/types"

// OrderStore abstracts order mirroring and retrieval. The engine's in-memory
// book stays authoritative; stores are write-behind mirrors that can be
// in-memory (map), Redis, PostgreSQL, etc.
type OrderStore interface {
	// Save upserts an order (initial submission and every fill/status change)
	Save(order *types.Order) error

	// Get retrieves an order by ID
	Get(orderID uint64) (*types.Order, error)

	// Remove deletes an order from storage
	Remove(orderID uint64) error

	// GetAll returns all tracked orders
	GetAll() []*types.Order

	// GetByAgent returns all orders submitted by a specific agent
	GetByAgent(agentID string) []*types.Order

	// GetBySide returns all orders for a specific side (buy or sell)
	GetBySide(side types.SideType) []*types.Order

	// Close releases any resources held by the store
	Close() error
}

// TradeStore abstracts trade storage and retrieval. Implementations can be
// an in-memory buffer, file log, Redis, PostgreSQL, etc.
type TradeStore interface {
	// Save persists a single trade
	Save(trade *types.Trade) error

	// SaveBatch persists multiple trades (useful for database batch inserts)
	SaveBatch(trades []*types.Trade) error

	// GetRecent retrieves up to limit most recent trades for a pair,
	// newest first
	GetRecent(pair string, limit int) ([]*types.Trade, error)

	// Close releases any resources held by the store
	Close() error
}
