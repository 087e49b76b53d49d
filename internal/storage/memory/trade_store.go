package memory

import (
	"sync"

	"github.com/nickthelegend/molfi-sub001/internal/types"
)

// InMemoryTradeStore implements TradeStore using one bounded buffer per pair.
// Keeps only the N most recent trades per pair in memory.
type InMemoryTradeStore struct {
	trades  map[string][]*types.Trade
	maxSize int
	mutex   sync.RWMutex
}

// NewInMemoryTradeStore creates a new in-memory trade store with a per-pair
// size limit
func NewInMemoryTradeStore(maxSize int) *InMemoryTradeStore {
	return &InMemoryTradeStore{
		trades:  make(map[string][]*types.Trade),
		maxSize: maxSize,
	}
}

func (s *InMemoryTradeStore) Save(trade *types.Trade) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.append(trade)
	return nil
}

func (s *InMemoryTradeStore) SaveBatch(trades []*types.Trade) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, trade := range trades {
		s.append(trade)
	}
	return nil
}

// append assumes the write lock is held
func (s *InMemoryTradeStore) append(trade *types.Trade) {
	buf := append(s.trades[trade.Pair], trade)

	// Trim to max size (circular buffer behavior)
	if len(buf) > s.maxSize {
		buf = buf[len(buf)-s.maxSize:]
	}
	s.trades[trade.Pair] = buf
}

func (s *InMemoryTradeStore) GetRecent(pair string, limit int) ([]*types.Trade, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	buf := s.trades[pair]

	// Clamp limit to actual size
	if limit <= 0 || limit > len(buf) {
		limit = len(buf)
	}

	// Return last 'limit' trades, newest first
	result := make([]*types.Trade, limit)
	for i := 0; i < limit; i++ {
		result[i] = buf[len(buf)-1-i]
	}

	return result, nil
}

func (s *InMemoryTradeStore) Close() error {
	// No cleanup needed for in-memory store
	return nil
}
