package file

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/nickthelegend/molfi-sub001/internal/types"
)

// FileTradeStore implements TradeStore using append-only file writes (one
// JSON line per trade). Writes are asynchronous so they never block the
// matching path. Read operations return empty: the file is an audit log,
// pair it with an in-memory store via CompositeTradeStore for reads.
type FileTradeStore struct {
	file    *os.File
	encoder *json.Encoder
	mutex   sync.Mutex
}

// NewFileTradeStore creates a new file-based trade store
func NewFileTradeStore(filePath string) (*FileTradeStore, error) {
	f, err := os.OpenFile(filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open trade log: %w", err)
	}

	return &FileTradeStore{
		file:    f,
		encoder: json.NewEncoder(f),
	}, nil
}

func (s *FileTradeStore) Save(trade *types.Trade) error {
	// Async write to avoid blocking the matching engine
	go func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()
		_ = s.encoder.Encode(trade)
	}()
	return nil
}

func (s *FileTradeStore) SaveBatch(trades []*types.Trade) error {
	// Async batch write
	go func() {
		s.mutex.Lock()
		defer s.mutex.Unlock()
		for _, trade := range trades {
			_ = s.encoder.Encode(trade)
		}
	}()
	return nil
}

func (s *FileTradeStore) GetRecent(pair string, limit int) ([]*types.Trade, error) {
	// File store is write-only, no read support
	return []*types.Trade{}, nil
}

func (s *FileTradeStore) Close() error {
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}
