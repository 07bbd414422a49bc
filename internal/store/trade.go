package store

import (
	"sync"

	"github.com/efranca/tradecore/internal/domain"
)

// TradeStore is a thread-safe in-memory store for trades, keyed by pair.
// Trades are append-only and chronological.
type TradeStore struct {
	mu     sync.RWMutex
	trades map[string][]*domain.Trade // pair_id → trades (chronological)
}

// NewTradeStore creates an empty TradeStore.
func NewTradeStore() *TradeStore {
	return &TradeStore{
		trades: make(map[string][]*domain.Trade),
	}
}

// Append adds a trade to the pair's chronological list.
func (s *TradeStore) Append(t *domain.Trade) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades[t.Pair.ID] = append(s.trades[t.Pair.ID], t)
}

// Recent returns up to limit trades for a pair, newest first. A limit <= 0
// returns all trades.
func (s *TradeStore) Recent(pairID string, limit int) []*domain.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.trades[pairID]
	if limit <= 0 || limit > len(all) {
		limit = len(all)
	}
	result := make([]*domain.Trade, 0, limit)
	for i := len(all) - 1; i >= len(all)-limit; i-- {
		result = append(result, all[i])
	}
	return result
}
