package service

import (
	"github.com/efranca/tradecore/internal/domain"
	"github.com/efranca/tradecore/internal/engine"
	"github.com/efranca/tradecore/internal/store"
)

// defaultDepth bounds depth and history queries that omit a limit.
const defaultDepth = 20

// Depth is an aggregated snapshot of one pair's book.
type Depth struct {
	Pair domain.Pair
	Bids []engine.PriceLevel
	Asks []engine.PriceLevel
}

// QuotationService serves market-depth and recent-trade queries. Reads go
// through the book's read lock and observe only fully settled states.
type QuotationService struct {
	books  *engine.BookManager
	trades *store.TradeStore
	pairs  *domain.PairRegistry
}

// NewQuotationService creates a new QuotationService.
func NewQuotationService(books *engine.BookManager, trades *store.TradeStore, pairs *domain.PairRegistry) *QuotationService {
	return &QuotationService{
		books:  books,
		trades: trades,
		pairs:  pairs,
	}
}

// Depth returns up to limit aggregated price levels per side for the pair.
func (s *QuotationService) Depth(pairID string, limit int) (*Depth, error) {
	pair, err := s.resolvePair(pairID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultDepth
	}
	book := s.books.GetOrCreate(pair)
	return &Depth{
		Pair: pair,
		Bids: book.TopBids(limit),
		Asks: book.TopAsks(limit),
	}, nil
}

// History returns up to limit recent trades for the pair, newest first.
func (s *QuotationService) History(pairID string, limit int) ([]*domain.Trade, error) {
	pair, err := s.resolvePair(pairID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultDepth
	}
	return s.trades.Recent(pair.ID, limit), nil
}

func (s *QuotationService) resolvePair(pairID string) (domain.Pair, error) {
	if pairID == "" {
		return s.pairs.Default(), nil
	}
	return s.pairs.Get(pairID)
}
