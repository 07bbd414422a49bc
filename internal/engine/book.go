package engine

import (
	"sync"

	"github.com/google/btree"
	"github.com/shopspring/decimal"

	"github.com/efranca/tradecore/internal/domain"
)

// BookEntry represents a single order resting on the book.
type BookEntry struct {
	Price   decimal.Decimal
	Seq     uint64
	OrderID string
	Order   *domain.Order
}

// PriceLevel is an aggregated price level in the order book.
type PriceLevel struct {
	Price       decimal.Decimal
	TotalAmount decimal.Decimal
	OrderCount  int
}

// bidLess defines ordering for the bid side: price descending, then
// insertion sequence ascending. Min() returns the best bid (highest
// price, earliest arrival).
func bidLess(a, b BookEntry) bool {
	if cmp := a.Price.Cmp(b.Price); cmp != 0 {
		return cmp > 0
	}
	return a.Seq < b.Seq
}

// askLess defines ordering for the ask side: price ascending, then
// insertion sequence ascending. Min() returns the best ask (lowest
// price, earliest arrival).
func askLess(a, b BookEntry) bool {
	if cmp := a.Price.Cmp(b.Price); cmp != 0 {
		return cmp < 0
	}
	return a.Seq < b.Seq
}

// OrderBook maintains the bid and ask sides for a single pair using
// B-trees with a secondary index for removal by order ID. Only orders
// with remaining amount > 0 rest here; the order registry owns the
// records, the book holds references.
type OrderBook struct {
	pair  domain.Pair
	mu    sync.RWMutex
	seq   uint64
	bids  *btree.BTreeG[BookEntry]
	asks  *btree.BTreeG[BookEntry]
	index map[string]BookEntry // order_id → entry
}

// NewOrderBook creates an order book for the given pair.
func NewOrderBook(pair domain.Pair) *OrderBook {
	const degree = 32
	return &OrderBook{
		pair:  pair,
		bids:  btree.NewG[BookEntry](degree, bidLess),
		asks:  btree.NewG[BookEntry](degree, askLess),
		index: make(map[string]BookEntry),
	}
}

// NextSeq returns the next insertion sequence number. The caller must hold
// the book's write lock.
func (ob *OrderBook) NextSeq() uint64 {
	ob.seq++
	return ob.seq
}

// Insert adds an order to its side of the book. The caller must hold the
// book's write lock.
func (ob *OrderBook) Insert(o *domain.Order) {
	entry := BookEntry{
		Price:   o.Price,
		Seq:     o.Seq,
		OrderID: o.OrderID,
		Order:   o,
	}
	if o.Side == domain.SideBuy {
		ob.bids.ReplaceOrInsert(entry)
	} else {
		ob.asks.ReplaceOrInsert(entry)
	}
	ob.index[entry.OrderID] = entry
}

// Remove deletes an order from the book by order ID. Removing an order that
// is not resting is a no-op, so duplicate removal signals are harmless.
func (ob *OrderBook) Remove(orderID string) {
	entry, ok := ob.index[orderID]
	if !ok {
		return
	}
	delete(ob.index, orderID)
	// Delete is a no-op on the side the entry isn't on.
	ob.bids.Delete(entry)
	ob.asks.Delete(entry)
}

// BestOpposite returns the highest-priority resting order on the side an
// incoming order of the given side would trade against.
func (ob *OrderBook) BestOpposite(side domain.Side) (BookEntry, bool) {
	if side == domain.SideBuy {
		return ob.asks.Min()
	}
	return ob.bids.Min()
}

// BestBid returns the highest-priority bid (highest price, earliest arrival).
func (ob *OrderBook) BestBid() (BookEntry, bool) {
	return ob.bids.Min()
}

// BestAsk returns the highest-priority ask (lowest price, earliest arrival).
func (ob *OrderBook) BestAsk() (BookEntry, bool) {
	return ob.asks.Min()
}

// TopBids returns up to n aggregated price levels from the bid side,
// ordered by price descending.
func (ob *OrderBook) TopBids(n int) []PriceLevel {
	ob.mu.RLock()
	defer ob.mu.RUnlock()
	return topLevels(ob.bids, n)
}

// TopAsks returns up to n aggregated price levels from the ask side,
// ordered by price ascending.
func (ob *OrderBook) TopAsks(n int) []PriceLevel {
	ob.mu.RLock()
	defer ob.mu.RUnlock()
	return topLevels(ob.asks, n)
}

// topLevels iterates the B-tree in order and aggregates entries into
// at most n price levels.
func topLevels(tree *btree.BTreeG[BookEntry], n int) []PriceLevel {
	if n <= 0 {
		return nil
	}
	levels := make([]PriceLevel, 0, n)
	tree.Ascend(func(entry BookEntry) bool {
		if len(levels) > 0 && levels[len(levels)-1].Price.Equal(entry.Price) {
			levels[len(levels)-1].TotalAmount = levels[len(levels)-1].TotalAmount.Add(entry.Order.Remaining())
			levels[len(levels)-1].OrderCount++
			return true
		}
		if len(levels) >= n {
			return false
		}
		levels = append(levels, PriceLevel{
			Price:       entry.Price,
			TotalAmount: entry.Order.Remaining(),
			OrderCount:  1,
		})
		return true
	})
	return levels
}

// BidCount returns the number of individual bid orders on the book.
func (ob *OrderBook) BidCount() int {
	return ob.bids.Len()
}

// AskCount returns the number of individual ask orders on the book.
func (ob *OrderBook) AskCount() int {
	return ob.asks.Len()
}

// BookManager is a thread-safe map of pair → OrderBook.
type BookManager struct {
	mu    sync.RWMutex
	books map[string]*OrderBook
}

// NewBookManager creates a new BookManager.
func NewBookManager() *BookManager {
	return &BookManager{
		books: make(map[string]*OrderBook),
	}
}

// GetOrCreate returns the order book for the given pair, creating one if it
// doesn't already exist.
func (bm *BookManager) GetOrCreate(pair domain.Pair) *OrderBook {
	bm.mu.RLock()
	book, ok := bm.books[pair.ID]
	bm.mu.RUnlock()
	if ok {
		return book
	}

	bm.mu.Lock()
	defer bm.mu.Unlock()
	// Double-check after acquiring write lock.
	if book, ok = bm.books[pair.ID]; ok {
		return book
	}
	book = NewOrderBook(pair)
	bm.books[pair.ID] = book
	return book
}
