package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/efranca/tradecore/internal/domain"
	"github.com/efranca/tradecore/internal/ledger"
	"github.com/efranca/tradecore/internal/store"
)

// Matcher is the clearing coordinator: it locks funds for an incoming order,
// sweeps it against the opposite side of the pair's book, settles every trade
// through the ledger before continuing, and rests any unfilled remainder.
//
// All book mutation and settlement for a pair happens under that pair's
// write lock, so matching is serialized per pair while independent pairs
// proceed in parallel.
type Matcher struct {
	books      *BookManager
	orderStore *store.OrderStore
	tradeStore *store.TradeStore
	ledger     *ledger.Ledger
	tradeSeq   atomic.Uint64
}

// NewMatcher creates a new Matcher with the given dependencies.
func NewMatcher(
	books *BookManager,
	orderStore *store.OrderStore,
	tradeStore *store.TradeStore,
	l *ledger.Ledger,
) *Matcher {
	return &Matcher{
		books:      books,
		orderStore: orderStore,
		tradeStore: tradeStore,
		ledger:     l,
	}
}

// PlaceOrder processes an incoming limit order. It locks the worst-case
// required funds (BUY: price × amount of quote; SELL: amount of base), runs
// the sweep, and returns the trades executed. A rejected placement mutates
// neither the ledger nor the book.
//
// The caller must provide an Order with AccountID, Pair, Side, Price, and
// Amount set. The matcher assigns OrderID, Seq, CreatedAt, and manages all
// status transitions.
func (m *Matcher) PlaceOrder(order *domain.Order) ([]*domain.Trade, error) {
	book := m.books.GetOrCreate(order.Pair)

	book.mu.Lock()
	defer book.mu.Unlock()

	// Step 1: lock the worst case, all or nothing.
	var lockAsset domain.AssetType
	var lockAmount decimal.Decimal
	if order.Side == domain.SideBuy {
		lockAsset = order.Pair.Quote
		lockAmount = order.Price.Mul(order.Amount)
	} else {
		lockAsset = order.Pair.Base
		lockAmount = order.Amount
	}
	if err := m.ledger.Lock(order.AccountID, lockAsset, lockAmount); err != nil {
		return nil, err
	}

	// Step 2: admit the order into the registry.
	order.OrderID = uuid.New().String()
	order.Seq = book.NextSeq()
	order.CreatedAt = time.Now()
	order.FilledAmount = decimal.Zero
	order.Status = domain.OrderStatusOpen
	m.orderStore.Create(order)

	// Step 3: sweep the opposite side.
	var trades []*domain.Trade
	for order.Remaining().IsPositive() {
		best, found := book.BestOpposite(order.Side)
		if !found {
			break
		}
		if !crossable(order, best.Price) {
			break
		}

		maker := best.Order
		tradeAmount := order.Remaining()
		if maker.Remaining().LessThan(tradeAmount) {
			tradeAmount = maker.Remaining()
		}

		// Execution price is always the maker's limit price.
		trade := m.settle(order, maker, best.Price, tradeAmount)
		trades = append(trades, trade)

		maker.FilledAmount = maker.FilledAmount.Add(tradeAmount)
		if maker.Remaining().IsZero() {
			maker.Status = domain.OrderStatusFilled
			book.Remove(maker.OrderID)
		} else {
			maker.Status = domain.OrderStatusPartiallyFilled
		}

		order.FilledAmount = order.FilledAmount.Add(tradeAmount)
	}

	// Step 4: rest or complete.
	if order.Remaining().IsPositive() {
		if order.FilledAmount.IsZero() {
			order.Status = domain.OrderStatusOpen
		} else {
			order.Status = domain.OrderStatusPartiallyFilled
		}
		book.Insert(order)
	} else {
		order.Status = domain.OrderStatusFilled
	}

	return trades, nil
}

// settle executes one trade between the taker and the maker at the maker's
// price. The ledger applies both counterparties' legs as one visible unit;
// the buyer's surplus over the execution price is released in the same unit.
// A settlement failure means the book and the ledger disagree, which is a
// fatal invariant violation rather than a recoverable error.
func (m *Matcher) settle(taker, maker *domain.Order, price, amount decimal.Decimal) *domain.Trade {
	var buy, sell *domain.Order
	if taker.Side == domain.SideBuy {
		buy, sell = taker, maker
	} else {
		buy, sell = maker, taker
	}

	err := m.ledger.SettleTrade(buy.AccountID, sell.AccountID, taker.Pair, price, amount, buy.Price)
	if err != nil {
		panic(fmt.Sprintf("trade settlement failed: buy=%s sell=%s: %v", buy.OrderID, sell.OrderID, err))
	}

	trade := &domain.Trade{
		TradeID:     uuid.New().String(),
		Pair:        taker.Pair,
		BuyOrderID:  buy.OrderID,
		SellOrderID: sell.OrderID,
		Price:       price,
		Amount:      amount,
		Seq:         m.tradeSeq.Add(1),
		ExecutedAt:  time.Now(),
	}
	m.tradeStore.Append(trade)
	return trade
}

// crossable reports whether the incoming order's limit admits a trade
// against the given opposite price.
func crossable(order *domain.Order, oppositePrice decimal.Decimal) bool {
	if order.Side == domain.SideBuy {
		return oppositePrice.LessThanOrEqual(order.Price)
	}
	return oppositePrice.GreaterThanOrEqual(order.Price)
}

// CancelOrder cancels an open or partially filled order: it removes the
// order from the book and releases the funds still locked for the unfilled
// remainder. Terminal orders return domain.ErrOrderNotCancellable.
//
// Cancellation takes the pair's write lock, so it can never interleave with
// an in-flight match of the same order.
func (m *Matcher) CancelOrder(orderID string) (*domain.Order, error) {
	order, err := m.orderStore.Get(orderID)
	if err != nil {
		return nil, err
	}

	book := m.books.GetOrCreate(order.Pair)
	book.mu.Lock()
	defer book.mu.Unlock()

	// Re-check under the lock; a concurrent sweep may have filled it.
	if order.Terminal() {
		return nil, domain.ErrOrderNotCancellable
	}

	book.Remove(order.OrderID)

	remaining := order.Remaining()
	var releaseAsset domain.AssetType
	var releaseAmount decimal.Decimal
	if order.Side == domain.SideBuy {
		releaseAsset = order.Pair.Quote
		releaseAmount = order.Price.Mul(remaining)
	} else {
		releaseAsset = order.Pair.Base
		releaseAmount = remaining
	}
	if err := m.ledger.Unlock(order.AccountID, releaseAsset, releaseAmount); err != nil {
		panic(fmt.Sprintf("cancel release failed: order=%s: %v", order.OrderID, err))
	}

	now := time.Now()
	order.Status = domain.OrderStatusCancelled
	order.CancelledAt = &now
	return order, nil
}
