package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/efranca/tradecore/internal/domain"
	"github.com/efranca/tradecore/internal/store"
)

// Ledger performs all balance mutations: administrative funding, order
// locking and release, and per-trade settlement. Every mutation of an
// account's balances happens under that account's mutex, so a concurrent
// balance read can never observe a trade's debit without its paired credit.
type Ledger struct {
	accounts *store.AccountStore
}

// New creates a Ledger over the given account store.
func New(accounts *store.AccountStore) *Ledger {
	return &Ledger{accounts: accounts}
}

// Credit adds amount to the account's available balance. This is the
// administrative funding entry point; it is not part of matching.
func (l *Ledger) Credit(accountID string, asset domain.AssetType, amount decimal.Decimal) {
	a := l.accounts.GetOrCreate(accountID)
	a.Mu.Lock()
	defer a.Mu.Unlock()
	b := a.Balance(asset)
	b.Available = b.Available.Add(amount)
}

// Balance returns a snapshot of the account's available and locked funds in
// the given asset. Never-touched assets report zero.
func (l *Ledger) Balance(accountID string, asset domain.AssetType) (available, locked decimal.Decimal) {
	a := l.accounts.GetOrCreate(accountID)
	a.Mu.Lock()
	defer a.Mu.Unlock()
	b := a.Balance(asset)
	return b.Available, b.Locked
}

// Lock moves amount from available to locked, all or nothing. It returns
// domain.ErrInsufficientBalance without mutating anything when available
// funds fall short.
func (l *Ledger) Lock(accountID string, asset domain.AssetType, amount decimal.Decimal) error {
	a := l.accounts.GetOrCreate(accountID)
	a.Mu.Lock()
	defer a.Mu.Unlock()
	b := a.Balance(asset)
	if b.Available.LessThan(amount) {
		return domain.ErrInsufficientBalance
	}
	b.Available = b.Available.Sub(amount)
	b.Locked = b.Locked.Add(amount)
	return nil
}

// Unlock moves amount from locked back to available. A locked balance
// smaller than amount means the engine's bookkeeping diverged from the
// ledger, which is not recoverable.
func (l *Ledger) Unlock(accountID string, asset domain.AssetType, amount decimal.Decimal) error {
	a := l.accounts.GetOrCreate(accountID)
	a.Mu.Lock()
	defer a.Mu.Unlock()
	b := a.Balance(asset)
	if b.Locked.LessThan(amount) {
		return fmt.Errorf("unlock %s %s for %s exceeds locked %s", amount, asset, accountID, b.Locked)
	}
	b.Locked = b.Locked.Sub(amount)
	b.Available = b.Available.Add(amount)
	return nil
}

// SettleTrade applies one trade's settlement as a single visible unit:
//
//	buyer:  locked[quote] -= price × amount, available[base]  += amount
//	seller: locked[base]  -= amount,        available[quote] += price × amount
//
// buyerLimit is the buy order's limit price; the surplus the buyer locked
// above the execution price, (buyerLimit − price) × amount, is released back
// to the buyer's available quote in the same unit. Both account mutexes are
// held for the duration (ordered by account ID), so readers see either the
// pre-trade or the post-trade state and funds move strictly between the two
// counterparties.
func (l *Ledger) SettleTrade(buyerID, sellerID string, pair domain.Pair, price, amount, buyerLimit decimal.Decimal) error {
	buyer := l.accounts.GetOrCreate(buyerID)
	seller := l.accounts.GetOrCreate(sellerID)

	unlock := lockBoth(buyer, seller)
	defer unlock()

	cost := price.Mul(amount)
	surplus := buyerLimit.Sub(price).Mul(amount)
	if surplus.IsNegative() {
		return fmt.Errorf("trade price %s exceeds buyer limit %s", price, buyerLimit)
	}

	buyerQuote := buyer.Balance(pair.Quote)
	sellerBase := seller.Balance(pair.Base)
	if buyerQuote.Locked.LessThan(cost.Add(surplus)) {
		return fmt.Errorf("buyer %s locked %s %s short of cost %s plus surplus %s",
			buyerID, buyerQuote.Locked, pair.Quote, cost, surplus)
	}
	if sellerBase.Locked.LessThan(amount) {
		return fmt.Errorf("seller %s locked %s %s short of amount %s",
			sellerID, sellerBase.Locked, pair.Base, amount)
	}

	// Buyer legs: spend locked quote, receive base, reclaim surplus.
	buyerQuote.Locked = buyerQuote.Locked.Sub(cost).Sub(surplus)
	buyerQuote.Available = buyerQuote.Available.Add(surplus)
	buyerBase := buyer.Balance(pair.Base)
	buyerBase.Available = buyerBase.Available.Add(amount)

	// Seller legs: give up locked base, receive quote.
	sellerBase.Locked = sellerBase.Locked.Sub(amount)
	sellerQuote := seller.Balance(pair.Quote)
	sellerQuote.Available = sellerQuote.Available.Add(cost)

	return nil
}

// lockBoth acquires both account mutexes in a deterministic order and
// returns the matching release function. Self-trades lock once.
func lockBoth(a, b *domain.Account) func() {
	if a == b {
		a.Mu.Lock()
		return a.Mu.Unlock
	}
	first, second := a, b
	if second.AccountID < first.AccountID {
		first, second = second, first
	}
	first.Mu.Lock()
	second.Mu.Lock()
	return func() {
		second.Mu.Unlock()
		first.Mu.Unlock()
	}
}
