package domain

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Balance is one account's position in a single asset. Available funds may be
// spent or locked; locked funds back an open order until it fills or is
// cancelled. Both are always >= 0.
type Balance struct {
	Available decimal.Decimal
	Locked    decimal.Decimal
}

// Account is a trading participant. Accounts are created on first reference
// and never destroyed in-process.
type Account struct {
	AccountID string
	Balances  map[AssetType]*Balance
	CreatedAt time.Time
	Mu        sync.Mutex // guards Balances and every Balance reachable from it
}

// NewAccount creates an account with no balances.
func NewAccount(id string) *Account {
	return &Account{
		AccountID: id,
		Balances:  make(map[AssetType]*Balance),
		CreatedAt: time.Now(),
	}
}

// Balance returns the account's balance record for the asset, creating a zero
// record if none exists. The caller must hold Mu.
func (a *Account) Balance(asset AssetType) *Balance {
	b, ok := a.Balances[asset]
	if !ok {
		b = &Balance{Available: decimal.Zero, Locked: decimal.Zero}
		a.Balances[asset] = b
	}
	return b
}
