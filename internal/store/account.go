package store

import (
	"sync"

	"github.com/efranca/tradecore/internal/domain"
)

// AccountStore is a thread-safe in-memory store for accounts, keyed by
// account_id. Accounts are created on first reference and never removed.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// NewAccountStore creates an empty AccountStore.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[string]*domain.Account),
	}
}

// GetOrCreate returns the account with the given ID, creating an empty one
// if it does not exist yet.
func (s *AccountStore) GetOrCreate(id string) *domain.Account {
	s.mu.RLock()
	a, ok := s.accounts[id]
	s.mu.RUnlock()
	if ok {
		return a
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Double-check after acquiring write lock.
	if a, ok = s.accounts[id]; ok {
		return a
	}
	a = domain.NewAccount(id)
	s.accounts[id] = a
	return a
}

// Exists returns true if an account with the given ID exists.
func (s *AccountStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[id]
	return ok
}
