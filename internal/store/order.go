package store

import (
	"sync"

	"github.com/efranca/tradecore/internal/domain"
)

// OrderStore is the order registry: a thread-safe in-memory store owning all
// order records, with a primary index by order_id and a secondary index by
// account_id. Order records persist here after leaving the book so status
// queries keep working.
type OrderStore struct {
	mu            sync.RWMutex
	orders        map[string]*domain.Order
	accountOrders map[string][]*domain.Order // account_id → orders (append-only)
}

// NewOrderStore creates an empty OrderStore.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders:        make(map[string]*domain.Order),
		accountOrders: make(map[string][]*domain.Order),
	}
}

// Create adds an order to the store and appends it to the account's
// secondary index.
func (s *OrderStore) Create(o *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.orders[o.OrderID] = o
	s.accountOrders[o.AccountID] = append(s.accountOrders[o.AccountID], o)
}

// Get retrieves an order by ID. It returns domain.ErrOrderNotFound if the
// order does not exist.
func (s *OrderStore) Get(id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

// ListByAccount returns the account's orders in reverse chronological order
// (newest first). If status is non-nil, only orders matching that status are
// included.
func (s *OrderStore) ListByAccount(accountID string, status *domain.OrderStatus) []*domain.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.accountOrders[accountID]
	result := make([]*domain.Order, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if status != nil && all[i].Status != *status {
			continue
		}
		result = append(result, all[i])
	}
	return result
}
