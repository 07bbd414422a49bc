package service

import (
	"github.com/shopspring/decimal"

	"github.com/efranca/tradecore/internal/domain"
	"github.com/efranca/tradecore/internal/engine"
	"github.com/efranca/tradecore/internal/store"
)

// PlaceOrderRequest represents the input for order placement. An empty
// PairID selects the configured default pair.
type PlaceOrderRequest struct {
	AccountID string
	PairID    string
	Side      domain.Side
	Price     decimal.Decimal
	Amount    decimal.Decimal
}

// OrderService handles order placement, retrieval, cancellation, and listing.
// Queries are scoped to the acting account: an order belonging to someone
// else is indistinguishable from a missing one.
type OrderService struct {
	matcher *engine.Matcher
	orders  *store.OrderStore
	pairs   *domain.PairRegistry
}

// NewOrderService creates a new OrderService with the given dependencies.
func NewOrderService(matcher *engine.Matcher, orders *store.OrderStore, pairs *domain.PairRegistry) *OrderService {
	return &OrderService{
		matcher: matcher,
		orders:  orders,
		pairs:   pairs,
	}
}

// PlaceOrder validates the request and runs it through the matching engine.
// The returned order already reflects every fill of the sweep; callers never
// need to poll for completion.
func (s *OrderService) PlaceOrder(req PlaceOrderRequest) (*domain.Order, []*domain.Trade, error) {
	if req.Side != domain.SideBuy && req.Side != domain.SideSell {
		return nil, nil, &domain.ValidationError{Message: "side must be BUY or SELL"}
	}
	if !req.Price.IsPositive() {
		return nil, nil, &domain.ValidationError{Message: "price must be > 0"}
	}
	if !req.Amount.IsPositive() {
		return nil, nil, &domain.ValidationError{Message: "amount must be > 0"}
	}

	var pair domain.Pair
	if req.PairID == "" {
		pair = s.pairs.Default()
	} else {
		var err error
		pair, err = s.pairs.Get(req.PairID)
		if err != nil {
			return nil, nil, err
		}
	}

	order := &domain.Order{
		AccountID: req.AccountID,
		Pair:      pair,
		Side:      req.Side,
		Price:     req.Price,
		Amount:    req.Amount,
	}
	trades, err := s.matcher.PlaceOrder(order)
	if err != nil {
		return nil, nil, err
	}
	return order, trades, nil
}

// GetOrder retrieves one of the account's orders by ID.
func (s *OrderService) GetOrder(accountID, orderID string) (*domain.Order, error) {
	order, err := s.orders.Get(orderID)
	if err != nil {
		return nil, err
	}
	if order.AccountID != accountID {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// CancelOrder cancels one of the account's open orders and releases the
// funds locked for its unfilled remainder.
func (s *OrderService) CancelOrder(accountID, orderID string) (*domain.Order, error) {
	order, err := s.orders.Get(orderID)
	if err != nil {
		return nil, err
	}
	if order.AccountID != accountID {
		return nil, domain.ErrOrderNotFound
	}
	return s.matcher.CancelOrder(orderID)
}

// ListOrders returns the account's orders, newest first, optionally filtered
// by status.
func (s *OrderService) ListOrders(accountID string, status *domain.OrderStatus) []*domain.Order {
	return s.orders.ListByAccount(accountID, status)
}
