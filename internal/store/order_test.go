package store

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/efranca/tradecore/internal/domain"
)

func testOrder(id, accountID string, status domain.OrderStatus) *domain.Order {
	return &domain.Order{
		OrderID:      id,
		AccountID:    accountID,
		Side:         domain.SideBuy,
		Price:        decimal.NewFromInt(100),
		Amount:       decimal.NewFromInt(10),
		FilledAmount: decimal.Zero,
		Status:       status,
	}
}

func TestOrderStore_CreateAndGet(t *testing.T) {
	s := NewOrderStore()
	o := testOrder("o1", "user1", domain.OrderStatusOpen)
	s.Create(o)

	got, err := s.Get("o1")
	if err != nil {
		t.Fatalf("Get(o1) unexpected error: %v", err)
	}
	if got != o {
		t.Error("Get should return the stored order record")
	}
}

func TestOrderStore_Get_NotFound(t *testing.T) {
	s := NewOrderStore()
	if _, err := s.Get("missing"); err != domain.ErrOrderNotFound {
		t.Errorf("Get(missing) error = %v, want ErrOrderNotFound", err)
	}
}

func TestOrderStore_ListByAccount_NewestFirst(t *testing.T) {
	s := NewOrderStore()
	s.Create(testOrder("o1", "user1", domain.OrderStatusOpen))
	s.Create(testOrder("o2", "user1", domain.OrderStatusFilled))
	s.Create(testOrder("o3", "user2", domain.OrderStatusOpen))
	s.Create(testOrder("o4", "user1", domain.OrderStatusOpen))

	orders := s.ListByAccount("user1", nil)
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}
	if orders[0].OrderID != "o4" || orders[2].OrderID != "o1" {
		t.Errorf("orders not newest-first: %s, %s, %s",
			orders[0].OrderID, orders[1].OrderID, orders[2].OrderID)
	}
}

func TestOrderStore_ListByAccount_StatusFilter(t *testing.T) {
	s := NewOrderStore()
	s.Create(testOrder("o1", "user1", domain.OrderStatusOpen))
	s.Create(testOrder("o2", "user1", domain.OrderStatusFilled))

	open := domain.OrderStatusOpen
	orders := s.ListByAccount("user1", &open)
	if len(orders) != 1 || orders[0].OrderID != "o1" {
		t.Errorf("status filter returned wrong orders: %v", orders)
	}
}
