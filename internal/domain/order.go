package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side indicates whether an order buys or sells the pair's base asset.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// OrderStatus represents the lifecycle state of an order.
//
// OPEN and PARTIALLY_FILLED orders rest on the book; FILLED and CANCELLED are
// terminal and never mutate again.
type OrderStatus string

const (
	OrderStatusOpen            OrderStatus = "OPEN"
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderStatusFilled          OrderStatus = "FILLED"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
)

// Order is a limit instruction submitted by an account. The order registry
// owns the record; the order book holds references only while the order rests.
type Order struct {
	OrderID      string
	AccountID    string
	Pair         Pair
	Side         Side
	Price        decimal.Decimal // limit price, quote per unit of base
	Amount       decimal.Decimal // original amount, in base units
	FilledAmount decimal.Decimal
	Status       OrderStatus
	Seq          uint64 // insertion sequence, tie-break for time priority
	CreatedAt    time.Time
	CancelledAt  *time.Time
}

// Remaining returns the unfilled amount.
func (o *Order) Remaining() decimal.Decimal {
	return o.Amount.Sub(o.FilledAmount)
}

// Terminal reports whether the order can no longer mutate.
func (o *Order) Terminal() bool {
	return o.Status == OrderStatusFilled || o.Status == OrderStatusCancelled
}
