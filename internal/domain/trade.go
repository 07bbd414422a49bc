package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade records one execution between a buy order and a sell order. Trades
// are immutable once created. Price always equals the resting (maker) order's
// limit price.
type Trade struct {
	TradeID     string
	Pair        Pair
	BuyOrderID  string
	SellOrderID string
	Price       decimal.Decimal
	Amount      decimal.Decimal
	Seq         uint64 // global monotonic trade sequence
	ExecutedAt  time.Time
}
