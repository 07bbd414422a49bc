package engine

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"

	"github.com/efranca/tradecore/internal/domain"
)

func TestProperty_PriceCompatibilityDeterminesMatching(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bidPrice := rapid.Int64Range(1, 10000).Draw(t, "bidPrice")
		askPrice := rapid.Int64Range(1, 10000).Draw(t, "askPrice")
		amount := rapid.Int64Range(1, 100).Draw(t, "amount")

		m, l, _, _ := newTestMatcher()
		l.Credit("seller", "APPL", decimal.NewFromInt(amount))
		l.Credit("buyer", "USD", decimal.NewFromInt(bidPrice*amount))

		ask := newOrder("seller", domain.SideSell, fmt.Sprint(askPrice), fmt.Sprint(amount))
		if _, err := m.PlaceOrder(ask); err != nil {
			t.Fatalf("failed to place ask: %v", err)
		}

		bid := newOrder("buyer", domain.SideBuy, fmt.Sprint(bidPrice), fmt.Sprint(amount))
		trades, err := m.PlaceOrder(bid)
		if err != nil {
			t.Fatalf("failed to place bid: %v", err)
		}

		shouldMatch := bidPrice >= askPrice
		if shouldMatch && len(trades) == 0 {
			t.Fatalf("expected trade when bid=%d >= ask=%d, but got none", bidPrice, askPrice)
		}
		if !shouldMatch && len(trades) != 0 {
			t.Fatalf("expected no trade when bid=%d < ask=%d, got %d trades", bidPrice, askPrice, len(trades))
		}

		// When no match, the book must remain uncrossed.
		if !shouldMatch {
			book := m.books.GetOrCreate(applUSD())
			bestBid, hasBid := book.BestBid()
			bestAsk, hasAsk := book.BestAsk()
			if hasBid && hasAsk && bestBid.Price.GreaterThanOrEqual(bestAsk.Price) {
				t.Fatalf("book is crossed: best bid %s >= best ask %s", bestBid.Price, bestAsk.Price)
			}
		}
	})
}

func TestProperty_ExecutionPriceEqualsMakerPrice(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		askPrice := rapid.Int64Range(1, 5000).Draw(t, "askPrice")
		bidPremium := rapid.Int64Range(0, 5000).Draw(t, "bidPremium")
		bidPrice := askPrice + bidPremium
		amount := rapid.Int64Range(1, 100).Draw(t, "amount")
		buyerIsTaker := rapid.Bool().Draw(t, "buyerIsTaker")

		m, l, _, _ := newTestMatcher()
		l.Credit("seller", "APPL", decimal.NewFromInt(amount))
		l.Credit("buyer", "USD", decimal.NewFromInt(bidPrice*amount))

		ask := newOrder("seller", domain.SideSell, fmt.Sprint(askPrice), fmt.Sprint(amount))
		bid := newOrder("buyer", domain.SideBuy, fmt.Sprint(bidPrice), fmt.Sprint(amount))

		var maker, taker *domain.Order
		if buyerIsTaker {
			maker, taker = ask, bid
		} else {
			maker, taker = bid, ask
		}
		if _, err := m.PlaceOrder(maker); err != nil {
			t.Fatalf("failed to place maker: %v", err)
		}
		trades, err := m.PlaceOrder(taker)
		if err != nil {
			t.Fatalf("failed to place taker: %v", err)
		}
		if len(trades) == 0 {
			t.Fatalf("expected trade with bid=%d >= ask=%d", bidPrice, askPrice)
		}
		for _, tr := range trades {
			if !tr.Price.Equal(maker.Price) {
				t.Fatalf("execution price %s != maker limit %s (taker limit %s)",
					tr.Price, maker.Price, taker.Price)
			}
		}
	})
}

// A random sweep conserves both assets across all participants, fills in
// best-price-first order, and keeps fill accounting exact.
func TestProperty_SweepConservationAndAccounting(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		numAsks := rapid.IntRange(1, 8).Draw(t, "numAsks")

		m, l, _, _ := newTestMatcher()

		var totalBase, totalQuote decimal.Decimal
		asks := make([]*domain.Order, 0, numAsks)
		for i := 0; i < numAsks; i++ {
			price := rapid.Int64Range(1, 200).Draw(t, fmt.Sprintf("askPrice%d", i))
			amount := rapid.Int64Range(1, 50).Draw(t, fmt.Sprintf("askAmount%d", i))
			seller := fmt.Sprintf("seller%d", i%3)

			l.Credit(seller, "APPL", decimal.NewFromInt(amount))
			totalBase = totalBase.Add(decimal.NewFromInt(amount))

			ask := newOrder(seller, domain.SideSell, fmt.Sprint(price), fmt.Sprint(amount))
			if _, err := m.PlaceOrder(ask); err != nil {
				t.Fatalf("place ask: %v", err)
			}
			asks = append(asks, ask)
		}

		bidPrice := rapid.Int64Range(1, 250).Draw(t, "bidPrice")
		bidAmount := rapid.Int64Range(1, 200).Draw(t, "bidAmount")
		funding := decimal.NewFromInt(bidPrice * bidAmount)
		l.Credit("buyer", "USD", funding)
		totalQuote = totalQuote.Add(funding)

		bid := newOrder("buyer", domain.SideBuy, fmt.Sprint(bidPrice), fmt.Sprint(bidAmount))
		trades, err := m.PlaceOrder(bid)
		if err != nil {
			t.Fatalf("place bid: %v", err)
		}

		// Conservation: totals across every account are unchanged.
		accounts := []string{"buyer", "seller0", "seller1", "seller2"}
		var base, quote decimal.Decimal
		for _, id := range accounts {
			av, lo := l.Balance(id, "APPL")
			base = base.Add(av).Add(lo)
			av, lo = l.Balance(id, "USD")
			quote = quote.Add(av).Add(lo)
		}
		if !base.Equal(totalBase) {
			t.Fatalf("base not conserved: %s != %s", base, totalBase)
		}
		if !quote.Equal(totalQuote) {
			t.Fatalf("quote not conserved: %s != %s", quote, totalQuote)
		}

		// Priority: trade prices never decrease while sweeping asks.
		for i := 1; i < len(trades); i++ {
			if trades[i].Price.LessThan(trades[i-1].Price) {
				t.Fatalf("sweep matched a worse price before a better one: %s then %s",
					trades[i-1].Price, trades[i].Price)
			}
		}

		// Fill accounting on the taker.
		var swept decimal.Decimal
		for _, tr := range trades {
			swept = swept.Add(tr.Amount)
		}
		if !bid.FilledAmount.Equal(swept) {
			t.Fatalf("taker filled %s != sum of trade amounts %s", bid.FilledAmount, swept)
		}
		wantFilled := bid.FilledAmount.Equal(bid.Amount)
		if wantFilled != (bid.Status == domain.OrderStatusFilled) {
			t.Fatalf("status %s inconsistent with filled=%s of %s", bid.Status, bid.FilledAmount, bid.Amount)
		}

		// Fill accounting on every maker.
		for _, ask := range asks {
			if ask.FilledAmount.GreaterThan(ask.Amount) || ask.FilledAmount.IsNegative() {
				t.Fatalf("maker fill %s outside [0, %s]", ask.FilledAmount, ask.Amount)
			}
			if ask.FilledAmount.Equal(ask.Amount) && ask.Status != domain.OrderStatusFilled {
				t.Fatalf("fully filled maker has status %s", ask.Status)
			}
		}
	})
}
