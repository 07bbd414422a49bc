package service

import (
	"testing"

	"github.com/efranca/tradecore/internal/domain"
)

func TestQuotationService_Depth(t *testing.T) {
	assetSvc, orderSvc, quoteSvc, _ := newTestServices()
	_, _ = assetSvc.Recharge("seller", "APPL", d("30"))
	_, _ = assetSvc.Recharge("buyer", "USD", d("10000"))

	for _, o := range []struct {
		side          domain.Side
		price, amount string
	}{
		{domain.SideSell, "100", "10"},
		{domain.SideSell, "100", "5"},
		{domain.SideSell, "150", "10"},
		{domain.SideBuy, "90", "3"},
	} {
		acct := "seller"
		if o.side == domain.SideBuy {
			acct = "buyer"
		}
		_, _, err := orderSvc.PlaceOrder(PlaceOrderRequest{
			AccountID: acct, Side: o.side, Price: d(o.price), Amount: d(o.amount),
		})
		if err != nil {
			t.Fatalf("place error: %v", err)
		}
	}

	depth, err := quoteSvc.Depth("", 10)
	if err != nil {
		t.Fatalf("depth error: %v", err)
	}
	if len(depth.Asks) != 2 {
		t.Fatalf("expected 2 ask levels, got %d", len(depth.Asks))
	}
	if !depth.Asks[0].Price.Equal(d("100")) || !depth.Asks[0].TotalAmount.Equal(d("15")) || depth.Asks[0].OrderCount != 2 {
		t.Errorf("ask level 0 = %+v, want 15 @ 100 across 2 orders", depth.Asks[0])
	}
	if len(depth.Bids) != 1 || !depth.Bids[0].Price.Equal(d("90")) {
		t.Errorf("bid levels = %+v, want one level at 90", depth.Bids)
	}
}

func TestQuotationService_Depth_UnknownPair(t *testing.T) {
	_, _, quoteSvc, _ := newTestServices()
	if _, err := quoteSvc.Depth("ETH_USD", 10); err != domain.ErrInvalidPair {
		t.Errorf("error = %v, want ErrInvalidPair", err)
	}
}

func TestQuotationService_History(t *testing.T) {
	assetSvc, orderSvc, quoteSvc, _ := newTestServices()
	_, _ = assetSvc.Recharge("seller", "APPL", d("10"))
	_, _ = assetSvc.Recharge("buyer", "USD", d("1000"))

	_, _, _ = orderSvc.PlaceOrder(PlaceOrderRequest{
		AccountID: "seller", Side: domain.SideSell, Price: d("100"), Amount: d("5"),
	})
	_, _, _ = orderSvc.PlaceOrder(PlaceOrderRequest{
		AccountID: "buyer", Side: domain.SideBuy, Price: d("100"), Amount: d("5"),
	})

	trades, err := quoteSvc.History("APPL_USD", 10)
	if err != nil {
		t.Fatalf("history error: %v", err)
	}
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	if !trades[0].Price.Equal(d("100")) || !trades[0].Amount.Equal(d("5")) {
		t.Errorf("trade = %s @ %s, want 5 @ 100", trades[0].Amount, trades[0].Price)
	}
}

func TestQuotationService_History_Empty(t *testing.T) {
	_, _, quoteSvc, _ := newTestServices()
	trades, err := quoteSvc.History("", 10)
	if err != nil {
		t.Fatalf("history error: %v", err)
	}
	if len(trades) != 0 {
		t.Errorf("expected no trades, got %d", len(trades))
	}
}
