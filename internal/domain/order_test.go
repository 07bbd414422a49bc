package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestOrder_Remaining(t *testing.T) {
	o := &Order{
		Amount:       decimal.NewFromInt(10),
		FilledAmount: decimal.NewFromInt(3),
	}
	if got := o.Remaining(); !got.Equal(decimal.NewFromInt(7)) {
		t.Errorf("Remaining() = %s, want 7", got)
	}
}

func TestOrder_Remaining_Fractional(t *testing.T) {
	o := &Order{
		Amount:       decimal.RequireFromString("1.5"),
		FilledAmount: decimal.RequireFromString("0.25"),
	}
	if got := o.Remaining(); !got.Equal(decimal.RequireFromString("1.25")) {
		t.Errorf("Remaining() = %s, want 1.25", got)
	}
}

func TestOrder_Terminal(t *testing.T) {
	tests := []struct {
		status OrderStatus
		want   bool
	}{
		{OrderStatusOpen, false},
		{OrderStatusPartiallyFilled, false},
		{OrderStatusFilled, true},
		{OrderStatusCancelled, true},
	}
	for _, tt := range tests {
		o := &Order{Status: tt.status}
		if got := o.Terminal(); got != tt.want {
			t.Errorf("Terminal() with status %s = %v, want %v", tt.status, got, tt.want)
		}
	}
}
