package models

import "testing"

func TestProductStockDerivations(t *testing.T) {
	cases := []struct {
		name      string
		product   Product
		autoHide  bool
		wantOut   bool
		wantLow   bool
		wantShown bool
		wantLabel string
	}{
		{"out of stock hidden", Product{Stock: 0, LowStockThreshold: 5, IsVisible: true}, true, true, false, false, StockStatusOutOfStock},
		{"out of stock shown when auto hide off", Product{Stock: 0, LowStockThreshold: 5, IsVisible: true}, false, true, false, true, StockStatusOutOfStock},
		{"low stock at threshold", Product{Stock: 5, LowStockThreshold: 5, IsVisible: true}, true, false, true, true, StockStatusLowStock},
		{"in stock", Product{Stock: 6, LowStockThreshold: 5, IsVisible: true}, true, false, false, true, StockStatusInStock},
		{"zero threshold never low", Product{Stock: 1, LowStockThreshold: 0, IsVisible: true}, true, false, false, true, StockStatusInStock},
		{"invisible", Product{Stock: 10, IsVisible: false}, false, false, false, false, StockStatusInStock},
		{"negative stock counts as out", Product{Stock: -1, IsVisible: true}, true, true, false, false, StockStatusOutOfStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.product.IsOutOfStock(); got != tc.wantOut {
				t.Fatalf("IsOutOfStock want %v got %v", tc.wantOut, got)
			}
			if got := tc.product.IsLowStock(); got != tc.wantLow {
				t.Fatalf("IsLowStock want %v got %v", tc.wantLow, got)
			}
			if got := tc.product.IsEffectivelyVisible(tc.autoHide); got != tc.wantShown {
				t.Fatalf("IsEffectivelyVisible want %v got %v", tc.wantShown, got)
			}
			if got := tc.product.StockStatus(); got != tc.wantLabel {
				t.Fatalf("StockStatus want %s got %s", tc.wantLabel, got)
			}
		})
	}
}

func TestMoneyTimesAndJSON(t *testing.T) {
	price, err := NewMoneyFromString("9.99")
	if err != nil {
		t.Fatalf("parse money failed: %v", err)
	}
	if got := NewMoneyFromDecimal(price.Times(3)).String(); got != "29.97" {
		t.Fatalf("9.99 x 3 want 29.97 got %s", got)
	}
	raw, err := price.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != `"9.99"` {
		t.Fatalf("unexpected json: %s", raw)
	}
	var decoded Money
	if err := decoded.UnmarshalJSON([]byte(`12.345`)); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.String() != "12.35" {
		t.Fatalf("expected rounding to 12.35, got %s", decoded.String())
	}
}

func TestOrderItemCount(t *testing.T) {
	order := Order{Items: []OrderItem{{Quantity: 2}, {Quantity: 3}}}
	if order.ItemCount() != 5 {
		t.Fatalf("item count want 5 got %d", order.ItemCount())
	}
}
