package account

import (
	"math"
	"testing"
)

func TestConvertAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		from   string
		to     string
		want   float64
	}{
		{"same currency", 100, "EUR", "EUR", 100},
		{"eur to usd", 100, "EUR", "USD", 110},
		{"usd to eur", 100, "USD", "EUR", 91},
		{"eur to chf", 200, "EUR", "CHF", 190},
		{"btc to usd", 2, "BTC", "USD", 90000},
		{"usd to btc", 45000, "USD", "BTC", 1},
		{"unknown pair passes through", 100, "EUR", "JPY", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConvertAmount(tt.amount, tt.from, tt.to)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ConvertAmount(%v, %q, %q) = %v, want %v", tt.amount, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestRates(t *testing.T) {
	eur := Rates("EUR")
	if eur["EUR"] != 1.0 {
		t.Errorf("expected EUR base rate 1.0, got %v", eur["EUR"])
	}
	if eur["USD"] != 1.10 {
		t.Errorf("expected USD rate 1.10 against EUR, got %v", eur["USD"])
	}

	usd := Rates("USD")
	if usd["USD"] != 1.0 {
		t.Errorf("expected USD base rate 1.0, got %v", usd["USD"])
	}
	if math.Abs(usd["EUR"]-1.0/1.10) > 1e-9 {
		t.Errorf("expected EUR rate %v against USD, got %v", 1.0/1.10, usd["EUR"])
	}

	unknown := Rates("XYZ")
	if unknown["EUR"] != 1.0 {
		t.Errorf("unknown base should fall back to EUR table, got EUR=%v", unknown["EUR"])
	}
}
