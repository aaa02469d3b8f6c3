package ledger

import (
	"math"
	"testing"
	"time"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRemainingRecomputedFromLog(t *testing.T) {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	payments := []Payment{}
	if got := Remaining(1000, payments); !almostEqual(got, 1000) {
		t.Fatalf("expected remaining 1000, got %v", got)
	}

	// Record a payment of 200.
	payments = append(payments, Payment{Date: day, Amount: 200})
	if got := Remaining(1000, payments); !almostEqual(got, 800) {
		t.Fatalf("expected remaining 800 after first payment, got %v", got)
	}

	// Raising the total re-derives against the same log.
	if got := Remaining(1500, payments); !almostEqual(got, 1300) {
		t.Fatalf("expected remaining 1300 after total change, got %v", got)
	}

	// Correct the first payment from 200 to 300.
	payments[0].Amount = 300
	if got := Remaining(1500, payments); !almostEqual(got, 1200) {
		t.Fatalf("expected remaining 1200 after payment edit, got %v", got)
	}

	// Add a second payment of 150.
	payments = append(payments, Payment{Date: day.AddDate(0, 0, 7), Amount: 150})
	if got := Remaining(1500, payments); !almostEqual(got, 1050) {
		t.Fatalf("expected remaining 1050 after second payment, got %v", got)
	}

	// Delete the first payment.
	payments = payments[1:]
	if got := Remaining(1500, payments); !almostEqual(got, 1350) {
		t.Fatalf("expected remaining 1350 after payment removal, got %v", got)
	}
}

func TestRemainingAllowsOverpayment(t *testing.T) {
	payments := []Payment{{Amount: 600}, {Amount: 600}}
	if got := Remaining(1000, payments); !almostEqual(got, -200) {
		t.Fatalf("expected remaining -200, got %v", got)
	}
}

func TestOperationTotal(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		price    float64
		fees     float64
		want     float64
	}{
		{"buy with fees", 10, 150, 5, 1505},
		{"fractional crypto", 0.5, 40000, 12.5, 20012.5},
		{"zero quantity dividend", 0, 0, 0, 0},
		{"no fees", 3, 100, 0, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OperationTotal(tt.quantity, tt.price, tt.fees); !almostEqual(got, tt.want) {
				t.Errorf("OperationTotal(%v, %v, %v) = %v, want %v", tt.quantity, tt.price, tt.fees, got, tt.want)
			}
		})
	}
}

func TestDeriveHoldings(t *testing.T) {
	tests := []struct {
		name string
		ops  []Operation
		want Holdings
	}{
		{
			name: "empty log",
			want: Holdings{},
		},
		{
			name: "single buy",
			ops: []Operation{
				{Type: OpBuy, Quantity: 10, Price: 100, Total: 1000},
			},
			want: Holdings{Quantity: 10, AveragePrice: 100, CostBasis: 1000},
		},
		{
			name: "two buys average",
			ops: []Operation{
				{Type: OpBuy, Quantity: 10, Price: 100, Total: 1000},
				{Type: OpBuy, Quantity: 10, Price: 200, Total: 2000},
			},
			want: Holdings{Quantity: 20, AveragePrice: 150, CostBasis: 3000},
		},
		{
			name: "sell reduces quantity not average",
			ops: []Operation{
				{Type: OpBuy, Quantity: 10, Price: 100, Total: 1000},
				{Type: OpSell, Quantity: 4, Price: 120, Total: 480},
			},
			want: Holdings{Quantity: 6, AveragePrice: 100, CostBasis: 520},
		},
		{
			name: "sell everything keeps average",
			ops: []Operation{
				{Type: OpBuy, Quantity: 5, Price: 50, Total: 250},
				{Type: OpSell, Quantity: 5, Price: 60, Total: 300},
			},
			want: Holdings{Quantity: 0, AveragePrice: 50, CostBasis: -50},
		},
		{
			name: "non-trade operations ignored",
			ops: []Operation{
				{Type: OpBuy, Quantity: 10, Price: 100, Total: 1000},
				{Type: OpDividend, Total: 35},
				{Type: OpMaintenance, Total: 120},
				{Type: OpInterest, Total: 8},
			},
			want: Holdings{Quantity: 10, AveragePrice: 100, CostBasis: 1000},
		},
		{
			name: "only sells average zero",
			ops: []Operation{
				{Type: OpSell, Quantity: 3, Price: 10, Total: 30},
			},
			want: Holdings{Quantity: -3, AveragePrice: 0, CostBasis: -30},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveHoldings(tt.ops)
			if !almostEqual(got.Quantity, tt.want.Quantity) ||
				!almostEqual(got.AveragePrice, tt.want.AveragePrice) ||
				!almostEqual(got.CostBasis, tt.want.CostBasis) {
				t.Errorf("DeriveHoldings() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
