// Package ledger derives monetary fields from payment and operation logs.
// The log is the single source of truth: remaining amounts and investment
// holdings are recomputed from the full list on every mutation, never
// patched incrementally, so a missed delta cannot make them drift.
package ledger

import "time"

// Payment is one entry in a debt or receivable payment log.
type Payment struct {
	Date                time.Time `json:"date"`
	Amount              float64   `json:"amount"`
	Notes               *string   `json:"notes,omitempty"`
	LinkedTransactionID *string   `json:"linked_transaction_id,omitempty"`
}

// Investment operation types.
const (
	OpBuy          = "buy"
	OpSell         = "sell"
	OpDividend     = "dividend"
	OpDeposit      = "deposit"
	OpWithdrawal   = "withdrawal"
	OpInterest     = "interest"
	OpRentalIncome = "rental_income"
	OpMiningReward = "mining_reward"
	OpMaintenance  = "maintenance"
)

// Operation is one entry in an investment operation log. Total is always
// computed server-side as quantity*price + fees.
type Operation struct {
	Date     time.Time `json:"date"`
	Type     string    `json:"type"`
	Quantity float64   `json:"quantity"`
	Price    float64   `json:"price"`
	Fees     float64   `json:"fees"`
	Total    float64   `json:"total"`
	Notes    string    `json:"notes"`
}

// OperationTotal computes the monetary total of an operation.
func OperationTotal(quantity, price, fees float64) float64 {
	return quantity*price + fees
}

// SumPayments returns the cumulative amount paid.
func SumPayments(payments []Payment) float64 {
	var total float64
	for _, p := range payments {
		total += p.Amount
	}
	return total
}

// Remaining derives the outstanding balance. It may go negative when
// payments exceed the total; overpayment is recorded, not rejected.
func Remaining(totalAmount float64, payments []Payment) float64 {
	return totalAmount - SumPayments(payments)
}

// Holdings are the derived fields of an investment.
type Holdings struct {
	Quantity     float64
	AveragePrice float64
	CostBasis    float64
}

// DeriveHoldings scans the operation log. Average price is the cost-basis
// average over buys only; sells reduce quantity and cost basis but never
// the average price. Zero bought quantity defines average price as 0.
func DeriveHoldings(operations []Operation) Holdings {
	var boughtQty, soldQty, boughtCost, soldCost float64
	for _, op := range operations {
		switch op.Type {
		case OpBuy:
			boughtQty += op.Quantity
			boughtCost += op.Total
		case OpSell:
			soldQty += op.Quantity
			soldCost += op.Total
		}
	}

	h := Holdings{
		Quantity:  boughtQty - soldQty,
		CostBasis: boughtCost - soldCost,
	}
	if boughtQty > 0 {
		h.AveragePrice = boughtCost / boughtQty
	}
	return h
}
