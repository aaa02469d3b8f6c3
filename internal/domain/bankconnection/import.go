package bankconnection

import (
	"math"
	"time"

	"github.com/google/uuid"

	"centime/internal/domain/transaction"
)

// CSVRow is one parsed line of a bank statement. Negative amounts are
// debits.
type CSVRow struct {
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
}

// ImportRequest is the body of a statement import.
type ImportRequest struct {
	Transactions []CSVRow `json:"transactions"`
}

// ImportResult reports how many rows survived deduplication.
type ImportResult struct {
	Message       string `json:"message"`
	ImportedCount int    `json:"imported_count"`
	TotalRows     int    `json:"total_rows"`
}

// RowToTransaction maps a statement row onto the linked account.
// A negative amount becomes an expense, anything else income; the
// stored amount is always positive. Unparseable dates fall back to now.
func RowToTransaction(row CSVRow, accountID, owner string, now time.Time) transaction.Transaction {
	txType := transaction.TypeIncome
	if row.Amount < 0 {
		txType = transaction.TypeExpense
	}

	category := row.Category
	if category == "" {
		category = "Divers"
	}
	description := row.Description
	if description == "" {
		description = "Import bancaire"
	}

	date := now
	if row.Date != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, row.Date); err == nil {
				date = parsed
				break
			}
		}
	}

	return transaction.Transaction{
		ID:          uuid.NewString(),
		AccountID:   accountID,
		Type:        txType,
		Amount:      math.Abs(row.Amount),
		Category:    category,
		Description: description,
		Date:        date,
		Tags:        []string{},
		CreatedAt:   now,
		OwnerEmail:  owner,
	}
}
