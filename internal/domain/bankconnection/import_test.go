package bankconnection

import (
	"testing"
	"time"

	"centime/internal/domain/transaction"
)

func TestRowToTransaction(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		row      CSVRow
		wantType string
		wantAmt  float64
		wantCat  string
		wantDesc string
	}{
		{
			name:     "negative amount becomes expense",
			row:      CSVRow{Date: "2025-06-15", Amount: -42.5, Description: "CARREFOUR", Category: "Courses"},
			wantType: transaction.TypeExpense,
			wantAmt:  42.5,
			wantCat:  "Courses",
			wantDesc: "CARREFOUR",
		},
		{
			name:     "positive amount becomes income",
			row:      CSVRow{Date: "2025-06-28", Amount: 2500, Description: "VIREMENT SALAIRE"},
			wantType: transaction.TypeIncome,
			wantAmt:  2500,
			wantCat:  "Divers",
			wantDesc: "VIREMENT SALAIRE",
		},
		{
			name:     "empty fields get defaults",
			row:      CSVRow{Amount: -10},
			wantType: transaction.TypeExpense,
			wantAmt:  10,
			wantCat:  "Divers",
			wantDesc: "Import bancaire",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := RowToTransaction(tt.row, "acc-1", "alice@example.com", now)
			if tx.Type != tt.wantType {
				t.Errorf("type = %q, want %q", tx.Type, tt.wantType)
			}
			if tx.Amount != tt.wantAmt {
				t.Errorf("amount = %v, want %v", tx.Amount, tt.wantAmt)
			}
			if tx.Category != tt.wantCat || tx.Description != tt.wantDesc {
				t.Errorf("labels = %q/%q, want %q/%q", tx.Category, tx.Description, tt.wantCat, tt.wantDesc)
			}
			if tx.AccountID != "acc-1" || tx.OwnerEmail != "alice@example.com" {
				t.Errorf("scoping wrong: %+v", tx)
			}
		})
	}
}

func TestRowToTransactionDates(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	tx := RowToTransaction(CSVRow{Date: "2025-06-15", Amount: 1}, "a", "o", now)
	if !tx.Date.Equal(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("plain date not parsed: %v", tx.Date)
	}

	tx = RowToTransaction(CSVRow{Date: "2025-06-15T08:30:00Z", Amount: 1}, "a", "o", now)
	if !tx.Date.Equal(time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC)) {
		t.Errorf("RFC3339 date not parsed: %v", tx.Date)
	}

	tx = RowToTransaction(CSVRow{Date: "junk", Amount: 1}, "a", "o", now)
	if !tx.Date.Equal(now) {
		t.Errorf("unparseable date should fall back to now, got %v", tx.Date)
	}
}
