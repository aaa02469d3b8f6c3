package investment

import (
	"errors"
	"time"

	"centime/internal/domain/ledger"
)

var (
	ErrInvestmentNotFound = errors.New("investment not found")
	ErrOperationNotFound  = errors.New("operation not found")
)

// Investment asset types.
const (
	TypeStock          = "stock"
	TypeCrypto         = "crypto"
	TypeTradingAccount = "trading_account"
	TypeBond           = "bond"
	TypeRealEstate     = "real_estate"
	TypeMiningRig      = "mining_rig"
	TypeETF            = "etf"
	TypeCommodity      = "commodity"
)

// Investment holds an asset position. Quantity and AveragePrice are
// derived from the operation log and cannot be set by clients.
type Investment struct {
	ID                  string             `json:"id"`
	Name                string             `json:"name"`
	Symbol              string             `json:"symbol"`
	Type                string             `json:"type"`
	Quantity            float64            `json:"quantity"`
	AveragePrice        float64            `json:"average_price"`
	CurrentPrice        float64            `json:"current_price"`
	Currency            string             `json:"currency"`
	Operations          []ledger.Operation `json:"operations"`
	PurchaseDate        *time.Time         `json:"purchase_date,omitempty"`
	InitialValue        *float64           `json:"initial_value,omitempty"`
	DepreciationRate    *float64           `json:"depreciation_rate,omitempty"`
	MonthlyCosts        *float64           `json:"monthly_costs,omitempty"`
	LinkedTransactionID *string            `json:"linked_transaction_id,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	OwnerEmail          string             `json:"-"`
}

// CurrentValue is the mark-to-market value of the position.
func (i *Investment) CurrentValue() float64 {
	return i.Quantity * i.CurrentPrice
}

// CreateParams carries the client-supplied fields for a new investment.
type CreateParams struct {
	Name             string     `json:"name"`
	Symbol           string     `json:"symbol"`
	Type             string     `json:"type"`
	Currency         string     `json:"currency"`
	PurchaseDate     *time.Time `json:"purchase_date"`
	InitialValue     *float64   `json:"initial_value"`
	DepreciationRate *float64   `json:"depreciation_rate"`
	MonthlyCosts     *float64   `json:"monthly_costs"`
}

func (p *CreateParams) Defaults() {
	if p.Type == "" {
		p.Type = TypeStock
	}
	if p.Currency == "" {
		p.Currency = "EUR"
	}
}

// UpdateParams is a partial update of the descriptive fields.
type UpdateParams struct {
	Name                *string    `json:"name"`
	Symbol              *string    `json:"symbol"`
	Type                *string    `json:"type"`
	CurrentPrice        *float64   `json:"current_price"`
	Currency            *string    `json:"currency"`
	PurchaseDate        *time.Time `json:"purchase_date"`
	InitialValue        *float64   `json:"initial_value"`
	DepreciationRate    *float64   `json:"depreciation_rate"`
	MonthlyCosts        *float64   `json:"monthly_costs"`
	LinkedTransactionID *string    `json:"linked_transaction_id"`
}

func (p UpdateParams) Apply(i *Investment) {
	if p.Name != nil {
		i.Name = *p.Name
	}
	if p.Symbol != nil {
		i.Symbol = *p.Symbol
	}
	if p.Type != nil {
		i.Type = *p.Type
	}
	if p.CurrentPrice != nil {
		i.CurrentPrice = *p.CurrentPrice
	}
	if p.Currency != nil {
		i.Currency = *p.Currency
	}
	if p.PurchaseDate != nil {
		i.PurchaseDate = p.PurchaseDate
	}
	if p.InitialValue != nil {
		i.InitialValue = p.InitialValue
	}
	if p.DepreciationRate != nil {
		i.DepreciationRate = p.DepreciationRate
	}
	if p.MonthlyCosts != nil {
		i.MonthlyCosts = p.MonthlyCosts
	}
	if p.LinkedTransactionID != nil {
		i.LinkedTransactionID = p.LinkedTransactionID
	}
}

// OperationParams carries a client-submitted operation. Total is ignored
// on input and always recomputed server-side.
type OperationParams struct {
	Date     time.Time `json:"date"`
	Type     string    `json:"type"`
	Quantity float64   `json:"quantity"`
	Price    float64   `json:"price"`
	Fees     float64   `json:"fees"`
	Notes    string    `json:"notes"`
}
