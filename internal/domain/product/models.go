package product

import (
	"context"
	"errors"
	"slices"
	"time"
)

var ErrProductNotFound = errors.New("product not found")

// Purchase is one entry in a product's purchase history.
type Purchase struct {
	Date     time.Time `json:"date"`
	Location string    `json:"location"`
	Price    float64   `json:"price"`
	Quantity int       `json:"quantity"`
}

// Product is a grocery item tracked for price comparison across stores.
type Product struct {
	ID                    string     `json:"id"`
	Name                  string     `json:"name"`
	Category              string     `json:"category"`
	UsualPrice            float64    `json:"usual_price"`
	CurrentPrice          *float64   `json:"current_price,omitempty"`
	IsOnSale              bool       `json:"is_on_sale"`
	LastPurchasedDate     *time.Time `json:"last_purchased_date,omitempty"`
	LastPurchasedLocation *string    `json:"last_purchased_location,omitempty"`
	Locations             []string   `json:"locations"`
	PurchaseHistory       []Purchase `json:"purchase_history"`
	PriceAlertThreshold   *float64   `json:"price_alert_threshold,omitempty"`
	Notes                 *string    `json:"notes,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	OwnerEmail            string     `json:"-"`
}

// RecordPurchase stamps the latest purchase and appends to the history.
// The location joins the known-stores list if it is new.
func (p *Product) RecordPurchase(location string, price float64, at time.Time) {
	p.LastPurchasedDate = &at
	p.LastPurchasedLocation = &location
	p.CurrentPrice = &price
	if !slices.Contains(p.Locations, location) {
		p.Locations = append(p.Locations, location)
	}
	p.PurchaseHistory = append(p.PurchaseHistory, Purchase{
		Date:     at,
		Location: location,
		Price:    price,
		Quantity: 1,
	})
}

type CreateParams struct {
	Name                  string   `json:"name"`
	Category              string   `json:"category"`
	UsualPrice            float64  `json:"usual_price"`
	CurrentPrice          *float64 `json:"current_price"`
	IsOnSale              bool     `json:"is_on_sale"`
	LastPurchasedLocation *string  `json:"last_purchased_location"`
	Locations             []string `json:"locations"`
	PriceAlertThreshold   *float64 `json:"price_alert_threshold"`
	Notes                 *string  `json:"notes"`
}

func (p *CreateParams) Defaults() {
	if p.Category == "" {
		p.Category = "general"
	}
	if p.Locations == nil {
		p.Locations = []string{}
	}
}

type UpdateParams struct {
	Name                *string  `json:"name"`
	Category            *string  `json:"category"`
	UsualPrice          *float64 `json:"usual_price"`
	CurrentPrice        *float64 `json:"current_price"`
	IsOnSale            *bool    `json:"is_on_sale"`
	Locations           []string `json:"locations"`
	PriceAlertThreshold *float64 `json:"price_alert_threshold"`
	Notes               *string  `json:"notes"`
}

func (p UpdateParams) Apply(prod *Product) {
	if p.Name != nil {
		prod.Name = *p.Name
	}
	if p.Category != nil {
		prod.Category = *p.Category
	}
	if p.UsualPrice != nil {
		prod.UsualPrice = *p.UsualPrice
	}
	if p.CurrentPrice != nil {
		prod.CurrentPrice = p.CurrentPrice
	}
	if p.IsOnSale != nil {
		prod.IsOnSale = *p.IsOnSale
	}
	if p.Locations != nil {
		prod.Locations = p.Locations
	}
	if p.PriceAlertThreshold != nil {
		prod.PriceAlertThreshold = p.PriceAlertThreshold
	}
	if p.Notes != nil {
		prod.Notes = p.Notes
	}
}

// Repository persists products scoped by owner.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	ListByOwner(ctx context.Context, owner string) ([]Product, error)
	GetByID(ctx context.Context, owner, id string) (*Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, owner, id string) error
}
