package shoppinglist

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrListNotFound = errors.New("shopping list not found")

// Item is one line on a shopping list.
type Item struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	IsChecked   bool   `json:"is_checked"`
}

// List is a named shopping list.
type List struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Items      []Item    `json:"items"`
	Completed  bool      `json:"completed"`
	CreatedAt  time.Time `json:"created_at"`
	OwnerEmail string    `json:"-"`
}

// AddItem appends a product or bumps its quantity when already listed.
// Returns the resulting item count.
func (l *List) AddItem(productID, productName string, quantity int) int {
	for i := range l.Items {
		if l.Items[i].ProductID == productID {
			l.Items[i].Quantity += quantity
			return len(l.Items)
		}
	}
	l.Items = append(l.Items, Item{
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
	})
	return len(l.Items)
}

// RemoveItem drops every line for the product. Returns the resulting
// item count.
func (l *List) RemoveItem(productID string) int {
	kept := l.Items[:0]
	for _, item := range l.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	l.Items = kept
	return len(l.Items)
}

// RenderText formats the list for download as a plain-text checklist.
func (l *List) RenderText() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", l.Name)
	fmt.Fprintf(&b, "Créée le: %s\n\n", l.CreatedAt.Format(time.RFC3339))
	for _, item := range l.Items {
		checkbox := "☐"
		if item.IsChecked {
			checkbox = "☑"
		}
		fmt.Fprintf(&b, "%s %s (x%d)\n", checkbox, item.ProductName, item.Quantity)
	}
	return b.String()
}

type CreateParams struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

type UpdateParams struct {
	Name      *string `json:"name"`
	Items     []Item  `json:"items"`
	Completed *bool   `json:"completed"`
}

func (p UpdateParams) Apply(l *List) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Items != nil {
		l.Items = p.Items
	}
	if p.Completed != nil {
		l.Completed = *p.Completed
	}
}

// Repository persists shopping lists scoped by owner.
type Repository interface {
	Create(ctx context.Context, l *List) error
	ListByOwner(ctx context.Context, owner string) ([]List, error)
	GetByID(ctx context.Context, owner, id string) (*List, error)
	Update(ctx context.Context, l *List) error
	Delete(ctx context.Context, owner, id string) error
}
