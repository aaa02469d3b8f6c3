package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"centime/internal/domain/product"
)

// ProductRepository implements the product.Repository interface for PostgreSQL
type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

const productColumns = `id, name, category, usual_price, current_price, is_on_sale,
       last_purchased_date, last_purchased_location, locations, purchase_history,
       price_alert_threshold, notes, created_at`

func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	history, err := toJSONB(p.PurchaseHistory)
	if err != nil {
		return err
	}
	locations := p.Locations
	if locations == nil {
		locations = []string{}
	}

	query := `
		INSERT INTO products (
			id, owner_email, name, category, usual_price, current_price, is_on_sale,
			last_purchased_date, last_purchased_location, locations, purchase_history,
			price_alert_threshold, notes, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = r.db.ExecContext(
		ctx, query,
		p.ID, p.OwnerEmail, p.Name, p.Category, p.UsualPrice, nullFloat(p.CurrentPrice), p.IsOnSale,
		nullTime(p.LastPurchasedDate), nullString(p.LastPurchasedLocation), pq.Array(locations),
		history, nullFloat(p.PriceAlertThreshold), nullString(p.Notes), p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *ProductRepository) ListByOwner(ctx context.Context, owner string) ([]product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_email = $1 ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []product.Product{}
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.OwnerEmail = owner
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, owner, id string) (*product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_email = $1 AND id = $2`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, owner, id).Scan)
	if err == sql.ErrNoRows {
		return nil, product.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	p.OwnerEmail = owner
	return p, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	history, err := toJSONB(p.PurchaseHistory)
	if err != nil {
		return err
	}
	locations := p.Locations
	if locations == nil {
		locations = []string{}
	}

	query := `
		UPDATE products
		SET name = $3, category = $4, usual_price = $5, current_price = $6, is_on_sale = $7,
		    last_purchased_date = $8, last_purchased_location = $9, locations = $10,
		    purchase_history = $11, price_alert_threshold = $12, notes = $13
		WHERE owner_email = $1 AND id = $2
	`
	result, err := r.db.ExecContext(
		ctx, query,
		p.OwnerEmail, p.ID, p.Name, p.Category, p.UsualPrice, nullFloat(p.CurrentPrice), p.IsOnSale,
		nullTime(p.LastPurchasedDate), nullString(p.LastPurchasedLocation), pq.Array(locations),
		history, nullFloat(p.PriceAlertThreshold), nullString(p.Notes),
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return requireRow(result, product.ErrProductNotFound)
}

func (r *ProductRepository) Delete(ctx context.Context, owner, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE owner_email = $1 AND id = $2`, owner, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	return requireRow(result, product.ErrProductNotFound)
}

func scanProduct(scan func(dest ...any) error) (*product.Product, error) {
	var p product.Product
	var currentPrice, priceAlertThreshold sql.NullFloat64
	var lastPurchasedDate sql.NullTime
	var lastPurchasedLocation, notes sql.NullString
	var history []byte

	err := scan(
		&p.ID, &p.Name, &p.Category, &p.UsualPrice, &currentPrice, &p.IsOnSale,
		&lastPurchasedDate, &lastPurchasedLocation, pq.Array(&p.Locations), &history,
		&priceAlertThreshold, &notes, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := fromJSONB(history, &p.PurchaseHistory); err != nil {
		return nil, err
	}
	p.CurrentPrice = floatPtr(currentPrice)
	p.PriceAlertThreshold = floatPtr(priceAlertThreshold)
	p.LastPurchasedDate = timePtr(lastPurchasedDate)
	p.LastPurchasedLocation = stringPtr(lastPurchasedLocation)
	p.Notes = stringPtr(notes)
	if p.Locations == nil {
		p.Locations = []string{}
	}
	return &p, nil
}
