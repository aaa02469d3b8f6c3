package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"centime/internal/domain/preferences"
)

// PreferencesRepository implements the preferences.Repository interface for PostgreSQL
type PreferencesRepository struct {
	db *DB
}

func NewPreferencesRepository(db *DB) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

const preferencesColumns = `id, preferred_currency, date_format, language, dashboard_view, enable_notifications, auto_categorize, created_at, updated_at`

func (r *PreferencesRepository) GetOrCreate(ctx context.Context, owner string) (*preferences.Preferences, error) {
	query := `SELECT ` + preferencesColumns + ` FROM preferences WHERE owner_email = $1`

	p, err := scanPreferences(r.db.QueryRowContext(ctx, query, owner).Scan)
	if err == nil {
		p.OwnerEmail = owner
		return p, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	defaults := preferences.Defaults()
	defaults.ID = uuid.New().String()
	defaults.OwnerEmail = owner
	now := time.Now().UTC()
	defaults.CreatedAt = now
	defaults.UpdatedAt = now

	insert := `
		INSERT INTO preferences (id, owner_email, preferred_currency, date_format, language, dashboard_view, enable_notifications, auto_categorize, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (owner_email) DO NOTHING
	`
	_, err = r.db.ExecContext(ctx, insert,
		defaults.ID, owner, defaults.PreferredCurrency, defaults.DateFormat, defaults.Language,
		defaults.DashboardView, defaults.EnableNotifications, defaults.AutoCategorize,
		defaults.CreatedAt, defaults.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create preferences: %w", err)
	}

	// Re-read in case a concurrent request inserted first.
	p, err = scanPreferences(r.db.QueryRowContext(ctx, query, owner).Scan)
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}
	p.OwnerEmail = owner
	return p, nil
}

func (r *PreferencesRepository) Update(ctx context.Context, p *preferences.Preferences) error {
	p.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE preferences
		SET preferred_currency = $2, date_format = $3, language = $4, dashboard_view = $5,
		    enable_notifications = $6, auto_categorize = $7, updated_at = $8
		WHERE owner_email = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		p.OwnerEmail, p.PreferredCurrency, p.DateFormat, p.Language, p.DashboardView,
		p.EnableNotifications, p.AutoCategorize, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update preferences: %w", err)
	}
	return requireRow(result, sql.ErrNoRows)
}

func scanPreferences(scan func(dest ...any) error) (*preferences.Preferences, error) {
	var p preferences.Preferences
	err := scan(&p.ID, &p.PreferredCurrency, &p.DateFormat, &p.Language, &p.DashboardView,
		&p.EnableNotifications, &p.AutoCategorize, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
