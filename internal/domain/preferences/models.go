package preferences

import (
	"context"
	"time"
)

// Preferences holds per-user display and behavior settings. A record is
// created with defaults on first read.
type Preferences struct {
	ID                  string    `json:"id"`
	PreferredCurrency   string    `json:"preferred_currency"`
	DateFormat          string    `json:"date_format"`
	Language            string    `json:"language"`
	DashboardView       string    `json:"dashboard_view"`
	EnableNotifications bool      `json:"enable_notifications"`
	AutoCategorize      bool      `json:"auto_categorize"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
	OwnerEmail          string    `json:"-"`
}

// Defaults returns the preference set a fresh user starts with.
func Defaults() Preferences {
	return Preferences{
		PreferredCurrency:   "EUR",
		DateFormat:          "DD/MM/YYYY",
		Language:            "fr",
		DashboardView:       "grid",
		EnableNotifications: true,
		AutoCategorize:      true,
	}
}

type UpdateParams struct {
	PreferredCurrency   *string `json:"preferred_currency"`
	DateFormat          *string `json:"date_format"`
	Language            *string `json:"language"`
	DashboardView       *string `json:"dashboard_view"`
	EnableNotifications *bool   `json:"enable_notifications"`
	AutoCategorize      *bool   `json:"auto_categorize"`
}

func (p UpdateParams) Apply(prefs *Preferences) {
	if p.PreferredCurrency != nil {
		prefs.PreferredCurrency = *p.PreferredCurrency
	}
	if p.DateFormat != nil {
		prefs.DateFormat = *p.DateFormat
	}
	if p.Language != nil {
		prefs.Language = *p.Language
	}
	if p.DashboardView != nil {
		prefs.DashboardView = *p.DashboardView
	}
	if p.EnableNotifications != nil {
		prefs.EnableNotifications = *p.EnableNotifications
	}
	if p.AutoCategorize != nil {
		prefs.AutoCategorize = *p.AutoCategorize
	}
}

// Repository persists one preference record per owner.
type Repository interface {
	// GetOrCreate returns the owner's preferences, inserting the
	// defaults first if none exist.
	GetOrCreate(ctx context.Context, owner string) (*Preferences, error)
	Update(ctx context.Context, p *Preferences) error
}
