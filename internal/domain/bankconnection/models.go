package bankconnection

import (
	"context"
	"errors"
	"time"
)

var (
	ErrConnectionNotFound = errors.New("bank connection not found")
	ErrNoLinkedAccount    = errors.New("no account linked to this connection")
)

// Connection statuses.
const (
	StatusActive       = "active"
	StatusDisconnected = "disconnected"
	StatusError        = "error"
)

// Connection links an internal account to an external bank. The access
// token is never serialized back to clients.
type Connection struct {
	ID               string     `json:"id"`
	BankName         string     `json:"bank_name"`
	AccountID        string     `json:"account_id"`
	ConnectionStatus string     `json:"connection_status"`
	LastSync         *time.Time `json:"last_sync,omitempty"`
	AccessToken      *string    `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
	OwnerEmail       string     `json:"-"`
}

type CreateParams struct {
	BankName    string  `json:"bank_name"`
	AccountID   string  `json:"account_id"`
	AccessToken *string `json:"access_token"`
}

// Repository persists bank connections scoped by owner.
type Repository interface {
	Create(ctx context.Context, c *Connection) error
	ListByOwner(ctx context.Context, owner string) ([]Connection, error)
	GetByID(ctx context.Context, owner, id string) (*Connection, error)
	Delete(ctx context.Context, owner, id string) error

	// MarkSynced stamps the last sync time.
	MarkSynced(ctx context.Context, owner, id string, at time.Time) error
}
