package clientRepo

import (
	"context"

	"coachline/models"
)

// ClientRepository defines the data access methods for client records.
type ClientRepository interface {
	// Create persists a new client and returns its assigned ID.
	Create(ctx context.Context, client *models.Client) (string, error)
	// GetByID retrieves a client by its unique ID.
	GetByID(ctx context.Context, clientID string) (*models.Client, error)
	// GetByPhone retrieves a client by phone number (unique lookup key).
	GetByPhone(ctx context.Context, phone string) (*models.Client, error)
	// Update applies a partial update to a client document.
	Update(ctx context.Context, clientID string, fields map[string]interface{}) error
	// DecrementSessionsRemaining atomically consumes one session from the
	// client's package. Returns false when the balance is already zero.
	DecrementSessionsRemaining(ctx context.Context, clientID string) (bool, error)
	// IncrementSessionsRemaining restores one session to the package.
	IncrementSessionsRemaining(ctx context.Context, clientID string) error
	// SetSessionsRemaining overwrites the package balance.
	SetSessionsRemaining(ctx context.Context, clientID string, remaining int) error
}
