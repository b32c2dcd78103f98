package trainerRepo

import (
	"context"

	"coachline/models"
)

// TrainerRepository defines the data access methods for trainer records.
type TrainerRepository interface {
	// GetByID retrieves a trainer by its unique ID.
	GetByID(ctx context.Context, trainerID string) (*models.Trainer, error)
	// Create persists a new trainer and returns its assigned ID.
	Create(ctx context.Context, trainer *models.Trainer) (string, error)
}
