package trainerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coachline/config"
	"coachline/database"
	"coachline/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrTrainerNotFound is returned when no trainer matches the query.
var ErrTrainerNotFound = errors.New("trainer not found")

// MongoTrainerRepo implements TrainerRepository using MongoDB.
type MongoTrainerRepo struct {
	coll *mongo.Collection
}

// NewMongoTrainerRepo creates a new instance of TrainerRepository using MongoDB.
func NewMongoTrainerRepo() TrainerRepository {
	coll := database.DB().Collection("trainers")
	repo := &MongoTrainerRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create trainer indexes: %v\n", err)
	}
	return repo
}

func (r *MongoTrainerRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create trainer indexes: %w", err)
	}
	return nil
}

func (r *MongoTrainerRepo) GetByID(ctx context.Context, trainerID string) (*models.Trainer, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var trainer models.Trainer
	err := r.coll.FindOne(ctxWithTimeout, bson.M{"id": trainerID}).Decode(&trainer)
	if err == mongo.ErrNoDocuments {
		return nil, ErrTrainerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching trainer %s: %w", trainerID, err)
	}

	// Trainers created before hours were modeled fall back to the business
	// defaults.
	if trainer.CloseHour <= trainer.OpenHour {
		trainer.OpenHour = config.AppConfig.BusinessOpenHour
		trainer.CloseHour = config.AppConfig.BusinessCloseHour
	}
	return &trainer, nil
}

func (r *MongoTrainerRepo) Create(ctx context.Context, trainer *models.Trainer) (string, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if trainer.ID == "" {
		trainer.ID = uuid.New().String()
	}
	if trainer.CloseHour <= trainer.OpenHour {
		trainer.OpenHour = config.AppConfig.BusinessOpenHour
		trainer.CloseHour = config.AppConfig.BusinessCloseHour
	}

	if _, err := r.coll.InsertOne(ctxWithTimeout, trainer); err != nil {
		return "", fmt.Errorf("error creating trainer: %w", err)
	}
	return trainer.ID, nil
}
