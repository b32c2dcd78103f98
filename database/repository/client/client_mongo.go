package clientRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coachline/database"
	"coachline/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrClientNotFound is returned when no client matches the query.
var ErrClientNotFound = errors.New("client not found")

// MongoClientRepo implements ClientRepository using MongoDB.
type MongoClientRepo struct {
	coll *mongo.Collection
}

// NewMongoClientRepo creates a new instance of ClientRepository using MongoDB.
func NewMongoClientRepo() ClientRepository {
	coll := database.DB().Collection("clients")
	repo := &MongoClientRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create client indexes: %v\n", err)
	}
	return repo
}

func (r *MongoClientRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create client indexes: %w", err)
	}
	return nil
}

func (r *MongoClientRepo) Create(ctx context.Context, client *models.Client) (string, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	client.CreatedAt = now
	client.UpdatedAt = now
	if client.StartDate.IsZero() {
		client.StartDate = now
	}

	if _, err := r.coll.InsertOne(ctxWithTimeout, client); err != nil {
		return "", fmt.Errorf("error creating client: %w", err)
	}
	return client.ID, nil
}

func (r *MongoClientRepo) GetByID(ctx context.Context, clientID string) (*models.Client, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var client models.Client
	err := r.coll.FindOne(ctxWithTimeout, bson.M{"id": clientID}).Decode(&client)
	if err == mongo.ErrNoDocuments {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching client %s: %w", clientID, err)
	}
	return &client, nil
}

func (r *MongoClientRepo) GetByPhone(ctx context.Context, phone string) (*models.Client, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var client models.Client
	err := r.coll.FindOne(ctxWithTimeout, bson.M{"phone": phone}).Decode(&client)
	if err == mongo.ErrNoDocuments {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching client by phone: %w", err)
	}
	return &client, nil
}

func (r *MongoClientRepo) Update(ctx context.Context, clientID string, fields map[string]interface{}) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now().UTC()}
	for k, v := range fields {
		set[k] = v
	}

	res, err := r.coll.UpdateOne(ctxWithTimeout, bson.M{"id": clientID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating client %s: %w", clientID, err)
	}
	if res.MatchedCount == 0 {
		return ErrClientNotFound
	}
	return nil
}

// DecrementSessionsRemaining consumes one session from the package as a
// single conditional write, so the balance can never go negative even under
// concurrent bookings.
func (r *MongoClientRepo) DecrementSessionsRemaining(ctx context.Context, clientID string) (bool, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": clientID, "sessionsRemaining": bson.M{"$gt": 0}}
	update := bson.M{
		"$inc": bson.M{"sessionsRemaining": -1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	res, err := r.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return false, fmt.Errorf("error decrementing sessions for client %s: %w", clientID, err)
	}
	return res.ModifiedCount == 1, nil
}

func (r *MongoClientRepo) IncrementSessionsRemaining(ctx context.Context, clientID string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$inc": bson.M{"sessionsRemaining": 1},
		"$set": bson.M{"updatedAt": time.Now().UTC()},
	}
	if _, err := r.coll.UpdateOne(ctxWithTimeout, bson.M{"id": clientID}, update); err != nil {
		return fmt.Errorf("error restoring session for client %s: %w", clientID, err)
	}
	return nil
}

func (r *MongoClientRepo) SetSessionsRemaining(ctx context.Context, clientID string, remaining int) error {
	if remaining < 0 {
		return fmt.Errorf("sessionsRemaining cannot be negative: %d", remaining)
	}
	return r.Update(ctx, clientID, map[string]interface{}{"sessionsRemaining": remaining})
}
