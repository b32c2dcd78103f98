package sessionRepo

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

// ErrSessionNotFound is returned when no session matches the query.
var ErrSessionNotFound = errors.New("session not found")

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	coll *mongo.Collection
}

// NewMongoSessionRepo creates a new instance of SessionRepository using MongoDB.
func NewMongoSessionRepo() SessionRepository {
	coll := database.DB().Collection("sessions")
	repo := &MongoSessionRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create session indexes: %v\n", err)
	}
	return repo
}

func (r *MongoSessionRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "clientId", Value: 1}, {Key: "dateTime", Value: -1}}},
		{Keys: bson.D{{Key: "trainerId", Value: 1}, {Key: "dateTime", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "reminderSent", Value: 1}, {Key: "status", Value: 1}, {Key: "dateTime", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}
	return nil
}

func (r *MongoSessionRepo) Create(ctx context.Context, session *models.Session) (string, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now
	if session.Status == "" {
		session.Status = models.StatusScheduled
	}
	if session.Duration <= 0 {
		session.Duration = 60
	}

	if _, err := r.coll.InsertOne(ctxWithTimeout, session); err != nil {
		return "", fmt.Errorf("error creating session: %w", err)
	}
	return session.ID, nil
}

func (r *MongoSessionRepo) GetByID(ctx context.Context, sessionID string) (*models.Session, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.Session
	err := r.coll.FindOne(ctxWithTimeout, bson.M{"id": sessionID}).Decode(&session)
	if err == mongo.ErrNoDocuments {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching session %s: %w", sessionID, err)
	}
	return &session, nil
}

func (r *MongoSessionRepo) GetForClient(ctx context.Context, clientID string, limit int64) ([]models.Session, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 10
	}
	opts := options.Find().SetSort(bson.D{{Key: "dateTime", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctxWithTimeout, bson.M{"clientId": clientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching sessions for client %s: %w", clientID, err)
	}
	defer cursor.Close(ctxWithTimeout)

	var sessions []models.Session
	if err := cursor.All(ctxWithTimeout, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding sessions for client %s: %w", clientID, err)
	}
	return sessions, nil
}

func (r *MongoSessionRepo) GetUpcoming(ctx context.Context, trainerID string, daysAhead int) ([]models.Session, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	filter := bson.M{
		"dateTime": bson.M{"$gte": now, "$lte": now.AddDate(0, 0, daysAhead)},
	}
	if trainerID != "" {
		filter["trainerId"] = trainerID
	}

	opts := options.Find().SetSort(bson.D{{Key: "dateTime", Value: 1}})
	cursor, err := r.coll.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching upcoming sessions: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var sessions []models.Session
	if err := cursor.All(ctxWithTimeout, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding upcoming sessions: %w", err)
	}
	return sessions, nil
}

func (r *MongoSessionRepo) GetActiveForTrainerDay(ctx context.Context, trainerID string, day time.Time) ([]models.Session, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	filter := bson.M{
		"trainerId": trainerID,
		"dateTime":  bson.M{"$gte": dayStart, "$lt": dayEnd},
		"status":    bson.M{"$in": models.ActiveStatuses},
	}

	opts := options.Find().SetSort(bson.D{{Key: "dateTime", Value: 1}})
	cursor, err := r.coll.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching trainer day sessions: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var sessions []models.Session
	if err := cursor.All(ctxWithTimeout, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding trainer day sessions: %w", err)
	}
	return sessions, nil
}

func (r *MongoSessionRepo) UpdateStatus(ctx context.Context, sessionID, status string) error {
	return r.update(ctx, sessionID, bson.M{"status": status})
}

func (r *MongoSessionRepo) Cancel(ctx context.Context, sessionID, reason string) error {
	set := bson.M{"status": models.StatusCancelled}
	if reason != "" {
		set["cancellationReason"] = reason
	}
	return r.update(ctx, sessionID, set)
}

func (r *MongoSessionRepo) Reschedule(ctx context.Context, sessionID string, newTime time.Time) error {
	return r.update(ctx, sessionID, bson.M{
		"dateTime": newTime,
		"status":   models.StatusScheduled,
	})
}

func (r *MongoSessionRepo) MarkReminderSent(ctx context.Context, sessionID, method string) error {
	return r.update(ctx, sessionID, bson.M{
		"reminderSent":       true,
		"lastReminderMethod": method,
		"reminderSentAt":     time.Now().UTC(),
	})
}

func (r *MongoSessionRepo) GetNeedingReminders(ctx context.Context, leadHours int) ([]models.Session, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cutoff := time.Now().UTC().Add(time.Duration(leadHours) * time.Hour)
	filter := bson.M{
		"reminderSent": false,
		"status":       models.StatusScheduled,
		"dateTime":     bson.M{"$lte": cutoff},
	}

	opts := options.Find().SetSort(bson.D{{Key: "dateTime", Value: 1}})
	cursor, err := r.coll.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching sessions needing reminders: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var sessions []models.Session
	if err := cursor.All(ctxWithTimeout, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding sessions needing reminders: %w", err)
	}
	return sessions, nil
}

func (r *MongoSessionRepo) update(ctx context.Context, sessionID string, set bson.M) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set["updatedAt"] = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctxWithTimeout, bson.M{"id": sessionID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating session %s: %w", sessionID, err)
	}
	if res.MatchedCount == 0 {
		return ErrSessionNotFound
	}
	return nil
}
