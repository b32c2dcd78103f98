package appointmentRepo

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

// ErrAppointmentNotFound is returned when no appointment matches the query.
var ErrAppointmentNotFound = errors.New("appointment not found")

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	coll := database.DB().Collection("appointments")
	repo := &MongoAppointmentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create appointment indexes: %v\n", err)
	}
	return repo
}

func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "trainerId", Value: 1}, {Key: "dateTime", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}

func (r *MongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) (string, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	if appt.Status == "" {
		appt.Status = models.StatusScheduled
	}
	if appt.Duration <= 0 {
		appt.Duration = 60
	}

	if _, err := r.coll.InsertOne(ctxWithTimeout, appt); err != nil {
		return "", fmt.Errorf("error creating appointment: %w", err)
	}
	return appt.ID, nil
}

func (r *MongoAppointmentRepo) GetByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	err := r.coll.FindOne(ctxWithTimeout, bson.M{"id": appointmentID}).Decode(&appt)
	if err == mongo.ErrNoDocuments {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching appointment %s: %w", appointmentID, err)
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) GetActiveForTrainerDay(ctx context.Context, trainerID string, day time.Time) ([]models.Appointment, error) {
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
		return nil, fmt.Errorf("error fetching trainer day appointments: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var appts []models.Appointment
	if err := cursor.All(ctxWithTimeout, &appts); err != nil {
		return nil, fmt.Errorf("error decoding trainer day appointments: %w", err)
	}
	return appts, nil
}

func (r *MongoAppointmentRepo) Cancel(ctx context.Context, appointmentID, reason string) error {
	set := bson.M{"status": models.StatusCancelled}
	if reason != "" {
		set["cancellationReason"] = reason
	}
	return r.update(ctx, appointmentID, set)
}

func (r *MongoAppointmentRepo) Reschedule(ctx context.Context, appointmentID string, newTime time.Time) error {
	return r.update(ctx, appointmentID, bson.M{
		"dateTime": newTime,
		"status":   models.StatusScheduled,
	})
}

func (r *MongoAppointmentRepo) update(ctx context.Context, appointmentID string, set bson.M) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set["updatedAt"] = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctxWithTimeout, bson.M{"id": appointmentID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("error updating appointment %s: %w", appointmentID, err)
	}
	if res.MatchedCount == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}
