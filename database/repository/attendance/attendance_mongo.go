package attendanceRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"workhive/database"
	"workhive/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateCheckIn signals a second check-in for the same deal on
// the same calendar day. Backed by the unique (dealId, date) index.
var ErrDuplicateCheckIn = errors.New("attendance already recorded for this deal and date")

// AttendanceRepository defines methods for attendance record access.
type AttendanceRepository interface {
	// Create inserts a new check-in record. ErrDuplicateCheckIn is
	// returned when the (deal, date) pair already has one.
	Create(record *models.AttendanceRecord) error
	// GetByID retrieves a record by its unique ID, nil if absent.
	GetByID(id string) (*models.AttendanceRecord, error)
	// SetStatus writes the approval status on a pending record. Returns
	// false when the record was not pending.
	SetStatus(id, status string) (bool, error)
	// ListByDeal returns all records for a deal, oldest first.
	ListByDeal(dealID string) ([]models.AttendanceRecord, error)
	// CountApprovedByWorker counts a worker's approved check-ins.
	CountApprovedByWorker(workerID string) (int64, error)
}

// MongoAttendanceRepo implements AttendanceRepository using MongoDB.
type MongoAttendanceRepo struct {
	coll *mongo.Collection
}

// NewMongoAttendanceRepo creates a new instance of AttendanceRepository using MongoDB.
func NewMongoAttendanceRepo() AttendanceRepository {
	repo := &MongoAttendanceRepo{coll: database.Collection("attendance")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create attendance indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAttendanceRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// One check-in per deal per calendar day.
		{
			Keys:    bson.D{{Key: "dealId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "workerId", Value: 1}, {Key: "status", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new check-in record.
func (r *MongoAttendanceRepo) Create(record *models.AttendanceRecord) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateCheckIn
		}
		return fmt.Errorf("failed to create attendance record: %w", err)
	}
	return nil
}

// GetByID retrieves a record by its unique ID.
func (r *MongoAttendanceRepo) GetByID(id string) (*models.AttendanceRecord, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var record models.AttendanceRecord
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&record); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch attendance record %s: %w", id, err)
	}
	return &record, nil
}

// SetStatus writes the approval status on a pending record.
func (r *MongoAttendanceRepo) SetStatus(id, status string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": models.AttendancePending}
	update := bson.M{"$set": bson.M{"status": status}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to set attendance status for %s: %w", id, err)
	}
	return result.ModifiedCount == 1, nil
}

// ListByDeal returns all records for a deal, oldest first.
func (r *MongoAttendanceRepo) ListByDeal(dealID string) ([]models.AttendanceRecord, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "checkedInAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"dealId": dealID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance for deal %s: %w", dealID, err)
	}
	defer cursor.Close(ctx)

	var records []models.AttendanceRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode attendance records: %w", err)
	}
	return records, nil
}

// CountApprovedByWorker counts a worker's approved check-ins.
func (r *MongoAttendanceRepo) CountApprovedByWorker(workerID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{
		"workerId": workerID,
		"status":   models.AttendanceApproved,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count approved attendance for worker %s: %w", workerID, err)
	}
	return count, nil
}
