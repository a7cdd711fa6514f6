package dealRepo

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

// ErrDuplicateLiveDeal signals a second application for a (job, worker)
// pair whose prior deal is still non-terminal.
var ErrDuplicateLiveDeal = errors.New("a live deal already exists for this job and worker")

// MongoDealRepo implements DealRepository using MongoDB.
type MongoDealRepo struct {
	coll *mongo.Collection
}

// NewMongoDealRepo creates a new instance of DealRepository using MongoDB.
func NewMongoDealRepo() DealRepository {
	repo := &MongoDealRepo{coll: database.Collection("deals")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create deal indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoDealRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	// The partial unique index is what makes the one-live-deal-per-pair
	// invariant hold under concurrent applications, not just the service
	// pre-check.
	liveDealIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "jobId", Value: 1}, {Key: "workerId", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"terminal": false}),
	}

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "workerId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "jobId", Value: 1}}},
		{Keys: bson.D{{Key: "contractorId", Value: 1}}},
		liveDealIdx,
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new deal document.
func (r *MongoDealRepo) Create(deal *models.Deal) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	deal.CreatedAt = now
	deal.UpdatedAt = now
	deal.Terminal = models.IsTerminal(deal.Status)

	if _, err := r.coll.InsertOne(ctx, deal); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateLiveDeal
		}
		return fmt.Errorf("failed to create deal: %w", err)
	}
	return nil
}

// GetByID retrieves a deal by its unique ID.
func (r *MongoDealRepo) GetByID(id string) (*models.Deal, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var deal models.Deal
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&deal); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch deal with id %s: %w", id, err)
	}
	return &deal, nil
}

// UpdateStatus performs the compare-and-commit status write. The filter
// pins the origin status, so of two racing transitions exactly one
// matches and the loser gets nil back.
func (r *MongoDealRepo) UpdateStatus(id string, from []string, to string, extra bson.M) (*models.Deal, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{
		"status":    to,
		"terminal":  models.IsTerminal(to),
		"updatedAt": time.Now(),
	}
	update := bson.M{"$set": set}
	for k, v := range extra {
		if k == "$push" {
			update["$push"] = v
			continue
		}
		set[k] = v
	}

	filter := bson.M{"id": id, "status": bson.M{"$in": from}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var deal models.Deal
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&deal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to transition deal %s from %v to %s: %w", id, from, to, err)
	}
	return &deal, nil
}

// MarkPaid flips payment status pending -> paid on a completed deal.
func (r *MongoDealRepo) MarkPaid(id string) (*models.Deal, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"id":            id,
		"status":        models.DealCompleted,
		"paymentStatus": models.PaymentPending,
	}
	update := bson.M{"$set": bson.M{
		"paymentStatus": models.PaymentPaid,
		"updatedAt":     time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var deal models.Deal
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&deal)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to mark deal %s paid: %w", id, err)
	}
	return &deal, nil
}

// FindLive returns the non-terminal deal for a (job, worker) pair.
func (r *MongoDealRepo) FindLive(jobID, workerID string) (*models.Deal, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"jobId": jobID, "workerId": workerID, "terminal": false}
	var deal models.Deal
	if err := r.coll.FindOne(ctx, filter).Decode(&deal); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch live deal for job %s worker %s: %w", jobID, workerID, err)
	}
	return &deal, nil
}

func (r *MongoDealRepo) list(filter bson.M) ([]models.Deal, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list deals: %w", err)
	}
	defer cursor.Close(ctx)

	var deals []models.Deal
	if err := cursor.All(ctx, &deals); err != nil {
		return nil, fmt.Errorf("failed to decode deals: %w", err)
	}
	return deals, nil
}

// ListByWorker returns a worker's full deal history.
func (r *MongoDealRepo) ListByWorker(workerID string) ([]models.Deal, error) {
	return r.list(bson.M{"workerId": workerID})
}

// ListByJob returns every deal on a job.
func (r *MongoDealRepo) ListByJob(jobID string) ([]models.Deal, error) {
	return r.list(bson.M{"jobId": jobID})
}

// ListByContractor returns every deal a contractor is party to.
func (r *MongoDealRepo) ListByContractor(contractorID string) ([]models.Deal, error) {
	return r.list(bson.M{"contractorId": contractorID})
}

// JobIDsWithLiveDeal lists job ids the worker holds a non-terminal deal on.
func (r *MongoDealRepo) JobIDsWithLiveDeal(workerID string) ([]string, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	values, err := r.coll.Distinct(ctx, "jobId", bson.M{"workerId": workerID, "terminal": false})
	if err != nil {
		return nil, fmt.Errorf("failed to list live job ids for worker %s: %w", workerID, err)
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			ids = append(ids, s)
		}
	}
	return ids, nil
}
