package dealRepo

import (
	"workhive/models"

	"go.mongodb.org/mongo-driver/bson"
)

// DealRepository defines methods for deal data access. Deals are never
// deleted; the lifecycle only moves forward through UpdateStatus.
type DealRepository interface {
	// Create inserts a new deal. ErrDuplicateLiveDeal is returned when a
	// non-terminal deal for the same (job, worker) pair already exists.
	Create(deal *models.Deal) error
	// GetByID retrieves a deal by its unique ID, nil if absent.
	GetByID(id string) (*models.Deal, error)
	// UpdateStatus atomically moves a deal from one of the expected origin
	// statuses to the destination, applying any extra field updates in the
	// same write. It returns the updated deal, or nil when no deal
	// currently sits at an expected origin (conflict or missing).
	UpdateStatus(id string, from []string, to string, extra bson.M) (*models.Deal, error)
	// MarkPaid flips payment status pending -> paid on a completed deal.
	// Returns the updated deal, nil when the guard did not match.
	MarkPaid(id string) (*models.Deal, error)
	// FindLive returns the non-terminal deal for a (job, worker) pair,
	// nil when none exists.
	FindLive(jobID, workerID string) (*models.Deal, error)
	// ListByWorker returns a worker's full deal history.
	ListByWorker(workerID string) ([]models.Deal, error)
	// ListByJob returns every deal on a job.
	ListByJob(jobID string) ([]models.Deal, error)
	// ListByContractor returns every deal a contractor is party to.
	ListByContractor(contractorID string) ([]models.Deal, error)
	// JobIDsWithLiveDeal lists job ids the worker holds a non-terminal
	// deal on, for search exclusion.
	JobIDsWithLiveDeal(workerID string) ([]string, error)
}
