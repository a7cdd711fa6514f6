package deal

import (
	"workhive/models"
)

// DealService is the only legal write path for deal status. Every
// operation verifies the deal exists, the actor owns the relevant side
// of it, and the current status matches the transition table.
type DealService interface {
	// Apply creates a deal in "applied" for the worker on the job.
	Apply(workerID, jobID string) (*models.Deal, error)
	// Accept moves applied -> active; only the job's contractor may call.
	Accept(contractorID, dealID string) (*models.Deal, error)
	// Reject terminates an applied/assigned deal and appends to the
	// rejection history; triggers a rank recompute for the worker.
	Reject(contractorID, dealID string, reasonCodes []string, note string) (*models.Deal, error)
	// RequestCompletion moves active -> completion_requested; only the
	// deal's worker may call.
	RequestCompletion(workerID, dealID string) (*models.Deal, error)
	// ApproveCompletion moves completion_requested -> completed; closes
	// the job once every non-rejected deal on it is completed, and
	// triggers a rank recompute for the worker.
	ApproveCompletion(contractorID, dealID string) (*models.Deal, error)
	// MarkPaid flips payment status pending -> paid on a completed deal.
	MarkPaid(workerID, dealID string) (*models.Deal, error)
	// ListForActor returns the actor's deals, newest first.
	ListForActor(actorID, role string) ([]models.Deal, error)
}
