package models

import "time"

// Deal statuses. Completed and rejected are terminal.
const (
	DealApplied             = "applied"
	DealAssigned            = "assigned"
	DealActive              = "active"
	DealCompletionRequested = "completion_requested"
	DealCompleted           = "completed"
	DealRejected            = "rejected"
)

// Deal payment statuses.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
)

// Rejection is one entry in a deal's rejection history.
type Rejection struct {
	ReasonCodes []string  `bson:"reasonCodes" json:"reasonCodes"`
	Note        string    `bson:"note,omitempty" json:"note,omitempty"`
	RejectedAt  time.Time `bson:"rejectedAt" json:"rejectedAt"`
}

// Deal is one worker's engagement with one job. Deals are never deleted;
// the full history feeds the ranking engine.
type Deal struct {
	ID           string `bson:"id" json:"id"`
	JobID        string `bson:"jobId" json:"jobId"`
	ContractorID string `bson:"contractorId" json:"contractorId"`
	WorkerID     string `bson:"workerId" json:"workerId"`

	Status string `bson:"status" json:"status"`
	// Terminal mirrors Status; it backs the partial unique index that
	// guarantees at most one live deal per (job, worker) pair.
	Terminal bool `bson:"terminal" json:"-"`

	PaymentStatus       string      `bson:"paymentStatus" json:"paymentStatus"`
	CompletionRequested bool        `bson:"completionRequested" json:"completionRequested"`
	Rejections          []Rejection `bson:"rejections,omitempty" json:"rejections,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsTerminal reports whether the given status admits no further transition.
func IsTerminal(status string) bool {
	return status == DealCompleted || status == DealRejected
}
