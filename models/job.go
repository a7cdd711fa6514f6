package models

import "time"

// Job statuses.
const (
	JobOpen   = "open"
	JobClosed = "closed"
)

// Payment types accepted on a job posting.
const (
	PaymentDaily  = "daily"
	PaymentFixed  = "fixed"
	PaymentHourly = "hourly"
)

// Job is a contractor's short-term work posting. Status is mutated only
// by deal completion (open -> closed); nothing reopens a closed job.
type Job struct {
	ID            string    `bson:"id" json:"id"`
	ContractorID  string    `bson:"contractorId" json:"contractorId"`
	WorkType      string    `bson:"workType" json:"workType"` // skill tag, e.g. "mason"
	Description   string    `bson:"description" json:"description"`
	WorkersNeeded int       `bson:"workersNeeded" json:"workersNeeded"`
	PaymentAmount float64   `bson:"paymentAmount" json:"paymentAmount"`
	PaymentType   string    `bson:"paymentType" json:"paymentType"`
	Address       string    `bson:"address" json:"address,omitempty"`
	LocationGeo   GeoPoint  `bson:"locationGeo" json:"locationGeo"`
	Status        string    `bson:"status" json:"status"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time `bson:"updatedAt" json:"updatedAt"`

	// Populated by $geoNear searches only.
	Distance float64 `bson:"distance,omitempty" json:"distanceMeters,omitempty"`
}
