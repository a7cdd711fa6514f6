package jobRepo

import (
	"workhive/models"
)

// JobSearchCriteria drives the worker-facing job search. SkillRegexes and
// QueryRegex are pre-escaped literal patterns.
type JobSearchCriteria struct {
	QueryRegex    string
	SkillRegexes  []string
	MinPay        float64
	Origin        models.GeoPoint
	MaxDistanceKm float64 // 0 means no radius cap
	ExcludeJobIDs []string
	Limit         int
}

// JobRepository defines methods for job posting data access.
type JobRepository interface {
	// Create inserts a new job posting.
	Create(job *models.Job) error
	// GetByID retrieves a job by its unique ID, nil if absent.
	GetByID(id string) (*models.Job, error)
	// ListByContractor returns a contractor's postings, newest first.
	ListByContractor(contractorID string) ([]models.Job, error)
	// Close transitions a job from open to closed. Returns false when the
	// job was not open (already closed or missing).
	Close(id string) (bool, error)
	// SearchJobs returns open jobs matching the criteria, nearest first
	// when an origin is set, newest first otherwise.
	SearchJobs(criteria JobSearchCriteria) ([]models.Job, error)
}
