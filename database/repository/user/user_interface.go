package userRepo

import (
	"workhive/models"
)

// WorkerSearchCriteria drives the contractor-facing worker search.
// QueryRegex and SkillRegexes are pre-escaped literal patterns; the
// repository never interprets caller text as a pattern language.
type WorkerSearchCriteria struct {
	QueryRegex    string
	SkillRegexes  []string
	MinRating     float64
	Origin        models.GeoPoint
	MaxDistanceKm float64 // 0 means no radius cap
	Limit         int
}

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address, nil if absent.
	GetByEmail(email string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// UpdateTrustRank writes a worker's trust score and rank label in a
	// single atomic update. It is the only write path for those fields.
	UpdateTrustRank(workerID string, score int, label string) error
	// UpdateAverageRating writes a user's running average rating.
	UpdateAverageRating(userID string, avg float64) error
	// SearchWorkers returns worker profiles matching the criteria,
	// nearest first when an origin is set.
	SearchWorkers(criteria WorkerSearchCriteria) ([]models.WorkerProfile, error)
	// TopRatedWorkers returns the best-rated workers, for the
	// empty-search fallback.
	TopRatedWorkers(limit int) ([]models.WorkerProfile, error)
	// AllWorkerIDs lists every worker id, for the nightly rank sweep.
	AllWorkerIDs() ([]string, error)
}
