package search

import (
	"workhive/models"
)

const (
	// DefaultRadiusKm is the radius assumed when a caller supplies none.
	DefaultRadiusKm = 100.0
	// MaxResults caps every result set.
	MaxResults = 50
	// FallbackSkill stands in for a worker with no skill tags.
	FallbackSkill = "helper"
	// TopWorkersFallbackCount sizes the global top-rated fallback list.
	TopWorkersFallbackCount = 20
)

// Result kinds, tagged by the caller's role.
const (
	KindJobs    = "jobs"
	KindWorkers = "workers"
)

// Request is the single search input, interpreted by the caller's role:
// workers get ranked open jobs, contractors get ranked worker profiles.
type Request struct {
	Query     string          `json:"query"`
	Skills    []string        `json:"skills"`
	MinRating float64         `json:"minRating"`
	MinPay    float64         `json:"minPay"`
	Origin    models.GeoPoint `json:"origin"`
	RadiusKm  float64         `json:"radiusKm"` // 0 means unspecified
}

// Result is a type-tagged ranked list.
type Result struct {
	Kind    string                 `json:"kind"`
	Jobs    []models.Job           `json:"jobs,omitempty"`
	Workers []models.WorkerProfile `json:"workers,omitempty"`
}

// Count returns the number of entries in the result.
func (r *Result) Count() int {
	if r.Kind == KindJobs {
		return len(r.Jobs)
	}
	return len(r.Workers)
}

// SearchService is the read path: role-aware ranked retrieval combining
// spatial proximity, filters, and free text.
type SearchService interface {
	Search(actorID, role string, req Request) (*Result, error)
}
