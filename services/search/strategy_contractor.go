package search

import (
	userRepo "workhive/database/repository/user"
	"workhive/models"
	"workhive/utils"
)

// ContractorSearchStrategy returns ranked worker profiles for a
// contractor caller.
type ContractorSearchStrategy struct {
	Contractor *models.User
	Users      userRepo.UserRepository
}

func (s *ContractorSearchStrategy) Kind() string { return KindWorkers }

// Run builds the worker query. A radius caps results only when the
// caller explicitly narrows it below the default; a default-radius
// request with an origin ranks all workers by ascending distance. When
// an unfiltered search comes back empty, the global top-rated list
// stands in rather than an empty page.
func (s *ContractorSearchStrategy) Run(req Request) (*Result, error) {
	criteria := userRepo.WorkerSearchCriteria{
		QueryRegex:   escapeLiteral(req.Query),
		SkillRegexes: escapeAll(req.Skills),
		MinRating:    req.MinRating,
		Origin:       req.Origin,
		Limit:        MaxResults,
	}

	if radiusExplicit(req.RadiusKm) && req.Origin.IsSet() {
		criteria.MaxDistanceKm = req.RadiusKm
	}

	workers, err := s.Users.SearchWorkers(criteria)
	if err != nil {
		return nil, utils.NewUpstreamError("worker search failed", err)
	}

	noFilters := criteria.QueryRegex == "" && len(criteria.SkillRegexes) == 0 && criteria.MinRating == 0
	if len(workers) == 0 && noFilters {
		workers, err = s.Users.TopRatedWorkers(TopWorkersFallbackCount)
		if err != nil {
			return nil, utils.NewUpstreamError("top rated fallback failed", err)
		}
	}
	return &Result{Kind: KindWorkers, Workers: workers}, nil
}
