package search

import (
	dealRepo "workhive/database/repository/deal"
	jobRepo "workhive/database/repository/job"
	"workhive/models"
	"workhive/utils"
)

// WorkerSearchStrategy returns ranked open jobs for a worker caller.
type WorkerSearchStrategy struct {
	Worker *models.User
	Jobs   jobRepo.JobRepository
	Deals  dealRepo.DealRepository
}

func (s *WorkerSearchStrategy) Kind() string { return KindJobs }

// Run builds the job query. With no explicit skills or query, the
// worker's own tags act as the default filter ("helper" when untagged).
// Jobs the worker already holds a live deal on are excluded.
func (s *WorkerSearchStrategy) Run(req Request) (*Result, error) {
	criteria := jobRepo.JobSearchCriteria{
		QueryRegex:   escapeLiteral(req.Query),
		SkillRegexes: escapeAll(req.Skills),
		MinPay:       req.MinPay,
		Origin:       req.Origin,
		Limit:        MaxResults,
	}

	explicitSkills := len(criteria.SkillRegexes) > 0
	if !explicitSkills && criteria.QueryRegex == "" {
		defaults := s.Worker.Skills
		if len(defaults) == 0 {
			defaults = []string{FallbackSkill}
		}
		criteria.SkillRegexes = escapeAll(defaults)
	}

	// The radius caps results only for specific requests; a plain
	// browse with just an origin ranks by distance uncapped.
	specific := criteria.QueryRegex != "" || explicitSkills || radiusExplicit(req.RadiusKm)
	if specific && req.Origin.IsSet() {
		radius := req.RadiusKm
		if radius <= 0 {
			radius = DefaultRadiusKm
		}
		criteria.MaxDistanceKm = radius
	}

	excluded, err := s.Deals.JobIDsWithLiveDeal(s.Worker.ID)
	if err != nil {
		return nil, utils.NewUpstreamError("failed to resolve applied jobs", err)
	}
	criteria.ExcludeJobIDs = excluded

	jobs, err := s.Jobs.SearchJobs(criteria)
	if err != nil {
		return nil, utils.NewUpstreamError("job search failed", err)
	}
	return &Result{Kind: KindJobs, Jobs: jobs}, nil
}
