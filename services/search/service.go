package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	dealRepo "workhive/database/repository/deal"
	jobRepo "workhive/database/repository/job"
	userRepo "workhive/database/repository/user"
	"workhive/models"
	"workhive/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cacheTTL = 30 * time.Second

// DefaultSearchService is the production implementation: it resolves
// the caller, selects the role strategy, and caches hot result sets.
type DefaultSearchService struct {
	Users userRepo.UserRepository
	Jobs  jobRepo.JobRepository
	Deals dealRepo.DealRepository
	Cache *redis.Client
}

// Search runs the role-branched ranked retrieval.
func (s *DefaultSearchService) Search(actorID, role string, req Request) (*Result, error) {
	actor, err := s.Users.GetByID(actorID)
	if err != nil {
		return nil, utils.NewUpstreamError("failed to load caller", err)
	}
	if actor == nil {
		return nil, utils.NewNotFoundError("caller not found")
	}
	if actor.Role != role {
		return nil, utils.NewAuthorizationError("caller role mismatch")
	}
	if len(req.Origin.Coordinates) > 0 && !req.Origin.IsSet() {
		return nil, utils.NewValidationError("origin must carry exactly two finite coordinates")
	}

	key := s.cacheKey(actorID, role, req)
	if cached := s.fromCache(key); cached != nil {
		return cached, nil
	}

	strategy, err := s.strategyFor(actor)
	if err != nil {
		return nil, err
	}

	result, err := strategy.Run(req)
	if err != nil {
		return nil, err
	}

	s.toCache(key, result)
	return result, nil
}

func (s *DefaultSearchService) strategyFor(actor *models.User) (SearchStrategy, error) {
	switch actor.Role {
	case models.RoleWorker:
		return &WorkerSearchStrategy{Worker: actor, Jobs: s.Jobs, Deals: s.Deals}, nil
	case models.RoleContractor:
		return &ContractorSearchStrategy{Contractor: actor, Users: s.Users}, nil
	default:
		return nil, utils.NewValidationError(fmt.Sprintf("unsupported role %q", actor.Role))
	}
}

func (s *DefaultSearchService) cacheKey(actorID, role string, req Request) string {
	raw, _ := json.Marshal(struct {
		ActorID string  `json:"actorId"`
		Role    string  `json:"role"`
		Req     Request `json:"req"`
	}{actorID, role, req})
	sum := sha256.Sum256(raw)
	return "search:" + hex.EncodeToString(sum[:])
}

func (s *DefaultSearchService) fromCache(key string) *Result {
	if s.Cache == nil {
		return nil
	}
	data, err := s.Cache.Get(context.Background(), key).Result()
	if err != nil {
		return nil
	}
	var result Result
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil
	}
	return &result
}

func (s *DefaultSearchService) toCache(key string, result *Result) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.Cache.Set(context.Background(), key, data, cacheTTL).Err(); err != nil {
		utils.GetLogger().Debug("search cache write failed", zap.Error(err))
	}
}
