package review

import (
	"workhive/cron"
	dealRepo "workhive/database/repository/deal"
	reviewRepo "workhive/database/repository/review"
	userRepo "workhive/database/repository/user"
	"workhive/models"
	"workhive/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReviewService accepts ratings between deal participants and keeps the
// reviewee's running average current.
type ReviewService interface {
	// Submit records a review by one participant about the other on a
	// completed deal. One review per (deal, reviewer).
	Submit(reviewerID, dealID string, rating int, comment string) (*models.Review, error)
	// ListForUser returns reviews about a user, newest first.
	ListForUser(userID string) ([]models.Review, error)
}

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Reviews reviewRepo.ReviewRepository
	Deals   dealRepo.DealRepository
	Users   userRepo.UserRepository
	Tasks   cron.TaskEnqueuer
}

// Submit records a review and refreshes the reviewee's average rating.
func (s *DefaultReviewService) Submit(reviewerID, dealID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, utils.NewValidationError("rating must be between 1 and 5")
	}

	d, err := s.Deals.GetByID(dealID)
	if err != nil {
		return nil, utils.NewUpstreamError("failed to load deal", err)
	}
	if d == nil {
		return nil, utils.NewNotFoundError("deal not found")
	}

	var revieweeID string
	switch reviewerID {
	case d.WorkerID:
		revieweeID = d.ContractorID
	case d.ContractorID:
		revieweeID = d.WorkerID
	default:
		return nil, utils.NewAuthorizationError("reviewer is not a participant of this deal")
	}
	if d.Status != models.DealCompleted {
		return nil, utils.NewStateConflictError("reviews open once the deal is completed")
	}

	r := &models.Review{
		ID:         uuid.New().String(),
		DealID:     dealID,
		ReviewerID: reviewerID,
		RevieweeID: revieweeID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.Reviews.Create(r); err != nil {
		if err == reviewRepo.ErrDuplicateReview {
			return nil, utils.NewStateConflictError("you already reviewed this deal")
		}
		return nil, utils.NewUpstreamError("failed to create review", err)
	}

	s.refreshAverage(revieweeID)
	return r, nil
}

// ListForUser returns reviews about a user, newest first.
func (s *DefaultReviewService) ListForUser(userID string) ([]models.Review, error) {
	reviews, err := s.Reviews.ListForUser(userID)
	if err != nil {
		return nil, utils.NewUpstreamError("failed to list reviews", err)
	}
	return reviews, nil
}

// refreshAverage recomputes the reviewee's running average and, for
// workers, queues a trust rank rebuild. Failures here are side-effect
// failures: logged, never surfaced to the reviewer.
func (s *DefaultReviewService) refreshAverage(revieweeID string) {
	logger := utils.GetLogger()

	avg, count, err := s.Reviews.AverageRatingFor(revieweeID)
	if err != nil {
		logger.Error("failed to average reviews", zap.String("userId", revieweeID), zap.Error(err))
		return
	}
	if count == 0 {
		return
	}
	if err := s.Users.UpdateAverageRating(revieweeID, avg); err != nil {
		logger.Error("failed to persist average rating", zap.String("userId", revieweeID), zap.Error(err))
		return
	}

	reviewee, err := s.Users.GetByID(revieweeID)
	if err != nil || reviewee == nil || !reviewee.IsWorker() {
		return
	}
	task, err := cron.NewRankingRecomputeTask(revieweeID)
	if err != nil {
		logger.Error("failed to build ranking task", zap.String("workerId", revieweeID), zap.Error(err))
		return
	}
	if _, err := s.Tasks.Enqueue(task); err != nil {
		logger.Error("failed to enqueue ranking task", zap.String("workerId", revieweeID), zap.Error(err))
	}
}
