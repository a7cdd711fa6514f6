package ranking

import (
	"time"

	attendanceRepo "workhive/database/repository/attendance"
	dealRepo "workhive/database/repository/deal"
	reviewRepo "workhive/database/repository/review"
	userRepo "workhive/database/repository/user"
	"workhive/models"
	"workhive/utils"

	"go.uber.org/zap"
)

// RankingService recomputes a worker's trust score from full history.
// It owns the worker's score and label fields; nothing else writes them.
type RankingService interface {
	RecomputeForWorker(workerID string) error
}

// DefaultRankingService is the production implementation.
type DefaultRankingService struct {
	Deals      dealRepo.DealRepository
	Attendance attendanceRepo.AttendanceRepository
	Reviews    reviewRepo.ReviewRepository
	Users      userRepo.UserRepository
}

// RecomputeForWorker rebuilds the score from scratch. Idempotent and
// safe to run concurrently for the same worker: the last write wins and
// is consistent with whichever history snapshot it read.
func (s *DefaultRankingService) RecomputeForWorker(workerID string) error {
	logger := utils.GetLogger()

	worker, err := s.Users.GetByID(workerID)
	if err != nil {
		return utils.NewUpstreamError("failed to load worker", err)
	}
	if worker == nil {
		return utils.NewNotFoundError("worker not found")
	}

	deals, err := s.Deals.ListByWorker(workerID)
	if err != nil {
		return utils.NewUpstreamError("failed to load deal history", err)
	}

	history := History{TotalDeals: len(deals)}

	if len(deals) > 0 {
		contractors := make(map[string]struct{})
		cutoff := time.Now().AddDate(0, 0, -30)
		for _, d := range deals {
			contractors[d.ContractorID] = struct{}{}
			switch d.Status {
			case models.DealCompleted:
				history.CompletedDeals++
			case models.DealRejected:
				history.RejectedDeals++
			}
			if d.CreatedAt.After(cutoff) {
				history.RecentDeals++
			}
		}
		history.DistinctContractors = len(contractors)

		approved, err := s.Attendance.CountApprovedByWorker(workerID)
		if err != nil {
			return utils.NewUpstreamError("failed to count attendance", err)
		}
		history.ApprovedAttendance = approved

		avg, count, err := s.Reviews.AverageRatingFor(workerID)
		if err != nil {
			return utils.NewUpstreamError("failed to average reviews", err)
		}
		if count > 0 {
			history.AverageRating = avg
		}
	}

	score, label := Compute(history)

	if err := s.Users.UpdateTrustRank(workerID, score, label); err != nil {
		return utils.NewUpstreamError("failed to persist trust rank", err)
	}

	logger.Debug("trust rank recomputed",
		zap.String("workerId", workerID),
		zap.Int("score", score),
		zap.String("label", label))
	return nil
}
