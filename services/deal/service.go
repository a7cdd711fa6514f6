package deal

import (
	"fmt"
	"time"

	"workhive/cron"
	dealRepo "workhive/database/repository/deal"
	jobRepo "workhive/database/repository/job"
	userRepo "workhive/database/repository/user"
	"workhive/models"
	"workhive/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultDealService is the production implementation.
type DefaultDealService struct {
	Deals dealRepo.DealRepository
	Jobs  jobRepo.JobRepository
	Users userRepo.UserRepository
	Tasks cron.TaskEnqueuer
}

// Apply creates a deal in "applied" for the worker on the job.
func (s *DefaultDealService) Apply(workerID, jobID string) (*models.Deal, error) {
	job, err := s.Jobs.GetByID(jobID)
	if err != nil {
		return nil, utils.NewUpstreamError("failed to load job", err)
	}
	if job == nil {
		return nil, utils.NewNotFoundError("job not found")
	}
	if job.Status != models.JobOpen {
		return nil, utils.NewStateConflictError("job is no longer open")
	}
	if job.ContractorID == workerID {
		return nil, utils.NewValidationError("cannot apply to your own job")
	}

	existing, err := s.Deals.FindLive(jobID, workerID)
	if err != nil {
		return nil, utils.NewUpstreamError("failed to check existing deals", err)
	}
	if existing != nil {
		return nil, utils.NewStateConflictError("an application for this job is already in progress")
	}

	d := &models.Deal{
		ID:            uuid.New().String(),
		JobID:         jobID,
		ContractorID:  job.ContractorID,
		WorkerID:      workerID,
		Status:        models.DealApplied,
		PaymentStatus: models.PaymentPending,
	}
	if err := s.Deals.Create(d); err != nil {
		if err == dealRepo.ErrDuplicateLiveDeal {
			// Lost the race against a concurrent duplicate application.
			return nil, utils.NewStateConflictError("an application for this job is already in progress")
		}
		return nil, utils.NewUpstreamError("failed to create deal", err)
	}
	return d, nil
}

// Accept moves applied -> active.
func (s *DefaultDealService) Accept(contractorID, dealID string) (*models.Deal, error) {
	updated, err := s.transition(EventAccept, contractorID, dealID, nil)
	if err != nil {
		return nil, err
	}

	s.notify(models.Notification{
		RecipientID:     updated.WorkerID,
		Title:           "You got the job!",
		Body:            "The contractor accepted your application. You can start working.",
		EventType:       models.EventDealAccepted,
		RelatedEntityID: updated.ID,
		TargetView:      "deal",
	})
	return updated, nil
}

// Reject terminates an applied/assigned deal.
func (s *DefaultDealService) Reject(contractorID, dealID string, reasonCodes []string, note string) (*models.Deal, error) {
	if len(reasonCodes) == 0 {
		return nil, utils.NewValidationError("at least one rejection reason code is required")
	}

	extra := bson.M{
		"$push": bson.M{"rejections": models.Rejection{
			ReasonCodes: reasonCodes,
			Note:        note,
			RejectedAt:  time.Now(),
		}},
	}
	updated, err := s.transition(EventReject, contractorID, dealID, extra)
	if err != nil {
		return nil, err
	}

	s.recomputeRank(updated.WorkerID)
	s.notify(models.Notification{
		RecipientID:     updated.WorkerID,
		Title:           "Application rejected",
		Body:            "The contractor declined your application for this job.",
		EventType:       models.EventDealRejected,
		RelatedEntityID: updated.ID,
		TargetView:      "deal",
	})
	return updated, nil
}

// RequestCompletion moves active -> completion_requested.
func (s *DefaultDealService) RequestCompletion(workerID, dealID string) (*models.Deal, error) {
	extra := bson.M{"completionRequested": true}
	updated, err := s.transition(EventRequestCompletion, workerID, dealID, extra)
	if err != nil {
		return nil, err
	}

	s.notify(models.Notification{
		RecipientID:     updated.ContractorID,
		Title:           "Completion requested",
		Body:            "A worker reports the job done and awaits your approval.",
		EventType:       models.EventCompletionRequested,
		RelatedEntityID: updated.ID,
		TargetView:      "deal",
	})
	return updated, nil
}

// ApproveCompletion moves completion_requested -> completed.
func (s *DefaultDealService) ApproveCompletion(contractorID, dealID string) (*models.Deal, error) {
	updated, err := s.transition(EventApproveCompletion, contractorID, dealID, nil)
	if err != nil {
		return nil, err
	}

	s.closeJobIfDone(updated.JobID)
	s.recomputeRank(updated.WorkerID)

	s.notify(models.Notification{
		RecipientID:     updated.WorkerID,
		Title:           "Job completed",
		Body:            "The contractor approved your completion. Payment is on its way.",
		EventType:       models.EventDealCompleted,
		RelatedEntityID: updated.ID,
		TargetView:      "deal",
	})
	s.notify(models.Notification{
		RecipientID:     updated.ContractorID,
		Title:           "Deal completed",
		Body:            "You approved the completion of this deal.",
		EventType:       models.EventDealCompleted,
		RelatedEntityID: updated.ID,
		TargetView:      "deal",
	})
	return updated, nil
}

// MarkPaid flips payment status pending -> paid on a completed deal.
func (s *DefaultDealService) MarkPaid(workerID, dealID string) (*models.Deal, error) {
	d, err := s.Deals.GetByID(dealID)
	if err != nil {
		return nil, utils.NewUpstreamError("failed to load deal", err)
	}
	if d == nil {
		return nil, utils.NewNotFoundError("deal not found")
	}
	if d.WorkerID != workerID {
		return nil, utils.NewAuthorizationError("only the deal's worker may mark it paid")
	}

	updated, err := s.Deals.MarkPaid(dealID)
	if err != nil {
		return nil, utils.NewUpstreamError("failed to mark deal paid", err)
	}
	if updated == nil {
		return nil, utils.NewStateConflictError("deal is not completed with payment pending")
	}

	s.notify(models.Notification{
		RecipientID:     updated.ContractorID,
		Title:           "Payment confirmed",
		Body:            "The worker confirmed receiving payment for this deal.",
		EventType:       models.EventPaymentMarked,
		RelatedEntityID: updated.ID,
		TargetView:      "deal",
	})
	return updated, nil
}

// ListForActor returns the actor's deals, newest first.
func (s *DefaultDealService) ListForActor(actorID, role string) ([]models.Deal, error) {
	var (
		deals []models.Deal
		err   error
	)
	switch role {
	case models.RoleWorker:
		deals, err = s.Deals.ListByWorker(actorID)
	case models.RoleContractor:
		deals, err = s.Deals.ListByContractor(actorID)
	default:
		return nil, utils.NewValidationError("unknown role")
	}
	if err != nil {
		return nil, utils.NewUpstreamError("failed to list deals", err)
	}
	return deals, nil
}

// transition runs the shared guard sequence: deal found, actor owns the
// authorized side, origin status matches — then the CAS write.
func (s *DefaultDealService) transition(event, actorID, dealID string, extra bson.M) (*models.Deal, error) {
	t, ok := TransitionFor(event)
	if !ok {
		return nil, utils.NewValidationError(fmt.Sprintf("unknown event %q", event))
	}

	d, err := s.Deals.GetByID(dealID)
	if err != nil {
		return nil, utils.NewUpstreamError("failed to load deal", err)
	}
	if d == nil {
		return nil, utils.NewNotFoundError("deal not found")
	}

	var owner string
	switch t.Actor {
	case models.RoleContractor:
		owner = d.ContractorID
	case models.RoleWorker:
		owner = d.WorkerID
	}
	if owner != actorID {
		return nil, utils.NewAuthorizationError(fmt.Sprintf("actor is not the deal's %s", t.Actor))
	}

	if !t.AllowsOrigin(d.Status) {
		return nil, utils.NewStateConflictError(
			fmt.Sprintf("cannot %s a deal in status %q", event, d.Status))
	}

	updated, err := s.Deals.UpdateStatus(dealID, t.From, t.To, extra)
	if err != nil {
		return nil, utils.NewUpstreamError("failed to commit transition", err)
	}
	if updated == nil {
		// A concurrent transition won the race after our pre-check.
		return nil, utils.NewStateConflictError(
			fmt.Sprintf("deal moved out of %v before %s committed", t.From, event))
	}
	return updated, nil
}

// closeJobIfDone closes the job once every non-rejected deal on it is
// completed. Failures are logged; the approved transition stands.
func (s *DefaultDealService) closeJobIfDone(jobID string) {
	logger := utils.GetLogger()

	deals, err := s.Deals.ListByJob(jobID)
	if err != nil {
		logger.Error("failed to list deals for job close check", zap.String("jobId", jobID), zap.Error(err))
		return
	}
	for _, d := range deals {
		if d.Status != models.DealRejected && d.Status != models.DealCompleted {
			return
		}
	}

	closed, err := s.Jobs.Close(jobID)
	if err != nil {
		logger.Error("failed to close job", zap.String("jobId", jobID), zap.Error(err))
		return
	}
	if closed {
		logger.Info("job closed, all deals completed", zap.String("jobId", jobID))
	}
}

// recomputeRank enqueues a rank rebuild; the task queue retries on
// failure, and errors never reach the transition caller.
func (s *DefaultDealService) recomputeRank(workerID string) {
	logger := utils.GetLogger()
	task, err := cron.NewRankingRecomputeTask(workerID)
	if err != nil {
		logger.Error("failed to build ranking task", zap.String("workerId", workerID), zap.Error(err))
		return
	}
	if _, err := s.Tasks.Enqueue(task); err != nil {
		logger.Error("failed to enqueue ranking task", zap.String("workerId", workerID), zap.Error(err))
	}
}

// notify enqueues a best-effort push. Delivery failures are the
// worker's problem to retry, never the caller's.
func (s *DefaultDealService) notify(n models.Notification) {
	logger := utils.GetLogger()
	task, err := cron.NewNotifyPushTask(n)
	if err != nil {
		logger.Error("failed to build notification task", zap.String("recipientId", n.RecipientID), zap.Error(err))
		return
	}
	if _, err := s.Tasks.Enqueue(task); err != nil {
		logger.Error("failed to enqueue notification", zap.String("recipientId", n.RecipientID), zap.Error(err))
	}
}
