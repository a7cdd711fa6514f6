package review

import (
	"sync"
	"testing"

	reviewRepo "workhive/database/repository/review"
	userRepo "workhive/database/repository/user"
	"workhive/models"
	"workhive/utils"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson"
)

type fakeReviewRepo struct {
	reviews []models.Review
}

func (r *fakeReviewRepo) Create(review *models.Review) error {
	for _, existing := range r.reviews {
		if existing.DealID == review.DealID && existing.ReviewerID == review.ReviewerID {
			return reviewRepo.ErrDuplicateReview
		}
	}
	r.reviews = append(r.reviews, *review)
	return nil
}

func (r *fakeReviewRepo) ListForUser(userID string) ([]models.Review, error) {
	var out []models.Review
	for _, rev := range r.reviews {
		if rev.RevieweeID == userID {
			out = append(out, rev)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) AverageRatingFor(userID string) (float64, int64, error) {
	var sum, count int64
	for _, rev := range r.reviews {
		if rev.RevieweeID == userID {
			sum += int64(rev.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

type stubDealRepo struct {
	deals map[string]*models.Deal
}

func (r *stubDealRepo) Create(deal *models.Deal) error { return nil }
func (r *stubDealRepo) GetByID(id string) (*models.Deal, error) {
	d, ok := r.deals[id]
	if !ok {
		return nil, nil
	}
	return d, nil
}
func (r *stubDealRepo) MarkPaid(id string) (*models.Deal, error)   { return nil, nil }
func (r *stubDealRepo) FindLive(j, w string) (*models.Deal, error) { return nil, nil }
func (r *stubDealRepo) UpdateStatus(id string, from []string, to string, extra bson.M) (*models.Deal, error) {
	return nil, nil
}
func (r *stubDealRepo) ListByWorker(id string) ([]models.Deal, error)        { return nil, nil }
func (r *stubDealRepo) ListByJob(id string) ([]models.Deal, error)           { return nil, nil }
func (r *stubDealRepo) ListByContractor(id string) ([]models.Deal, error)    { return nil, nil }
func (r *stubDealRepo) JobIDsWithLiveDeal(workerID string) ([]string, error) { return nil, nil }

type ratingUserRepo struct {
	users map[string]*models.User

	wroteUserID string
	wroteAvg    float64
}

func (r *ratingUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}
func (r *ratingUserRepo) GetByEmail(email string) (*models.User, error)    { return nil, nil }
func (r *ratingUserRepo) Create(user *models.User) error                   { return nil }
func (r *ratingUserRepo) Update(user *models.User) error                   { return nil }
func (r *ratingUserRepo) UpdateTrustRank(id string, s int, l string) error { return nil }
func (r *ratingUserRepo) UpdateAverageRating(userID string, avg float64) error {
	r.wroteUserID = userID
	r.wroteAvg = avg
	return nil
}
func (r *ratingUserRepo) SearchWorkers(c userRepo.WorkerSearchCriteria) ([]models.WorkerProfile, error) {
	return nil, nil
}
func (r *ratingUserRepo) TopRatedWorkers(limit int) ([]models.WorkerProfile, error) {
	return nil, nil
}
func (r *ratingUserRepo) AllWorkerIDs() ([]string, error) { return nil, nil }

type fakeEnqueuer struct {
	mu    sync.Mutex
	types []string
}

func (e *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.types = append(e.types, task.Type())
	return &asynq.TaskInfo{}, nil
}

func completedDeal() *stubDealRepo {
	return &stubDealRepo{deals: map[string]*models.Deal{
		"d1": {ID: "d1", JobID: "job-1", ContractorID: "contractor-1",
			WorkerID: "worker-1", Status: models.DealCompleted, Terminal: true},
	}}
}

func newReviewService(deals *stubDealRepo) (*DefaultReviewService, *ratingUserRepo, *fakeEnqueuer) {
	users := &ratingUserRepo{users: map[string]*models.User{
		"worker-1":     {ID: "worker-1", Role: models.RoleWorker},
		"contractor-1": {ID: "contractor-1", Role: models.RoleContractor},
	}}
	tasks := &fakeEnqueuer{}
	svc := &DefaultReviewService{
		Reviews: &fakeReviewRepo{},
		Deals:   deals,
		Users:   users,
		Tasks:   tasks,
	}
	return svc, users, tasks
}

func TestSubmitContractorReviewsWorker(t *testing.T) {
	svc, users, tasks := newReviewService(completedDeal())

	r, err := svc.Submit("contractor-1", "d1", 5, "showed up early every day")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if r.RevieweeID != "worker-1" {
		t.Errorf("revieweeId = %q, want worker-1", r.RevieweeID)
	}
	if users.wroteUserID != "worker-1" || users.wroteAvg != 5 {
		t.Errorf("average write = (%q, %v), want (worker-1, 5)", users.wroteUserID, users.wroteAvg)
	}
	// reviewing a worker triggers a rank rebuild
	if len(tasks.types) != 1 {
		t.Errorf("tasks enqueued = %d, want 1", len(tasks.types))
	}
}

func TestSubmitWorkerReviewsContractor(t *testing.T) {
	svc, users, tasks := newReviewService(completedDeal())

	r, err := svc.Submit("worker-1", "d1", 4, "")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if r.RevieweeID != "contractor-1" {
		t.Errorf("revieweeId = %q, want contractor-1", r.RevieweeID)
	}
	if users.wroteUserID != "contractor-1" {
		t.Errorf("average written for %q, want contractor-1", users.wroteUserID)
	}
	// contractors hold no trust rank
	if len(tasks.types) != 0 {
		t.Errorf("tasks enqueued = %d, want 0", len(tasks.types))
	}
}

func TestSubmitGuards(t *testing.T) {
	activeDeals := &stubDealRepo{deals: map[string]*models.Deal{
		"d1": {ID: "d1", ContractorID: "contractor-1", WorkerID: "worker-1",
			Status: models.DealActive},
	}}

	tests := []struct {
		name       string
		deals      *stubDealRepo
		reviewerID string
		dealID     string
		rating     int
		wantCode   string
	}{
		{"rating too low", completedDeal(), "worker-1", "d1", 0, utils.CodeValidation},
		{"rating too high", completedDeal(), "worker-1", "d1", 6, utils.CodeValidation},
		{"missing deal", completedDeal(), "worker-1", "nope", 4, utils.CodeNotFound},
		{"not a participant", completedDeal(), "stranger", "d1", 4, utils.CodeAuthorization},
		{"deal not completed", activeDeals, "worker-1", "d1", 4, utils.CodeStateConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newReviewService(tt.deals)
			_, err := svc.Submit(tt.reviewerID, tt.dealID, tt.rating, "")
			if !utils.HasCode(err, tt.wantCode) {
				t.Errorf("error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestSubmitTwiceConflicts(t *testing.T) {
	svc, _, _ := newReviewService(completedDeal())

	if _, err := svc.Submit("worker-1", "d1", 4, ""); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	_, err := svc.Submit("worker-1", "d1", 5, "changed my mind")
	if !utils.HasCode(err, utils.CodeStateConflict) {
		t.Errorf("error = %v, want code %s", err, utils.CodeStateConflict)
	}
}

func TestAverageAcrossDeals(t *testing.T) {
	deals := completedDeal()
	deals.deals["d2"] = &models.Deal{ID: "d2", JobID: "job-2",
		ContractorID: "contractor-1", WorkerID: "worker-1",
		Status: models.DealCompleted, Terminal: true}
	svc, users, _ := newReviewService(deals)

	if _, err := svc.Submit("contractor-1", "d1", 5, ""); err != nil {
		t.Fatalf("Submit d1: %v", err)
	}
	if _, err := svc.Submit("contractor-1", "d2", 4, ""); err != nil {
		t.Fatalf("Submit d2: %v", err)
	}
	if users.wroteAvg != 4.5 {
		t.Errorf("average = %v, want 4.5", users.wroteAvg)
	}
}
