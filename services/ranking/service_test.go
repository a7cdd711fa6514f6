package ranking

import (
	"testing"
	"time"

	userRepo "workhive/database/repository/user"
	"workhive/models"
	"workhive/utils"

	"go.mongodb.org/mongo-driver/bson"
)

type stubDealRepo struct {
	deals []models.Deal
}

func (r *stubDealRepo) Create(deal *models.Deal) error             { return nil }
func (r *stubDealRepo) GetByID(id string) (*models.Deal, error)    { return nil, nil }
func (r *stubDealRepo) MarkPaid(id string) (*models.Deal, error)   { return nil, nil }
func (r *stubDealRepo) FindLive(j, w string) (*models.Deal, error) { return nil, nil }
func (r *stubDealRepo) UpdateStatus(id string, from []string, to string, extra bson.M) (*models.Deal, error) {
	return nil, nil
}
func (r *stubDealRepo) ListByWorker(id string) ([]models.Deal, error)        { return r.deals, nil }
func (r *stubDealRepo) ListByJob(id string) ([]models.Deal, error)           { return nil, nil }
func (r *stubDealRepo) ListByContractor(id string) ([]models.Deal, error)    { return nil, nil }
func (r *stubDealRepo) JobIDsWithLiveDeal(workerID string) ([]string, error) { return nil, nil }

type stubAttendanceRepo struct {
	approved int64
}

func (r *stubAttendanceRepo) Create(record *models.AttendanceRecord) error { return nil }
func (r *stubAttendanceRepo) GetByID(id string) (*models.AttendanceRecord, error) {
	return nil, nil
}
func (r *stubAttendanceRepo) SetStatus(id, status string) (bool, error) { return false, nil }
func (r *stubAttendanceRepo) ListByDeal(dealID string) ([]models.AttendanceRecord, error) {
	return nil, nil
}
func (r *stubAttendanceRepo) CountApprovedByWorker(workerID string) (int64, error) {
	return r.approved, nil
}

type stubReviewRepo struct {
	avg   float64
	count int64
}

func (r *stubReviewRepo) Create(review *models.Review) error              { return nil }
func (r *stubReviewRepo) ListForUser(userID string) ([]models.Review, error) { return nil, nil }
func (r *stubReviewRepo) AverageRatingFor(userID string) (float64, int64, error) {
	return r.avg, r.count, nil
}

type rankWritingUserRepo struct {
	users map[string]*models.User

	wroteWorkerID string
	wroteScore    int
	wroteLabel    string
}

func (r *rankWritingUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}
func (r *rankWritingUserRepo) GetByEmail(email string) (*models.User, error) { return nil, nil }
func (r *rankWritingUserRepo) Create(user *models.User) error                { return nil }
func (r *rankWritingUserRepo) Update(user *models.User) error                { return nil }
func (r *rankWritingUserRepo) UpdateTrustRank(workerID string, score int, label string) error {
	r.wroteWorkerID = workerID
	r.wroteScore = score
	r.wroteLabel = label
	return nil
}
func (r *rankWritingUserRepo) UpdateAverageRating(id string, avg float64) error { return nil }
func (r *rankWritingUserRepo) SearchWorkers(c userRepo.WorkerSearchCriteria) ([]models.WorkerProfile, error) {
	return nil, nil
}
func (r *rankWritingUserRepo) TopRatedWorkers(limit int) ([]models.WorkerProfile, error) {
	return nil, nil
}
func (r *rankWritingUserRepo) AllWorkerIDs() ([]string, error) { return nil, nil }

func TestRecomputeForWorker(t *testing.T) {
	now := time.Now()
	old := now.AddDate(0, 0, -60)

	deals := []models.Deal{
		{ContractorID: "c1", Status: models.DealCompleted, CreatedAt: old},
		{ContractorID: "c1", Status: models.DealCompleted, CreatedAt: old},
		{ContractorID: "c2", Status: models.DealCompleted, CreatedAt: now},
		{ContractorID: "c3", Status: models.DealRejected, CreatedAt: now},
		{ContractorID: "c2", Status: models.DealActive, CreatedAt: now},
	}

	users := &rankWritingUserRepo{users: map[string]*models.User{
		"w1": {ID: "w1", Role: models.RoleWorker},
	}}
	svc := &DefaultRankingService{
		Deals:      &stubDealRepo{deals: deals},
		Attendance: &stubAttendanceRepo{approved: 3},
		Reviews:    &stubReviewRepo{avg: 4.0, count: 2},
		Users:      users,
	}

	if err := svc.RecomputeForWorker("w1"); err != nil {
		t.Fatalf("RecomputeForWorker: %v", err)
	}

	// 5 deals: 3 completed, 1 rejected, 3 distinct contractors, 3 recent.
	// 18 (completion) + 20 (attendance) + 16 (rating) + 6 (repeat) +
	// 15 (activity) - 5 (rejection) = 70
	if users.wroteWorkerID != "w1" {
		t.Fatalf("wrote rank for %q, want w1", users.wroteWorkerID)
	}
	if users.wroteScore != 70 {
		t.Errorf("score = %d, want 70", users.wroteScore)
	}
	if users.wroteLabel != models.RankTrusted {
		t.Errorf("label = %q, want %q", users.wroteLabel, models.RankTrusted)
	}
}

func TestRecomputeNewWorkerGetsBaseline(t *testing.T) {
	users := &rankWritingUserRepo{users: map[string]*models.User{
		"w1": {ID: "w1", Role: models.RoleWorker},
	}}
	svc := &DefaultRankingService{
		Deals:      &stubDealRepo{},
		Attendance: &stubAttendanceRepo{},
		Reviews:    &stubReviewRepo{},
		Users:      users,
	}

	if err := svc.RecomputeForWorker("w1"); err != nil {
		t.Fatalf("RecomputeForWorker: %v", err)
	}
	if users.wroteScore != 50 || users.wroteLabel != models.RankAverage {
		t.Errorf("baseline = (%d, %q), want (50, %q)",
			users.wroteScore, users.wroteLabel, models.RankAverage)
	}
}

func TestRecomputeUnknownWorker(t *testing.T) {
	svc := &DefaultRankingService{
		Deals:      &stubDealRepo{},
		Attendance: &stubAttendanceRepo{},
		Reviews:    &stubReviewRepo{},
		Users:      &rankWritingUserRepo{users: map[string]*models.User{}},
	}

	err := svc.RecomputeForWorker("ghost")
	if !utils.HasCode(err, utils.CodeNotFound) {
		t.Errorf("error = %v, want code %s", err, utils.CodeNotFound)
	}
}
