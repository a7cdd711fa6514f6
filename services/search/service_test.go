package search

import (
	"math"
	"reflect"
	"testing"

	jobRepo "workhive/database/repository/job"
	userRepo "workhive/database/repository/user"
	"workhive/models"
	"workhive/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// capturingUserRepo records the criteria passed to SearchWorkers and
// serves canned results.
type capturingUserRepo struct {
	users map[string]*models.User

	workerCriteria *userRepo.WorkerSearchCriteria
	searchResults  []models.WorkerProfile

	topRatedLimit   int
	topRatedResults []models.WorkerProfile
}

func (r *capturingUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *capturingUserRepo) GetByEmail(email string) (*models.User, error) { return nil, nil }
func (r *capturingUserRepo) Create(user *models.User) error                { return nil }
func (r *capturingUserRepo) Update(user *models.User) error                { return nil }
func (r *capturingUserRepo) UpdateTrustRank(id string, s int, l string) error {
	return nil
}
func (r *capturingUserRepo) UpdateAverageRating(id string, avg float64) error { return nil }

func (r *capturingUserRepo) SearchWorkers(c userRepo.WorkerSearchCriteria) ([]models.WorkerProfile, error) {
	r.workerCriteria = &c
	return r.searchResults, nil
}

func (r *capturingUserRepo) TopRatedWorkers(limit int) ([]models.WorkerProfile, error) {
	r.topRatedLimit = limit
	return r.topRatedResults, nil
}

func (r *capturingUserRepo) AllWorkerIDs() ([]string, error) { return nil, nil }

type capturingJobRepo struct {
	jobCriteria *jobRepo.JobSearchCriteria
	results     []models.Job
}

func (r *capturingJobRepo) Create(job *models.Job) error          { return nil }
func (r *capturingJobRepo) GetByID(id string) (*models.Job, error) { return nil, nil }
func (r *capturingJobRepo) ListByContractor(id string) ([]models.Job, error) {
	return nil, nil
}
func (r *capturingJobRepo) Close(id string) (bool, error) { return false, nil }

func (r *capturingJobRepo) SearchJobs(c jobRepo.JobSearchCriteria) ([]models.Job, error) {
	r.jobCriteria = &c
	return r.results, nil
}

type stubDealRepo struct {
	liveJobIDs []string
}

func (r *stubDealRepo) Create(deal *models.Deal) error             { return nil }
func (r *stubDealRepo) GetByID(id string) (*models.Deal, error)    { return nil, nil }
func (r *stubDealRepo) MarkPaid(id string) (*models.Deal, error)   { return nil, nil }
func (r *stubDealRepo) FindLive(j, w string) (*models.Deal, error) { return nil, nil }
func (r *stubDealRepo) UpdateStatus(id string, from []string, to string, extra bson.M) (*models.Deal, error) {
	return nil, nil
}
func (r *stubDealRepo) ListByWorker(id string) ([]models.Deal, error)     { return nil, nil }
func (r *stubDealRepo) ListByJob(id string) ([]models.Deal, error)        { return nil, nil }
func (r *stubDealRepo) ListByContractor(id string) ([]models.Deal, error) { return nil, nil }
func (r *stubDealRepo) JobIDsWithLiveDeal(workerID string) ([]string, error) {
	return r.liveJobIDs, nil
}

func newSearchService(users *capturingUserRepo, jobs *capturingJobRepo, deals *stubDealRepo) *DefaultSearchService {
	if deals == nil {
		deals = &stubDealRepo{}
	}
	return &DefaultSearchService{Users: users, Jobs: jobs, Deals: deals}
}

func worker(id string, skills ...string) *models.User {
	return &models.User{ID: id, Role: models.RoleWorker, Skills: skills}
}

func contractor(id string) *models.User {
	return &models.User{ID: id, Role: models.RoleContractor}
}

func TestSearchCallerGuards(t *testing.T) {
	users := &capturingUserRepo{users: map[string]*models.User{
		"w1": worker("w1", "mason"),
	}}
	svc := newSearchService(users, &capturingJobRepo{}, nil)

	if _, err := svc.Search("ghost", models.RoleWorker, Request{}); !utils.HasCode(err, utils.CodeNotFound) {
		t.Errorf("unknown caller error = %v, want code %s", err, utils.CodeNotFound)
	}
	if _, err := svc.Search("w1", models.RoleContractor, Request{}); !utils.HasCode(err, utils.CodeAuthorization) {
		t.Errorf("role mismatch error = %v, want code %s", err, utils.CodeAuthorization)
	}

	bad := Request{Origin: models.GeoPoint{Type: "Point", Coordinates: []float64{36.8}}}
	if _, err := svc.Search("w1", models.RoleWorker, bad); !utils.HasCode(err, utils.CodeValidation) {
		t.Errorf("partial origin error = %v, want code %s", err, utils.CodeValidation)
	}
}

func TestWorkerSearchDefaultsToOwnSkills(t *testing.T) {
	users := &capturingUserRepo{users: map[string]*models.User{
		"w1": worker("w1", "mason", "tiler"),
	}}
	jobs := &capturingJobRepo{}
	svc := newSearchService(users, jobs, nil)

	res, err := svc.Search("w1", models.RoleWorker, Request{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Kind != KindJobs {
		t.Errorf("kind = %q, want %q", res.Kind, KindJobs)
	}
	if got := jobs.jobCriteria.SkillRegexes; !reflect.DeepEqual(got, []string{"mason", "tiler"}) {
		t.Errorf("skill regexes = %v, want worker's own tags", got)
	}
}

func TestWorkerSearchUntaggedFallsBackToHelper(t *testing.T) {
	users := &capturingUserRepo{users: map[string]*models.User{"w1": worker("w1")}}
	jobs := &capturingJobRepo{}
	svc := newSearchService(users, jobs, nil)

	if _, err := svc.Search("w1", models.RoleWorker, Request{}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := jobs.jobCriteria.SkillRegexes; !reflect.DeepEqual(got, []string{FallbackSkill}) {
		t.Errorf("skill regexes = %v, want [%s]", got, FallbackSkill)
	}
}

func TestWorkerSearchExcludesLiveDealJobs(t *testing.T) {
	users := &capturingUserRepo{users: map[string]*models.User{"w1": worker("w1", "mason")}}
	jobs := &capturingJobRepo{}
	deals := &stubDealRepo{liveJobIDs: []string{"job-7", "job-9"}}
	svc := newSearchService(users, jobs, deals)

	if _, err := svc.Search("w1", models.RoleWorker, Request{}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got := jobs.jobCriteria.ExcludeJobIDs; !reflect.DeepEqual(got, []string{"job-7", "job-9"}) {
		t.Errorf("excluded job ids = %v, want [job-7 job-9]", got)
	}
}

func TestQueryTextIsEscapedLiterally(t *testing.T) {
	users := &capturingUserRepo{users: map[string]*models.User{"w1": worker("w1", "mason")}}
	jobs := &capturingJobRepo{}
	svc := newSearchService(users, jobs, nil)

	req := Request{Query: " paint (interior).* ", Skills: []string{"c++ welder"}}
	if _, err := svc.Search("w1", models.RoleWorker, req); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if got, want := jobs.jobCriteria.QueryRegex, `paint \(interior\)\.\*`; got != want {
		t.Errorf("query regex = %q, want %q", got, want)
	}
	if got, want := jobs.jobCriteria.SkillRegexes, []string{`c\+\+ welder`}; !reflect.DeepEqual(got, want) {
		t.Errorf("skill regexes = %v, want %v", got, want)
	}
}

func TestWorkerSearchRadiusRules(t *testing.T) {
	origin := models.NewGeoPoint(36.8219, -1.2921)

	tests := []struct {
		name    string
		req     Request
		wantCap float64
	}{
		{"plain browse with origin is uncapped", Request{Origin: origin}, 0},
		{"query makes it specific, default radius applies",
			Request{Origin: origin, Query: "painting"}, DefaultRadiusKm},
		{"explicit skills make it specific",
			Request{Origin: origin, Skills: []string{"mason"}}, DefaultRadiusKm},
		{"explicit narrow radius applies",
			Request{Origin: origin, RadiusKm: 10}, 10},
		{"specific request with own radius keeps it",
			Request{Origin: origin, Query: "painting", RadiusKm: 25}, 25},
		{"specific request without origin cannot cap",
			Request{Query: "painting"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &capturingUserRepo{users: map[string]*models.User{"w1": worker("w1", "mason")}}
			jobs := &capturingJobRepo{}
			svc := newSearchService(users, jobs, nil)

			if _, err := svc.Search("w1", models.RoleWorker, tt.req); err != nil {
				t.Fatalf("Search: %v", err)
			}
			if got := jobs.jobCriteria.MaxDistanceKm; got != tt.wantCap {
				t.Errorf("MaxDistanceKm = %v, want %v", got, tt.wantCap)
			}
			if jobs.jobCriteria.Limit != MaxResults {
				t.Errorf("limit = %d, want %d", jobs.jobCriteria.Limit, MaxResults)
			}
		})
	}
}

func TestContractorSearchRadiusRules(t *testing.T) {
	origin := models.NewGeoPoint(36.8219, -1.2921)

	tests := []struct {
		name    string
		req     Request
		wantCap float64
	}{
		{"default radius with query ranks uncapped",
			Request{Origin: origin, Query: "electrician", RadiusKm: DefaultRadiusKm}, 0},
		{"no radius ranks uncapped", Request{Origin: origin, Query: "electrician"}, 0},
		{"explicit narrow radius caps", Request{Origin: origin, RadiusKm: 15}, 15},
		{"radius without origin cannot cap", Request{RadiusKm: 15}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &capturingUserRepo{
				users:         map[string]*models.User{"c1": contractor("c1")},
				searchResults: []models.WorkerProfile{{ID: "w1"}},
			}
			svc := newSearchService(users, &capturingJobRepo{}, nil)

			res, err := svc.Search("c1", models.RoleContractor, tt.req)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if res.Kind != KindWorkers {
				t.Errorf("kind = %q, want %q", res.Kind, KindWorkers)
			}
			if got := users.workerCriteria.MaxDistanceKm; got != tt.wantCap {
				t.Errorf("MaxDistanceKm = %v, want %v", got, tt.wantCap)
			}
		})
	}
}

func TestContractorEmptyUnfilteredFallsBackToTopRated(t *testing.T) {
	users := &capturingUserRepo{
		users:           map[string]*models.User{"c1": contractor("c1")},
		topRatedResults: []models.WorkerProfile{{ID: "w1"}, {ID: "w2"}},
	}
	svc := newSearchService(users, &capturingJobRepo{}, nil)

	res, err := svc.Search("c1", models.RoleContractor, Request{})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if users.topRatedLimit != TopWorkersFallbackCount {
		t.Errorf("fallback limit = %d, want %d", users.topRatedLimit, TopWorkersFallbackCount)
	}
	if res.Count() != 2 {
		t.Errorf("result count = %d, want 2", res.Count())
	}
}

func TestContractorEmptyFilteredStaysEmpty(t *testing.T) {
	users := &capturingUserRepo{users: map[string]*models.User{"c1": contractor("c1")}}
	svc := newSearchService(users, &capturingJobRepo{}, nil)

	res, err := svc.Search("c1", models.RoleContractor, Request{Query: "unicorn wrangler"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Count() != 0 {
		t.Errorf("filtered miss returned %d results, want 0", res.Count())
	}
	if users.topRatedLimit != 0 {
		t.Error("top-rated fallback ran for a filtered search")
	}
}

func TestEscapeHelpers(t *testing.T) {
	if got := escapeLiteral("  a.b*c  "); got != `a\.b\*c` {
		t.Errorf("escapeLiteral = %q", got)
	}
	got := escapeAll([]string{"mason", "  ", "", "c++"})
	if want := []string{"mason", `c\+\+`}; !reflect.DeepEqual(got, want) {
		t.Errorf("escapeAll = %v, want %v", got, want)
	}
}

func TestRadiusExplicit(t *testing.T) {
	tests := []struct {
		radius float64
		want   bool
	}{
		{0, false},
		{DefaultRadiusKm, false},
		{10, true},
		{250, true},
		{math.SmallestNonzeroFloat64, true},
	}
	for _, tt := range tests {
		if got := radiusExplicit(tt.radius); got != tt.want {
			t.Errorf("radiusExplicit(%v) = %v, want %v", tt.radius, got, tt.want)
		}
	}
}
