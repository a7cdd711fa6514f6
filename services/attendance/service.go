package attendance

import (
	"time"

	attendanceRepo "workhive/database/repository/attendance"
	dealRepo "workhive/database/repository/deal"
	"workhive/models"
	"workhive/utils"

	"github.com/google/uuid"
)

// AttendanceService records worker check-ins and contractor approvals.
// Records are read-only ranking input once written.
type AttendanceService interface {
	// CheckIn records the worker's on-site presence for today on a deal
	// they actively work.
	CheckIn(workerID, dealID string, location models.GeoPoint) (*models.AttendanceRecord, error)
	// Decide sets the approval status on a pending record; only the
	// deal's contractor may call.
	Decide(contractorID, recordID string, approve bool) error
	// ListForDeal returns a deal's records for either participant.
	ListForDeal(actorID, dealID string) ([]models.AttendanceRecord, error)
}

// DefaultAttendanceService is the production implementation.
type DefaultAttendanceService struct {
	Records attendanceRepo.AttendanceRepository
	Deals   dealRepo.DealRepository
}

// CheckIn records the worker's on-site presence for today.
func (s *DefaultAttendanceService) CheckIn(workerID, dealID string, location models.GeoPoint) (*models.AttendanceRecord, error) {
	if !location.IsSet() {
		return nil, utils.NewValidationError("check-in requires a location with two finite coordinates")
	}

	d, err := s.Deals.GetByID(dealID)
	if err != nil {
		return nil, utils.NewUpstreamError("failed to load deal", err)
	}
	if d == nil {
		return nil, utils.NewNotFoundError("deal not found")
	}
	if d.WorkerID != workerID {
		return nil, utils.NewAuthorizationError("only the deal's worker may check in")
	}
	if d.Status != models.DealActive && d.Status != models.DealCompletionRequested {
		return nil, utils.NewStateConflictError("check-in requires an active deal")
	}

	now := time.Now()
	record := &models.AttendanceRecord{
		ID:          uuid.New().String(),
		DealID:      dealID,
		WorkerID:    workerID,
		Date:        now.Format("2006-01-02"),
		CheckedInAt: now,
		LocationGeo: location,
		Status:      models.AttendancePending,
	}
	if err := s.Records.Create(record); err != nil {
		if err == attendanceRepo.ErrDuplicateCheckIn {
			return nil, utils.NewStateConflictError("already checked in for this deal today")
		}
		return nil, utils.NewUpstreamError("failed to record check-in", err)
	}
	return record, nil
}

// Decide sets the approval status on a pending record.
func (s *DefaultAttendanceService) Decide(contractorID, recordID string, approve bool) error {
	record, err := s.Records.GetByID(recordID)
	if err != nil {
		return utils.NewUpstreamError("failed to load attendance record", err)
	}
	if record == nil {
		return utils.NewNotFoundError("attendance record not found")
	}

	d, err := s.Deals.GetByID(record.DealID)
	if err != nil {
		return utils.NewUpstreamError("failed to load deal", err)
	}
	if d == nil {
		return utils.NewNotFoundError("deal not found")
	}
	if d.ContractorID != contractorID {
		return utils.NewAuthorizationError("only the deal's contractor may approve attendance")
	}

	status := models.AttendanceDeclined
	if approve {
		status = models.AttendanceApproved
	}
	updated, err := s.Records.SetStatus(recordID, status)
	if err != nil {
		return utils.NewUpstreamError("failed to set attendance status", err)
	}
	if !updated {
		return utils.NewStateConflictError("attendance record already decided")
	}
	return nil
}

// ListForDeal returns a deal's records for either participant.
func (s *DefaultAttendanceService) ListForDeal(actorID, dealID string) ([]models.AttendanceRecord, error) {
	d, err := s.Deals.GetByID(dealID)
	if err != nil {
		return nil, utils.NewUpstreamError("failed to load deal", err)
	}
	if d == nil {
		return nil, utils.NewNotFoundError("deal not found")
	}
	if d.WorkerID != actorID && d.ContractorID != actorID {
		return nil, utils.NewAuthorizationError("actor is not a participant of this deal")
	}

	records, err := s.Records.ListByDeal(dealID)
	if err != nil {
		return nil, utils.NewUpstreamError("failed to list attendance", err)
	}
	return records, nil
}
