package ranking

import "math"

// Signal weights. The four percentage signals are weighted into final
// score points; the activity bonus is already expressed in points.
const (
	weightCompletion = 0.30
	weightAttendance = 0.20
	weightRating     = 0.20
	weightRepeatHire = 0.15

	activityPointsPerDeal = 10.0
	activityCap           = 15.0
	rejectionPenalty      = 5.0

	baselineScore = 50
	// A worker with no history is unproven, not proven-reliable: the
	// baseline label is fixed at "Average" even though a score of 50
	// earned from real history reads as "Reliable".
	baselineLabel = "Average"
)

// Label thresholds, evaluated high to low.
const (
	thresholdTop      = 85
	thresholdTrusted  = 70
	thresholdReliable = 50
	thresholdAverage  = 30
)

// History is a snapshot of a worker's full behavioral record, gathered
// by the service layer and consumed by Compute.
type History struct {
	TotalDeals          int
	CompletedDeals      int
	RejectedDeals       int
	DistinctContractors int
	RecentDeals         int // deals created in the trailing 30 days
	ApprovedAttendance  int64
	AverageRating       float64 // 0..5
}

// Compute converts a worker's history into a trust score and rank label.
// It is a pure function: same history in, same score out, no state.
func Compute(h History) (int, string) {
	if h.TotalDeals == 0 {
		return baselineScore, baselineLabel
	}

	total := float64(h.TotalDeals)

	completion := float64(h.CompletedDeals) / total * 100

	attendanceBase := math.Max(float64(h.CompletedDeals), 1)
	attendance := math.Min(float64(h.ApprovedAttendance)/attendanceBase*100, 100)

	rating := h.AverageRating / 5 * 100

	repeatHire := math.Min(float64(h.TotalDeals-h.DistinctContractors)/total*100, 100)

	activity := math.Min(float64(h.RecentDeals)*activityPointsPerDeal, activityCap)

	penalty := float64(h.RejectedDeals) * rejectionPenalty

	raw := completion*weightCompletion +
		attendance*weightAttendance +
		rating*weightRating +
		repeatHire*weightRepeatHire +
		activity - penalty

	score := int(math.Round(math.Min(math.Max(raw, 0), 100)))
	return score, labelFor(score)
}

// labelFor maps an earned score onto its rank label. The zero-deal
// baseline bypasses this table deliberately.
func labelFor(score int) string {
	switch {
	case score >= thresholdTop:
		return "Top"
	case score >= thresholdTrusted:
		return "Trusted"
	case score >= thresholdReliable:
		return "Reliable"
	case score >= thresholdAverage:
		return "Average"
	default:
		return "Risky"
	}
}
