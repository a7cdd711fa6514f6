package deal

import "workhive/models"

// Lifecycle events.
const (
	EventApply             = "apply"
	EventAccept            = "accept"
	EventReject            = "reject"
	EventRequestCompletion = "request_completion"
	EventApproveCompletion = "approve_completion"
)

// Transition is one edge of the deal lifecycle: who may move a deal
// from which origins to which destination. The table is the single
// source of truth; no handler carries its own status checks.
type Transition struct {
	Event string
	From  []string
	To    string
	Actor string // role whose ownership of the deal is verified
}

var transitions = []Transition{
	{EventAccept, []string{models.DealApplied}, models.DealActive, models.RoleContractor},
	{EventReject, []string{models.DealApplied, models.DealAssigned}, models.DealRejected, models.RoleContractor},
	{EventRequestCompletion, []string{models.DealActive}, models.DealCompletionRequested, models.RoleWorker},
	{EventApproveCompletion, []string{models.DealCompletionRequested}, models.DealCompleted, models.RoleContractor},
}

// TransitionFor returns the table entry for an event.
func TransitionFor(event string) (Transition, bool) {
	for _, t := range transitions {
		if t.Event == event {
			return t, true
		}
	}
	return Transition{}, false
}

// AllowsOrigin reports whether the transition may fire from the status.
func (t Transition) AllowsOrigin(status string) bool {
	for _, s := range t.From {
		if s == status {
			return true
		}
	}
	return false
}

// ReachableFrom lists the destinations reachable from a status.
func ReachableFrom(status string) []string {
	var out []string
	for _, t := range transitions {
		if t.AllowsOrigin(status) {
			out = append(out, t.To)
		}
	}
	return out
}
