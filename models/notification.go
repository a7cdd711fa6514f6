package models

// Notification event types.
const (
	EventCompletionRequested = "completion_requested"
	EventDealCompleted       = "deal_completed"
	EventDealRejected        = "deal_rejected"
	EventDealAccepted        = "deal_accepted"
	EventPaymentMarked       = "payment_marked"
)

// Notification is a best-effort push to one recipient. Delivery failures
// are logged and never propagated to the transition that produced it.
type Notification struct {
	RecipientID     string `json:"recipientId"`
	Title           string `json:"title"`
	Body            string `json:"body"`
	EventType       string `json:"eventType"`
	RelatedEntityID string `json:"relatedEntityId"`
	TargetView      string `json:"targetView"`
}
