package notification

import (
	"context"

	"workhive/models"
)

// NotificationService delivers best-effort pushes. Implementations must
// never let a delivery failure propagate into the write path that
// produced the notification.
type NotificationService interface {
	Dispatch(ctx context.Context, n models.Notification) error
}
