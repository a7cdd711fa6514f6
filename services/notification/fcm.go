package notification

import (
	"context"
	"fmt"

	userRepo "workhive/database/repository/user"
	"workhive/models"
	"workhive/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCMNotificationService is the production implementation, delivering
// over Firebase Cloud Messaging.
type FCMNotificationService struct {
	Users userRepo.UserRepository
}

func NewFCMNotificationService(users userRepo.UserRepository) (*FCMNotificationService, error) {
	if users == nil {
		return nil, fmt.Errorf("notification service initialization error: user repository is nil")
	}
	return &FCMNotificationService{Users: users}, nil
}

// Dispatch looks up the recipient's FCM token and sends a push.
// A recipient with no token is skipped silently; there is no push
// target to fail against.
func (s *FCMNotificationService) Dispatch(ctx context.Context, n models.Notification) error {
	logger := utils.GetLogger()

	recipient, err := s.Users.GetByID(n.RecipientID)
	if err != nil {
		return fmt.Errorf("Dispatch: could not load recipient %s: %w", n.RecipientID, err)
	}
	if recipient == nil || recipient.FCMToken == "" {
		logger.Debug("notification skipped, no push target",
			zap.String("recipientId", n.RecipientID),
			zap.String("eventType", n.EventType))
		return nil
	}

	msg := &messaging.Message{
		Token: recipient.FCMToken,
		Notification: &messaging.Notification{
			Title: n.Title,
			Body:  n.Body,
		},
		Data: map[string]string{
			"eventType":       n.EventType,
			"relatedEntityId": n.RelatedEntityID,
			"targetView":      n.TargetView,
			"role":            recipient.Role,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	}

	if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
		return fmt.Errorf("Dispatch: failed to send FCM message to %s: %w", n.RecipientID, err)
	}
	return nil
}
