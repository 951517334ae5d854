package notification

import (
	"context"
	"fmt"

	"freightbook/models"
	"freightbook/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCMSender pushes status messages over Firebase Cloud Messaging. Users are
// subscribed to their own topic, so no device token bookkeeping is needed
// server-side.
type FCMSender struct {
	Logger *zap.Logger
}

func NewFCMSender(logger *zap.Logger) *FCMSender {
	return &FCMSender{Logger: logger}
}

func (s *FCMSender) Send(ctx context.Context, msg models.StatusMessage) error {
	client := utils.FCMClient
	if client == nil {
		return fmt.Errorf("fcm client not initialized")
	}

	out := &messaging.Message{
		Topic: "user-" + msg.UserID,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: map[string]string{
			"requestId": msg.RequestID,
			"state":     string(msg.State),
		},
	}

	id, err := client.Send(ctx, out)
	if err != nil {
		return fmt.Errorf("fcm send failed for user %s: %w", msg.UserID, err)
	}
	s.Logger.Debug("fcm push delivered", zap.String("messageId", id), zap.String("userId", msg.UserID))
	return nil
}
