package service

import (
	"context"
	"log/slog"

	"gastronet/internal/models"
	"gastronet/internal/repository"
)

// NotificationPublisher pushes a notification to a user's live event
// stream. Publish failures must not fail the triggering operation.
type NotificationPublisher interface {
	PublishUser(ctx context.Context, userID uint, n *models.Notification) error
}

// NotificationService records notifications and fans them out to
// connected clients.
type NotificationService struct {
	notifRepo repository.NotificationRepository
	publisher NotificationPublisher
}

// NewNotificationService returns a new NotificationService. The
// publisher may be nil, in which case notifications are persisted only.
func NewNotificationService(notifRepo repository.NotificationRepository, publisher NotificationPublisher) *NotificationService {
	return &NotificationService{notifRepo: notifRepo, publisher: publisher}
}

// Notify persists a notification and pushes it to the recipient's live
// stream. Self-notifications are silently dropped.
func (s *NotificationService) Notify(ctx context.Context, userID, fromUserID uint, typ models.NotificationType, entityID uint) error {
	if userID == fromUserID {
		return nil
	}
	n := &models.Notification{
		UserID:     userID,
		FromUserID: fromUserID,
		Type:       typ,
		EntityID:   entityID,
	}
	if err := s.notifRepo.Create(ctx, n); err != nil {
		return err
	}
	if s.publisher != nil {
		if err := s.publisher.PublishUser(ctx, userID, n); err != nil {
			slog.WarnContext(ctx, "notification publish failed",
				"user_id", userID, "type", typ, "error", err)
		}
	}
	return nil
}

func (s *NotificationService) ListNotifications(ctx context.Context, userID uint, limit, offset int) ([]*models.Notification, error) {
	return s.notifRepo.ListByUser(ctx, userID, limit, offset)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notifRepo.MarkAllRead(ctx, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.notifRepo.UnreadCount(ctx, userID)
}
