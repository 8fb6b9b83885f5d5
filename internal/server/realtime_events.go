package server

import (
	"context"
	"encoding/json"
	"log/slog"

	"gastronet/internal/models"
)

// Event type constants prevent typos in event names.
const (
	EventFollowed              = "followed"
	EventUnfollowed            = "unfollowed"
	EventFollowRequestReceived = "follow_request_received"
	EventFollowRequestAccepted = "follow_request_accepted"
	EventMessageReceived       = "message_received"
	EventPostLiked             = "post_liked"
	EventCommentCreated        = "comment_created"
)

func (s *Server) publishUserEvent(userID uint, eventType string, payload map[string]interface{}) {
	event := map[string]interface{}{
		"type":    eventType,
		"payload": payload,
	}
	eventJSON, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal event", "type", eventType, "error", err)
		return
	}
	message := string(eventJSON)
	if s.hub != nil {
		s.hub.Broadcast(userID, message)
	}
	if s.notifier != nil {
		if err := s.notifier.PublishUserRaw(context.Background(), userID, message); err != nil {
			slog.Error("failed to publish event", "type", eventType, "user_id", userID, "error", err)
		}
	}
}

// notify persists a notification record and fans it out; failures are
// logged, never surfaced to the request.
func (s *Server) notify(ctx context.Context, userID, fromUserID uint, typ models.NotificationType, entityID uint) {
	if s.notifService == nil {
		return
	}
	if err := s.notifService.Notify(ctx, userID, fromUserID, typ, entityID); err != nil {
		slog.Warn("failed to record notification", "type", typ, "user_id", userID, "error", err)
	}
}
