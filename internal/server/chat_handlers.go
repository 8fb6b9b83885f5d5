package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"gastronet/internal/models"
	"gastronet/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateConversation handles POST /api/conversations
//
// Opens (or returns) the direct-message thread with the target user. The
// chat service enforces the mutual-follow gate for new threads.
func (s *Server) CreateConversation(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		UserID uint `json:"user_id"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("user_id is required"))
	}

	conv, err := s.chatService.CreateOrGetConversation(ctx, userID, req.UserID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(conv)
}

// GetConversations handles GET /api/conversations
func (s *Server) GetConversations(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	conversations, err := s.chatService.GetUserConversations(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(conversations)
}

// SendMessage handles POST /api/conversations/:id/messages
func (s *Server) SendMessage(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	convID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, sendErr := s.chatService.SendMessage(ctx, service.SendMessageInput{
		UserID:         userID,
		ConversationID: convID,
		Content:        req.Content,
	})
	if sendErr != nil {
		return respondServiceError(c, sendErr)
	}

	s.broadcastMessage(ctx, msg)

	return c.Status(fiber.StatusCreated).JSON(msg)
}

// broadcastMessage fans a stored message out to the conversation channel
// and notifies the recipient.
func (s *Server) broadcastMessage(ctx context.Context, msg *models.Message) {
	conv, err := s.chatRepo.GetConversation(ctx, msg.ConversationID)
	if err != nil {
		slog.Warn("failed to load conversation for fan-out",
			"conversation_id", msg.ConversationID, "error", err)
		return
	}
	recipientID := conv.OtherParticipant(msg.SenderID)

	s.notify(ctx, recipientID, msg.SenderID, models.NotificationTypeMessage, msg.ConversationID)
	s.publishUserEvent(recipientID, EventMessageReceived, map[string]interface{}{
		"conversation_id": msg.ConversationID,
		"message_id":      msg.ID,
		"sender_id":       msg.SenderID,
		"created_at":      time.Now().UTC().Format(time.RFC3339Nano),
	})

	if s.notifier != nil {
		payload, marshalErr := json.Marshal(msg)
		if marshalErr != nil {
			slog.Error("failed to marshal chat message", "error", marshalErr)
			return
		}
		if pubErr := s.notifier.PublishChatMessage(ctx, msg.ConversationID, string(payload)); pubErr != nil {
			slog.Warn("failed to publish chat message",
				"conversation_id", msg.ConversationID, "error", pubErr)
		}
	}
}

// GetMessages handles GET /api/conversations/:id/messages
func (s *Server) GetMessages(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	convID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 50)
	messages, listErr := s.chatService.GetMessages(ctx, userID, convID, p.Limit, p.Offset)
	if listErr != nil {
		return respondServiceError(c, listErr)
	}

	return c.JSON(messages)
}

// MarkConversationRead handles POST /api/conversations/:id/read
func (s *Server) MarkConversationRead(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	convID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if markErr := s.chatService.MarkConversationRead(ctx, userID, convID); markErr != nil {
		return respondServiceError(c, markErr)
	}

	return c.JSON(fiber.Map{"message": "Conversation marked as read"})
}

// GetUnreadCount handles GET /api/conversations/:id/unread-count
func (s *Server) GetUnreadCount(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	convID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	count, countErr := s.chatService.UnreadCount(ctx, userID, convID)
	if countErr != nil {
		return respondServiceError(c, countErr)
	}

	return c.JSON(fiber.Map{"unread_count": count})
}
