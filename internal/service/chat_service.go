package service

import (
	"context"
	"strings"

	"gastronet/internal/models"
	"gastronet/internal/repository"
)

// ChatService provides direct-message business logic. Conversation
// creation is gated by the follow graph: both participants must follow
// each other before either can open a thread.
type ChatService struct {
	chatRepo      repository.ChatRepository
	userRepo      repository.UserRepository
	followService *FollowService
}

// SendMessageInput is the input for sending a message.
type SendMessageInput struct {
	UserID         uint
	ConversationID uint
	Content        string
}

// NewChatService returns a new ChatService.
func NewChatService(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	followService *FollowService,
) *ChatService {
	return &ChatService{
		chatRepo:      chatRepo,
		userRepo:      userRepo,
		followService: followService,
	}
}

// CreateOrGetConversation returns the existing conversation for the pair,
// or creates one after the mutual-follow gate passes. The gate re-reads
// both follow snapshots at call time rather than trusting whatever the
// caller last rendered.
func (s *ChatService) CreateOrGetConversation(ctx context.Context, currentUserID, targetUserID uint) (*models.Conversation, error) {
	if currentUserID == targetUserID {
		return nil, models.NewValidationError("Cannot start a conversation with yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, err
	}

	existing, err := s.chatRepo.GetConversationByPair(ctx, currentUserID, targetUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	allowed, err := s.followService.CanUsersMessage(ctx, currentUserID, targetUserID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, models.NewForbiddenError("You can only message users who follow you back")
	}

	conv := &models.Conversation{UserAID: currentUserID, UserBID: targetUserID}
	if err := s.chatRepo.CreateConversation(ctx, conv); err != nil {
		return nil, err
	}
	return s.chatRepo.GetConversation(ctx, conv.ID)
}

// GetUserConversations returns every conversation the user participates in,
// most recently active first.
func (s *ChatService) GetUserConversations(ctx context.Context, userID uint) ([]*models.Conversation, error) {
	return s.chatRepo.GetUserConversations(ctx, userID)
}

// SendMessage appends a message to a conversation the sender belongs to.
func (s *ChatService) SendMessage(ctx context.Context, in SendMessageInput) (*models.Message, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Message content is required")
	}
	const maxMessageLen = 2000
	if len(content) > maxMessageLen {
		return nil, models.NewValidationError("Message too long (max 2000 characters)")
	}

	conv, err := s.chatRepo.GetConversation(ctx, in.ConversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(in.UserID) {
		return nil, models.NewForbiddenError("You are not a participant in this conversation")
	}

	msg := &models.Message{
		ConversationID: in.ConversationID,
		SenderID:       in.UserID,
		Content:        content,
	}
	if err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// GetMessages returns a page of messages for a conversation the user
// belongs to, newest first.
func (s *ChatService) GetMessages(ctx context.Context, userID, conversationID uint, limit, offset int) ([]*models.Message, error) {
	conv, err := s.chatRepo.GetConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, models.NewForbiddenError("You are not a participant in this conversation")
	}
	return s.chatRepo.GetMessages(ctx, conversationID, limit, offset)
}

// MarkConversationRead marks every message from the other participant as
// read.
func (s *ChatService) MarkConversationRead(ctx context.Context, userID, conversationID uint) error {
	conv, err := s.chatRepo.GetConversation(ctx, conversationID)
	if err != nil {
		return err
	}
	if !conv.HasParticipant(userID) {
		return models.NewForbiddenError("You are not a participant in this conversation")
	}
	return s.chatRepo.MarkRead(ctx, conversationID, userID)
}

// UnreadCount returns how many messages addressed to the user remain
// unread in the conversation.
func (s *ChatService) UnreadCount(ctx context.Context, userID, conversationID uint) (int64, error) {
	return s.chatRepo.UnreadCount(ctx, conversationID, userID)
}
