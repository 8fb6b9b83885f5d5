package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"gastronet/internal/models"
	"gastronet/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockChatRepository is a mock of the ChatRepository interface
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) GetConversationByPair(ctx context.Context, userA, userB uint) (*models.Conversation, error) {
	args := m.Called(ctx, userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockChatRepository) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}

func (m *MockChatRepository) GetConversation(ctx context.Context, id uint) (*models.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockChatRepository) GetUserConversations(ctx context.Context, userID uint) ([]*models.Conversation, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*models.Conversation), args.Error(1)
}

func (m *MockChatRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockChatRepository) GetMessages(ctx context.Context, convID uint, limit, offset int) ([]*models.Message, error) {
	args := m.Called(ctx, convID, limit, offset)
	return args.Get(0).([]*models.Message), args.Error(1)
}

func (m *MockChatRepository) MarkRead(ctx context.Context, convID, readerID uint) error {
	args := m.Called(ctx, convID, readerID)
	return args.Error(0)
}

func (m *MockChatRepository) UnreadCount(ctx context.Context, convID, userID uint) (int64, error) {
	args := m.Called(ctx, convID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func chatTestApp(viewerID uint, chatRepo *MockChatRepository, followRepo *MockFollowRepository, userRepo *MockUserRepository) *fiber.App {
	followService := service.NewFollowService(followRepo, userRepo)
	s := &Server{
		chatRepo:    chatRepo,
		chatService: service.NewChatService(chatRepo, userRepo, followService),
	}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", viewerID)
		return c.Next()
	})
	app.Post("/conversations", s.CreateConversation)
	app.Post("/conversations/:id/messages", s.SendMessage)
	app.Get("/conversations/:id/unread-count", s.GetUnreadCount)
	return app
}

// mutualSnapshots wires the follow repo mocks so users a and b follow each
// other.
func mutualSnapshots(fr *MockFollowRepository, a, b uint) {
	fr.On("Snapshot", mock.Anything, a).Return(&models.FollowSnapshot{
		UserID:    a,
		Following: []uint{b},
		Followers: []uint{b},
	}, nil)
	fr.On("Snapshot", mock.Anything, b).Return(&models.FollowSnapshot{
		UserID:    b,
		Following: []uint{a},
		Followers: []uint{a},
	}, nil)
}

func TestCreateConversation(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]any
		mockSetup      func(cr *MockChatRepository, fr *MockFollowRepository, ur *MockUserRepository)
		expectedStatus int
	}{
		{
			name: "Mutual Follow Success",
			body: map[string]any{"user_id": 2},
			mockSetup: func(cr *MockChatRepository, fr *MockFollowRepository, ur *MockUserRepository) {
				ur.On("GetByID", mock.Anything, uint(2)).Return(&models.User{ID: 2}, nil)
				cr.On("GetConversationByPair", mock.Anything, uint(1), uint(2)).Return(nil, nil)
				mutualSnapshots(fr, 1, 2)
				cr.On("CreateConversation", mock.Anything, mock.Anything).
					Run(func(args mock.Arguments) {
						args.Get(1).(*models.Conversation).ID = 7
					}).Return(nil)
				cr.On("GetConversation", mock.Anything, uint(7)).
					Return(&models.Conversation{ID: 7, UserAID: 1, UserBID: 2}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "One Way Follow Forbidden",
			body: map[string]any{"user_id": 2},
			mockSetup: func(cr *MockChatRepository, fr *MockFollowRepository, ur *MockUserRepository) {
				ur.On("GetByID", mock.Anything, uint(2)).Return(&models.User{ID: 2}, nil)
				cr.On("GetConversationByPair", mock.Anything, uint(1), uint(2)).Return(nil, nil)
				fr.On("Snapshot", mock.Anything, uint(1)).Return(&models.FollowSnapshot{
					UserID:    1,
					Following: []uint{2},
				}, nil)
				fr.On("Snapshot", mock.Anything, uint(2)).Return(&models.FollowSnapshot{
					UserID:    2,
					Followers: []uint{1},
				}, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Self Conversation",
			body:           map[string]any{"user_id": 1},
			mockSetup:      func(cr *MockChatRepository, fr *MockFollowRepository, ur *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing Target",
			body:           map[string]any{},
			mockSetup:      func(cr *MockChatRepository, fr *MockFollowRepository, ur *MockUserRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Existing Conversation Skips Gate",
			body: map[string]any{"user_id": 2},
			mockSetup: func(cr *MockChatRepository, fr *MockFollowRepository, ur *MockUserRepository) {
				ur.On("GetByID", mock.Anything, uint(2)).Return(&models.User{ID: 2}, nil)
				cr.On("GetConversationByPair", mock.Anything, uint(1), uint(2)).
					Return(&models.Conversation{ID: 7, UserAID: 1, UserBID: 2}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chatRepo := new(MockChatRepository)
			followRepo := new(MockFollowRepository)
			userRepo := new(MockUserRepository)
			tt.mockSetup(chatRepo, followRepo, userRepo)
			app := chatTestApp(1, chatRepo, followRepo, userRepo)

			body, _ := json.Marshal(tt.body)
			req := httptest.NewRequest(http.MethodPost, "/conversations", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestSendMessage(t *testing.T) {
	conv := &models.Conversation{ID: 5, UserAID: 1, UserBID: 2}

	tests := []struct {
		name           string
		viewerID       uint
		content        string
		mockSetup      func(cr *MockChatRepository)
		expectedStatus int
	}{
		{
			name:     "Success",
			viewerID: 1,
			content:  "Ciao!",
			mockSetup: func(cr *MockChatRepository) {
				cr.On("GetConversation", mock.Anything, uint(5)).Return(conv, nil)
				cr.On("CreateMessage", mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:     "Not A Participant",
			viewerID: 9,
			content:  "Ciao!",
			mockSetup: func(cr *MockChatRepository) {
				cr.On("GetConversation", mock.Anything, uint(5)).Return(conv, nil)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Empty Content",
			viewerID:       1,
			content:        "   ",
			mockSetup:      func(cr *MockChatRepository) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chatRepo := new(MockChatRepository)
			followRepo := new(MockFollowRepository)
			userRepo := new(MockUserRepository)
			tt.mockSetup(chatRepo)
			app := chatTestApp(tt.viewerID, chatRepo, followRepo, userRepo)

			body, _ := json.Marshal(map[string]string{"content": tt.content})
			req := httptest.NewRequest(http.MethodPost, "/conversations/5/messages", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			resp, _ := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestGetUnreadCount(t *testing.T) {
	chatRepo := new(MockChatRepository)
	followRepo := new(MockFollowRepository)
	userRepo := new(MockUserRepository)
	chatRepo.On("UnreadCount", mock.Anything, uint(5), uint(1)).Return(int64(4), nil)
	app := chatTestApp(1, chatRepo, followRepo, userRepo)

	req := httptest.NewRequest(http.MethodGet, "/conversations/5/unread-count", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		UnreadCount int64 `json:"unread_count"`
	}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(4), body.UnreadCount)
}
