// Package models contains data structures for the application's domain models.
package models

import "time"

// Conversation is a direct-message thread between exactly two users. The
// pair is stored normalized (UserAID < UserBID) so one conversation exists
// per unordered participant pair.
type Conversation struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserAID         uint       `gorm:"not null;uniqueIndex:idx_conversation_pair" json:"user_a_id"`
	UserBID         uint       `gorm:"not null;uniqueIndex:idx_conversation_pair" json:"user_b_id"`
	LastMessage     string     `json:"last_message"`
	LastMessageTime *time.Time `json:"last_message_time"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	UserA    User      `gorm:"foreignKey:UserAID" json:"user_a,omitempty"`
	UserB    User      `gorm:"foreignKey:UserBID" json:"user_b,omitempty"`
	Messages []Message `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

// TableName specifies the table name for GORM
func (Conversation) TableName() string {
	return "conversations"
}

// OtherParticipant returns the participant that is not userID.
func (c *Conversation) OtherParticipant(userID uint) uint {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}

// HasParticipant reports whether userID belongs to the conversation.
func (c *Conversation) HasParticipant(userID uint) bool {
	return c.UserAID == userID || c.UserBID == userID
}

// NormalizePair orders two user IDs so (a, b) and (b, a) map to the same
// conversation key.
func NormalizePair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// Message is a single direct message inside a conversation.
type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"not null;index" json:"conversation_id"`
	SenderID       uint      `gorm:"not null" json:"sender_id"`
	Content        string    `gorm:"not null" json:"content"`
	Read           bool      `gorm:"default:false" json:"read"`
	CreatedAt      time.Time `json:"created_at"`

	Sender User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

// TableName specifies the table name for GORM
func (Message) TableName() string {
	return "messages"
}
