// Package models contains data structures for the application's domain models.
package models

import "time"

// NotificationType identifies what triggered a notification.
type NotificationType string

const (
	NotificationTypeFollow        NotificationType = "follow"
	NotificationTypeFollowRequest NotificationType = "follow_request"
	NotificationTypeFollowAccept  NotificationType = "follow_accept"
	NotificationTypeLike          NotificationType = "like"
	NotificationTypeComment       NotificationType = "comment"
	NotificationTypeMessage       NotificationType = "message"
)

// Notification is a persisted activity record shown in a user's
// notification feed. EntityID points at the related record (post, user,
// conversation) depending on Type.
type Notification struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	UserID     uint             `gorm:"not null;index" json:"user_id"`
	FromUserID uint             `gorm:"not null" json:"from_user_id"`
	FromUser   User             `gorm:"foreignKey:FromUserID" json:"from_user,omitempty"`
	Type       NotificationType `gorm:"type:varchar(32);not null" json:"type"`
	EntityID   uint             `json:"entity_id"`
	Read       bool             `gorm:"default:false" json:"read"`
	CreatedAt  time.Time        `json:"created_at"`
}

// TableName specifies the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}
