// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Supplier is a directory entry for a goods/services provider. Entries may
// exist before any user claims them (imported listings), in which case
// ClaimedByID is nil.
type Supplier struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;index" json:"name"`
	Category    string         `gorm:"index" json:"category"`
	Location    string         `json:"location"`
	Description string         `gorm:"type:text" json:"description"`
	Phone       string         `json:"phone"`
	Email       string         `json:"email"`
	Website     string         `json:"website"`
	ClaimedByID *uint          `gorm:"index" json:"claimed_by_id,omitempty"`
	ClaimedBy   *User          `gorm:"foreignKey:ClaimedByID" json:"claimed_by,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}
