// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// JobOfferStatus is the lifecycle state of a job offer.
type JobOfferStatus string

const (
	// JobOfferStatusActive means the offer accepts applicants.
	JobOfferStatusActive JobOfferStatus = "active"
	// JobOfferStatusClosed means the offer no longer accepts applicants.
	JobOfferStatusClosed JobOfferStatus = "closed"
)

// JobOffer is a job listing posted by a restaurant owner or restaurant.
type JobOffer struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`
	Owner       User           `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Position    string         `json:"position"`
	Location    string         `json:"location"`
	Salary      string         `json:"salary"`
	Status      JobOfferStatus `gorm:"type:varchar(20);default:'active';index" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM
func (JobOffer) TableName() string {
	return "job_offers"
}
