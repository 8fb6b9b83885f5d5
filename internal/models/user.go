// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Role identifies what kind of community member a user is.
type Role string

const (
	// RoleRestaurantOwner is a user who owns one or more restaurants.
	RoleRestaurantOwner Role = "restaurant_owner"
	// RoleRestaurant is a restaurant account (the venue itself, not a person).
	RoleRestaurant Role = "restaurant"
	// RoleEmployee is a gastronomy worker (cook, waiter, barista, ...).
	RoleEmployee Role = "employee"
	// RoleSupplier is a goods/services provider for restaurants.
	RoleSupplier Role = "supplier"
	// RoleInfluencer is a content creator in the food scene.
	RoleInfluencer Role = "influencer"
)

// ValidRoles lists every role a user may sign up with.
var ValidRoles = []Role{
	RoleRestaurantOwner,
	RoleRestaurant,
	RoleEmployee,
	RoleSupplier,
	RoleInfluencer,
}

// Valid reports whether r is one of the closed set of signup roles.
func (r Role) Valid() bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// User represents a member of the gastronomy community.
//
// Handle is the unique lowercase-normalized username shown in URLs and
// mentions. IsPrivate gates the follow flow: private accounts receive
// follow requests instead of direct follows.
type User struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	Handle          string         `gorm:"unique;not null" json:"handle"`
	Email           string         `gorm:"unique;not null" json:"email"`
	Password        string         `gorm:"not null" json:"-"`
	DisplayName     string         `json:"display_name"`
	Role            Role           `gorm:"type:varchar(32);not null;index" json:"role"`
	IsAdmin         bool           `gorm:"default:false" json:"is_admin"`
	IsPrivate       bool           `gorm:"default:false" json:"is_private"`
	IsAvailable     bool           `gorm:"default:true" json:"is_available"`
	ProfileComplete bool           `gorm:"default:false" json:"profile_complete"`
	Bio             string         `json:"bio"`
	Phone           string         `json:"phone"`
	Location        string         `json:"location"`
	AvatarURL       string         `json:"avatar_url"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	Posts           []Post         `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// PublicProfile is the subset of User safe to return for other users.
type PublicProfile struct {
	ID              uint      `json:"id"`
	Handle          string    `json:"handle"`
	DisplayName     string    `json:"display_name"`
	Role            Role      `json:"role"`
	IsPrivate       bool      `json:"is_private"`
	IsAvailable     bool      `json:"is_available"`
	ProfileComplete bool      `json:"profile_complete"`
	Bio             string    `json:"bio"`
	Location        string    `json:"location"`
	AvatarURL       string    `json:"avatar_url"`
	CreatedAt       time.Time `json:"created_at"`
}

// Public returns the user's public profile view.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:              u.ID,
		Handle:          u.Handle,
		DisplayName:     u.DisplayName,
		Role:            u.Role,
		IsPrivate:       u.IsPrivate,
		IsAvailable:     u.IsAvailable,
		ProfileComplete: u.ProfileComplete,
		Bio:             u.Bio,
		Location:        u.Location,
		AvatarURL:       u.AvatarURL,
		CreatedAt:       u.CreatedAt,
	}
}
