package database

import "gastronet/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.FollowEdge{},
		&models.FollowRequest{},
		&models.Conversation{},
		&models.Message{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.JobOffer{},
		&models.Supplier{},
		&models.Notification{},
	}
}
