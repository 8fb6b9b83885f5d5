// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"

	"gastronet/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository defines the interface for follow-graph data operations.
//
// The graph is stored as one edge record per (follower, followee) pair, so
// a user's following set and the other side's followers set are two reads
// of the same rows and can never disagree.
type FollowRepository interface {
	CreateEdge(ctx context.Context, followerID, followeeID uint) error
	DeleteEdge(ctx context.Context, followerID, followeeID uint) error
	EdgeExists(ctx context.Context, followerID, followeeID uint) (bool, error)
	CreateRequest(ctx context.Context, requesterID, targetID uint) error
	DeleteRequest(ctx context.Context, requesterID, targetID uint) error
	RequestExists(ctx context.Context, requesterID, targetID uint) (bool, error)
	PromoteRequest(ctx context.Context, requesterID, targetID uint) error
	GetFollowers(ctx context.Context, userID uint) ([]models.User, error)
	GetFollowing(ctx context.Context, userID uint) ([]models.User, error)
	GetPendingRequests(ctx context.Context, targetID uint) ([]models.FollowRequest, error)
	Counts(ctx context.Context, userID uint) (models.FollowCounts, error)
	Snapshot(ctx context.Context, userID uint) (*models.FollowSnapshot, error)
}

// followRepository implements FollowRepository
type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// CreateEdge inserts the follower→followee edge. Inserting an edge that
// already exists is a no-op, matching set-add semantics.
func (r *followRepository) CreateEdge(ctx context.Context, followerID, followeeID uint) error {
	edge := &models.FollowEdge{FollowerID: followerID, FolloweeID: followeeID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(edge).Error; err != nil {
		return storeError(err)
	}
	return nil
}

// DeleteEdge removes the follower→followee edge. Removing a missing edge
// succeeds, so duplicate unfollow clicks are harmless.
func (r *followRepository) DeleteEdge(ctx context.Context, followerID, followeeID uint) error {
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.FollowEdge{}).Error; err != nil {
		return storeError(err)
	}
	return nil
}

func (r *followRepository) EdgeExists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FollowEdge{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, storeError(err)
	}
	return count > 0, nil
}

// CreateRequest records a pending follow request. Duplicate requests for
// the same pair are a no-op.
func (r *followRepository) CreateRequest(ctx context.Context, requesterID, targetID uint) error {
	req := &models.FollowRequest{RequesterID: requesterID, TargetID: targetID}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(req).Error; err != nil {
		return storeError(err)
	}
	return nil
}

// DeleteRequest removes a pending request. Idempotent.
func (r *followRepository) DeleteRequest(ctx context.Context, requesterID, targetID uint) error {
	if err := r.db.WithContext(ctx).
		Where("requester_id = ? AND target_id = ?", requesterID, targetID).
		Delete(&models.FollowRequest{}).Error; err != nil {
		return storeError(err)
	}
	return nil
}

func (r *followRepository) RequestExists(ctx context.Context, requesterID, targetID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.FollowRequest{}).
		Where("requester_id = ? AND target_id = ?", requesterID, targetID).
		Count(&count).Error; err != nil {
		return false, storeError(err)
	}
	return count > 0, nil
}

// PromoteRequest converts a pending request into a follow edge inside one
// transaction: either the request is consumed and the edge exists
// afterwards, or nothing changed. Returns NOT_FOUND if no request is
// pending for the pair.
func (r *followRepository) PromoteRequest(ctx context.Context, requesterID, targetID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.
			Where("requester_id = ? AND target_id = ?", requesterID, targetID).
			Delete(&models.FollowRequest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Follow request", requesterID)
		}

		edge := &models.FollowEdge{FollowerID: requesterID, FolloweeID: targetID}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(edge).Error
	})
	if err != nil {
		if _, ok := err.(*models.AppError); ok {
			return err
		}
		return storeError(err)
	}
	return nil
}

func (r *followRepository) GetFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follow_edges fe ON fe.follower_id = users.id").
		Where("fe.followee_id = ?", userID).
		Find(&users).Error; err != nil {
		return nil, storeError(err)
	}
	return users, nil
}

func (r *followRepository) GetFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follow_edges fe ON fe.followee_id = users.id").
		Where("fe.follower_id = ?", userID).
		Find(&users).Error; err != nil {
		return nil, storeError(err)
	}
	return users, nil
}

func (r *followRepository) GetPendingRequests(ctx context.Context, targetID uint) ([]models.FollowRequest, error) {
	var requests []models.FollowRequest
	if err := r.db.WithContext(ctx).
		Where("target_id = ?", targetID).
		Preload("Requester").
		Find(&requests).Error; err != nil {
		return nil, storeError(err)
	}
	return requests, nil
}

// Counts returns follower/following totals. Counting the edge table
// directly keeps the numbers consistent with GetFollowers/GetFollowing at
// read time without a separately maintained counter.
func (r *followRepository) Counts(ctx context.Context, userID uint) (models.FollowCounts, error) {
	var counts models.FollowCounts
	if err := r.db.WithContext(ctx).
		Model(&models.FollowEdge{}).
		Where("followee_id = ?", userID).
		Count(&counts.FollowersCount).Error; err != nil {
		return counts, storeError(err)
	}
	if err := r.db.WithContext(ctx).
		Model(&models.FollowEdge{}).
		Where("follower_id = ?", userID).
		Count(&counts.FollowingCount).Error; err != nil {
		return counts, storeError(err)
	}
	return counts, nil
}

// Snapshot reads both of a user's edge sets in one transaction so the
// messaging-eligibility predicate evaluates a consistent point-in-time
// view.
func (r *followRepository) Snapshot(ctx context.Context, userID uint) (*models.FollowSnapshot, error) {
	snap := &models.FollowSnapshot{UserID: userID}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Model(&models.FollowEdge{}).
			Where("follower_id = ?", userID).
			Pluck("followee_id", &snap.Following).Error; err != nil {
			return err
		}
		return tx.
			Model(&models.FollowEdge{}).
			Where("followee_id = ?", userID).
			Pluck("follower_id", &snap.Followers).Error
	})
	if err != nil {
		return nil, storeError(err)
	}
	return snap, nil
}
