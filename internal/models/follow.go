// Package models contains data structures for the application's domain models.
package models

import "time"

// FollowEdge is a directed follow relationship: follower sees followee's
// content in follower-only contexts.
//
// Storing the edge as a single record keyed by (follower_id, followee_id)
// makes the two denormalized views (A.following and B.followers) two reads
// of the same row, so they can never disagree.
type FollowEdge struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_edge;index" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follow_edge;index" json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followee User `gorm:"foreignKey:FolloweeID" json:"followee,omitempty"`
}

// TableName specifies the table name for GORM
func (FollowEdge) TableName() string {
	return "follow_edges"
}

// FollowRequest is a pending intent to follow a private account. It exists
// only until the target accepts (edge created), declines, or the requester
// cancels.
type FollowRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RequesterID uint      `gorm:"not null;uniqueIndex:idx_follow_request" json:"requester_id"`
	TargetID    uint      `gorm:"not null;uniqueIndex:idx_follow_request;index" json:"target_id"`
	CreatedAt   time.Time `json:"created_at"`

	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Target    User `gorm:"foreignKey:TargetID" json:"target,omitempty"`
}

// TableName specifies the table name for GORM
func (FollowRequest) TableName() string {
	return "follow_requests"
}

// FollowCounts holds follower/following totals for a user.
type FollowCounts struct {
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
}

// FollowStatus describes the viewer's relationship to another profile.
type FollowStatus string

const (
	// FollowStatusNone means no edge and no pending request.
	FollowStatusNone FollowStatus = "not_following"
	// FollowStatusFollowing means the viewer follows the profile.
	FollowStatusFollowing FollowStatus = "following"
	// FollowStatusRequested means a follow request is pending.
	FollowStatusRequested FollowStatus = "requested"
	// FollowStatusSelf means the viewer is looking at their own profile.
	FollowStatusSelf FollowStatus = "own_profile"
)

// FollowSnapshot is a point-in-time view of one user's edge sets, used by
// the messaging-eligibility predicate. Both snapshots passed to
// CanUsersMessage should be fetched together; the predicate itself does
// no I/O and evaluates exactly what it is given.
type FollowSnapshot struct {
	UserID    uint
	Following []uint
	Followers []uint
}

// Follows reports whether the snapshot's user follows id.
func (s *FollowSnapshot) Follows(id uint) bool {
	for _, f := range s.Following {
		if f == id {
			return true
		}
	}
	return false
}

// FollowedBy reports whether id appears in the snapshot's followers.
func (s *FollowSnapshot) FollowedBy(id uint) bool {
	for _, f := range s.Followers {
		if f == id {
			return true
		}
	}
	return false
}

// CanUsersMessage reports whether a may open a direct conversation with b.
// The a→b edge must be visible from both snapshots independently: b in a's
// following set, and a in b's followers set. A stale one-sided snapshot
// therefore yields false rather than a half-open gate. Callers gate both
// directions by evaluating the predicate for each participant.
func CanUsersMessage(a, b *FollowSnapshot) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Follows(b.UserID) && b.FollowedBy(a.UserID)
}
