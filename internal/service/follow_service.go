// Package service provides application business logic (social graph, chat, posts, users).
package service

import (
	"context"

	"gastronet/internal/models"
	"gastronet/internal/repository"
)

// FollowService owns the follow graph: directed follow edges, pending
// follow requests for private accounts, and the messaging-eligibility
// predicate that gates direct conversations.
//
// Every mutating operation issues one round trip (or one transaction) to
// the store and surfaces the store's error unchanged; nothing is retried
// here. Set mutations are idempotent, so duplicate clicks from the UI are
// harmless.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// checkDistinctUsers rejects self-referencing follow operations up front so
// a self-loop can never reach the store.
func checkDistinctUsers(currentUserID, targetUserID uint) error {
	if currentUserID == targetUserID {
		return models.NewValidationError("Cannot perform follow actions on yourself")
	}
	return nil
}

// Follow creates the currentUser→targetUser edge. The target must be a
// public account; private accounts only gain followers through the
// request/accept flow. Any pending request for the pair is cleared so a
// requester can never be both pending and following.
func (s *FollowService) Follow(ctx context.Context, currentUserID, targetUserID uint) error {
	if err := checkDistinctUsers(currentUserID, targetUserID); err != nil {
		return err
	}

	if _, err := s.userRepo.GetByID(ctx, currentUserID); err != nil {
		return err
	}
	target, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		return err
	}
	if target.IsPrivate {
		return models.NewValidationError("This account is private; send a follow request instead")
	}

	if err := s.followRepo.CreateEdge(ctx, currentUserID, targetUserID); err != nil {
		return err
	}
	return s.followRepo.DeleteRequest(ctx, currentUserID, targetUserID)
}

// Unfollow removes the currentUser→targetUser edge. Removing an edge that
// does not exist succeeds.
func (s *FollowService) Unfollow(ctx context.Context, currentUserID, targetUserID uint) error {
	if err := checkDistinctUsers(currentUserID, targetUserID); err != nil {
		return err
	}
	return s.followRepo.DeleteEdge(ctx, currentUserID, targetUserID)
}

// RequestToFollow records a pending follow request against a private
// account. Duplicate requests are a no-op.
func (s *FollowService) RequestToFollow(ctx context.Context, currentUserID, targetUserID uint) error {
	if err := checkDistinctUsers(currentUserID, targetUserID); err != nil {
		return err
	}

	if _, err := s.userRepo.GetByID(ctx, currentUserID); err != nil {
		return err
	}
	target, err := s.userRepo.GetByID(ctx, targetUserID)
	if err != nil {
		return err
	}
	if !target.IsPrivate {
		return models.NewValidationError("This account is public; follow it directly")
	}

	following, err := s.followRepo.EdgeExists(ctx, currentUserID, targetUserID)
	if err != nil {
		return err
	}
	if following {
		return models.NewValidationError("You already follow this user")
	}

	return s.followRepo.CreateRequest(ctx, currentUserID, targetUserID)
}

// CancelFollowRequest withdraws a pending request. Idempotent.
func (s *FollowService) CancelFollowRequest(ctx context.Context, currentUserID, targetUserID uint) error {
	if err := checkDistinctUsers(currentUserID, targetUserID); err != nil {
		return err
	}
	return s.followRepo.DeleteRequest(ctx, currentUserID, targetUserID)
}

// AcceptFollowRequest converts requester's pending request into a follow
// edge. Request removal and edge creation happen in one store transaction,
// so the requester is never simultaneously pending and following, and a
// failed accept leaves the request intact.
func (s *FollowService) AcceptFollowRequest(ctx context.Context, targetUserID, requesterID uint) error {
	if err := checkDistinctUsers(requesterID, targetUserID); err != nil {
		return err
	}
	return s.followRepo.PromoteRequest(ctx, requesterID, targetUserID)
}

// DeclineFollowRequest removes requester's pending request without
// creating an edge. Idempotent.
func (s *FollowService) DeclineFollowRequest(ctx context.Context, targetUserID, requesterID uint) error {
	if err := checkDistinctUsers(requesterID, targetUserID); err != nil {
		return err
	}
	return s.followRepo.DeleteRequest(ctx, requesterID, targetUserID)
}

// IsFollowing reports whether the currentUser→targetUser edge exists.
func (s *FollowService) IsFollowing(ctx context.Context, currentUserID, targetUserID uint) (bool, error) {
	return s.followRepo.EdgeExists(ctx, currentUserID, targetUserID)
}

// GetFollowers returns the profiles following userID.
func (s *FollowService) GetFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followRepo.GetFollowers(ctx, userID)
}

// GetFollowing returns the profiles userID follows.
func (s *FollowService) GetFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followRepo.GetFollowing(ctx, userID)
}

// GetPendingRequests returns the follow requests waiting on userID's
// approval.
func (s *FollowService) GetPendingRequests(ctx context.Context, userID uint) ([]models.FollowRequest, error) {
	return s.followRepo.GetPendingRequests(ctx, userID)
}

// GetFollowCounts returns follower/following totals derived from the edge
// sets at read time.
func (s *FollowService) GetFollowCounts(ctx context.Context, userID uint) (models.FollowCounts, error) {
	return s.followRepo.Counts(ctx, userID)
}

// Status classifies the viewer's relationship to a profile for UI
// rendering: own profile, following, requested, or none.
func (s *FollowService) Status(ctx context.Context, viewerID, targetID uint) (models.FollowStatus, error) {
	if viewerID == targetID {
		return models.FollowStatusSelf, nil
	}
	following, err := s.followRepo.EdgeExists(ctx, viewerID, targetID)
	if err != nil {
		return "", err
	}
	if following {
		return models.FollowStatusFollowing, nil
	}
	requested, err := s.followRepo.RequestExists(ctx, viewerID, targetID)
	if err != nil {
		return "", err
	}
	if requested {
		return models.FollowStatusRequested, nil
	}
	return models.FollowStatusNone, nil
}

// CanUsersMessage reports whether two users may open a direct conversation
// with each other. Both follow snapshots are fetched here, immediately
// before evaluation, so the predicate never runs against views captured at
// different times; the eligibility itself is mutual, evaluated once per
// direction with models.CanUsersMessage.
func (s *FollowService) CanUsersMessage(ctx context.Context, userAID, userBID uint) (bool, error) {
	if userAID == userBID {
		return false, nil
	}
	snapA, err := s.followRepo.Snapshot(ctx, userAID)
	if err != nil {
		return false, err
	}
	snapB, err := s.followRepo.Snapshot(ctx, userBID)
	if err != nil {
		return false, err
	}
	return models.CanUsersMessage(snapA, snapB) && models.CanUsersMessage(snapB, snapA), nil
}
