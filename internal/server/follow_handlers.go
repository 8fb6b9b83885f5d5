package server

import (
	"time"

	"gastronet/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/follows/:userId
func (s *Server) FollowUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if followErr := s.followService.Follow(ctx, userID, targetID); followErr != nil {
		return respondServiceError(c, followErr)
	}

	s.notify(ctx, targetID, userID, models.NotificationTypeFollow, userID)
	s.publishUserEvent(targetID, EventFollowed, map[string]interface{}{
		"follower_id": userID,
		"created_at":  time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(fiber.Map{"status": models.FollowStatusFollowing})
}

// UnfollowUser handles DELETE /api/follows/:userId
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if unfollowErr := s.followService.Unfollow(ctx, userID, targetID); unfollowErr != nil {
		return respondServiceError(c, unfollowErr)
	}

	return c.JSON(fiber.Map{"status": models.FollowStatusNone})
}

// RequestFollow handles POST /api/follows/requests/:userId
func (s *Server) RequestFollow(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if reqErr := s.followService.RequestToFollow(ctx, userID, targetID); reqErr != nil {
		return respondServiceError(c, reqErr)
	}

	s.notify(ctx, targetID, userID, models.NotificationTypeFollowRequest, userID)
	s.publishUserEvent(targetID, EventFollowRequestReceived, map[string]interface{}{
		"requester_id": userID,
		"created_at":   time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"status": models.FollowStatusRequested})
}

// CancelFollowRequest handles DELETE /api/follows/requests/:userId
func (s *Server) CancelFollowRequest(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if cancelErr := s.followService.CancelFollowRequest(ctx, userID, targetID); cancelErr != nil {
		return respondServiceError(c, cancelErr)
	}

	return c.JSON(fiber.Map{"status": models.FollowStatusNone})
}

// AcceptFollowRequest handles POST /api/follows/requests/:userId/accept
//
// The authenticated user is the request's target; :userId is the requester.
func (s *Server) AcceptFollowRequest(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	requesterID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if acceptErr := s.followService.AcceptFollowRequest(ctx, userID, requesterID); acceptErr != nil {
		return respondServiceError(c, acceptErr)
	}

	s.notify(ctx, requesterID, userID, models.NotificationTypeFollowAccept, userID)
	s.publishUserEvent(requesterID, EventFollowRequestAccepted, map[string]interface{}{
		"target_id":  userID,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.JSON(fiber.Map{"status": models.FollowStatusFollowing})
}

// DeclineFollowRequest handles POST /api/follows/requests/:userId/decline
func (s *Server) DeclineFollowRequest(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	requesterID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	if declineErr := s.followService.DeclineFollowRequest(ctx, userID, requesterID); declineErr != nil {
		return respondServiceError(c, declineErr)
	}

	return c.JSON(fiber.Map{"status": models.FollowStatusNone})
}

// GetPendingFollowRequests handles GET /api/follows/requests
func (s *Server) GetPendingFollowRequests(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	requests, err := s.followService.GetPendingRequests(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(requests)
}

// GetFollowStatus handles GET /api/follows/status/:userId
func (s *Server) GetFollowStatus(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	status, statusErr := s.followService.Status(ctx, userID, targetID)
	if statusErr != nil {
		return respondServiceError(c, statusErr)
	}

	return c.JSON(fiber.Map{"status": status})
}

// CanMessage handles GET /api/follows/can-message/:userId
func (s *Server) CanMessage(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	allowed, canErr := s.followService.CanUsersMessage(ctx, userID, targetID)
	if canErr != nil {
		return respondServiceError(c, canErr)
	}

	return c.JSON(fiber.Map{"can_message": allowed})
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	users, listErr := s.followService.GetFollowers(ctx, targetID)
	if listErr != nil {
		return respondServiceError(c, listErr)
	}

	profiles := make([]models.PublicProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Public())
	}
	return c.JSON(profiles)
}

// GetFollowing handles GET /api/users/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	ctx := c.UserContext()
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	users, listErr := s.followService.GetFollowing(ctx, targetID)
	if listErr != nil {
		return respondServiceError(c, listErr)
	}

	profiles := make([]models.PublicProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Public())
	}
	return c.JSON(profiles)
}

// GetFollowCounts handles GET /api/users/:id/follow-counts
func (s *Server) GetFollowCounts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	counts, countsErr := s.followService.GetFollowCounts(ctx, targetID)
	if countsErr != nil {
		return respondServiceError(c, countsErr)
	}

	return c.JSON(counts)
}
