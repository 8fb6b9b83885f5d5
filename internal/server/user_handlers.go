package server

import (
	"gastronet/internal/models"
	"gastronet/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		DisplayName string `json:"display_name"`
		Bio         string `json:"bio"`
		Phone       string `json:"phone"`
		Location    string `json:"location"`
		AvatarURL   string `json:"avatar_url"`
		IsPrivate   *bool  `json:"is_private"`
		IsAvailable *bool  `json:"is_available"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(ctx, service.UpdateProfileInput{
		UserID:      userID,
		DisplayName: req.DisplayName,
		Bio:         req.Bio,
		Phone:       req.Phone,
		Location:    req.Location,
		AvatarURL:   req.AvatarURL,
		IsPrivate:   req.IsPrivate,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
//
// Returns the public profile enriched with follow counts and the viewer's
// relationship to the profile.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	viewerID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUserByID(ctx, targetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	counts, err := s.followService.GetFollowCounts(ctx, targetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	status, err := s.followService.Status(ctx, viewerID, targetID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":            user.Public(),
		"followers_count": counts.FollowersCount,
		"following_count": counts.FollowingCount,
		"follow_status":   status,
	})
}

// GetUserByHandle handles GET /api/users/handle/:handle
func (s *Server) GetUserByHandle(c *fiber.Ctx) error {
	ctx := c.UserContext()
	handle := c.Params("handle")

	user, err := s.userService.GetUserByHandle(ctx, handle)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user.Public())
}

// GetAllUsers handles GET /api/users
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	p := parsePagination(c, 20)

	users, err := s.userService.ListUsers(ctx, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	profiles := make([]models.PublicProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Public())
	}
	return c.JSON(profiles)
}

// SearchUsers handles GET /api/users/search?q=
func (s *Server) SearchUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	query := c.Query("q")
	p := parsePagination(c, 20)

	users, err := s.userService.SearchUsers(ctx, query, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	profiles := make([]models.PublicProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Public())
	}
	return c.JSON(profiles)
}

// PromoteToAdmin handles POST /api/users/:id/promote-admin
func (s *Server) PromoteToAdmin(c *fiber.Ctx) error {
	ctx := c.UserContext()
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.SetAdmin(ctx, targetID, true)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// DemoteFromAdmin handles POST /api/users/:id/demote-admin
func (s *Server) DemoteFromAdmin(c *fiber.Ctx) error {
	ctx := c.UserContext()
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.SetAdmin(ctx, targetID, false)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUserOnline handles GET /api/users/:id/online
//
// Presence is best-effort: without Redis-backed realtime infrastructure
// every user reads as offline.
func (s *Server) GetUserOnline(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	online := false
	if s.hub != nil {
		online = s.hub.IsOnline(targetID)
	}
	return c.JSON(fiber.Map{"online": online})
}
