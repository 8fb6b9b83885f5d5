package server

import (
	"time"

	"gastronet/internal/models"
	"gastronet/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Content  string `json:"content"`
		ImageURL string `json:"image_url"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(ctx, service.CreatePostInput{
		UserID:   userID,
		Content:  req.Content,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 20)

	posts, err := s.postService.ListPosts(ctx, p.Limit, p.Offset, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, getErr := s.postService.GetPost(ctx, postID, userID)
	if getErr != nil {
		return respondServiceError(c, getErr)
	}

	return c.JSON(post)
}

// GetUserPosts handles GET /api/users/:id/posts
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	ctx := c.UserContext()
	viewerID := c.Locals("userID").(uint)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 20)
	posts, listErr := s.postService.GetUserPosts(ctx, targetID, p.Limit, p.Offset, viewerID)
	if listErr != nil {
		return respondServiceError(c, listErr)
	}

	return c.JSON(posts)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if delErr := s.postService.DeletePost(ctx, postID, userID); delErr != nil {
		return respondServiceError(c, delErr)
	}

	return c.JSON(fiber.Map{"message": "Post deleted"})
}

// ToggleLike handles POST /api/posts/:id/like
//
// Toggles the caller's like on the post and returns the resulting state.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, likeErr := s.postService.ToggleLike(ctx, postID, userID)
	if likeErr != nil {
		return respondServiceError(c, likeErr)
	}

	if liked {
		if post, getErr := s.postService.GetPost(ctx, postID, userID); getErr == nil && post.UserID != userID {
			s.notify(ctx, post.UserID, userID, models.NotificationTypeLike, postID)
			s.publishUserEvent(post.UserID, EventPostLiked, map[string]interface{}{
				"post_id":    postID,
				"user_id":    userID,
				"created_at": time.Now().UTC().Format(time.RFC3339Nano),
			})
		}
	}

	return c.JSON(fiber.Map{"liked": liked})
}

// CreateComment handles POST /api/posts/:id/comments
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, addErr := s.postService.AddComment(ctx, postID, userID, req.Content)
	if addErr != nil {
		return respondServiceError(c, addErr)
	}

	if post, getErr := s.postService.GetPost(ctx, postID, userID); getErr == nil && post.UserID != userID {
		s.notify(ctx, post.UserID, userID, models.NotificationTypeComment, postID)
		s.publishUserEvent(post.UserID, EventCommentCreated, map[string]interface{}{
			"post_id":    postID,
			"comment_id": comment.ID,
			"user_id":    userID,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments handles GET /api/posts/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	ctx := c.UserContext()
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	p := parsePagination(c, 50)
	comments, listErr := s.postService.GetComments(ctx, postID, p.Limit, p.Offset)
	if listErr != nil {
		return respondServiceError(c, listErr)
	}

	return c.JSON(comments)
}

// DeleteComment handles DELETE /api/posts/:id/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if delErr := s.postService.DeleteComment(ctx, commentID, userID); delErr != nil {
		return respondServiceError(c, delErr)
	}

	return c.JSON(fiber.Map{"message": "Comment deleted"})
}
