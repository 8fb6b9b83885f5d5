package service

import (
	"context"
	"strings"

	"gastronet/internal/models"
	"gastronet/internal/repository"
)

// PostService provides feed post, like, and comment business logic.
type PostService struct {
	postRepo repository.PostRepository
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
}

// CreatePostInput is the input for creating a post.
type CreatePostInput struct {
	UserID   uint
	Content  string
	ImageURL string
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, isAdmin func(ctx context.Context, userID uint) (bool, error)) *PostService {
	return &PostService{postRepo: postRepo, isAdmin: isAdmin}
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Post content is required")
	}
	const maxContentLen = 5000
	if len(content) > maxContentLen {
		return nil, models.NewValidationError("Post content too long (max 5000 characters)")
	}

	post := &models.Post{
		UserID:   in.UserID,
		Content:  content,
		ImageURL: in.ImageURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) GetPost(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id, currentUserID)
}

func (s *PostService) ListPosts(ctx context.Context, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset, currentUserID)
}

func (s *PostService) GetUserPosts(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.GetByUserID(ctx, userID, limit, offset, currentUserID)
}

// DeletePost removes a post. Only the author or an admin may delete.
func (s *PostService) DeletePost(ctx context.Context, postID, userID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		admin, adminErr := s.isAdmin(ctx, userID)
		if adminErr != nil {
			return adminErr
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own posts")
		}
	}
	return s.postRepo.Delete(ctx, postID)
}

// ToggleLike flips the user's like on a post and reports the new state:
// true when the like was added, false when removed.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID uint) (bool, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return false, err
	}
	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return false, err
	}
	if liked {
		return false, s.postRepo.Unlike(ctx, userID, postID)
	}
	return true, s.postRepo.Like(ctx, userID, postID)
}

// AddComment appends a comment to a post.
func (s *PostService) AddComment(ctx context.Context, postID, userID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	const maxCommentLen = 1000
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 1000 characters)")
	}

	if _, err := s.postRepo.GetByID(ctx, postID, userID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	if err := s.postRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *PostService) GetComments(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	return s.postRepo.GetComments(ctx, postID, limit, offset)
}

// DeleteComment removes a comment. The comment author, the post author,
// and admins may delete.
func (s *PostService) DeleteComment(ctx context.Context, commentID, userID uint) error {
	comment, err := s.postRepo.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		post, postErr := s.postRepo.GetByID(ctx, comment.PostID, userID)
		if postErr != nil {
			return postErr
		}
		if post.UserID != userID {
			admin, adminErr := s.isAdmin(ctx, userID)
			if adminErr != nil {
				return adminErr
			}
			if !admin {
				return models.NewForbiddenError("You can only delete your own comments")
			}
		}
	}
	return s.postRepo.DeleteComment(ctx, commentID)
}
