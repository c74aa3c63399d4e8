package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"chirp/internal/models"
	"chirp/internal/observability"
	"chirp/internal/pagination"
	"chirp/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	UserID   uint
	Content  string
	ImageURL string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{
		postRepo: postRepo,
		isAdmin:  isAdmin,
	}
}

func (s *PostService) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	// Limits apply to the trimmed content, counted in runes so multi-byte
	// characters are not penalized.
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, models.NewValidationError("Content can't be blank")
	}
	if utf8.RuneCountInString(content) > models.MaxPostContentLen {
		return nil, models.NewValidationError(
			fmt.Sprintf("Content too long (max %d characters)", models.MaxPostContentLen))
	}

	post := &models.Post{
		Content:  content,
		ImageURL: in.ImageURL,
		UserID:   in.UserID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	observability.PostsCreated.Inc()

	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes a post on behalf of its owner. Admins may remove any
// post. A post that exists but belongs to someone else is FORBIDDEN, which
// stays distinct from NOT_FOUND for a post that does not exist at all.
func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}

	if post.UserID != in.UserID {
		if s.isAdmin == nil {
			return models.NewForbiddenError("You can only delete your own posts")
		}
		admin, err := s.isAdmin(ctx, in.UserID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own posts")
		}
	}

	return s.postRepo.Delete(ctx, in.PostID)
}

func (s *PostService) ListPostsByOwner(ctx context.Context, ownerID uint, page int) (*pagination.Page[models.Post], error) {
	return pagination.Paginate(page, pagination.PerPage,
		func() (int64, error) {
			return s.postRepo.CountByOwner(ctx, ownerID)
		},
		func(limit, offset int) ([]models.Post, error) {
			return s.postRepo.ListByOwner(ctx, ownerID, limit, offset)
		})
}

// Feed returns one page of the user's home timeline: their own posts plus
// those of everyone they follow, newest first.
func (s *PostService) Feed(ctx context.Context, userID uint, page int) (*pagination.Page[models.Post], error) {
	return pagination.Paginate(page, pagination.PerPage,
		func() (int64, error) {
			return s.postRepo.CountFeed(ctx, userID)
		},
		func(limit, offset int) ([]models.Post, error) {
			return s.postRepo.Feed(ctx, userID, limit, offset)
		})
}
