package service

import (
	"context"

	"chirp/internal/models"
	"chirp/internal/observability"
	"chirp/internal/pagination"
	"chirp/internal/repository"
)

type RelationshipService struct {
	relRepo  repository.RelationshipRepository
	userRepo repository.UserRepository
}

func NewRelationshipService(
	relRepo repository.RelationshipRepository,
	userRepo repository.UserRepository,
) *RelationshipService {
	return &RelationshipService{
		relRepo:  relRepo,
		userRepo: userRepo,
	}
}

// Follow creates a follow edge from followerID to followedID. Following a
// user twice is a no-op; following yourself or a missing user is an error.
func (s *RelationshipService) Follow(ctx context.Context, followerID, followedID uint) error {
	if followerID == followedID {
		observability.FollowMutations.WithLabelValues("follow", "rejected").Inc()
		return models.NewValidationError("You can't follow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, followedID); err != nil {
		observability.FollowMutations.WithLabelValues("follow", "rejected").Inc()
		return err
	}

	if err := s.relRepo.Create(ctx, followerID, followedID); err != nil {
		observability.FollowMutations.WithLabelValues("follow", "error").Inc()
		return err
	}
	observability.FollowMutations.WithLabelValues("follow", "ok").Inc()
	return nil
}

// Unfollow removes the edge. Unfollowing someone you don't follow is a
// no-op so retried requests stay safe.
func (s *RelationshipService) Unfollow(ctx context.Context, followerID, followedID uint) error {
	if err := s.relRepo.Delete(ctx, followerID, followedID); err != nil {
		observability.FollowMutations.WithLabelValues("unfollow", "error").Inc()
		return err
	}
	observability.FollowMutations.WithLabelValues("unfollow", "ok").Inc()
	return nil
}

func (s *RelationshipService) IsFollowing(ctx context.Context, followerID, followedID uint) (bool, error) {
	return s.relRepo.IsFollowing(ctx, followerID, followedID)
}

func (s *RelationshipService) Following(ctx context.Context, userID uint, page int) (*pagination.Page[models.User], error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return pagination.Paginate(page, pagination.PerPage,
		func() (int64, error) {
			return s.relRepo.CountFollowing(ctx, userID)
		},
		func(limit, offset int) ([]models.User, error) {
			return s.relRepo.Following(ctx, userID, limit, offset)
		})
}

func (s *RelationshipService) Followers(ctx context.Context, userID uint, page int) (*pagination.Page[models.User], error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return pagination.Paginate(page, pagination.PerPage,
		func() (int64, error) {
			return s.relRepo.CountFollowers(ctx, userID)
		},
		func(limit, offset int) ([]models.User, error) {
			return s.relRepo.Followers(ctx, userID, limit, offset)
		})
}
