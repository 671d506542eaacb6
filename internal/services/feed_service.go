package services

import (
	"errors"
	"fmt"

	"chirp/internal/models"
	"chirp/internal/repositories"
)

// DefaultStreamLimit bounds a stream when the caller does not ask for a
// specific size.
const DefaultStreamLimit = 100

// FeedService composes the post streams shown to viewers. It only reads from
// the post, relationship and user stores and owns no state of its own.
type FeedService struct {
	postRepo repositories.PostRepository
	relRepo  repositories.RelationshipRepository
	userRepo repositories.UserRepository
}

// NewFeedService creates a new FeedService.
func NewFeedService(postRepo repositories.PostRepository, relRepo repositories.RelationshipRepository, userRepo repositories.UserRepository) *FeedService {
	return &FeedService{
		postRepo: postRepo,
		relRepo:  relRepo,
		userRepo: userRepo,
	}
}

// GetStream returns the viewer's feed: the union of their own posts and the
// posts of everyone they follow, most recent first, truncated to limit.
func (s *FeedService) GetStream(viewerID string, limit int) ([]models.Post, error) {
	limit = normalizeLimit(limit)

	followeeIDs, err := s.relRepo.ListFolloweeIDs(viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve followed users: %w", err)
	}
	authorIDs := append(followeeIDs, viewerID)

	return s.postRepo.ListByAuthors(authorIDs, limit)
}

// GetUserStream returns the posts of the user behind targetUsername (their
// own posts only, not their followees'). An unknown username comes back as
// models.ErrUserNotFound so the boundary can distinguish "no such user" from
// "no posts".
func (s *FeedService) GetUserStream(targetUsername string, limit int) ([]models.Post, error) {
	limit = normalizeLimit(limit)

	user, err := s.userRepo.GetByUsername(targetUsername)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve user %s: %w", targetUsername, err)
	}

	return s.postRepo.ListByAuthor(user.ID, limit)
}

// GetGlobalStream returns the most recent posts system-wide, used for the
// anonymous home view.
func (s *FeedService) GetGlobalStream(limit int) ([]models.Post, error) {
	return s.postRepo.ListLatest(normalizeLimit(limit))
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultStreamLimit
	}
	return limit
}
