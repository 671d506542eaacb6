package services

import (
	"errors"
	"fmt"
	"log"

	"chirp/internal/models"
	"chirp/internal/repositories"
	"chirp/pkg/rabbitmq"
)

// RelationshipService handles business logic for the follow graph.
type RelationshipService struct {
	relRepo   repositories.RelationshipRepository
	userRepo  repositories.UserRepository
	publisher rabbitmq.Publisher // May be nil when no broker is configured
}

// NewRelationshipService creates a new RelationshipService.
func NewRelationshipService(relRepo repositories.RelationshipRepository, userRepo repositories.UserRepository, publisher rabbitmq.Publisher) *RelationshipService {
	return &RelationshipService{
		relRepo:   relRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// Follow creates a follow edge from follower to followee.
//
// Self-follows are rejected with models.ErrSelfFollow and a missing target
// with models.ErrUserNotFound. A redundant follow comes back as
// models.ErrAlreadyFollowing from the storage layer's unique pair index.
func (s *RelationshipService) Follow(followerID, followeeID string) error {
	if followerID == followeeID {
		return models.ErrSelfFollow
	}
	if _, err := s.userRepo.GetByID(followeeID); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return models.ErrUserNotFound
		}
		return fmt.Errorf("failed to verify follow target: %w", err)
	}
	if err := s.relRepo.Create(followerID, followeeID); err != nil {
		return err
	}

	s.publish("user.followed", followerID, followeeID)
	return nil
}

// Unfollow removes the follow edge if present. It is idempotent: unfollowing
// a user who was never followed is a successful no-op.
func (s *RelationshipService) Unfollow(followerID, followeeID string) error {
	if err := s.relRepo.Delete(followerID, followeeID); err != nil {
		return err
	}

	s.publish("user.unfollowed", followerID, followeeID)
	return nil
}

// ListFollowing returns the users the given user follows.
func (s *RelationshipService) ListFollowing(userID string) ([]models.User, error) {
	return s.relRepo.ListFollowing(userID)
}

// ListFollowers returns the users following the given user.
func (s *RelationshipService) ListFollowers(userID string) ([]models.User, error) {
	return s.relRepo.ListFollowers(userID)
}

// IsFollowing reports whether follower currently follows followee.
func (s *RelationshipService) IsFollowing(followerID, followeeID string) (bool, error) {
	return s.relRepo.Exists(followerID, followeeID)
}

// publish emits a follow-graph event, best-effort.
func (s *RelationshipService) publish(eventType, followerID, followeeID string) {
	if s.publisher == nil {
		return
	}
	err := s.publisher.PublishEvent(eventType, map[string]interface{}{
		"follower_id": followerID,
		"followee_id": followeeID,
	})
	if err != nil {
		log.Printf("Warning: Failed to publish %s event (%s -> %s): %v", eventType, followerID, followeeID, err)
	}
}
