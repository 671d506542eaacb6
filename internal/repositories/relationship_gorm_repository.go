package repositories

import (
	"errors"
	"fmt"
	"time"

	"chirp/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMRelationshipRepository is a GORM implementation of RelationshipRepository.
type GORMRelationshipRepository struct {
	db *gorm.DB
}

// NewGORMRelationshipRepository creates a new instance of GORMRelationshipRepository.
func NewGORMRelationshipRepository(db *gorm.DB) *GORMRelationshipRepository {
	return &GORMRelationshipRepository{
		db: db,
	}
}

// Create inserts a follow edge. The composite unique index on
// (follower_id, followee_id) rejects duplicates atomically, even under
// concurrent attempts; the violation surfaces as models.ErrAlreadyFollowing.
func (r *GORMRelationshipRepository) Create(followerID, followeeID string) error {
	rel := &models.Relationship{
		ID:         uuid.New().String(),
		FollowerID: followerID,
		FolloweeID: followeeID,
		CreatedAt:  time.Now(),
	}
	if err := r.db.Create(rel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrAlreadyFollowing
		}
		return fmt.Errorf("failed to create follow edge: %w", err)
	}
	return nil
}

// Delete removes a follow edge if present. Deleting a missing edge affects
// zero rows and is still a success.
func (r *GORMRelationshipRepository) Delete(followerID, followeeID string) error {
	err := r.db.
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Relationship{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete follow edge: %w", err)
	}
	return nil
}

// Exists reports whether a follow edge is present.
func (r *GORMRelationshipRepository) Exists(followerID, followeeID string) (bool, error) {
	var count int64
	err := r.db.
		Model(&models.Relationship{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check follow edge: %w", err)
	}
	return count > 0, nil
}

// ListFollowing returns the users the given user follows.
func (r *GORMRelationshipRepository) ListFollowing(userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN relationships ON relationships.followee_id = users.id").
		Where("relationships.follower_id = ?", userID).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list following for user %s: %w", userID, err)
	}
	return users, nil
}

// ListFollowers returns the users following the given user.
func (r *GORMRelationshipRepository) ListFollowers(userID string) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN relationships ON relationships.follower_id = users.id").
		Where("relationships.followee_id = ?", userID).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list followers for user %s: %w", userID, err)
	}
	return users, nil
}

// ListFolloweeIDs returns just the IDs of the users the given user follows.
// The feed engine uses this to build its author set without loading full
// user rows.
func (r *GORMRelationshipRepository) ListFolloweeIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.
		Model(&models.Relationship{}).
		Where("follower_id = ?", userID).
		Pluck("followee_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list followee ids for user %s: %w", userID, err)
	}
	return ids, nil
}
