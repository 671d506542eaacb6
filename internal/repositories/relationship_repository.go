package repositories

import "chirp/internal/models"

// RelationshipRepository defines the interface for follow-edge data access.
//
// Create returns models.ErrAlreadyFollowing when the (follower, followee)
// pair already exists. Delete is idempotent: removing an edge that is not
// there is a successful no-op.
type RelationshipRepository interface {
	Create(followerID, followeeID string) error
	Delete(followerID, followeeID string) error
	Exists(followerID, followeeID string) (bool, error)
	ListFollowing(userID string) ([]models.User, error)
	ListFollowers(userID string) ([]models.User, error)
	ListFolloweeIDs(userID string) ([]string, error)
}
