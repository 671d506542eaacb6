package repositories

import (
	"errors"
	"sync"
	"time"

	"chirp/internal/models"

	"github.com/google/uuid"
)

// MockRelationshipRepository is an in-memory implementation of
// RelationshipRepository. It resolves followed/following users through a
// UserRepository, the way the GORM implementation joins the users table.
type MockRelationshipRepository struct {
	edges map[string]models.Relationship // keyed by followerID + "->" + followeeID
	users UserRepository
	mu    sync.RWMutex
}

// NewMockRelationshipRepository creates a new instance of MockRelationshipRepository.
func NewMockRelationshipRepository(users UserRepository) *MockRelationshipRepository {
	return &MockRelationshipRepository{
		edges: make(map[string]models.Relationship),
		users: users,
	}
}

func edgeKey(followerID, followeeID string) string {
	return followerID + "->" + followeeID
}

// Create adds a follow edge, rejecting duplicates like the unique index does.
func (r *MockRelationshipRepository) Create(followerID, followeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := edgeKey(followerID, followeeID)
	if _, ok := r.edges[key]; ok {
		return models.ErrAlreadyFollowing
	}
	r.edges[key] = models.Relationship{
		ID:         uuid.New().String(),
		FollowerID: followerID,
		FolloweeID: followeeID,
		CreatedAt:  time.Now(),
	}
	return nil
}

// Delete removes a follow edge if present; removing a missing edge is a no-op.
func (r *MockRelationshipRepository) Delete(followerID, followeeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.edges, edgeKey(followerID, followeeID))
	return nil
}

// Exists reports whether a follow edge is present.
func (r *MockRelationshipRepository) Exists(followerID, followeeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.edges[edgeKey(followerID, followeeID)]
	return ok, nil
}

// ListFollowing returns the users the given user follows.
func (r *MockRelationshipRepository) ListFollowing(userID string) ([]models.User, error) {
	ids, err := r.ListFolloweeIDs(userID)
	if err != nil {
		return nil, err
	}
	return r.resolveUsers(ids)
}

// ListFollowers returns the users following the given user.
func (r *MockRelationshipRepository) ListFollowers(userID string) ([]models.User, error) {
	r.mu.RLock()
	var ids []string
	for _, edge := range r.edges {
		if edge.FolloweeID == userID {
			ids = append(ids, edge.FollowerID)
		}
	}
	r.mu.RUnlock()

	return r.resolveUsers(ids)
}

// ListFolloweeIDs returns the IDs of the users the given user follows.
func (r *MockRelationshipRepository) ListFolloweeIDs(userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for _, edge := range r.edges {
		if edge.FollowerID == userID {
			ids = append(ids, edge.FolloweeID)
		}
	}
	return ids, nil
}

func (r *MockRelationshipRepository) resolveUsers(ids []string) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		user, err := r.users.GetByID(id)
		if err != nil {
			if errors.Is(err, models.ErrUserNotFound) {
				continue // dangling edge, the SQL join would drop it too
			}
			return nil, err
		}
		users = append(users, *user)
	}
	return users, nil
}
