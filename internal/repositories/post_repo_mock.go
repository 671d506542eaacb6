package repositories

import (
	"sort"
	"sync"
	"time"

	"chirp/internal/models"

	"github.com/google/uuid"
)

// MockPostRepository is an in-memory implementation of PostRepository.
type MockPostRepository struct {
	posts map[string]models.Post
	mu    sync.RWMutex
}

// NewMockPostRepository creates a new instance of MockPostRepository.
func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		posts: make(map[string]models.Post),
	}
}

// Create adds a new post.
func (r *MockPostRepository) Create(post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	r.posts[post.ID] = *post
	return nil
}

// GetByID returns a post by its ID.
func (r *MockPostRepository) GetByID(id string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, models.ErrPostNotFound
	}
	return &post, nil
}

// ListByAuthor returns the most recent posts of a single author.
func (r *MockPostRepository) ListByAuthor(authorID string, limit int) ([]models.Post, error) {
	return r.ListByAuthors([]string{authorID}, limit)
}

// ListByAuthors returns the most recent posts across a set of authors.
func (r *MockPostRepository) ListByAuthors(authorIDs []string, limit int) ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]bool, len(authorIDs))
	for _, id := range authorIDs {
		wanted[id] = true
	}

	var posts []models.Post
	for _, p := range r.posts {
		if wanted[p.AuthorID] {
			posts = append(posts, p)
		}
	}
	return truncateOrdered(posts, limit), nil
}

// ListLatest returns the most recent posts overall.
func (r *MockPostRepository) ListLatest(limit int) ([]models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		posts = append(posts, p)
	}
	return truncateOrdered(posts, limit), nil
}

// truncateOrdered applies the stream ordering (created_at descending, id
// descending on ties) and the limit, matching the SQL implementation.
func truncateOrdered(posts []models.Post, limit int) []models.Post {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	if limit >= 0 && len(posts) > limit {
		posts = posts[:limit]
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts
}
