package repositories

import (
	"errors"
	"fmt"
	"time"

	"chirp/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// streamOrder sorts posts most recent first; the id tiebreak keeps equal
// timestamps deterministic.
const streamOrder = "created_at DESC, id DESC"

// GORMPostRepository is a GORM implementation of PostRepository.
type GORMPostRepository struct {
	db *gorm.DB
}

// NewGORMPostRepository creates a new instance of GORMPostRepository.
func NewGORMPostRepository(db *gorm.DB) *GORMPostRepository {
	return &GORMPostRepository{
		db: db,
	}
}

// Create inserts a new post in the database.
func (r *GORMPostRepository) Create(post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	if err := r.db.Create(post).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

// GetByID retrieves a single post by its ID from the database.
func (r *GORMPostRepository) GetByID(id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to get post by ID %s: %w", id, err)
	}
	return &post, nil
}

// ListByAuthor retrieves the most recent posts of a single author.
func (r *GORMPostRepository) ListByAuthor(authorID string, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.
		Where("author_id = ?", authorID).
		Order(streamOrder).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by author %s: %w", authorID, err)
	}
	return posts, nil
}

// ListByAuthors retrieves the most recent posts across a set of authors as a
// single time-ordered result. The union is done in one indexed query so the
// storage layer produces the merged ordering directly.
func (r *GORMPostRepository) ListByAuthors(authorIDs []string, limit int) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, nil
	}
	var posts []models.Post
	err := r.db.
		Where("author_id IN ?", authorIDs).
		Order(streamOrder).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by authors: %w", err)
	}
	return posts, nil
}

// ListLatest retrieves the most recent posts system-wide.
func (r *GORMPostRepository) ListLatest(limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.
		Order(streamOrder).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list latest posts: %w", err)
	}
	return posts, nil
}
