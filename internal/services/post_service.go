package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"chirp/internal/models"
	"chirp/internal/repositories"
	"chirp/pkg/rabbitmq"
)

// PostService handles business logic related to posts.
type PostService struct {
	postRepo  repositories.PostRepository
	userRepo  repositories.UserRepository
	publisher rabbitmq.Publisher // May be nil when no broker is configured
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repositories.PostRepository, userRepo repositories.UserRepository, publisher rabbitmq.Publisher) *PostService {
	return &PostService{
		postRepo:  postRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// CreatePost persists a new post for the given author.
//
// Content is trimmed of surrounding whitespace and must be non-empty
// afterwards; blank submissions are rejected with models.ErrEmptyContent.
// If the author does not exist the authenticated viewer vanished mid-request,
// which is an internal invariant violation reported as models.ErrAuthorNotFound.
func (s *PostService) CreatePost(authorID, content string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.ErrEmptyContent
	}

	if _, err := s.userRepo.GetByID(authorID); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, models.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to verify post author: %w", err)
	}

	post := &models.Post{
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post in repository: %w", err)
	}

	// Publish a post.created event. Publication is best-effort: a broker
	// failure must not fail the write that already committed.
	if s.publisher != nil {
		err := s.publisher.PublishEvent("post.created", map[string]interface{}{
			"post_id":   post.ID,
			"author_id": post.AuthorID,
		})
		if err != nil {
			log.Printf("Warning: Failed to publish post created event for post %s: %v", post.ID, err)
		}
	}

	return post, nil
}

// GetPostByID retrieves a single post by its ID.
func (s *PostService) GetPostByID(id string) (*models.Post, error) {
	return s.postRepo.GetByID(id)
}

// GetPostsByAuthor retrieves an author's most recent posts.
func (s *PostService) GetPostsByAuthor(authorID string, limit int) ([]models.Post, error) {
	return s.postRepo.ListByAuthor(authorID, limit)
}
