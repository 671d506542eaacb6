package repositories

import "chirp/internal/models"

// PostRepository defines the interface for post data access.
//
// Every listing returns posts most recent first (created_at descending, post
// id descending as the tiebreak so equal timestamps order deterministically)
// and truncated to limit entries.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id string) (*models.Post, error)
	ListByAuthor(authorID string, limit int) ([]models.Post, error)
	ListByAuthors(authorIDs []string, limit int) ([]models.Post, error)
	ListLatest(limit int) ([]models.Post, error)
}
