package repositories

import "chirp/internal/models"

// UserRepository defines the interface for user data access.
//
// Lookups return models.ErrUserNotFound when no row matches, so callers
// branch on presence with errors.Is instead of treating absence as a fault.
// Create returns models.ErrDuplicateIdentity when the username or email
// collides with an existing user.
type UserRepository interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	Count() (int64, error)
}
