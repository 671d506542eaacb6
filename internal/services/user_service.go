package services

import (
	"chirp/internal/models"
	"chirp/internal/repositories"
)

// UserService handles read-side business logic for user identities.
type UserService struct {
	repo repositories.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

// GetUserByUsername retrieves a user by username. Absence comes back as
// models.ErrUserNotFound for the caller to branch on.
func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	return s.repo.GetByUsername(username)
}

// GetUserByID retrieves a user by their ID.
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	return s.repo.GetByID(id)
}
