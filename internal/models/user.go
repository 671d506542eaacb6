package models

import "time"

// User represents a registered member of the service.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username     string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100,handle"`
	Email        string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255)"` // Never exposed; set by the auth service only
	JoinedAt     time.Time `json:"joined_at" gorm:"not null"`
	IsAdmin      bool      `json:"is_admin" gorm:"not null;default:false"`
}

// TableName specifies the table name for User.
func (User) TableName() string { return "users" }

// Principal is the narrow capability the routing layer needs from an
// authenticated session subject.
type Principal interface {
	IsAuthenticated() bool
	PrincipalID() string
	DisplayName() string
}

// IsAuthenticated reports whether the user is a real, persisted identity.
func (u *User) IsAuthenticated() bool { return u != nil && u.ID != "" }

// PrincipalID returns the stable identity key.
func (u *User) PrincipalID() string { return u.ID }

// DisplayName returns the name shown to other users.
func (u *User) DisplayName() string { return u.Username }
