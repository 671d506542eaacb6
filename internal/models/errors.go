package models

import "errors"

// Domain error conditions. All of these are expected, recoverable outcomes
// that callers branch on with errors.Is; only storage unavailability should
// propagate as anything else.
var (
	// ErrDuplicateIdentity is returned when a registration collides with an
	// existing username or email.
	ErrDuplicateIdentity = errors.New("username or email already registered")

	// ErrInvalidCredentials is returned on a login email/password mismatch.
	// It deliberately does not reveal which of the two was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is returned when a lookup by username, email or id
	// matches no user.
	ErrUserNotFound = errors.New("user not found")

	// ErrPostNotFound is returned when a lookup by post id matches no post.
	ErrPostNotFound = errors.New("post not found")

	// ErrAlreadyFollowing is returned on a redundant follow attempt.
	ErrAlreadyFollowing = errors.New("already following this user")

	// ErrSelfFollow is returned when a user attempts to follow themselves.
	ErrSelfFollow = errors.New("cannot follow yourself")

	// ErrEmptyContent is returned when a post has no content left after
	// trimming surrounding whitespace.
	ErrEmptyContent = errors.New("post content must not be empty")

	// ErrAuthorNotFound means the authenticated author vanished mid-request.
	// Unlike the conditions above this is an internal invariant violation.
	ErrAuthorNotFound = errors.New("post author does not exist")
)
