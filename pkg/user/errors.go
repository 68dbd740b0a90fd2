package user

import "errors"

// ErrUserNotFound is returned when no user matches the lookup
var ErrUserNotFound = errors.New("user not found")

// DuplicateUserError is returned when registering with a username or
// email that is already taken
type DuplicateUserError struct {
	Username string
	Email    string
}

func (e DuplicateUserError) Error() string {
	return "user with this email or username already exists"
}
