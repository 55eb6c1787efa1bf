package users

import "errors"

var (
	// ErrDuplicateUsername is returned by SignUp when the username is taken.
	ErrDuplicateUsername = errors.New("users: username already exists")
	// ErrInvalidCredentials is returned by Authenticate when no record matches
	// both username and password.
	ErrInvalidCredentials = errors.New("users: invalid credentials")
	// ErrNotFound is returned by Find for unknown usernames.
	ErrNotFound = errors.New("users: user not found")
	// ErrInvalidInput is returned by SignUp for empty usernames or passwords.
	ErrInvalidInput = errors.New("users: invalid input")
	// ErrStorage wraps persistence failures.
	ErrStorage = errors.New("users: storage failure")
)
