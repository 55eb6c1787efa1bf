package loginflow

import "errors"

var (
	// ErrPasswordMismatch is returned by SubmitSignUp when the confirmation
	// differs from the password. The registry is not called.
	ErrPasswordMismatch = errors.New("loginflow: passwords do not match")
	// ErrInvalidTransition is returned for operations not allowed in the
	// current state.
	ErrInvalidTransition = errors.New("loginflow: invalid transition")
)
