package usecase

import "errors"

// Sentinel errors for every domain failure the handlers translate to HTTP.
// Handlers match with errors.Is; nothing dispatches on error text.
var (
	// ErrValidation marks malformed or out-of-range input caught before any
	// store call.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidCredentials covers unknown email and wrong password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrAccountInactive is a deactivated account; mapped to the same 401
	// as bad credentials.
	ErrAccountInactive = errors.New("account is deactivated")

	ErrDuplicateEmail = errors.New("user with this email already exists")

	// ErrTokenInvalid deliberately conflates never-issued, already-consumed
	// and expired recovery tokens to avoid an existence oracle.
	ErrTokenInvalid = errors.New("invalid or expired token")

	// ErrTokenExpired is kept distinct from ErrTokenInvalid for session
	// tokens so the cause can be logged; both map to the same 401 response.
	ErrTokenExpired = errors.New("token expired")

	ErrWrongPassword = errors.New("current password is incorrect")

	ErrForbidden = errors.New("access denied")

	ErrNotFound = errors.New("resource not found")
)
