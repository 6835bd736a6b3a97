package service

import "errors"

var (
	// ErrUnauthorized is returned by the session gate for anonymous, expired
	// and logged-out sessions alike.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials hides whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrWrongPassword is returned when the current password does not match
	// during a password change.
	ErrWrongPassword = errors.New("current password is incorrect")

	ErrPasswordMismatch  = errors.New("password mismatch")
	ErrDuplicateAccount  = errors.New("account already exists")
	ErrDuplicateCategory = errors.New("category already exists")

	// ErrNotFound covers both missing and foreign-owned resources.
	ErrNotFound = errors.New("not found")

	ErrSessionCreationFailed = errors.New("session creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
