package services

import "errors"

// Sentinel errors for explicit error handling
// These errors allow callers to distinguish between different failure modes
// using errors.Is() instead of string matching

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong passwords
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountInactive indicates the admin exists but is deactivated
	ErrAccountInactive = errors.New("account is inactive")

	// ErrAdminExists indicates the username is already taken
	ErrAdminExists = errors.New("admin user already exists")

	// ErrAdminNotFound indicates the admin user does not exist
	ErrAdminNotFound = errors.New("admin user not found")

	// ErrInvalidUsername indicates the username is empty or too long
	ErrInvalidUsername = errors.New("username must be between 1 and 255 characters")

	// ErrWeakPassword indicates the password is too short
	ErrWeakPassword = errors.New("password must be at least 8 characters")
)
