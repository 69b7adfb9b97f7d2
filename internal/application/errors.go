package application

import "errors"

var (
	ErrPasswordMismatch      = errors.New("password and confirmation do not match")
	ErrEmailTaken            = errors.New("email already registered")
	ErrNationalIDTaken       = errors.New("national id already registered")
	ErrCodeNotFound          = errors.New("verification code not found")
	ErrCodeAlreadyUsed       = errors.New("verification code already used")
	ErrCodeExpired           = errors.New("verification code expired")
	ErrAlreadyVerified       = errors.New("email already verified")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrJobExperienceNotFound = errors.New("job experience not found")
	ErrInvalidDateRange      = errors.New("end date precedes start date")
	ErrStartDateRequired     = errors.New("start date is required")
	ErrStorageUnavailable    = errors.New("object storage not configured")
	ErrUnsupportedAvatar     = errors.New("avatar must be a jpeg, png or webp image")
)
