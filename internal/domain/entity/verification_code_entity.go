package entity

import "time"

// VerificationCode proves control of the email a user registered with.
// IsActive flips to true once the code has been confirmed; a confirmed
// code can never be used again.
type VerificationCode struct {
	ID          int64
	UserID      int64
	Code        string
	ExpiresAt   time.Time
	IsActive    bool
	ConfirmedAt *time.Time
	CreatedAt   time.Time
}

// Expired reports whether the code's expiry lies before now.
func (v *VerificationCode) Expired(now time.Time) bool {
	return v.ExpiresAt.Before(now)
}

// Confirm marks the code as used at the given time.
func (v *VerificationCode) Confirm(at time.Time) {
	v.IsActive = true
	v.ConfirmedAt = &at
}
