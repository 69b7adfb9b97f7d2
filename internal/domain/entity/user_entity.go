package entity

import (
	"time"
)

// UserKind tags which subtype record belongs to a user.
type UserKind string

const (
	KindEmployer     UserKind = "employer"
	KindJobCandidate UserKind = "job_candidate"
)

// User is the shared identity of every account.
// Passwords are stored as bcrypt hashes in Password field.
type User struct {
	ID        int64
	Email     string
	Password  string
	Kind      UserKind
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Employer is the company-side subtype of a User.
type Employer struct {
	UserID          int64
	CompanyName     string
	Website         string
	PhoneNumber     string
	IsActive        bool
	IsEmailVerified bool
}

// JobCandidate is the applicant-side subtype of a User.
type JobCandidate struct {
	UserID          int64
	FirstName       string
	LastName        string
	NationalID      string
	BirthYear       int
	AvatarURL       string
	IsActive        bool
	IsEmailVerified bool
}

// Account is a User together with its subtype payload.
// Exactly one of Employer and Candidate is set, matching User.Kind.
type Account struct {
	User      User
	Employer  *Employer
	Candidate *JobCandidate
}

// IsEmailVerified reports the verification flag of whichever subtype is present.
func (a *Account) IsEmailVerified() bool {
	switch {
	case a.Candidate != nil:
		return a.Candidate.IsEmailVerified
	case a.Employer != nil:
		return a.Employer.IsEmailVerified
	}
	return false
}

// DisplayName is used in emails and session data.
func (a *Account) DisplayName() string {
	switch {
	case a.Candidate != nil:
		return a.Candidate.FirstName + " " + a.Candidate.LastName
	case a.Employer != nil:
		return a.Employer.CompanyName
	}
	return a.User.Email
}
