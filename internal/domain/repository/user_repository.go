package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-hrms/internal/domain/entity"
)

var (
	// ErrNotFound is returned by repositories when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate")
	// ErrDuplicateNationalID is returned when another candidate already holds the national id.
	ErrDuplicateNationalID = errors.New("duplicate national id")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	CreateEmployer(ctx context.Context, u *entity.User, e *entity.Employer) error
	CreateCandidate(ctx context.Context, u *entity.User, c *entity.JobCandidate) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetEmployer(ctx context.Context, userID int64) (*entity.Employer, error)
	GetCandidate(ctx context.Context, userID int64) (*entity.JobCandidate, error)
	UpdateEmployer(ctx context.Context, e *entity.Employer) error
	UpdateCandidate(ctx context.Context, c *entity.JobCandidate) error
}

// VerificationCodeRepository stores issued email verification codes.
type VerificationCodeRepository interface {
	Create(ctx context.Context, v *entity.VerificationCode) error
	// GetByUserIDAndCode locks the row when called inside a transaction.
	GetByUserIDAndCode(ctx context.Context, userID int64, code string) (*entity.VerificationCode, error)
	Update(ctx context.Context, v *entity.VerificationCode) error
}

// JobExperienceRepository stores job experiences owned by candidates.
type JobExperienceRepository interface {
	Create(ctx context.Context, j *entity.JobExperience) error
	GetByID(ctx context.Context, id int64) (*entity.JobExperience, error)
	List(ctx context.Context) ([]entity.JobExperience, error)
	ListByCandidate(ctx context.Context, candidateID int64) ([]entity.JobExperience, error)
}

// AuditRepository appends authentication events.
type AuditRepository interface {
	Insert(ctx context.Context, l entity.AuditLog) error
}

// TxManager runs fn inside a single database transaction. Repositories
// called with the ctx handed to fn take part in that transaction.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
