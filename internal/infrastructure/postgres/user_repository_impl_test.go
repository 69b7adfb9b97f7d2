package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-hrms/internal/domain/entity"
	"github.com/oksasatya/go-hrms/internal/domain/repository"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestUserRepository_CreateEmployer(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users \(email, password_hash, kind\)`).
		WithArgs("hr@acme.io", "hash", "employer").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))
	mock.ExpectExec(`INSERT INTO employers`).
		WithArgs(int64(7), "Acme", "acme.io", "555", false, false).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	u := &entity.User{Email: "hr@acme.io", Password: "hash"}
	e := &entity.Employer{CompanyName: "Acme", Website: "acme.io", PhoneNumber: "555"}
	require.NoError(t, repo.CreateEmployer(context.Background(), u, e))

	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, entity.KindEmployer, u.Kind)
	assert.Equal(t, int64(7), e.UserID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateCandidate_DuplicateEmailRollsBack(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("jane@mail.io", "hash", "job_candidate").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	err := repo.CreateCandidate(context.Background(),
		&entity.User{Email: "jane@mail.io", Password: "hash"},
		&entity.JobCandidate{FirstName: "Jane", LastName: "Doe", NationalID: "1", BirthYear: 1990})

	assert.True(t, errors.Is(err, repository.ErrDuplicate), "got %v", err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateCandidate_DuplicateNationalID(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("new@mail.io", "hash", "job_candidate").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(9), now, now))
	mock.ExpectExec(`INSERT INTO job_candidates`).
		WithArgs(int64(9), "Jane", "Doe", "11111111111", 1990, "", false, false).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "job_candidates_national_id_key"})
	mock.ExpectRollback()

	err := repo.CreateCandidate(context.Background(),
		&entity.User{Email: "new@mail.io", Password: "hash"},
		&entity.JobCandidate{FirstName: "Jane", LastName: "Doe", NationalID: "11111111111", BirthYear: 1990})

	assert.ErrorIs(t, err, repository.ErrDuplicateNationalID)
	assert.NotErrorIs(t, err, repository.ErrDuplicate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateCandidate_JoinsOuterTx(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)
	txm := NewTxManager(mock)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(3), now, now))
	mock.ExpectExec(`INSERT INTO job_candidates`).
		WithArgs(int64(3), "Jane", "Doe", "11111111111", 1990, "", false, false).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	err := txm.WithinTx(context.Background(), func(ctx context.Context) error {
		return repo.CreateCandidate(ctx,
			&entity.User{Email: "jane@mail.io", Password: "hash"},
			&entity.JobCandidate{FirstName: "Jane", LastName: "Doe", NationalID: "11111111111", BirthYear: 1990})
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByEmail(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, email, password_hash, kind, created_at, updated_at\s+FROM users\s+WHERE email = \$1`).
		WithArgs("jane@mail.io").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash", "kind", "created_at", "updated_at"}).
			AddRow(int64(3), "jane@mail.io", "hash", "job_candidate", now, now))

	u, err := repo.GetByEmail(context.Background(), "jane@mail.io")
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.ID)
	assert.Equal(t, entity.KindJobCandidate, u.Kind)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`FROM users\s+WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetCandidate(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`FROM job_candidates\s+WHERE user_id = \$1`).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "first_name", "last_name", "national_id", "birth_year", "avatar_url", "is_active", "is_email_verified"}).
			AddRow(int64(3), "Jane", "Doe", "111", 1990, "", false, false))

	c, err := repo.GetCandidate(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Jane", c.FirstName)
	assert.Equal(t, 1990, c.BirthYear)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateEmployer(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(`UPDATE employers`).
		WithArgs("Acme", "", "", true, true, int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE users SET updated_at`).
		WithArgs(pgxmock.AnyArg(), int64(7)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.UpdateEmployer(context.Background(), &entity.Employer{UserID: 7, CompanyName: "Acme", IsActive: true, IsEmailVerified: true})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateCandidate_NoRows(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(`UPDATE job_candidates`).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateCandidate(context.Background(), &entity.JobCandidate{UserID: 42})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
