package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/oksasatya/go-hrms/internal/domain/entity"
	"github.com/oksasatya/go-hrms/internal/domain/repository"
)

type UserRepository struct {
	pool Pool
	tx   *TxManager
}

func NewUserRepository(pool Pool) *UserRepository {
	return &UserRepository{pool: pool, tx: NewTxManager(pool)}
}

// nationalIDConstraint is named in db/migrations/000001_create_users.up.sql.
const nationalIDConstraint = "job_candidates_national_id_key"

const selectUser = `
		SELECT id, email, password_hash, kind, created_at, updated_at
		FROM users
	`

func (r *UserRepository) insertUser(ctx context.Context, u *entity.User) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO users (email, password_hash, kind)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Password, string(u.Kind))

	return dbErr(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

// CreateEmployer inserts the identity row and the employer row together.
func (r *UserRepository) CreateEmployer(ctx context.Context, u *entity.User, e *entity.Employer) error {
	u.Kind = entity.KindEmployer
	return r.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := r.insertUser(ctx, u); err != nil {
			return err
		}
		e.UserID = u.ID
		_, err := conn(ctx, r.pool).Exec(ctx, `
			INSERT INTO employers (user_id, company_name, website, phone_number, is_active, is_email_verified)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, e.UserID, e.CompanyName, e.Website, e.PhoneNumber, e.IsActive, e.IsEmailVerified)
		return dbErr(err)
	})
}

// CreateCandidate inserts the identity row and the job candidate row together.
func (r *UserRepository) CreateCandidate(ctx context.Context, u *entity.User, c *entity.JobCandidate) error {
	u.Kind = entity.KindJobCandidate
	return r.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := r.insertUser(ctx, u); err != nil {
			return err
		}
		c.UserID = u.ID
		_, err := conn(ctx, r.pool).Exec(ctx, `
			INSERT INTO job_candidates (user_id, first_name, last_name, national_id, birth_year, avatar_url, is_active, is_email_verified)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, c.UserID, c.FirstName, c.LastName, c.NationalID, c.BirthYear, c.AvatarURL, c.IsActive, c.IsEmailVerified)
		if name, ok := violatedConstraint(err); ok && name == nationalIDConstraint {
			return fmt.Errorf("%w: %v", repository.ErrDuplicateNationalID, err)
		}
		return dbErr(err)
	})
}

func (r *UserRepository) scanUser(ctx context.Context, where string, arg any) (*entity.User, error) {
	u := &entity.User{}
	var kind string

	row := conn(ctx, r.pool).QueryRow(ctx, selectUser+where, arg)
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &kind, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, dbErr(err)
	}
	u.Kind = entity.UserKind(kind)

	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.scanUser(ctx, "WHERE id = $1", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.scanUser(ctx, "WHERE email = $1", email)
}

func (r *UserRepository) GetEmployer(ctx context.Context, userID int64) (*entity.Employer, error) {
	e := &entity.Employer{}

	row := conn(ctx, r.pool).QueryRow(ctx, `
		SELECT user_id, company_name, website, phone_number, is_active, is_email_verified
		FROM employers
		WHERE user_id = $1
	`, userID)

	if err := row.Scan(&e.UserID, &e.CompanyName, &e.Website, &e.PhoneNumber,
		&e.IsActive, &e.IsEmailVerified); err != nil {
		return nil, dbErr(err)
	}

	return e, nil
}

func (r *UserRepository) GetCandidate(ctx context.Context, userID int64) (*entity.JobCandidate, error) {
	c := &entity.JobCandidate{}

	row := conn(ctx, r.pool).QueryRow(ctx, `
		SELECT user_id, first_name, last_name, national_id, birth_year, avatar_url, is_active, is_email_verified
		FROM job_candidates
		WHERE user_id = $1
	`, userID)

	if err := row.Scan(&c.UserID, &c.FirstName, &c.LastName, &c.NationalID, &c.BirthYear,
		&c.AvatarURL, &c.IsActive, &c.IsEmailVerified); err != nil {
		return nil, dbErr(err)
	}

	return c, nil
}

func (r *UserRepository) UpdateEmployer(ctx context.Context, e *entity.Employer) error {
	db := conn(ctx, r.pool)

	res, err := db.Exec(ctx, `
		UPDATE employers
		SET company_name = $1, website = $2, phone_number = $3, is_active = $4, is_email_verified = $5
		WHERE user_id = $6
	`, e.CompanyName, e.Website, e.PhoneNumber, e.IsActive, e.IsEmailVerified, e.UserID)
	if err != nil {
		return dbErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return r.touch(ctx, e.UserID)
}

func (r *UserRepository) UpdateCandidate(ctx context.Context, c *entity.JobCandidate) error {
	db := conn(ctx, r.pool)

	res, err := db.Exec(ctx, `
		UPDATE job_candidates
		SET first_name = $1, last_name = $2, avatar_url = $3, is_active = $4, is_email_verified = $5
		WHERE user_id = $6
	`, c.FirstName, c.LastName, c.AvatarURL, c.IsActive, c.IsEmailVerified, c.UserID)
	if err != nil {
		return dbErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return r.touch(ctx, c.UserID)
}

// touch bumps users.updated_at after a subtype change.
func (r *UserRepository) touch(ctx context.Context, id int64) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `UPDATE users SET updated_at = $1 WHERE id = $2`, time.Now(), id)
	return dbErr(err)
}

var _ repository.UserRepository = (*UserRepository)(nil)
