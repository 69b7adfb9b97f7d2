package postgres

import (
	"context"

	"github.com/oksasatya/go-hrms/internal/domain/entity"
	"github.com/oksasatya/go-hrms/internal/domain/repository"
)

type VerificationCodeRepository struct {
	pool Pool
}

func NewVerificationCodeRepository(pool Pool) *VerificationCodeRepository {
	return &VerificationCodeRepository{pool: pool}
}

func (r *VerificationCodeRepository) Create(ctx context.Context, v *entity.VerificationCode) error {
	row := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO verification_codes (user_id, code, expires_at, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, v.UserID, v.Code, v.ExpiresAt, v.IsActive)

	return dbErr(row.Scan(&v.ID, &v.CreatedAt))
}

// GetByUserIDAndCode returns the newest matching code and locks it for the
// surrounding transaction.
func (r *VerificationCodeRepository) GetByUserIDAndCode(ctx context.Context, userID int64, code string) (*entity.VerificationCode, error) {
	v := &entity.VerificationCode{}

	row := conn(ctx, r.pool).QueryRow(ctx, `
		SELECT id, user_id, code, expires_at, is_active, confirmed_at, created_at
		FROM verification_codes
		WHERE user_id = $1 AND code = $2
		ORDER BY id DESC
		LIMIT 1
		FOR UPDATE
	`, userID, code)

	if err := row.Scan(&v.ID, &v.UserID, &v.Code, &v.ExpiresAt, &v.IsActive,
		&v.ConfirmedAt, &v.CreatedAt); err != nil {
		return nil, dbErr(err)
	}

	return v, nil
}

func (r *VerificationCodeRepository) Update(ctx context.Context, v *entity.VerificationCode) error {
	res, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE verification_codes
		SET is_active = $1, confirmed_at = $2
		WHERE id = $3
	`, v.IsActive, v.ConfirmedAt, v.ID)
	if err != nil {
		return dbErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.VerificationCodeRepository = (*VerificationCodeRepository)(nil)
