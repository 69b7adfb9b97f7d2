package postgres

import (
	"context"
	"encoding/json"

	"github.com/oksasatya/go-hrms/internal/domain/entity"
	"github.com/oksasatya/go-hrms/internal/domain/repository"
)

type AuditRepository struct {
	pool Pool
}

func NewAuditRepository(pool Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Insert(ctx context.Context, l entity.AuditLog) error {
	var md []byte
	if len(l.Metadata) > 0 {
		b, err := json.Marshal(l.Metadata)
		if err != nil {
			return err
		}
		md = b
	}

	var uid *int64
	if l.UserID != 0 {
		uid = &l.UserID
	}

	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO audit_logs (user_id, email, action, ip, user_agent, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uid, nullText(l.Email), l.Action, nullText(l.IP), nullText(l.UserAgent), md)
	return dbErr(err)
}

func nullText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ repository.AuditRepository = (*AuditRepository)(nil)
