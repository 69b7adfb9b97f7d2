package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oksasatya/go-hrms/internal/domain/entity"
	repo "github.com/oksasatya/go-hrms/internal/domain/repository"
	"github.com/oksasatya/go-hrms/internal/infrastructure/metrics"
)

func (s *AuthService) codeTTL() time.Duration {
	if s.CodeTTL > 0 {
		return s.CodeTTL
	}
	return DefaultCodeTTL
}

// issueCode persists a fresh, unconfirmed code for userID.
func (s *AuthService) issueCode(ctx context.Context, userID int64) (*entity.VerificationCode, error) {
	code, err := s.Codegen.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate code: %w", err)
	}
	v := &entity.VerificationCode{
		UserID:    userID,
		Code:      code,
		ExpiresAt: s.now().Add(s.codeTTL()),
		IsActive:  false,
	}
	if err := s.Codes.Create(ctx, v); err != nil {
		return nil, err
	}
	metrics.CodesIssued.Inc()
	return v, nil
}

// dispatchCode hands v to the notifier. Delivery failures are logged only,
// the code stays valid and can be resent.
func (s *AuthService) dispatchCode(ctx context.Context, acc *entity.Account, v *entity.VerificationCode) {
	if s.Notifier == nil || v == nil {
		return
	}
	to := Recipient{UserID: acc.User.ID, Email: acc.User.Email, Name: acc.DisplayName()}
	if err := s.Notifier.SendVerificationCode(ctx, to, v.Code, v.ExpiresAt); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", acc.User.ID).Warn("verification code dispatch failed")
	}
}

// ResendVerificationCode issues and dispatches a new code for an account
// whose email is not verified yet. Older pending codes stay usable until
// they expire.
func (s *AuthService) ResendVerificationCode(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	acc, err := loadAccount(ctx, s.Users, u)
	if err != nil {
		return err
	}
	if acc.IsEmailVerified() {
		return ErrAlreadyVerified
	}

	v, err := s.issueCode(ctx, u.ID)
	if err != nil {
		return err
	}
	s.dispatchCode(ctx, acc, v)
	return nil
}
