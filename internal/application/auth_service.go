package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hrms/internal/domain/entity"
	repo "github.com/oksasatya/go-hrms/internal/domain/repository"
	"github.com/oksasatya/go-hrms/internal/infrastructure/metrics"
	"github.com/oksasatya/go-hrms/pkg/helpers"
)

const (
	DefaultCodeTTL    = 24 * time.Hour
	DefaultSessionTTL = 24 * time.Hour
)

// CodeGenerator produces verification codes.
type CodeGenerator interface {
	Generate() (string, error)
}

// Recipient identifies who a verification code is sent to.
type Recipient struct {
	UserID int64
	Email  string
	Name   string
}

// CodeNotifier delivers a verification code to its recipient.
type CodeNotifier interface {
	SendVerificationCode(ctx context.Context, to Recipient, code string, expiresAt time.Time) error
}

type AuthService struct {
	Users    repo.UserRepository
	Codes    repo.VerificationCodeRepository
	Tx       repo.TxManager
	Codegen  CodeGenerator
	Notifier CodeNotifier
	JWT      *helpers.JWTManager
	Redis    redis.Cmdable
	Logger   *logrus.Logger

	CodeTTL    time.Duration
	SessionTTL time.Duration
	Now        func() time.Time
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type EmployerRegistration struct {
	Email           string
	Password        string
	ConfirmPassword string
	CompanyName     string
	Website         string
	PhoneNumber     string
}

type CandidateRegistration struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	NationalID      string
	BirthYear       int
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *AuthService) sessionTTL() time.Duration {
	if s.SessionTTL > 0 {
		return s.SessionTTL
	}
	return DefaultSessionTTL
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func nowRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func (s *AuthService) RegisterEmployer(ctx context.Context, in EmployerRegistration) (*entity.Account, error) {
	if in.Password != in.ConfirmPassword {
		metrics.Registrations.WithLabelValues(string(entity.KindEmployer), "password_mismatch").Inc()
		return nil, ErrPasswordMismatch
	}

	u, err := s.newUser(in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	e := &entity.Employer{
		CompanyName: strings.TrimSpace(in.CompanyName),
		Website:     strings.TrimSpace(in.Website),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
	}

	acc := &entity.Account{Employer: e}
	err = s.register(ctx, u, acc, func(ctx context.Context) error {
		return s.Users.CreateEmployer(ctx, u, e)
	})
	metrics.Registrations.WithLabelValues(string(entity.KindEmployer), registrationResult(err)).Inc()
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *AuthService) RegisterCandidate(ctx context.Context, in CandidateRegistration) (*entity.Account, error) {
	if in.Password != in.ConfirmPassword {
		metrics.Registrations.WithLabelValues(string(entity.KindJobCandidate), "password_mismatch").Inc()
		return nil, ErrPasswordMismatch
	}

	u, err := s.newUser(in.Email, in.Password)
	if err != nil {
		return nil, err
	}
	c := &entity.JobCandidate{
		FirstName:  strings.TrimSpace(in.FirstName),
		LastName:   strings.TrimSpace(in.LastName),
		NationalID: strings.TrimSpace(in.NationalID),
		BirthYear:  in.BirthYear,
	}

	acc := &entity.Account{Candidate: c}
	err = s.register(ctx, u, acc, func(ctx context.Context) error {
		return s.Users.CreateCandidate(ctx, u, c)
	})
	metrics.Registrations.WithLabelValues(string(entity.KindJobCandidate), registrationResult(err)).Inc()
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func registrationResult(err error) string {
	return metrics.Result(err, map[error]string{ErrEmailTaken: "email_taken", ErrNationalIDTaken: "national_id_taken"})
}

func (s *AuthService) newUser(email, password string) (*entity.User, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return &entity.User{Email: normalizeEmail(email), Password: hash}, nil
}

// register persists the user through create and issues its first code in the
// same transaction. The code is dispatched only after commit.
func (s *AuthService) register(ctx context.Context, u *entity.User, acc *entity.Account, create func(ctx context.Context) error) error {
	var code *entity.VerificationCode
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := create(ctx); err != nil {
			return err
		}
		v, err := s.issueCode(ctx, u.ID)
		if err != nil {
			return err
		}
		code = v
		return nil
	})
	switch {
	case errors.Is(err, repo.ErrDuplicateNationalID):
		return ErrNationalIDTaken
	case errors.Is(err, repo.ErrDuplicate):
		return ErrEmailTaken
	}
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Error("registration failed")
		}
		return err
	}

	acc.User = *u
	s.dispatchCode(ctx, acc, code)
	return nil
}

// VerifyEmail confirms code for userID and activates the user's subtype.
func (s *AuthService) VerifyEmail(ctx context.Context, userID int64, code string) error {
	err := s.Tx.WithinTx(ctx, func(ctx context.Context) error {
		v, err := s.Codes.GetByUserIDAndCode(ctx, userID, strings.TrimSpace(code))
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCodeNotFound
		}
		if err != nil {
			return err
		}
		if v.IsActive {
			return ErrCodeAlreadyUsed
		}
		now := s.now()
		if v.Expired(now) {
			return ErrCodeExpired
		}
		if err := s.activate(ctx, userID); err != nil {
			return err
		}
		v.Confirm(now)
		return s.Codes.Update(ctx, v)
	})

	metrics.Verifications.WithLabelValues(metrics.Result(err, map[error]string{
		ErrCodeNotFound:    "not_found",
		ErrCodeAlreadyUsed: "already_used",
		ErrCodeExpired:     "expired",
		ErrUserNotFound:    "user_not_found",
	})).Inc()
	return err
}

// activate flips the activation flags on whichever subtype userID has.
func (s *AuthService) activate(ctx context.Context, userID int64) error {
	c, err := s.Users.GetCandidate(ctx, userID)
	switch {
	case err == nil:
		c.IsActive, c.IsEmailVerified = true, true
		return s.Users.UpdateCandidate(ctx, c)
	case !errors.Is(err, repo.ErrNotFound):
		return err
	}

	e, err := s.Users.GetEmployer(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	e.IsActive, e.IsEmailVerified = true, true
	return s.Users.UpdateEmployer(ctx, e)
}

// Authenticate validates email/password and returns the account without issuing tokens.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*entity.Account, error) {
	u, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	// Unverified users may still log in; verification is prompted client side.
	return loadAccount(ctx, s.Users, u)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.Account, TokenPair, error) {
	acc, err := s.Authenticate(ctx, email, password)
	if err == nil {
		var pair TokenPair
		pair, err = s.IssueTokens(ctx, acc)
		if err == nil {
			metrics.Logins.WithLabelValues("ok").Inc()
			return acc, pair, nil
		}
	}
	metrics.Logins.WithLabelValues(metrics.Result(err, map[error]string{ErrInvalidCredentials: "invalid_credentials"})).Inc()
	return nil, TokenPair{}, err
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *AuthService) IssueTokens(ctx context.Context, acc *entity.Account) (TokenPair, error) {
	uid := strconv.FormatInt(acc.User.ID, 10)
	sid := uuid.NewString()
	pair, err := s.tokens(uid, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", uid).Error("generate tokens failed")
		}
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := helpers.SessionKey(uid)
		fields := map[string]any{
			"user_id":    uid,
			"email":      acc.User.Email,
			"kind":       string(acc.User.Kind),
			"name":       acc.DisplayName(),
			"sid":        sid,
			"logged_in":  true,
			"created_at": nowRFC3339(s.now()),
		}
		if rErr := helpers.RedisHSetTTL(ctx, s.Redis, key, fields, s.sessionTTL()); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return pair, nil
}

func (s *AuthService) tokens(uid, sid string) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(uid, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(uid, sid)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the session id and both tokens. The refresh token must
// belong to the session currently stored in Redis.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, int64, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, 0, ErrInvalidCredentials
	}
	id, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return TokenPair{}, 0, ErrInvalidCredentials
	}
	if _, err := s.Users.GetByID(ctx, id); err != nil {
		return TokenPair{}, 0, ErrInvalidCredentials
	}

	key := helpers.SessionKey(claims.UserID)
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, key).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, 0, ErrInvalidCredentials
		}
	}

	sid := uuid.NewString()
	pair, err := s.tokens(claims.UserID, sid)
	if err != nil {
		return TokenPair{}, 0, err
	}
	if s.Redis != nil {
		fields := map[string]any{"sid": sid, "updated_at": nowRFC3339(s.now())}
		if rErr := helpers.RedisHSetTTL(ctx, s.Redis, key, fields, s.sessionTTL()); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return pair, id, nil
}

// Logout drops the user's session so outstanding tokens stop validating.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if s.Redis == nil {
		return nil
	}
	return helpers.RedisDel(ctx, s.Redis, helpers.SessionKey(strconv.FormatInt(userID, 10)))
}

func (s *AuthService) UserExists(ctx context.Context, email string) (bool, error) {
	_, err := s.Users.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// loadAccount attaches the subtype selected by u.Kind.
func loadAccount(ctx context.Context, users repo.UserRepository, u *entity.User) (*entity.Account, error) {
	acc := &entity.Account{User: *u}
	switch u.Kind {
	case entity.KindEmployer:
		e, err := users.GetEmployer(ctx, u.ID)
		if err != nil {
			return nil, subtypeErr(err)
		}
		acc.Employer = e
	case entity.KindJobCandidate:
		c, err := users.GetCandidate(ctx, u.ID)
		if err != nil {
			return nil, subtypeErr(err)
		}
		acc.Candidate = c
	default:
		return nil, fmt.Errorf("user %d: unknown kind %q", u.ID, u.Kind)
	}
	return acc, nil
}

func subtypeErr(err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
