package application

import (
	"context"
	"errors"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hrms/internal/domain/entity"
	repo "github.com/oksasatya/go-hrms/internal/domain/repository"
	"github.com/oksasatya/go-hrms/pkg/helpers"
)

// AvatarStore persists an uploaded object and returns its public URL.
type AvatarStore interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

var avatarTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type AccountService struct {
	Users   repo.UserRepository
	Avatars AvatarStore
	Redis   redis.Cmdable
	Logger  *logrus.Logger
}

func (s *AccountService) GetAccount(ctx context.Context, id int64) (*entity.Account, error) {
	u, err := s.Users.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return loadAccount(ctx, s.Users, u)
}

func (s *AccountService) GetCandidate(ctx context.Context, id int64) (*entity.Account, error) {
	acc, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc.Candidate == nil {
		return nil, ErrUserNotFound
	}
	return acc, nil
}

func (s *AccountService) GetEmployer(ctx context.Context, id int64) (*entity.Account, error) {
	acc, err := s.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if acc.Employer == nil {
		return nil, ErrUserNotFound
	}
	return acc, nil
}

// UploadCandidateAvatar stores the image under avatars/<id>/<uuid><ext> and
// points the candidate's avatar_url at it. The extension always follows the
// validated content type; the client's filename is only logged.
func (s *AccountService) UploadCandidateAvatar(ctx context.Context, id int64, r io.Reader, filename, contentType string) (string, error) {
	if s.Avatars == nil {
		return "", ErrStorageUnavailable
	}
	ext, ok := avatarTypes[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", ErrUnsupportedAvatar
	}

	c, err := s.Users.GetCandidate(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}

	uid := strconv.FormatInt(id, 10)
	url, err := s.Avatars.Upload(ctx, path.Join("avatars", uid, uuid.NewString()+ext), contentType, r)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{"user_id": id, "filename": filename}).Error("avatar upload failed")
		}
		return "", err
	}

	c.AvatarURL = url
	if err := s.Users.UpdateCandidate(ctx, c); err != nil {
		return "", err
	}

	if s.Redis != nil {
		key := helpers.SessionKey(uid)
		// only touch an existing session
		if n, _ := s.Redis.Exists(ctx, key).Result(); n > 0 {
			s.Redis.HSet(ctx, key, "avatar_url", url)
		}
	}
	return url, nil
}
